package ir

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// StructureError covers duplicate names, foreign sub-objects, null endpoints
// and SetParent on an object already owned elsewhere. Fatal: callers should
// let it propagate (typically via panic/recover at the orchestration layer).
type StructureError struct {
	Msg string
}

func (e *StructureError) Error() string { return "structure error: " + e.Msg }

func panicStructure(format string, args ...any) {
	panic(&StructureError{Msg: fmt.Sprintf(format, args...)})
}

// DirectionError covers an illegal drive of an Instance's output port or a
// Component's input port. Fatal.
type DirectionError struct {
	Msg string
}

func (e *DirectionError) Error() string { return "direction error: " + e.Msg }

func panicDirection(format string, args ...any) {
	panic(&DirectionError{Msg: fmt.Sprintf(format, args...)})
}

// TypeError covers a missing mapper between two types, or construction of a
// non-physical vector. Fatal.
type TypeError struct {
	Msg string
}

func (e *TypeError) Error() string { return "type error: " + e.Msg }

func panicType(format string, args ...any) {
	panic(&TypeError{Msg: fmt.Sprintf(format, args...)})
}

// GenericError covers a parameter reused as the size of a second NodeArray,
// or a rebind target that cannot be resolved. Fatal.
type GenericError struct {
	Msg string
}

func (e *GenericError) Error() string { return "generic error: " + e.Msg }

func panicGeneric(format string, args ...any) {
	panic(&GenericError{Msg: fmt.Sprintf(format, args...)})
}

// DomainWarning signals that Connect joined two synchronous nodes living in
// different clock domains. Non-fatal: no clock-domain-crossing logic is
// injected, the connection proceeds, and the condition is only logged.
type DomainWarning struct {
	Msg string
}

func (e *DomainWarning) Error() string { return "clock domain warning: " + e.Msg }

func warnDomain(format string, args ...any) error {
	w := &DomainWarning{Msg: fmt.Sprintf(format, args...)}
	log.Warn(w.Error())
	return w
}

// MutationError is reported, not aborted: mutating a Component's ports or
// parameters after it has been instantiated at least once.
type MutationError struct {
	Msg string
}

func (e *MutationError) Error() string { return "mutation error: " + e.Msg }

func warnMutation(format string, args ...any) error {
	w := &MutationError{Msg: fmt.Sprintf(format, args...)}
	log.Warn(w.Error())
	return w
}

// Recover turns a panic raised by panicStructure/panicDirection/panicType/
// panicGeneric into a returned error. Used at orchestration entry points the
// way go-corset's cmd.Execute converts internal failures into a reported
// error rather than letting the process crash uncontrolled.
func Recover(err *error) {
	if r := recover(); r != nil {
		switch e := r.(type) {
		case *StructureError, *DirectionError, *TypeError, *GenericError:
			*err = r.(error)
		case error:
			*err = e
		default:
			panic(r)
		}
	}
}
