package domain

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/fletchgen/cerata/pkg/ir"
)

// MmioFunction categorizes a register's intended use.
type MmioFunction int

const (
	MmioDefault MmioFunction = iota
	MmioBatch
	MmioBuffer
	MmioKernel
	MmioProfile
)

// MmioBehavior says whether host software or hardware controls a
// register's contents.
type MmioBehavior int

const (
	MmioControl MmioBehavior = iota
	MmioStatus
)

// MmioReg describes one register in an MMIO register file. Grounded on
// fletchgen::MmioReg (mmio.h) and spec.md 4.8/6.
type MmioReg struct {
	Function MmioFunction
	Behavior MmioBehavior
	Name     string
	Doc      string
	Width    int
	Index    int
	Addr     *int
}

// ExposeToKernel reports whether a register of this function is forwarded
// to the user kernel rather than staying internal to Nucleus/MMIO.
func ExposeToKernel(f MmioFunction) bool {
	switch f {
	case MmioDefault, MmioKernel, MmioBatch:
		return true
	default:
		return false
	}
}

// AllocateAddresses assigns a consecutive 4-byte-aligned byte address to
// every register in regs lacking a pinned one, mutating them in place, and
// returns the next free byte address. Grounded on
// fletchgen::GenerateVhdmmioYaml's address bookkeeping (mmio.cc) and
// spec.md 4.8 ("packs registers consecutively at 4-byte boundaries unless
// an address is pinned").
func AllocateAddresses(regs []MmioReg) int {
	next := 0
	for i := range regs {
		if regs[i].Addr != nil {
			next = *regs[i].Addr + addrSpaceUsed(regs[i].Width)
			continue
		}
		addr := next
		regs[i].Addr = &addr
		next += addrSpaceUsed(regs[i].Width)
	}
	return next
}

func addrSpaceUsed(width int) int {
	words := width / 32
	if width%32 != 0 {
		words++
	}
	return 4 * words
}

var customRegSpec = regexp.MustCompile(`^([cs]):(\d+):(\w+)$`)

// ParseCustomRegs parses command-line register specifications of the form
// "c:32:foo" (a 32-bit host-controlled register named foo) or "s:1:bar" (a
// 1-bit hardware-controlled status register named bar), skipping anything
// that doesn't match. Grounded on fletchgen::ParseCustomRegs (design.cc)
// and spec.md 4.8/6.
func ParseCustomRegs(specs []string) []MmioReg {
	var out []MmioReg
	for _, spec := range specs {
		m := customRegSpec.FindStringSubmatch(spec)
		if m == nil {
			continue
		}
		width, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		behavior := MmioStatus
		if m[1] == "c" {
			behavior = MmioControl
		}
		out = append(out, MmioReg{
			Function: MmioKernel,
			Behavior: behavior,
			Name:     m[3],
			Doc:      fmt.Sprintf("Custom register %s.", m[3]),
			Width:    width,
		})
	}
	return out
}

var mmioComponents = map[string]*ir.Component{}

// NewMmioComponent returns the cached primitive MMIO component named name:
// a kernel-domain clock/reset port, one port per register (named
// "f_<reg>_write_data" for host-controlled registers and "f_<reg>_data"
// for hardware-controlled ones, following vhdmmio's naming convention),
// and an AXI4-Lite bus port; a Parameter used as one of axiSpec's widths is
// added to the component as a generic. Treated as opaque by the rest of the
// core.
// Grounded on fletchgen::mmio (mmio.cc) and spec.md 4.8.
func NewMmioComponent(name string, regs []MmioReg, axiSpec Axi4LiteSpec) *ir.Component {
	if c, ok := mmioComponents[name]; ok {
		return c
	}

	c := ir.NewComponent(name)
	kcd := NewClockResetPort("kcd", KernelDomain)
	if err := c.Add(kcd); err != nil {
		panic(err)
	}

	for _, reg := range regs {
		// A control register's decoded value flows OUT of this component to
		// the rest of the design (the host writes it, hardware consumes it);
		// a status register flows IN (hardware drives it, the host reads it
		// back over the bus). Grounded on fletchgen::mmio's behavior-to-
		// direction mapping (mmio.cc).
		dir, suffix := ir.In, "_data"
		if reg.Behavior == MmioControl {
			dir, suffix = ir.Out, "_write_data"
		}
		var typ ir.Type = ir.BitType()
		if reg.Width > 1 {
			typ = ir.VectorOfWidth(int64(reg.Width))
		}
		port := ir.NewPort("f_"+reg.Name+suffix, typ, dir)
		port.SetDomain(KernelDomain)
		if err := c.Add(port); err != nil {
			panic(err)
		}
	}

	for _, w := range []ir.Node{axiSpec.AddrWidth, axiSpec.DataWidth} {
		p, ok := w.(*ir.Parameter)
		if !ok || c.Has(p.Name()) {
			continue
		}
		if err := c.Add(p); err != nil {
			panic(err)
		}
	}

	bus := NewAxiLitePort(ir.In, axiSpec)
	bus.SetDomain(KernelDomain)
	if err := c.Add(bus); err != nil {
		panic(err)
	}

	c.SetMeta(ir.MetaPrimitive, "true")
	c.SetMeta(ir.MetaLibrary, "work")
	c.SetMeta(ir.MetaPackage, "mmio_pkg")

	mmioComponents[name] = c
	return c
}
