package transform

import (
	"strconv"

	"github.com/fletchgen/cerata/pkg/ir"
)

const (
	defaultProbeCountWidth = 1
	profilerOutCountWidth  = 32
)

var profilerComponent *ir.Component

// ProfilerComponent returns the process-wide "ProfilerStreams" primitive:
// a clock-domain-agnostic stream probe with five free-running counters
// (element, ready, valid, transfer, packet), cached so every profiled
// stream instantiates the same definition. Grounded on fletchgen::profiler
// (profiler.cc) and spec.md 4.7.
func ProfilerComponent() *ir.Component {
	if profilerComponent != nil {
		return profilerComponent
	}

	inCountWidth := ir.NewIntParameter("PROBE_COUNT_WIDTH", defaultProbeCountWidth)
	outCountWidth := ir.NewIntParameter("OUT_COUNT_WIDTH", profilerOutCountWidth)
	outCountType := ir.NewVector("out_count_type", outCountWidth)

	probe := ir.NewPort("probe", streamProbeType(inCountWidth), ir.In)
	enable := ir.NewPort("enable", ir.BitType(), ir.In)
	clear := ir.NewPort("clear", ir.BitType(), ir.In)
	ecount := ir.NewPort("ecount", outCountType, ir.Out)
	rcount := ir.NewPort("rcount", outCountType, ir.Out)
	vcount := ir.NewPort("vcount", outCountType, ir.Out)
	tcount := ir.NewPort("tcount", outCountType, ir.Out)
	pcount := ir.NewPort("pcount", outCountType, ir.Out)

	c := ir.NewComponent("ProfilerStreams")
	for _, obj := range []ir.Object{inCountWidth, outCountWidth, probe, enable, clear, ecount, rcount, vcount, tcount, pcount} {
		if err := c.Add(obj); err != nil {
			panic(err)
		}
	}
	c.SetMeta(ir.MetaPrimitive, "true")
	c.SetMeta(ir.MetaLibrary, "work")
	c.SetMeta(ir.MetaPackage, "Profile_pkg")

	profilerComponent = c
	return c
}

// streamProbeType builds the probe's own pre-expanded Stream<Record{valid,
// ready, count}> shape, so its flattening lines up leaf-for-leaf with a
// host stream that has already gone through ExpandStreams: [0] the Stream
// itself, [1] the Record itself, [2] valid, [3] ready, [4] count.
func streamProbeType(countWidth ir.Node) ir.Type {
	rec := ir.NewRecord("probe_rec")
	rec.AddField(ir.NewField("valid", ir.BitType(), false))
	rec.AddField(ir.NewField("ready", ir.BitType(), true))
	rec.AddField(ir.NewField("count", ir.NewVector("count", countWidth), false))
	return ir.NewStream("probe", rec, "count", 1)
}

// ProfilerCounters is the five status ports a single profiler instance
// exposes for one stream found inside a profiled node's type.
type ProfilerCounters struct {
	Instance *ir.Instance
	Element  *ir.Port
	Ready    *ir.Port
	Valid    *ir.Port
	Transfer *ir.Port
	Packet   *ir.Port
}

// EnableStreamProfiling instantiates one profiler per expanded stream found
// in the flattened type of each node in profileNodes (which must already
// have gone through ExpandStreams), connects its probe to the node and its
// enable/clear ports to the shared broadcast signals, installs an explicit
// TypeMapper pairing the stream/record/valid/ready/count leaves (the
// probe's shape never structurally equals the host's, so no mapper could
// be auto-generated), and returns every instantiated profiler's counters
// keyed by the node they profile. Grounded on
// fletchgen::EnableStreamProfiling (profiler.cc) and spec.md 4.7.
func EnableStreamProfiling(comp *ir.Component, profileNodes []ir.Node, enable, clear ir.Node) map[ir.Node][]*ProfilerCounters {
	result := map[ir.Node][]*ProfilerCounters{}
	probeComp := ProfilerComponent()

	for _, node := range profileNodes {
		flat := ir.Flatten(node.Type())
		s := 0
		for i := 0; i < len(flat); i++ {
			if flat[i].Type.Meta()[ir.MetaExpandTag] != "record" || i == 0 {
				continue
			}

			width := defaultProbeCountWidth
			countIdx := -1
			for j := i + 3; j < len(flat); j++ {
				if flat[j].Type.Meta()[ir.MetaExpandTag] == "record" {
					break
				}
				if w, ok := flat[j].Type.Meta()[ir.MetaCount]; ok {
					if parsed, err := strconv.Atoi(w); err == nil {
						width = parsed
					}
					countIdx = j
					break
				}
			}

			name := node.Name() + "_" + strconv.Itoa(s) + "_profiler"
			inst := comp.AddInstanceOf(probeComp, name)

			if pcw := inst.Parameter("PROBE_COUNT_WIDTH"); pcw != nil {
				pcw.SetValue(ir.NewIntLiteral(int64(width)))
			}

			probe := inst.Port("probe")

			// Installed before the connect below so Connect's own mapper
			// lookup (dst.Type().GetMapper(src.Type(), ...), dst == probe)
			// finds this explicit pairing via AddMapper's auto-installed
			// inverse instead of falling back to alignedStreamMapper's
			// positional guess, which has no way to know the host stream's
			// record boundaries.
			mapper := ir.NewTypeMapper(node.Type(), probe.Type())
			mapper.Add(i-1, 0)
			mapper.Add(i, 1)
			mapper.Add(i+1, 2)
			mapper.Add(i+2, 3)
			if countIdx >= 0 {
				mapper.Add(countIdx, 4)
			}
			node.Type().AddMapper(mapper, false)

			mustConnect(probe, node)
			mustConnect(inst.Port("enable"), enable)
			mustConnect(inst.Port("clear"), clear)

			result[node] = append(result[node], &ProfilerCounters{
				Instance: inst,
				Element:  inst.Port("ecount"),
				Ready:    inst.Port("rcount"),
				Valid:    inst.Port("vcount"),
				Transfer: inst.Port("tcount"),
				Packet:   inst.Port("pcount"),
			})
			s++
		}
	}
	return result
}
