package inspect

import (
	"fmt"
	"strconv"
)

// syntaxFuncs maps element names to their derivation over session state.
// Header-declared values take precedence; these run only as fallback.
var syntaxFuncs = map[string]func(*Session) string{
	"intra_period_length": func(s *Session) string {
		return strconv.Itoa(intraPeriodLength(s.params.FrameTypes))
	},
	"tile_columns": func(s *Session) string {
		return strconv.Itoa(s.params.TileCols)
	},
	"tile_rows": func(s *Session) string {
		return strconv.Itoa(s.params.TileRows)
	},
	"partition_depth": func(s *Session) string {
		depth, ok := partitionDepth(s.params.MinBlockSize)
		if !ok {
			return ""
		}
		return strconv.Itoa(depth)
	},
	"ext_block_flag": func(s *Session) string {
		return strconv.Itoa(s.params.ExtBlockFlag)
	},
	"qp": func(s *Session) string {
		return strconv.Itoa(qpFromQindex(s.params.MaxQindex))
	},
	"max_qp_allowed": func(s *Session) string {
		return strconv.Itoa(qpFromQindex(s.params.MaxQindex))
	},
	"min_qp_allowed": func(s *Session) string {
		return strconv.Itoa(qpFromQindex(s.params.MinQindex))
	},
	"target_bit_rate": func(s *Session) string {
		if s.frameCount == 0 {
			return ""
		}
		return strconv.FormatUint(s.totalBytes*8/uint64(s.frameCount), 10)
	},
	"burst_bit_per_frame": func(s *Session) string {
		return strconv.FormatUint(uint64(s.burstBytes)*8, 10)
	},
}

// syntaxIndexedFuncs maps element names with a per-frame index to their
// derivation. Out-of-range indexes are a caller contract violation.
var syntaxIndexedFuncs = map[string]func(*Session, int) string{
	"use_qp_file": func(s *Session, index int) string {
		return strconv.Itoa(qpFromQindex(s.params.qindexAt(index)))
	},
	"frame_type": func(s *Session, index int) string {
		if index >= len(s.params.FrameTypes) {
			panic(fmt.Sprintf("inspect: frame_type index %d out of range (%d frames)",
				index, len(s.params.FrameTypes)))
		}
		return s.params.FrameTypes[index].String()
	},
	"frame_min_qindex": func(s *Session, index int) string {
		return strconv.Itoa(s.params.blockRangeAt(index).Min)
	},
	"frame_max_qindex": func(s *Session, index int) string {
		return strconv.Itoa(s.params.blockRangeAt(index).Max)
	},
}

func (p *InspectParams) qindexAt(index int) int {
	if index >= len(p.QindexList) {
		panic(fmt.Sprintf("inspect: qindex index %d out of range (%d frames)",
			index, len(p.QindexList)))
	}
	return p.QindexList[index]
}

func (p *InspectParams) blockRangeAt(index int) QindexRange {
	if index >= len(p.BlockQindexRanges) {
		panic(fmt.Sprintf("inspect: frame qindex range index %d out of range (%d frames)",
			index, len(p.BlockQindexRanges)))
	}
	return p.BlockQindexRanges[index]
}

// Resolve answers a named syntax-element query. Values declared by the
// stream's headers win over values inferred from inspection. An unknown
// name yields an empty string and a diagnostic notice, never an error.
func (s *Session) Resolve(name string) string {
	if s.parser != nil {
		if value := s.parser.Lookup(name); value != "" {
			return value
		}
	}

	fn, ok := syntaxFuncs[name]
	if !ok {
		s.logger.Warn("syntax element not supported", "name", name)
		return ""
	}
	return fn(s)
}

// ResolveIndexed answers a named per-frame syntax-element query. Names
// without an indexed formula yield an empty string and a diagnostic
// notice; an out-of-range index on a known name panics, since the closed
// index space makes that a programming error rather than stream
// variability.
func (s *Session) ResolveIndexed(name string, index int) string {
	fn, ok := syntaxIndexedFuncs[name]
	if !ok {
		s.logger.Warn("indexed syntax element not supported", "name", name)
		return ""
	}
	return fn(s, index)
}

// SyntaxNames lists every element the resolver can derive itself, in no
// particular order.
func SyntaxNames() []string {
	names := make([]string, 0, len(syntaxFuncs))
	for name := range syntaxFuncs {
		names = append(names, name)
	}
	return names
}
