package inspect

// QindexRange is the block-level quantizer index spread of one frame.
type QindexRange struct {
	Min int
	Max int
}

// InspectParams aggregates syntax-level observations over every inspected
// frame of a session. It is mutated incrementally per decoded frame and
// lives until the session ends.
type InspectParams struct {
	FrameTypes   []FrameType
	TileRows     int
	TileCols     int
	MinBlockSize int
	ExtBlockFlag int
	QindexList   []int
	MaxQindex    int
	MinQindex    int

	// Per-frame block-level qindex spread, one entry per inspected frame.
	BlockQindexRanges []QindexRange
}

func newInspectParams() *InspectParams {
	return &InspectParams{
		MinBlockSize: 128,
		MinQindex:    maxQindex,
	}
}

// accumulate folds one frame's inspection snapshot into the session
// aggregates. Tile geometry is overwritten, not accumulated; the extended
// block flag is sticky once set.
func (p *InspectParams) accumulate(snap FrameSnapshot) {
	p.TileCols = snap.TileCols
	p.TileRows = snap.TileRows

	p.FrameTypes = append(p.FrameTypes, snap.FrameType)

	frameRange := QindexRange{Min: maxQindex, Max: 0}
	count := snap.GridRows * snap.GridCols
	if count > len(snap.Grid) {
		count = len(snap.Grid)
	}
	for i := 0; i < count; i++ {
		if edge := minBlockEdge(snap.Grid[i].Size); edge < p.MinBlockSize {
			p.MinBlockSize = edge
		}
		if p.ExtBlockFlag == 0 && isExtendedBlock(snap.Grid[i].Size) {
			p.ExtBlockFlag = 1
		}
		if snap.Grid[i].Qindex > frameRange.Max {
			frameRange.Max = snap.Grid[i].Qindex
		}
		if snap.Grid[i].Qindex < frameRange.Min {
			frameRange.Min = snap.Grid[i].Qindex
		}
	}
	if count == 0 {
		// No block grid for this frame; the base qindex is the only
		// quantizer observation it carries.
		frameRange = QindexRange{Min: snap.BaseQindex, Max: snap.BaseQindex}
	}
	p.BlockQindexRanges = append(p.BlockQindexRanges, frameRange)

	p.QindexList = append(p.QindexList, snap.BaseQindex)
	if snap.BaseQindex > p.MaxQindex {
		p.MaxQindex = snap.BaseQindex
	}
	if snap.BaseQindex < p.MinQindex {
		p.MinQindex = snap.BaseQindex
	}
}

// intraPeriodLength is the longest run of consecutive non-intra frames
// between intra frames, or -1 if the stream never contained one.
func intraPeriodLength(types []FrameType) int {
	periodMax := 0
	period := 0
	for _, frameType := range types {
		switch frameType {
		case KeyFrame, IntraOnlyFrame:
			if period > periodMax {
				periodMax = period
			}
			period = 0
		case InterFrame, SwitchFrame:
			period++
		}
	}
	if periodMax == 0 {
		return -1
	}
	return periodMax
}

// partitionDepth is log2(128 / minBlockSize); empty when the minimum block
// size was never observed.
func partitionDepth(minBlockSize int) (int, bool) {
	if minBlockSize == 0 {
		return 0, false
	}
	depth := 0
	for size := 128 / minBlockSize; size > 1; size >>= 1 {
		depth++
	}
	return depth, true
}
