package inspect

import "strconv"

// StatsBackend is a header-level Backend: it frames temporal units,
// follows the sequence header, and emits one frame descriptor per shown
// frame without reconstructing pixels. It never produces inspection
// snapshots; those require a real decoder backend. Frames it emits carry
// nil plane data.
type StatsBackend struct {
	header  *ObuHeaderParser
	pending []*Frame
}

func NewStatsBackend() *StatsBackend {
	return &StatsBackend{header: NewObuHeaderParser()}
}

func (b *StatsBackend) Init() error { return nil }

func (b *StatsBackend) SetInspector(func(FrameSnapshot)) {
	// Inspection needs decoded block grids; nothing to register here.
}

func (b *StatsBackend) Decode(unit []byte) error {
	offset := 0
	for offset < len(unit) {
		obu, consumed, ok := nextOBU(unit[offset:])
		if !ok {
			return &BackendError{Code: CodeCorruptFrame, Msg: "malformed obu framing"}
		}
		switch obu.obuType {
		case obuSequenceHeader:
			b.header.Feed(unit[offset : offset+consumed])
		case obuFrame:
			b.pending = append(b.pending, b.describeFrame())
		case obuFrameHeader:
			if !b.showExistingFrame(obu.payload) {
				b.pending = append(b.pending, b.describeFrame())
			}
		}
		offset += consumed
	}
	return nil
}

func (b *StatsBackend) NextFrame() (*Frame, bool) {
	if len(b.pending) == 0 {
		return nil, false
	}
	frame := b.pending[0]
	b.pending = b.pending[1:]
	return frame, true
}

func (b *StatsBackend) Close() error {
	b.header.Close()
	b.pending = nil
	return nil
}

// showExistingFrame reads the leading show_existing_frame bit of a frame
// header. The field is only coded when the sequence header is not in
// reduced still-picture form; otherwise the first bit belongs to later
// syntax and every frame header starts a new frame.
func (b *StatsBackend) showExistingFrame(payload []byte) bool {
	if len(payload) == 0 {
		return false
	}
	if b.headerValue("reduced_still_picture_header") == 1 {
		return false
	}
	return payload[0]&0x80 != 0
}

func (b *StatsBackend) describeFrame() *Frame {
	width := b.headerValue("max_frame_width")
	height := b.headerValue("max_frame_height")
	bitDepth := b.headerValue("bit_depth")
	if bitDepth == 0 {
		bitDepth = 8
	}
	format := FormatNV12
	if bitDepth > 8 {
		format = Format420P10Packed
	}
	return &Frame{
		Format:        format,
		Width:         width,
		Height:        height,
		DisplayWidth:  width,
		DisplayHeight: height,
		BitDepth:      bitDepth,
	}
}

func (b *StatsBackend) headerValue(name string) int {
	value, err := strconv.Atoi(b.header.Lookup(name))
	if err != nil {
		return 0
	}
	return value
}
