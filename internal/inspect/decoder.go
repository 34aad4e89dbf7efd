package inspect

// FrameType is the coded type of one frame as reported by the backend.
type FrameType int

const (
	KeyFrame FrameType = iota
	InterFrame
	IntraOnlyFrame
	SwitchFrame
)

func (t FrameType) String() string {
	switch t {
	case KeyFrame:
		return "KEY"
	case InterFrame:
		return "INTER"
	case IntraOnlyFrame:
		return "INTRA_ONLY"
	case SwitchFrame:
		return "S_FRAME"
	}
	return "UNKNOWN"
}

// BlockInfo is one block-grid unit of an inspection snapshot.
type BlockInfo struct {
	Size   BlockSize
	Qindex int
}

// FrameSnapshot is one frame's worth of per-block decode metadata exposed
// by the backend for analysis, distinct from the decoded pixel output.
type FrameSnapshot struct {
	FrameType  FrameType
	BaseQindex int
	TileRows   int
	TileCols   int
	GridRows   int
	GridCols   int
	Grid       []BlockInfo
}

// PixelFormat identifies the layout of a decoded frame's planes.
type PixelFormat int

const (
	FormatYV12 PixelFormat = iota
	FormatNV12
	FormatYV12CustomColorSpace
	FormatNV12CustomColorSpace
	Format422
	Format444
	Format444A
	Format420P10Packed
	Format422P10Packed
	Format444P10Packed
)

const maxPlanes = 4

// Frame describes one decoded picture. Plane data is owned by the backend
// and valid only until the next Decode or NextFrame call; callers needing
// it longer must Clone first.
type Frame struct {
	Format        PixelFormat
	Width         int
	Height        int
	DisplayWidth  int
	DisplayHeight int
	Stride        [maxPlanes]int
	Planes        [maxPlanes][]byte
	BitDepth      int
	Timestamp     uint64
}

// Clone copies the plane data so the frame survives the next decode cycle.
func (f *Frame) Clone() *Frame {
	out := *f
	for i, plane := range f.Planes {
		if plane == nil {
			continue
		}
		out.Planes[i] = append([]byte(nil), plane...)
	}
	return &out
}

// BackendError is a typed failure from the decoder backend.
type BackendError struct {
	Code Code
	Msg  string
}

func (e *BackendError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Code.String()
}

// Backend is the opaque decoder collaborator. Implementations decode
// compressed units, expose decoded pictures in display order, and invoke
// the registered inspector synchronously from within Decode, once per
// frame actually decoded.
type Backend interface {
	Init() error
	Decode(unit []byte) error
	NextFrame() (*Frame, bool)
	SetInspector(fn func(FrameSnapshot))
	Close() error
}
