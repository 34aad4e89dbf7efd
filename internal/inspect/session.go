package inspect

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/streamverify/av1inspect/internal/metrics"
)

// Code is the typed result of a decode-session operation. The values
// mirror the decoder-native error space plus NeedMoreInput, which only
// NextFrame returns.
type Code int

const (
	CodeOK Code = iota
	CodeError
	CodeMemError
	CodeABIMismatch
	CodeIncapable
	CodeUnsupBitstream
	CodeUnsupFeature
	CodeCorruptFrame
	CodeInvalidParam
	CodeListEnd
	CodeNeedMoreInput Code = 100
)

func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeError:
		return "error"
	case CodeMemError:
		return "memory error"
	case CodeABIMismatch:
		return "abi mismatch"
	case CodeIncapable:
		return "incapable"
	case CodeUnsupBitstream:
		return "unsupported bitstream"
	case CodeUnsupFeature:
		return "unsupported feature"
	case CodeCorruptFrame:
		return "corrupt frame"
	case CodeInvalidParam:
		return "invalid parameter"
	case CodeListEnd:
		return "list end"
	case CodeNeedMoreInput:
		return "need more input"
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// SessionOptions configures a decode session.
type SessionOptions struct {
	// Backend is the decoder collaborator. Required.
	Backend Backend
	// HeaderParser receives every compressed unit as a side channel and
	// serves header-declared syntax elements. Optional; a nil parser
	// disables header lookup.
	HeaderParser HeaderParser
	// EnableAnalysis registers the inspection callback so per-frame
	// block statistics are accumulated.
	EnableAnalysis bool
	// BaseTimestamp and FrameInterval drive presentation timestamps of
	// drained frames. A zero interval defaults to 1.
	BaseTimestamp uint64
	FrameInterval uint32

	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// Session drives one decoder backend over one elementary stream and owns
// every running counter the derived conformance metrics are built from.
// One session is driven by one goroutine at a time; nothing in it locks.
type Session struct {
	backend  Backend
	parser   HeaderParser
	logger   *slog.Logger
	metrics  *metrics.Metrics
	analysis bool

	params        *InspectParams
	inspectWidth  int
	inspectHeight int
	inspectReady  bool

	frameCount    uint32
	totalBytes    uint64
	burstBytes    uint32
	baseTimestamp uint64
	frameInterval uint32

	videoWidth  int
	videoHeight int
	videoFormat PixelFormat
}

// New constructs a decode session. It returns an error and no session when
// the backend fails to initialize; construction never partially succeeds.
func New(opts SessionOptions) (*Session, error) {
	if opts.Backend == nil {
		return nil, errors.New("inspect: session requires a decoder backend")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := opts.FrameInterval
	if interval == 0 {
		interval = 1
	}

	s := &Session{
		backend:       opts.Backend,
		parser:        opts.HeaderParser,
		logger:        logger.With("component", "session"),
		metrics:       opts.Metrics,
		analysis:      opts.EnableAnalysis,
		params:        newInspectParams(),
		baseTimestamp: opts.BaseTimestamp,
		frameInterval: interval,
	}

	if err := s.backend.Init(); err != nil {
		s.logger.Error("decoder backend init failed", "err", err)
		return nil, fmt.Errorf("inspect: backend init: %w", err)
	}
	if s.analysis {
		s.backend.SetInspector(s.inspect)
	}
	if s.metrics != nil {
		s.metrics.SessionsCreated.Inc()
	}
	return s, nil
}

// SetResolution seeds the inspection-buffer geometry. It must be called
// before the first frame is decoded when analysis is enabled; once the
// buffer is sized it has no further effect.
func (s *Session) SetResolution(width, height int) {
	if s.inspectReady {
		return
	}
	s.inspectWidth = width
	s.inspectHeight = height
}

// Decode feeds one compressed unit to the backend. On success the
// cumulative byte count and peak burst size are updated. A non-OK code
// leaves the session's statistics unusable; the caller decides whether to
// keep feeding.
func (s *Session) Decode(unit []byte) Code {
	if s.parser != nil {
		s.parser.Feed(unit)
	}

	if err := s.backend.Decode(unit); err != nil {
		code := CodeError
		var berr *BackendError
		if errors.As(err, &berr) {
			code = berr.Code
		}
		s.logger.Error("decode failed", "code", code.String(), "err", err)
		if s.metrics != nil {
			s.metrics.DecodeErrors.WithLabelValues(code.String()).Inc()
		}
		return code
	}

	s.totalBytes += uint64(len(unit))
	if uint32(len(unit)) > s.burstBytes {
		s.burstBytes = uint32(len(unit))
		if s.metrics != nil {
			s.metrics.BurstBytes.Set(float64(s.burstBytes))
		}
	}
	if s.metrics != nil {
		s.metrics.UnitsDecoded.Inc()
		s.metrics.BytesDecoded.Add(float64(len(unit)))
	}
	return CodeOK
}

// NextFrame drains at most one decoded picture. It returns
// CodeNeedMoreInput when no picture is currently available so the caller
// can feed more units and retry. The returned frame's plane data is valid
// only until the next Decode or NextFrame call.
func (s *Session) NextFrame() (*Frame, Code) {
	frame, ok := s.backend.NextFrame()
	if !ok {
		return nil, CodeNeedMoreInput
	}

	frame.Timestamp = s.baseTimestamp + uint64(s.frameCount)*uint64(s.frameInterval)
	s.videoWidth = frame.Width
	s.videoHeight = frame.Height
	s.videoFormat = frame.Format
	if s.inspectWidth == 0 && frame.Width > 0 {
		s.inspectWidth = frame.Width
		s.inspectHeight = frame.Height
	}
	s.frameCount++
	if s.metrics != nil {
		s.metrics.FramesDrained.Inc()
	}
	return frame, CodeOK
}

// inspect is invoked synchronously by the backend from within Decode,
// once per decoded frame.
func (s *Session) inspect(snap FrameSnapshot) {
	if !s.inspectReady {
		if s.inspectWidth == 0 {
			s.logger.Warn("inspection snapshot before resolution is known; dropped")
			return
		}
		s.inspectReady = true
	}
	s.params.accumulate(snap)
}

// Params exposes the accumulated inspection state.
func (s *Session) Params() *InspectParams { return s.params }

// FrameCount is the number of pictures drained so far.
func (s *Session) FrameCount() int { return int(s.frameCount) }

// TotalBytes is the cumulative size of successfully decoded units.
func (s *Session) TotalBytes() uint64 { return s.totalBytes }

// BurstBytes is the largest single decoded unit.
func (s *Session) BurstBytes() uint32 { return s.burstBytes }

// VideoSize is the geometry of the most recently drained picture.
func (s *Session) VideoSize() (width, height int) {
	return s.videoWidth, s.videoHeight
}

// Close releases the backend and header-parser resources.
func (s *Session) Close() error {
	if s.parser != nil {
		s.parser.Close()
		s.parser = nil
	}
	return s.backend.Close()
}
