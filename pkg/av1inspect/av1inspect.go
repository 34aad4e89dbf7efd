package av1inspect

import (
	"github.com/streamverify/av1inspect/internal/inspect"
)

// Types
type StreamKind = inspect.StreamKind
type Field = inspect.Field
type Stream = inspect.Stream
type Report = inspect.Report
type AnalyzeOptions = inspect.AnalyzeOptions
type Session = inspect.Session
type SessionOptions = inspect.SessionOptions
type Backend = inspect.Backend
type HeaderParser = inspect.HeaderParser
type Frame = inspect.Frame
type FrameSnapshot = inspect.FrameSnapshot
type BlockInfo = inspect.BlockInfo
type BlockSize = inspect.BlockSize
type FrameType = inspect.FrameType
type Code = inspect.Code

// Constants
const (
	StreamGeneral     = inspect.StreamGeneral
	StreamVideo       = inspect.StreamVideo
	StreamConformance = inspect.StreamConformance

	CodeOK            = inspect.CodeOK
	CodeNeedMoreInput = inspect.CodeNeedMoreInput
)

// Functions
func New(opts SessionOptions) (*Session, error) {
	return inspect.New(opts)
}

func NewStatsBackend() Backend {
	return inspect.NewStatsBackend()
}

func NewObuHeaderParser() HeaderParser {
	return inspect.NewObuHeaderParser()
}

func AnalyzeFile(path string) (Report, error) {
	return inspect.AnalyzeFile(path)
}

func AnalyzeFileWithOptions(path string, opts AnalyzeOptions) (Report, error) {
	return inspect.AnalyzeFileWithOptions(path, opts)
}

func AnalyzeFilesWithOptions(paths []string, opts AnalyzeOptions) ([]Report, int, error) {
	return inspect.AnalyzeFilesWithOptions(paths, opts)
}

// Rendering
func RenderText(reports []Report) string {
	return inspect.RenderText(reports)
}

func RenderJSON(reports []Report) string {
	return inspect.RenderJSON(reports)
}
