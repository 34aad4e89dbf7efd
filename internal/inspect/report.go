package inspect

type StreamKind string

const (
	StreamGeneral     StreamKind = "General"
	StreamVideo       StreamKind = "Video"
	StreamConformance StreamKind = "Conformance"
)

type Field struct {
	Name  string
	Value string
}

type Stream struct {
	Kind   StreamKind
	Fields []Field
}

type Report struct {
	Ref     string
	General Stream
	Streams []Stream
}
