package inspect

const maxSniffBytes = 64

// DetectFormat sniffs the elementary-stream container from the head of
// the file.
func DetectFormat(header []byte) string {
	if len(header) == 0 {
		return "Unknown"
	}
	if len(header) >= ivfHeaderSize && string(header[0:4]) == ivfSignature {
		return "IVF"
	}
	if obu, _, ok := nextOBU(header); ok {
		switch obu.obuType {
		case obuTemporalDelimiter, obuSequenceHeader:
			return "AV1 OBU"
		}
	}
	return "Unknown"
}
