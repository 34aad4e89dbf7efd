package inspect

type bitReader struct {
	data []byte
	pos  int
	bit  uint8
}

func newBitReader(data []byte) *bitReader {
	return &bitReader{data: data}
}

func (br *bitReader) readBitsValue(n uint8) uint64 {
	var value uint64
	for i := uint8(0); i < n; i++ {
		if br.pos >= len(br.data) {
			return ^uint64(0)
		}
		bit := (br.data[br.pos] >> (7 - br.bit)) & 1
		value = (value << 1) | uint64(bit)
		br.bit++
		if br.bit == 8 {
			br.bit = 0
			br.pos++
		}
	}
	return value
}

func (br *bitReader) readFlag() bool {
	return br.readBitsValue(1) == 1
}

// readLEB128 decodes an OBU size field from a byte-aligned position.
func readLEB128(data []byte) (value uint64, length int, ok bool) {
	for i := 0; i < 8; i++ {
		if i >= len(data) {
			return 0, 0, false
		}
		b := data[i]
		value |= uint64(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return value, i + 1, true
		}
	}
	return 0, 0, false
}
