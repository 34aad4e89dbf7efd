package inspect

import "fmt"

// BlockSize is the partition shape of a coding unit as reported by the
// decoder backend. The enumeration order matches the decoder's and is
// closed; values outside it never come from a conforming backend.
type BlockSize int

const (
	Block4x4 BlockSize = iota
	Block4x8
	Block8x4
	Block8x8
	Block8x16
	Block16x8
	Block16x16
	Block16x32
	Block32x16
	Block32x32
	Block32x64
	Block64x32
	Block64x64
	Block64x128
	Block128x64
	Block128x128
	Block4x16
	Block16x4
	Block8x32
	Block32x8
	Block16x64
	Block64x16
	blockSizesAll
)

// minBlockEdge maps a partition shape to its minimum block size class.
func minBlockEdge(size BlockSize) int {
	switch size {
	case Block4x4:
		return 4
	case Block4x8, Block8x4, Block8x8:
		return 8
	case Block8x16, Block16x8, Block16x16, Block4x16, Block16x4:
		return 16
	case Block16x32, Block32x16, Block32x32, Block8x32, Block32x8:
		return 32
	case Block32x64, Block64x32, Block64x64, Block16x64, Block64x16:
		return 64
	case Block64x128, Block128x64, Block128x128:
		return 128
	}
	panic(fmt.Sprintf("inspect: unknown block size code %d", size))
}

// isExtendedBlock reports whether the shape is a non-square partition.
func isExtendedBlock(size BlockSize) bool {
	switch size {
	case Block4x4, Block8x8, Block16x16, Block32x32, Block64x64, Block128x128:
		return false
	}
	return true
}
