package inspect

import "testing"

func TestMinBlockEdge(t *testing.T) {
	cases := []struct {
		size BlockSize
		want int
	}{
		{Block4x4, 4},
		{Block4x8, 8},
		{Block8x4, 8},
		{Block8x8, 8},
		{Block8x16, 16},
		{Block16x8, 16},
		{Block16x16, 16},
		{Block4x16, 16},
		{Block16x4, 16},
		{Block16x32, 32},
		{Block32x16, 32},
		{Block32x32, 32},
		{Block8x32, 32},
		{Block32x8, 32},
		{Block32x64, 64},
		{Block64x32, 64},
		{Block64x64, 64},
		{Block16x64, 64},
		{Block64x16, 64},
		{Block64x128, 128},
		{Block128x64, 128},
		{Block128x128, 128},
	}
	for _, tc := range cases {
		if got := minBlockEdge(tc.size); got != tc.want {
			t.Fatalf("size %d: got edge %d want %d", tc.size, got, tc.want)
		}
	}
}

func TestMinBlockEdgeUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown block size")
		}
	}()
	minBlockEdge(blockSizesAll)
}

func TestIsExtendedBlock(t *testing.T) {
	squares := []BlockSize{Block4x4, Block8x8, Block16x16, Block32x32, Block64x64, Block128x128}
	for _, size := range squares {
		if isExtendedBlock(size) {
			t.Fatalf("square size %d reported extended", size)
		}
	}
	rectangles := []BlockSize{
		Block4x8, Block8x4, Block8x16, Block16x8, Block16x32, Block32x16,
		Block32x64, Block64x32, Block64x128, Block128x64, Block4x16,
		Block16x4, Block8x32, Block32x8, Block16x64, Block64x16,
	}
	for _, size := range rectangles {
		if !isExtendedBlock(size) {
			t.Fatalf("rectangular size %d not reported extended", size)
		}
	}
}
