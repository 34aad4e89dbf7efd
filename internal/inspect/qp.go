package inspect

// quantizerToQindex maps encoder QP values 0..63 to the base quantizer
// index breakpoints used by the rate control.
var quantizerToQindex = [64]int{
	0, 4, 8, 12, 16, 20, 24, 28, 32, 36, 40, 44, 48,
	52, 56, 60, 64, 68, 72, 76, 80, 84, 88, 92, 96, 100,
	104, 108, 112, 116, 120, 124, 128, 132, 136, 140, 144, 148, 152,
	156, 160, 164, 168, 172, 176, 180, 184, 188, 192, 196, 200, 204,
	208, 212, 216, 220, 224, 228, 232, 236, 240, 244, 249, 255,
}

const (
	maxQindex = 255
	maxQP     = len(quantizerToQindex) - 1
)

// qpFromQindex returns the QP whose breakpoint is nearest to the raw
// quantizer index, ties resolved toward the lower QP. Inputs outside
// [0,255] silently clamp to the ends of the QP scale.
func qpFromQindex(qindex int) int {
	if qindex > maxQindex {
		return maxQP
	}
	if qindex < 0 {
		return 0
	}

	qp := 0
	for _, index := range quantizerToQindex {
		if index == qindex {
			return qp
		}
		if index > qindex {
			// Equidistant inputs resolve to the lower QP.
			if (index - qindex) >= (qindex - quantizerToQindex[qp-1]) {
				return qp - 1
			}
			return qp
		}
		qp++
	}
	return maxQP
}
