package inspect

// bitWriter builds bit-exact payloads for header parsing tests.
type bitWriter struct {
	data []byte
	bit  uint8
}

func (bw *bitWriter) writeBits(value uint64, n uint8) {
	for i := int(n) - 1; i >= 0; i-- {
		if bw.bit == 0 {
			bw.data = append(bw.data, 0)
		}
		if value>>uint(i)&1 == 1 {
			bw.data[len(bw.data)-1] |= 1 << (7 - bw.bit)
		}
		bw.bit = (bw.bit + 1) % 8
	}
}

func (bw *bitWriter) bytes() []byte { return bw.data }

func encodeLEB128(value uint64) []byte {
	var out []byte
	for {
		b := byte(value & 0x7F)
		value >>= 7
		if value != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if value == 0 {
			return out
		}
	}
}

// makeOBU frames a payload as one OBU with a size field.
func makeOBU(obuType int, payload []byte) []byte {
	header := byte(obuType<<3) | 0x02 // obu_has_size_field
	out := []byte{header}
	out = append(out, encodeLEB128(uint64(len(payload)))...)
	return append(out, payload...)
}

// makeSequenceHeader builds a reduced-still-picture sequence header OBU
// declaring the given geometry with 8-bit 4:2:0 color.
func makeSequenceHeader(width, height int) []byte {
	bw := &bitWriter{}
	bw.writeBits(0, 3) // seq_profile
	bw.writeBits(1, 1) // still_picture
	bw.writeBits(1, 1) // reduced_still_picture_header
	bw.writeBits(0, 5) // seq_level_idx
	bw.writeBits(15, 4)
	bw.writeBits(15, 4)
	bw.writeBits(uint64(width-1), 16)
	bw.writeBits(uint64(height-1), 16)
	bw.writeBits(1, 1) // use_128x128_superblock
	bw.writeBits(0, 1) // enable_filter_intra
	bw.writeBits(0, 1) // enable_intra_edge_filter
	bw.writeBits(0, 1) // enable_superres
	bw.writeBits(1, 1) // enable_cdef
	bw.writeBits(1, 1) // enable_restoration
	bw.writeBits(0, 1) // high_bitdepth
	bw.writeBits(0, 1) // mono_chrome
	bw.writeBits(0, 1) // color_description_present_flag
	bw.writeBits(0, 1) // color_range
	bw.writeBits(0, 2) // chroma_sample_position
	bw.writeBits(0, 1) // separate_uv_delta_q
	bw.writeBits(0, 1) // film_grain_params_present
	return makeOBU(obuSequenceHeader, bw.bytes())
}

// makeNonReducedSequenceHeader builds a full (non-reduced) sequence header
// OBU with one operating point and every optional feature disabled.
func makeNonReducedSequenceHeader(width, height int) []byte {
	bw := &bitWriter{}
	bw.writeBits(0, 3)  // seq_profile
	bw.writeBits(0, 1)  // still_picture
	bw.writeBits(0, 1)  // reduced_still_picture_header
	bw.writeBits(0, 1)  // timing_info_present_flag
	bw.writeBits(0, 1)  // initial_display_delay_present_flag
	bw.writeBits(0, 5)  // operating_points_cnt_minus_1
	bw.writeBits(0, 12) // operating_point_idc[0]
	bw.writeBits(0, 5)  // seq_level_idx[0]
	bw.writeBits(15, 4)
	bw.writeBits(15, 4)
	bw.writeBits(uint64(width-1), 16)
	bw.writeBits(uint64(height-1), 16)
	bw.writeBits(0, 1) // frame_id_numbers_present_flag
	bw.writeBits(1, 1) // use_128x128_superblock
	bw.writeBits(0, 1) // enable_filter_intra
	bw.writeBits(0, 1) // enable_intra_edge_filter
	bw.writeBits(0, 1) // enable_interintra_compound
	bw.writeBits(0, 1) // enable_masked_compound
	bw.writeBits(0, 1) // enable_warped_motion
	bw.writeBits(0, 1) // enable_dual_filter
	bw.writeBits(0, 1) // enable_order_hint
	bw.writeBits(1, 1) // seq_choose_screen_content_tools
	bw.writeBits(1, 1) // seq_choose_integer_mv
	bw.writeBits(0, 1) // enable_superres
	bw.writeBits(1, 1) // enable_cdef
	bw.writeBits(1, 1) // enable_restoration
	bw.writeBits(0, 1) // high_bitdepth
	bw.writeBits(0, 1) // mono_chrome
	bw.writeBits(0, 1) // color_description_present_flag
	bw.writeBits(0, 1) // color_range
	bw.writeBits(0, 2) // chroma_sample_position
	bw.writeBits(0, 1) // separate_uv_delta_q
	bw.writeBits(0, 1) // film_grain_params_present
	return makeOBU(obuSequenceHeader, bw.bytes())
}

// makeTemporalUnit assembles a delimiter, an optional sequence header and
// one frame OBU into a single compressed unit.
func makeTemporalUnit(withSeqHeader bool, width, height int) []byte {
	unit := makeOBU(obuTemporalDelimiter, nil)
	if withSeqHeader {
		unit = append(unit, makeSequenceHeader(width, height)...)
	}
	return append(unit, makeOBU(obuFrame, []byte{0x00, 0x11, 0x22, 0x33})...)
}
