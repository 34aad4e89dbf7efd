package inspect

import "strconv"

// HeaderParser is the header-field collaborator. Feed is a best-effort
// side channel receiving every compressed unit; Lookup returns an empty
// string for names that are unknown or not yet parsed.
type HeaderParser interface {
	Feed(unit []byte)
	Lookup(name string) string
	Close()
}

// OBU types, from the bitstream's open bitstream unit framing.
const (
	obuSequenceHeader       = 1
	obuTemporalDelimiter    = 2
	obuFrameHeader          = 3
	obuTileGroup            = 4
	obuMetadata             = 5
	obuFrame                = 6
	obuRedundantFrameHeader = 7
	obuTileList             = 8
	obuPadding              = 15
)

type obuInfo struct {
	obuType int
	payload []byte
}

// nextOBU parses one OBU at the head of data. ok is false when the data
// is truncated or not plausible OBU framing.
func nextOBU(data []byte) (obu obuInfo, consumed int, ok bool) {
	if len(data) < 1 {
		return obuInfo{}, 0, false
	}
	header := data[0]
	if header&0x80 != 0 { // forbidden bit
		return obuInfo{}, 0, false
	}
	obu.obuType = int(header >> 3 & 0x0F)
	hasExtension := header&0x04 != 0
	hasSize := header&0x02 != 0

	offset := 1
	if hasExtension {
		if len(data) < 2 {
			return obuInfo{}, 0, false
		}
		offset = 2
	}

	if !hasSize {
		obu.payload = data[offset:]
		return obu, len(data), true
	}

	size, lebLen, sizeOK := readLEB128(data[offset:])
	if !sizeOK {
		return obuInfo{}, 0, false
	}
	offset += lebLen
	if uint64(len(data)-offset) < size {
		return obuInfo{}, 0, false
	}
	obu.payload = data[offset : offset+int(size)]
	return obu, offset + int(size), true
}

// ObuHeaderParser extracts named fields from the stream's sequence header.
// It parses at the OBU level only and never touches frame payload data.
type ObuHeaderParser struct {
	fields map[string]string
}

func NewObuHeaderParser() *ObuHeaderParser {
	return &ObuHeaderParser{fields: map[string]string{}}
}

func (p *ObuHeaderParser) Feed(unit []byte) {
	for len(unit) > 0 {
		obu, consumed, ok := nextOBU(unit)
		if !ok {
			return
		}
		if obu.obuType == obuSequenceHeader {
			p.parseSequenceHeader(obu.payload)
		}
		unit = unit[consumed:]
	}
}

func (p *ObuHeaderParser) Lookup(name string) string {
	return p.fields[name]
}

func (p *ObuHeaderParser) Close() {
	p.fields = nil
}

func (p *ObuHeaderParser) set(name string, value uint64) {
	p.fields[name] = strconv.FormatUint(value, 10)
}

func (p *ObuHeaderParser) parseSequenceHeader(data []byte) {
	br := newBitReader(data)

	seqProfile := br.readBitsValue(3)
	stillPicture := br.readBitsValue(1)
	reduced := br.readFlag()

	timingPresent := uint64(0)
	decoderModelPresent := false
	bufferDelayLength := 0
	if reduced {
		_ = br.readBitsValue(5) // seq_level_idx
	} else {
		if br.readFlag() {
			timingPresent = 1
			skipTimingInfo(br)
			if br.readFlag() {
				decoderModelPresent = true
				bufferDelayLength = int(br.readBitsValue(5)) + 1
				_ = br.readBitsValue(32) // num_units_in_decoding_tick
				_ = br.readBitsValue(5)  // buffer_removal_time_length_minus_1
				_ = br.readBitsValue(5)  // frame_presentation_time_length_minus_1
			}
		}
		displayDelayPresent := br.readFlag()
		opCount := int(br.readBitsValue(5)) + 1
		for i := 0; i < opCount; i++ {
			_ = br.readBitsValue(12) // operating_point_idc
			levelIdx := br.readBitsValue(5)
			if levelIdx > 7 {
				_ = br.readBitsValue(1) // seq_tier
			}
			if decoderModelPresent && br.readFlag() {
				_ = br.readBitsValue(uint8(bufferDelayLength)) // decoder_buffer_delay
				_ = br.readBitsValue(uint8(bufferDelayLength)) // encoder_buffer_delay
				_ = br.readBitsValue(1)                        // low_delay_mode_flag
			}
			if displayDelayPresent && br.readFlag() {
				_ = br.readBitsValue(4) // initial_display_delay_minus_1
			}
		}
	}

	widthBits := uint8(br.readBitsValue(4)) + 1
	heightBits := uint8(br.readBitsValue(4)) + 1
	maxWidth := br.readBitsValue(widthBits) + 1
	maxHeight := br.readBitsValue(heightBits) + 1

	if !reduced && br.readFlag() { // frame_id_numbers_present_flag
		_ = br.readBitsValue(4) // delta_frame_id_length_minus_2
		_ = br.readBitsValue(3) // additional_frame_id_length_minus_1
	}

	use128x128 := br.readBitsValue(1)
	_ = br.readBitsValue(1) // enable_filter_intra
	_ = br.readBitsValue(1) // enable_intra_edge_filter

	enableOrderHint := uint64(0)
	if !reduced {
		_ = br.readBitsValue(1) // enable_interintra_compound
		_ = br.readBitsValue(1) // enable_masked_compound
		_ = br.readBitsValue(1) // enable_warped_motion
		_ = br.readBitsValue(1) // enable_dual_filter
		if br.readFlag() {
			enableOrderHint = 1
			_ = br.readBitsValue(1) // enable_jnt_comp
			_ = br.readBitsValue(1) // enable_ref_frame_mvs
		}
		forceScreenContent := uint64(2) // SELECT_SCREEN_CONTENT_TOOLS
		if !br.readFlag() {             // seq_choose_screen_content_tools
			forceScreenContent = br.readBitsValue(1)
		}
		if forceScreenContent > 0 {
			if !br.readFlag() { // seq_choose_integer_mv
				_ = br.readBitsValue(1) // seq_force_integer_mv
			}
		}
		if enableOrderHint == 1 {
			_ = br.readBitsValue(3) // order_hint_bits_minus_1
		}
	}

	enableSuperres := br.readBitsValue(1)
	enableCdef := br.readBitsValue(1)
	enableRestoration := br.readBitsValue(1)

	bitDepth, monoChrome := parseColorConfig(br, seqProfile)

	filmGrain := br.readBitsValue(1)

	reducedVal := uint64(0)
	if reduced {
		reducedVal = 1
	}

	p.set("seq_profile", seqProfile)
	p.set("still_picture", stillPicture)
	p.set("reduced_still_picture_header", reducedVal)
	p.set("timing_info_present_flag", timingPresent)
	p.set("max_frame_width", maxWidth)
	p.set("max_frame_height", maxHeight)
	p.set("use_128x128_superblock", use128x128)
	p.set("enable_order_hint", enableOrderHint)
	p.set("enable_superres", enableSuperres)
	p.set("enable_cdef", enableCdef)
	p.set("enable_restoration", enableRestoration)
	p.set("bit_depth", bitDepth)
	p.set("mono_chrome", monoChrome)
	p.set("film_grain_params_present", filmGrain)
}

func skipTimingInfo(br *bitReader) {
	_ = br.readBitsValue(32) // num_units_in_display_tick
	_ = br.readBitsValue(32) // time_scale
	if br.readFlag() {       // equal_picture_interval
		readUVLC(br) // num_ticks_per_picture_minus_1
	}
}

func parseColorConfig(br *bitReader, seqProfile uint64) (bitDepth, monoChrome uint64) {
	highBitdepth := br.readFlag()
	switch {
	case seqProfile == 2 && highBitdepth:
		if br.readFlag() { // twelve_bit
			bitDepth = 12
		} else {
			bitDepth = 10
		}
	case highBitdepth:
		bitDepth = 10
	default:
		bitDepth = 8
	}

	if seqProfile != 1 {
		monoChrome = br.readBitsValue(1)
	}

	primaries, transfer, matrix := uint64(2), uint64(2), uint64(2) // unspecified
	if br.readFlag() {                                            // color_description_present_flag
		primaries = br.readBitsValue(8)
		transfer = br.readBitsValue(8)
		matrix = br.readBitsValue(8)
	}

	if monoChrome == 1 {
		_ = br.readBitsValue(1) // color_range
		return bitDepth, monoChrome
	}

	subsamplingX, subsamplingY := uint64(1), uint64(1)
	if primaries == 1 && transfer == 13 && matrix == 0 {
		// sRGB, 4:4:4, full range implied
		subsamplingX, subsamplingY = 0, 0
	} else {
		_ = br.readBitsValue(1) // color_range
		switch {
		case seqProfile == 0:
			subsamplingX, subsamplingY = 1, 1
		case seqProfile == 1:
			subsamplingX, subsamplingY = 0, 0
		default:
			if bitDepth == 12 {
				subsamplingX = br.readBitsValue(1)
				if subsamplingX == 1 {
					subsamplingY = br.readBitsValue(1)
				} else {
					subsamplingY = 0
				}
			} else {
				subsamplingX, subsamplingY = 1, 0
			}
		}
		if subsamplingX == 1 && subsamplingY == 1 {
			_ = br.readBitsValue(2) // chroma_sample_position
		}
	}
	_ = br.readBitsValue(1) // separate_uv_delta_q
	return bitDepth, monoChrome
}

func readUVLC(br *bitReader) uint64 {
	leadingZeros := 0
	for !br.readFlag() {
		leadingZeros++
		if leadingZeros >= 32 {
			return (1 << 32) - 1
		}
	}
	if leadingZeros == 0 {
		return 0
	}
	return br.readBitsValue(uint8(leadingZeros)) + (1 << leadingZeros) - 1
}
