package inspect

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	ivfSignature    = "DKIF"
	ivfHeaderSize   = 32
	ivfFrameHdrSize = 12
)

// ivfHeader is the fixed 32-byte file header of the AV1 test container.
type ivfHeader struct {
	FourCC     string
	Width      int
	Height     int
	TimebaseN  uint32
	TimebaseD  uint32
	FrameCount uint32
}

func parseIVFHeader(data []byte) (ivfHeader, bool) {
	if len(data) < ivfHeaderSize || string(data[0:4]) != ivfSignature {
		return ivfHeader{}, false
	}
	return ivfHeader{
		FourCC:     string(data[8:12]),
		Width:      int(binary.LittleEndian.Uint16(data[12:14])),
		Height:     int(binary.LittleEndian.Uint16(data[14:16])),
		TimebaseD:  binary.LittleEndian.Uint32(data[16:20]),
		TimebaseN:  binary.LittleEndian.Uint32(data[20:24]),
		FrameCount: binary.LittleEndian.Uint32(data[24:28]),
	}, true
}

// ivfReader yields one compressed unit per stored frame.
type ivfReader struct {
	r      io.Reader
	header ivfHeader
}

func newIVFReader(r io.Reader) (*ivfReader, error) {
	head := make([]byte, ivfHeaderSize)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, fmt.Errorf("ivf header: %w", err)
	}
	header, ok := parseIVFHeader(head)
	if !ok {
		return nil, fmt.Errorf("not an ivf stream")
	}
	return &ivfReader{r: r, header: header}, nil
}

// NextUnit returns the next stored frame's payload and presentation
// timestamp. io.EOF signals a clean end of stream.
func (ir *ivfReader) NextUnit() ([]byte, uint64, error) {
	head := make([]byte, ivfFrameHdrSize)
	if _, err := io.ReadFull(ir.r, head); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, 0, io.EOF
		}
		return nil, 0, err
	}
	size := binary.LittleEndian.Uint32(head[0:4])
	timestamp := binary.LittleEndian.Uint64(head[4:12])
	unit := make([]byte, size)
	if _, err := io.ReadFull(ir.r, unit); err != nil {
		return nil, 0, fmt.Errorf("ivf frame payload: %w", err)
	}
	return unit, timestamp, nil
}

// splitTemporalUnits cuts a raw low-overhead OBU stream into temporal
// units at temporal-delimiter boundaries.
func splitTemporalUnits(data []byte) [][]byte {
	var units [][]byte
	start := 0
	offset := 0
	for offset < len(data) {
		obu, consumed, ok := nextOBU(data[offset:])
		if !ok {
			break
		}
		if obu.obuType == obuTemporalDelimiter && offset > start {
			units = append(units, data[start:offset])
			start = offset
		}
		offset += consumed
	}
	if offset > start {
		units = append(units, data[start:offset])
	}
	return units
}
