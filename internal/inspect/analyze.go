package inspect

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

func AnalyzeFile(path string) (Report, error) {
	return AnalyzeFileWithOptions(path, defaultAnalyzeOptions())
}

func AnalyzeFileWithOptions(path string, opts AnalyzeOptions) (Report, error) {
	session, meta, err := analyzeStream(path, opts)
	if err != nil {
		return Report{}, err
	}
	defer session.Close()
	return buildReport(path, meta.format, meta.fileSize, meta.unitCount, session), nil
}

// AnalyzeSession runs a full analysis but hands back the live session so
// the caller can resolve further syntax elements. The caller owns Close.
func AnalyzeSession(path string, opts AnalyzeOptions) (*Session, error) {
	session, _, err := analyzeStream(path, opts)
	return session, err
}

type streamMeta struct {
	format    string
	fileSize  int64
	unitCount int
}

func analyzeStream(path string, opts AnalyzeOptions) (*Session, streamMeta, error) {
	opts = normalizeAnalyzeOptions(opts)

	stat, err := os.Stat(path)
	if err != nil {
		return nil, streamMeta{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, streamMeta{}, err
	}
	defer file.Close()

	header := make([]byte, maxSniffBytes)
	n, _ := io.ReadFull(file, header)
	header = header[:n]
	format := DetectFormat(header)
	if format == "Unknown" {
		return nil, streamMeta{}, fmt.Errorf("unrecognized elementary stream: %s", path)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, streamMeta{}, err
	}

	session, err := New(SessionOptions{
		Backend:        opts.Backend,
		HeaderParser:   NewObuHeaderParser(),
		EnableAnalysis: opts.EnableAnalysis,
		FrameInterval:  opts.FrameInterval,
		Logger:         opts.Logger,
		Metrics:        opts.Metrics,
	})
	if err != nil {
		return nil, streamMeta{}, err
	}

	unitCount, err := feedStream(session, file, format, opts)
	if err != nil {
		session.Close()
		return nil, streamMeta{}, err
	}
	return session, streamMeta{format: format, fileSize: stat.Size(), unitCount: unitCount}, nil
}

func feedStream(session *Session, file *os.File, format string, opts AnalyzeOptions) (int, error) {
	if opts.Width > 0 {
		session.SetResolution(opts.Width, opts.Height)
	}

	units := 0
	feed := func(unit []byte) error {
		if code := session.Decode(unit); code != CodeOK {
			return fmt.Errorf("decode unit %d: %s", units, code)
		}
		units++
		for {
			if _, code := session.NextFrame(); code != CodeOK {
				break
			}
		}
		return nil
	}

	switch format {
	case "IVF":
		reader, err := newIVFReader(file)
		if err != nil {
			return 0, err
		}
		if opts.Width == 0 && reader.header.Width > 0 {
			session.SetResolution(reader.header.Width, reader.header.Height)
		}
		for {
			unit, _, err := reader.NextUnit()
			if err == io.EOF {
				break
			}
			if err != nil {
				return units, err
			}
			if err := feed(unit); err != nil {
				return units, err
			}
		}
	case "AV1 OBU":
		data, err := io.ReadAll(file)
		if err != nil {
			return 0, err
		}
		for _, unit := range splitTemporalUnits(data) {
			if err := feed(unit); err != nil {
				return units, err
			}
		}
	default:
		return 0, fmt.Errorf("format not supported: %s", format)
	}
	return units, nil
}

// conformanceNames is the reporting order of resolver-derived metrics.
var conformanceNames = []string{
	"intra_period_length",
	"tile_columns",
	"tile_rows",
	"partition_depth",
	"ext_block_flag",
	"qp",
	"min_qp_allowed",
	"max_qp_allowed",
	"target_bit_rate",
	"burst_bit_per_frame",
}

// headerNames is the reporting order of header-declared elements shown in
// the video stream section.
var headerNames = []string{
	"seq_profile",
	"still_picture",
	"bit_depth",
	"mono_chrome",
	"enable_superres",
	"enable_cdef",
	"enable_restoration",
	"enable_order_hint",
	"film_grain_params_present",
}

func buildReport(path, format string, fileSize int64, unitCount int, session *Session) Report {
	general := Stream{Kind: StreamGeneral}
	general.Fields = append(general.Fields,
		Field{Name: "Complete name", Value: path},
		Field{Name: "Format", Value: format},
		Field{Name: "File size", Value: formatBytes(fileSize)},
		Field{Name: "Unit count", Value: strconv.Itoa(unitCount)},
		Field{Name: "Frame count", Value: strconv.Itoa(session.FrameCount())},
	)

	video := Stream{Kind: StreamVideo}
	width, height := session.VideoSize()
	if width > 0 {
		video.Fields = appendFieldNonEmpty(video.Fields, "Width", strconv.Itoa(width))
		video.Fields = appendFieldNonEmpty(video.Fields, "Height", strconv.Itoa(height))
	}
	for _, name := range headerNames {
		video.Fields = appendFieldNonEmpty(video.Fields, name, session.Resolve(name))
	}

	// Inspection-derived metrics are only meaningful once at least one
	// frame snapshot was accumulated; the rate metrics need only the
	// session counters.
	inspected := len(session.Params().FrameTypes) > 0
	conformance := Stream{Kind: StreamConformance}
	for _, name := range conformanceNames {
		switch name {
		case "target_bit_rate":
			if session.FrameCount() == 0 {
				continue
			}
		case "burst_bit_per_frame":
		default:
			if !inspected {
				continue
			}
		}
		conformance.Fields = appendFieldNonEmpty(conformance.Fields, name, session.Resolve(name))
	}

	streams := []Stream{video}
	if len(conformance.Fields) > 0 {
		streams = append(streams, conformance)
	}
	return Report{
		Ref:     path,
		General: general,
		Streams: streams,
	}
}

func AnalyzeFiles(paths []string) ([]Report, int, error) {
	return AnalyzeFilesWithOptions(paths, defaultAnalyzeOptions())
}

func AnalyzeFilesWithOptions(paths []string, opts AnalyzeOptions) ([]Report, int, error) {
	expanded, err := expandPaths(paths)
	if err != nil {
		return nil, 0, err
	}
	reports := make([]Report, 0, len(expanded))
	for _, path := range expanded {
		report, err := AnalyzeFileWithOptions(path, opts)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", path, err)
		}
		reports = append(reports, report)
	}
	return reports, len(reports), nil
}

func expandPaths(paths []string) ([]string, error) {
	expanded := make([]string, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			expanded = append(expanded, path)
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			names = append(names, entry.Name())
		}
		sort.Strings(names)
		for _, name := range names {
			expanded = append(expanded, filepath.Join(path, name))
		}
	}
	return expanded, nil
}
