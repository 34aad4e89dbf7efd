package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/streamverify/av1inspect/internal/inspect"
)

const (
	exitOK    = 0
	exitError = 1
)

type Options struct {
	Output     string
	LogFile    string
	Syntax     []SyntaxQuery
	Width      int
	Height     int
	NoAnalysis bool
}

// SyntaxQuery is one --syntax=name[:index] request.
type SyntaxQuery struct {
	Name     string
	Index    int
	HasIndex bool
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		return exitError
	}

	program := programName(args[0])
	opts := Options{}
	files := make([]string, 0)

	for i := 1; i < len(args); i++ {
		original := args[i]
		normalized := normalizeArg(original)

		switch {
		case normalized == "--help" || normalized == "-h":
			Help(program, stdout)
			return exitOK
		case normalized == "--version":
			Version(stdout)
			return exitOK
		case strings.HasPrefix(normalized, "--output="):
			if value, ok := valueAfterEqual(original); ok {
				opts.Output = value
			}
		case strings.HasPrefix(normalized, "--syntax="):
			value, ok := valueAfterEqual(original)
			if !ok {
				fmt.Fprintln(stderr, "missing value for --syntax")
				return exitError
			}
			query, err := parseSyntaxQuery(value)
			if err != nil {
				fmt.Fprintln(stderr, err.Error())
				return exitError
			}
			opts.Syntax = append(opts.Syntax, query)
		case strings.HasPrefix(normalized, "--resolution="):
			value, ok := valueAfterEqual(original)
			if !ok {
				fmt.Fprintln(stderr, "missing value for --resolution")
				return exitError
			}
			width, height, err := parseResolution(value)
			if err != nil {
				fmt.Fprintln(stderr, err.Error())
				return exitError
			}
			opts.Width, opts.Height = width, height
		case strings.HasPrefix(normalized, "--logfile="):
			if value, ok := valueAfterEqual(original); ok {
				opts.LogFile = value
			}
		case normalized == "--no-analysis":
			opts.NoAnalysis = true
		case strings.HasPrefix(normalized, "--"):
			if normalized == "--" {
				continue
			}
			fmt.Fprintf(stderr, "unknown option: %s\n", original)
			return exitError
		default:
			files = append(files, original)
		}
	}

	if len(files) == 0 {
		Help(program, stdout)
		return exitError
	}

	output, filesCount, err := runCore(opts, files)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return exitError
	}

	if output != "" {
		fmt.Fprintln(stdout, output)
	}

	if opts.LogFile != "" {
		if err := os.WriteFile(opts.LogFile, []byte(output), 0644); err != nil {
			fmt.Fprintln(stderr, err.Error())
			return exitError
		}
	}

	if filesCount > 0 {
		return exitOK
	}
	return exitError
}

func runCore(opts Options, files []string) (string, int, error) {
	if opts.Output != "" && !strings.EqualFold(opts.Output, "Text") && !strings.EqualFold(opts.Output, "JSON") {
		return "", 0, fmt.Errorf("output format not implemented: %s", opts.Output)
	}

	analyzeOpts := inspect.AnalyzeOptions{
		EnableAnalysis: !opts.NoAnalysis,
		Width:          opts.Width,
		Height:         opts.Height,
	}

	if len(opts.Syntax) > 0 {
		return resolveSyntax(opts, files, analyzeOpts)
	}

	reports, count, err := inspect.AnalyzeFilesWithOptions(files, analyzeOpts)
	if err != nil {
		return "", 0, err
	}

	if strings.EqualFold(opts.Output, "JSON") {
		return inspect.RenderJSON(reports), count, nil
	}
	return inspect.RenderText(reports), count, nil
}

func resolveSyntax(opts Options, files []string, analyzeOpts inspect.AnalyzeOptions) (string, int, error) {
	var builder strings.Builder
	for _, file := range files {
		session, err := inspect.AnalyzeSession(file, analyzeOpts)
		if err != nil {
			return "", 0, err
		}
		for _, query := range opts.Syntax {
			var value string
			if query.HasIndex {
				value = session.ResolveIndexed(query.Name, query.Index)
			} else {
				value = session.Resolve(query.Name)
			}
			fmt.Fprintf(&builder, "%s=%s\n", query.Name, value)
		}
		session.Close()
	}
	return strings.TrimRight(builder.String(), "\n"), len(files), nil
}

func parseSyntaxQuery(value string) (SyntaxQuery, error) {
	name, indexPart, hasIndex := strings.Cut(value, ":")
	if name == "" {
		return SyntaxQuery{}, fmt.Errorf("empty syntax element name")
	}
	query := SyntaxQuery{Name: name}
	if hasIndex {
		index, err := strconv.Atoi(indexPart)
		if err != nil || index < 0 {
			return SyntaxQuery{}, fmt.Errorf("bad syntax element index: %s", indexPart)
		}
		query.Index = index
		query.HasIndex = true
	}
	return query, nil
}

func parseResolution(value string) (int, int, error) {
	widthPart, heightPart, ok := strings.Cut(value, "x")
	if !ok {
		return 0, 0, fmt.Errorf("resolution must be WIDTHxHEIGHT: %s", value)
	}
	width, err := strconv.Atoi(widthPart)
	if err != nil || width <= 0 {
		return 0, 0, fmt.Errorf("bad resolution width: %s", widthPart)
	}
	height, err := strconv.Atoi(heightPart)
	if err != nil || height <= 0 {
		return 0, 0, fmt.Errorf("bad resolution height: %s", heightPart)
	}
	return width, height, nil
}

func programName(arg0 string) string {
	return filepath.Base(arg0)
}

func normalizeArg(arg string) string {
	eq := strings.IndexByte(arg, '=')
	if eq == -1 {
		eq = len(arg)
	}
	lower := strings.ToLower(arg[:eq])
	return lower + arg[eq:]
}

func valueAfterEqual(arg string) (string, bool) {
	eq := strings.IndexByte(arg, '=')
	if eq == -1 {
		return "", false
	}
	return arg[eq+1:], true
}
