package cli

import (
	"fmt"
	"io"
)

func Help(program string, stdout io.Writer) {
	Version(stdout)
	fmt.Fprintf(stdout, "Usage: \"%s [-Options...] FileName1 [Filename2...]\"\n", program)
	fmt.Fprintln(stdout, "")
	fmt.Fprintln(stdout, "Options:")
	fmt.Fprintln(stdout, "--Help, -h")
	fmt.Fprintln(stdout, "                    Display this help and exit")
	fmt.Fprintln(stdout, "--Version")
	fmt.Fprintln(stdout, "                    Display version information and exit")
	fmt.Fprintln(stdout, "--Output=TEXT|JSON")
	fmt.Fprintln(stdout, "                    Select output format")
	fmt.Fprintln(stdout, "--Syntax=name[:index]")
	fmt.Fprintln(stdout, "                    Resolve a single syntax element instead of a full report;")
	fmt.Fprintln(stdout, "                    may be repeated")
	fmt.Fprintln(stdout, "--Resolution=WIDTHxHEIGHT")
	fmt.Fprintln(stdout, "                    Seed the inspection geometry for raw OBU streams that")
	fmt.Fprintln(stdout, "                    do not declare dimensions")
	fmt.Fprintln(stdout, "--No-Analysis")
	fmt.Fprintln(stdout, "                    Skip per-frame inspection; report container and header")
	fmt.Fprintln(stdout, "                    fields only")
	fmt.Fprintln(stdout, "--LogFile=...")
	fmt.Fprintln(stdout, "                    Save the output in the specified file")
}
