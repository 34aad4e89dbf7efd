package cli

import (
	"fmt"
	"io"

	"github.com/streamverify/av1inspect/internal/inspect"
)

var appVersion = "dev"

func SetVersion(version string) {
	if version != "" {
		appVersion = version
	}
}

func Version(stdout io.Writer) {
	fmt.Fprintf(stdout, "av1inspect, %s\n", inspect.FormatVersion(appVersion))
}
