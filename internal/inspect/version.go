package inspect

const (
	AppName = "av1inspect"
	AppURL  = "https://github.com/streamverify/av1inspect"
)

var AppVersion = "dev"

func SetAppVersion(version string) {
	if version != "" {
		AppVersion = version
	}
}

func FormatVersion(version string) string {
	if version == "" || version == "dev" {
		return "dev build"
	}
	return "v" + version
}
