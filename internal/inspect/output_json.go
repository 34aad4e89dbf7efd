package inspect

import "encoding/json"

type jsonLibraryOut struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	URL     string `json:"url"`
}

type jsonStreamOut struct {
	Type   string            `json:"@type"`
	Fields map[string]string `json:"fields"`
}

type jsonMediaOut struct {
	Ref     string          `json:"@ref"`
	Streams []jsonStreamOut `json:"track"`
}

type jsonPayloadOut struct {
	CreatingLibrary jsonLibraryOut `json:"creatingLibrary"`
	Media           jsonMediaOut   `json:"media"`
}

func RenderJSON(reports []Report) string {
	if len(reports) == 1 {
		return marshalJSON(buildJSONPayload(reports[0]))
	}
	payloads := make([]jsonPayloadOut, 0, len(reports))
	for _, report := range reports {
		payloads = append(payloads, buildJSONPayload(report))
	}
	return marshalJSON(payloads)
}

func buildJSONPayload(report Report) jsonPayloadOut {
	streams := []jsonStreamOut{streamToJSON(report.General)}
	for _, stream := range report.Streams {
		streams = append(streams, streamToJSON(stream))
	}
	return jsonPayloadOut{
		CreatingLibrary: jsonLibraryOut{
			Name:    AppName,
			Version: FormatVersion(AppVersion),
			URL:     AppURL,
		},
		Media: jsonMediaOut{Ref: report.Ref, Streams: streams},
	}
}

func streamToJSON(stream Stream) jsonStreamOut {
	fields := make(map[string]string, len(stream.Fields))
	for _, field := range stream.Fields {
		fields[field.Name] = field.Value
	}
	return jsonStreamOut{Type: string(stream.Kind), Fields: fields}
}

func marshalJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(data) + "\n"
}
