package inspect

import (
	"encoding/json"
	"strings"
	"testing"
)

func sampleReport() Report {
	return Report{
		Ref: "clip.ivf",
		General: Stream{Kind: StreamGeneral, Fields: []Field{
			{Name: "Complete name", Value: "clip.ivf"},
			{Name: "Format", Value: "IVF"},
		}},
		Streams: []Stream{
			{Kind: StreamVideo, Fields: []Field{
				{Name: "Width", Value: "64"},
				{Name: "Height", Value: "64"},
			}},
			{Kind: StreamConformance, Fields: []Field{
				{Name: "qp", Value: "25"},
			}},
		},
	}
}

func TestRenderText(t *testing.T) {
	out := RenderText([]Report{sampleReport()})

	for _, want := range []string{
		"General\n",
		"Video\n",
		"Conformance\n",
		"Format" + strings.Repeat(" ", 35) + ": IVF\n",
		"qp" + strings.Repeat(" ", 39) + ": 25\n",
		"ReportBy : " + AppName,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n\n") {
		t.Errorf("text output does not end with a blank line")
	}
}

func TestRenderTextSeparatesReports(t *testing.T) {
	out := RenderText([]Report{sampleReport(), sampleReport()})
	if got := strings.Count(out, "General\n"); got != 2 {
		t.Fatalf("general sections: got %d want 2", got)
	}
	if got := strings.Count(out, "ReportBy"); got != 2 {
		t.Fatalf("report trailers: got %d want 2", got)
	}
}

func TestRenderJSONSingle(t *testing.T) {
	out := RenderJSON([]Report{sampleReport()})

	var payload struct {
		CreatingLibrary struct {
			Name string `json:"name"`
		} `json:"creatingLibrary"`
		Media struct {
			Ref    string `json:"@ref"`
			Tracks []struct {
				Type   string            `json:"@type"`
				Fields map[string]string `json:"fields"`
			} `json:"track"`
		} `json:"media"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if payload.CreatingLibrary.Name != AppName {
		t.Fatalf("creating library: got %q", payload.CreatingLibrary.Name)
	}
	if payload.Media.Ref != "clip.ivf" {
		t.Fatalf("media ref: got %q", payload.Media.Ref)
	}
	if len(payload.Media.Tracks) != 3 {
		t.Fatalf("tracks: got %d want 3", len(payload.Media.Tracks))
	}
	if payload.Media.Tracks[0].Type != "General" {
		t.Fatalf("first track: got %q", payload.Media.Tracks[0].Type)
	}
	if payload.Media.Tracks[2].Fields["qp"] != "25" {
		t.Fatalf("conformance qp: got %q", payload.Media.Tracks[2].Fields["qp"])
	}
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.00 KiB"},
		{1536, "1.50 KiB"},
		{5 << 20, "5.00 MiB"},
		{3 << 30, "3.00 GiB"},
	}
	for _, tc := range cases {
		if got := formatBytes(tc.size); got != tc.want {
			t.Errorf("formatBytes(%d): got %q want %q", tc.size, got, tc.want)
		}
	}
}

func TestRenderJSONMultiple(t *testing.T) {
	out := RenderJSON([]Report{sampleReport(), sampleReport()})
	var payloads []json.RawMessage
	if err := json.Unmarshal([]byte(out), &payloads); err != nil {
		t.Fatalf("multi-report output is not a json array: %v", err)
	}
	if len(payloads) != 2 {
		t.Fatalf("payloads: got %d want 2", len(payloads))
	}
}
