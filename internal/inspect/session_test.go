package inspect

import "testing"

func TestNewRequiresBackend(t *testing.T) {
	if _, err := New(SessionOptions{}); err == nil {
		t.Fatalf("expected error for missing backend")
	}
}

func TestNewFailsOnBackendInit(t *testing.T) {
	session, err := New(SessionOptions{Backend: &scriptBackend{initErr: errBackendBroken}})
	if err == nil {
		t.Fatalf("expected error for backend init failure")
	}
	if session != nil {
		t.Fatalf("expected nil session on init failure")
	}
}

func TestDecodeUpdatesCounters(t *testing.T) {
	session := newTestSession(t, &scriptBackend{}, false)

	if code := session.Decode(make([]byte, 500)); code != CodeOK {
		t.Fatalf("decode: got %s want ok", code)
	}
	if code := session.Decode(make([]byte, 1200)); code != CodeOK {
		t.Fatalf("decode: got %s want ok", code)
	}
	if code := session.Decode(make([]byte, 300)); code != CodeOK {
		t.Fatalf("decode: got %s want ok", code)
	}

	if got, want := session.TotalBytes(), uint64(2000); got != want {
		t.Fatalf("total bytes: got %d want %d", got, want)
	}
	if got, want := session.BurstBytes(), uint32(1200); got != want {
		t.Fatalf("burst bytes: got %d want %d", got, want)
	}
}

func TestDecodeMapsBackendErrors(t *testing.T) {
	session := newTestSession(t, &scriptBackend{
		decodeErr: &BackendError{Code: CodeCorruptFrame, Msg: "bad tile group"},
	}, false)

	if code := session.Decode(make([]byte, 100)); code != CodeCorruptFrame {
		t.Fatalf("decode error code: got %s want corrupt frame", code)
	}
	if session.TotalBytes() != 0 {
		t.Fatalf("failed unit counted into totals")
	}
}

func TestNextFrameNeedMoreInput(t *testing.T) {
	session := newTestSession(t, &scriptBackend{}, false)
	frame, code := session.NextFrame()
	if code != CodeNeedMoreInput {
		t.Fatalf("empty drain: got %s want need more input", code)
	}
	if frame != nil {
		t.Fatalf("expected nil frame with need-more-input")
	}
}

func TestNextFrameTimestampsAndCount(t *testing.T) {
	backend := &scriptBackend{
		frames: []*Frame{
			{Width: 320, Height: 240},
			{Width: 320, Height: 240},
			{Width: 320, Height: 240},
		},
	}
	session, err := New(SessionOptions{
		Backend:       backend,
		BaseTimestamp: 9000,
		FrameInterval: 40,
	})
	if err != nil {
		t.Fatalf("session create failed: %v", err)
	}

	want := []uint64{9000, 9040, 9080}
	for i := range want {
		if code := session.Decode(make([]byte, 10)); code != CodeOK {
			t.Fatalf("decode failed: %s", code)
		}
		frame, code := session.NextFrame()
		if code != CodeOK {
			t.Fatalf("drain %d: got %s want ok", i, code)
		}
		if frame.Timestamp != want[i] {
			t.Fatalf("timestamp %d: got %d want %d", i, frame.Timestamp, want[i])
		}
	}
	if got := session.FrameCount(); got != 3 {
		t.Fatalf("frame count: got %d want 3", got)
	}
	if width, height := session.VideoSize(); width != 320 || height != 240 {
		t.Fatalf("video size: got %dx%d want 320x240", width, height)
	}
}

func TestInspectionDroppedWithoutResolution(t *testing.T) {
	backend := &scriptBackend{
		snaps:  []FrameSnapshot{uniformSnapshot(KeyFrame, 100, Block64x64, 1)},
		frames: []*Frame{{Width: 64, Height: 64}},
	}
	session, err := New(SessionOptions{Backend: backend, EnableAnalysis: true})
	if err != nil {
		t.Fatalf("session create failed: %v", err)
	}
	// No SetResolution call: the snapshot has nowhere to go.
	session.Decode(make([]byte, 10))
	if got := len(session.Params().FrameTypes); got != 0 {
		t.Fatalf("snapshot accumulated without geometry: %d frames", got)
	}
}

func TestFrameClone(t *testing.T) {
	frame := &Frame{Width: 2, Height: 2, BitDepth: 8}
	frame.Planes[0] = []byte{1, 2, 3, 4}
	clone := frame.Clone()
	frame.Planes[0][0] = 99
	if clone.Planes[0][0] != 1 {
		t.Fatalf("clone shares plane storage with original")
	}
}
