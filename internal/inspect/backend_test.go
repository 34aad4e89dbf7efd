package inspect

import "errors"

// scriptBackend plays back a fixed script: each Decode call emits the next
// snapshot to the inspector and readies the next frame for NextFrame.
type scriptBackend struct {
	initErr   error
	decodeErr error

	inspector func(FrameSnapshot)
	snaps     []FrameSnapshot
	frames    []*Frame

	decoded int
	ready   []*Frame
}

func (b *scriptBackend) Init() error { return b.initErr }

func (b *scriptBackend) SetInspector(fn func(FrameSnapshot)) { b.inspector = fn }

func (b *scriptBackend) Decode(unit []byte) error {
	if b.decodeErr != nil {
		return b.decodeErr
	}
	if b.inspector != nil && b.decoded < len(b.snaps) {
		b.inspector(b.snaps[b.decoded])
	}
	if b.decoded < len(b.frames) {
		b.ready = append(b.ready, b.frames[b.decoded])
	}
	b.decoded++
	return nil
}

func (b *scriptBackend) NextFrame() (*Frame, bool) {
	if len(b.ready) == 0 {
		return nil, false
	}
	frame := b.ready[0]
	b.ready = b.ready[1:]
	return frame, true
}

func (b *scriptBackend) Close() error { return nil }

var errBackendBroken = errors.New("backend broken")

// uniformSnapshot builds a snapshot whose grid repeats one block shape.
func uniformSnapshot(frameType FrameType, baseQindex int, size BlockSize, blocks int) FrameSnapshot {
	grid := make([]BlockInfo, blocks)
	for i := range grid {
		grid[i] = BlockInfo{Size: size, Qindex: baseQindex}
	}
	return FrameSnapshot{
		FrameType:  frameType,
		BaseQindex: baseQindex,
		TileRows:   1,
		TileCols:   1,
		GridRows:   1,
		GridCols:   blocks,
		Grid:       grid,
	}
}

func newTestSession(t interface{ Fatalf(string, ...any) }, backend Backend, analysis bool) *Session {
	session, err := New(SessionOptions{
		Backend:        backend,
		EnableAnalysis: analysis,
	})
	if err != nil {
		t.Fatalf("session create failed: %v", err)
	}
	session.SetResolution(64, 64)
	return session
}
