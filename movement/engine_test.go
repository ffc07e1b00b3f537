package movement

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/movesim/entity"
	"github.com/oomph-ac/movesim/worker"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
)

func TestRegionOf(t *testing.T) {
	cases := []struct {
		pos  mgl64.Vec3
		want protocol.ChunkPos
	}{
		{mgl64.Vec3{0.5, 64, 0.5}, protocol.ChunkPos{0, 0}},
		{mgl64.Vec3{63.9, 0, 64}, protocol.ChunkPos{0, 1}},
		{mgl64.Vec3{-0.5, 0, -64.5}, protocol.ChunkPos{-1, -2}},
	}
	for _, c := range cases {
		if got := RegionOf(c.pos); got != c.want {
			t.Fatalf("RegionOf(%v) = %v, want %v", c.pos, got, c.want)
		}
	}
}

func TestMoveAll(t *testing.T) {
	w := newMockWorld()
	in := newTestIntegrator(w, nil)
	pool := worker.New(2, nil)
	defer pool.Close()
	e := NewEngine(pool.Submit)

	positions := []mgl64.Vec3{{0.5, 10, 0.5}, {200.5, 10, 0.5}, {0.5, 10, 300.5}, {10.5, 10, 10.5}}
	var reqs []MoveRequest
	for i, pos := range positions {
		b := NewBody(in, NewState(uint64(i+1), entity.Player, pos), 1)
		reqs = append(reqs, MoveRequest{Body: b, Displacement: mgl64.Vec3{float64(i), -1, 0}})
	}
	// The same body twice in one batch is moved in order.
	reqs = append(reqs, MoveRequest{Body: reqs[0].Body, Displacement: mgl64.Vec3{0, -1, 0}})

	results := e.MoveAll(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	for i, pos := range positions {
		want := pos.Add(mgl64.Vec3{float64(i), -1, 0})
		if i == 0 {
			want = pos.Add(mgl64.Vec3{0, -2, 0})
			if results[i].Position != pos.Add(mgl64.Vec3{0, -1, 0}) {
				t.Fatalf("expected the first move of body 1 first, got %v", results[i].Position)
			}
			if results[len(results)-1].Position != want {
				t.Fatalf("expected the second move of body 1 last, got %v", results[len(results)-1].Position)
			}
			continue
		}
		if results[i].Position != want {
			t.Fatalf("result %d: expected %v, got %v", i, want, results[i].Position)
		}
	}
}

func TestMoveAllWithoutPool(t *testing.T) {
	in := newTestIntegrator(newMockWorld(), nil)
	e := NewEngine(nil)
	b := NewBody(in, NewState(1, entity.Player, mgl64.Vec3{}), 0)

	results := e.MoveAll([]MoveRequest{{Body: b, Displacement: mgl64.Vec3{1, 0, 0}}})
	if len(results) != 1 || results[0].Position != (mgl64.Vec3{1, 0, 0}) {
		t.Fatalf("unexpected results %+v", results)
	}
}
