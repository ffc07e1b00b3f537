package movement

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/movesim/oerror"
)

// recordingTransport records events sent to it. Flush blocks for its whole timeout.
type recordingTransport struct {
	mu      sync.Mutex
	events  []*sentry.Event
	flushes int
}

func (t *recordingTransport) Flush(timeout time.Duration) bool {
	t.mu.Lock()
	t.flushes++
	t.mu.Unlock()
	time.Sleep(timeout)
	return true
}

func (t *recordingTransport) Configure(sentry.ClientOptions) {}

func (t *recordingTransport) SendEvent(e *sentry.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, e)
}

func newRecordingHub(t *testing.T) (*sentry.Hub, *recordingTransport) {
	tr := &recordingTransport{}
	client, err := sentry.NewClient(sentry.ClientOptions{Transport: tr})
	if err != nil {
		t.Fatalf("sentry client: %v", err)
	}
	return sentry.NewHub(client, sentry.NewScope()), tr
}

func TestReportToHubDoesNotFlush(t *testing.T) {
	hub, tr := newRecordingHub(t)
	r := DiagnosticReport{
		ActorID:      3,
		Kind:         "minecraft:player",
		Class:        MoverSelf,
		Displacement: mgl64.Vec3{1, 0, 0},
		Cause:        oerror.New("move panicked: boom"),
	}

	start := time.Now()
	reportToHub(hub, r)
	if took := time.Since(start); took > 100*time.Millisecond {
		t.Fatalf("expected reporting not to block, took %v", took)
	}

	tr.mu.Lock()
	defer tr.mu.Unlock()
	if tr.flushes != 0 {
		t.Fatalf("expected no flush, got %d", tr.flushes)
	}
	if len(tr.events) != 1 {
		t.Fatalf("expected a single event, got %d", len(tr.events))
	}
	e := tr.events[0]
	if e.Tags["actor_kind"] != "minecraft:player" {
		t.Fatalf("expected the actor kind tag, got %v", e.Tags)
	}
	if e.Contexts["movement"]["actor"] != uint64(3) {
		t.Fatalf("expected the report fields in the event context, got %v", e.Contexts["movement"])
	}
}

func TestSkippedMoveReportsWithoutBlocking(t *testing.T) {
	hub, tr := newRecordingHub(t)
	w := newMockWorld()
	w.panics = true
	in := newTestIntegrator(w, nil)
	in.Report = func(r DiagnosticReport) {
		reportToHub(hub, r)
	}

	s := newGroundedState(1, mgl64.Vec3{0.5, 1, 0.5})
	start := time.Now()
	if res := in.Move(s, mgl64.Vec3{1, 0, 0}, MoverSelf); res.Outcome != OutcomeSkipped {
		t.Fatalf("expected the move to be skipped, got %v", res.Outcome)
	}
	if took := time.Since(start); took > 100*time.Millisecond {
		t.Fatalf("expected the skipped move not to block, took %v", took)
	}

	tr.mu.Lock()
	defer tr.mu.Unlock()
	if len(tr.events) != 1 || tr.flushes != 0 {
		t.Fatalf("expected one unflushed event, got %d events and %d flushes", len(tr.events), tr.flushes)
	}
	if msg := tr.events[0].Exception[0].Value; !strings.Contains(msg, "move panicked") {
		t.Fatalf("unexpected exception %q", msg)
	}
}
