package movement

import (
	"bytes"
	"fmt"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/getsentry/sentry-go"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/movesim/internal"
	"github.com/oomph-ac/movesim/oerror"
)

// maxReportBlocks limits the number of nearby blocks included in a report.
const maxReportBlocks = 64

// DiagnosticReport describes a move that failed internally.
type DiagnosticReport struct {
	ActorID      uint64
	Kind         string
	Class        MoverClass
	Position     mgl64.Vec3
	Velocity     mgl64.Vec3
	Displacement mgl64.Vec3
	NearbyBlocks []cube.Pos
	Cause        error
}

// Fields returns the fields of the report in a stable order.
func (r DiagnosticReport) Fields() *orderedmap.OrderedMap[string, any] {
	m := orderedmap.NewOrderedMap[string, any]()
	m.Set("actor", r.ActorID)
	m.Set("kind", r.Kind)
	m.Set("class", r.Class.String())
	m.Set("position", r.Position)
	m.Set("velocity", r.Velocity)
	m.Set("displacement", r.Displacement)
	m.Set("nearby_blocks", r.NearbyBlocks)
	m.Set("cause", r.Cause.Error())
	return m
}

func (r DiagnosticReport) String() string {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer internal.BufferPool.Put(buf)

	fields := r.Fields()
	for i, key := range fields.Keys() {
		if i > 0 {
			buf.WriteString(" ")
		}
		v, _ := fields.Get(key)
		fmt.Fprintf(buf, "%s=%v", key, v)
	}
	return buf.String()
}

// SentryReporter sends diagnostic reports to Sentry using a clone of the current hub. Events are queued on the
// client transport and never flushed here, so the caller is not blocked while they are delivered.
func SentryReporter(r DiagnosticReport) {
	reportToHub(sentry.CurrentHub().Clone(), r)
}

func reportToHub(hub *sentry.Hub, r DiagnosticReport) {
	hub.ConfigureScope(func(scope *sentry.Scope) {
		ctx := sentry.Context{}
		fields := r.Fields()
		for _, key := range fields.Keys() {
			ctx[key], _ = fields.Get(key)
		}
		scope.SetContext("movement", ctx)
		scope.SetTag("actor_kind", r.Kind)
	})
	hub.Recover(r.Cause)
}

// causeOf converts a recovered panic value into an internal error.
func causeOf(v any) error {
	if err, ok := v.(error); ok {
		return oerror.New("move panicked: %v", err)
	}
	return oerror.New("move panicked: %v", v)
}
