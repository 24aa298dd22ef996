package logmetrics

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/veneerhq/veneer"
)

func TestCounterLogsIncrements(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	f := New(zap.New(core))

	handler, _ := f.MakeCounter("hits", []veneer.Dimension{veneer.Dim("route", "/x")})
	handler.Increment(2)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	if got := entries[0].Message; got != "increment" {
		t.Errorf("message = %q, want %q", got, "increment")
	}

	fields := entries[0].ContextMap()
	if got := fields["kind"]; got != "counter" {
		t.Errorf("kind = %v, want counter", got)
	}
	if got := fields["label"]; got != "hits" {
		t.Errorf("label = %v, want hits", got)
	}
	if got := fields["dim_route"]; got != "/x" {
		t.Errorf("dim_route = %v, want /x", got)
	}
	if got := fields["by"]; got != int64(2) {
		t.Errorf("by = %v, want 2", got)
	}
}

func TestRecorderKindReflectsAggregation(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	f := New(zap.New(core))

	recorder, _ := f.MakeRecorder("sample", nil, true)
	recorder.RecordFloat(1.5)
	gauge, _ := f.MakeRecorder("depth", nil, false)
	gauge.Record(4)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("log entries = %d, want 2", len(entries))
	}
	if got := entries[0].ContextMap()["kind"]; got != "recorder" {
		t.Errorf("aggregating kind = %v, want recorder", got)
	}
	if got := entries[1].ContextMap()["kind"]; got != "gauge" {
		t.Errorf("last-value kind = %v, want gauge", got)
	}
	if got := entries[1].ContextMap()["value"]; got != int64(4) {
		t.Errorf("value = %v, want 4", got)
	}
}

func TestTimerLogsDisplayUnit(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	f := New(zap.New(core))

	handler, _ := f.MakeTimer("latency", nil)
	p, ok := handler.(veneer.TimerHandlerWithDisplayUnit)
	if !ok {
		t.Fatal("timer does not accept display units")
	}
	p.PreferDisplayUnit(veneer.Milliseconds)
	handler.RecordNanoseconds(5_000_000)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if got := fields["nanoseconds"]; got != int64(5_000_000) {
		t.Errorf("nanoseconds = %v, want 5000000", got)
	}
	if got := fields["ms"]; got != float64(5) {
		t.Errorf("ms = %v, want 5", got)
	}
}

func TestDestroyLogsHandle(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	f := New(zap.New(core))

	_, handle := f.MakeCounter("hits", nil)
	f.DestroyCounter(handle)

	entries := logs.FilterMessage("counter destroyed").All()
	if len(entries) != 1 {
		t.Fatalf("destroy entries = %d, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["handle"]; got != uint64(handle) {
		t.Errorf("handle = %v, want %d", got, handle)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	f := New(nil)

	counter, handle := f.MakeCounter("hits", nil)
	counter.Increment(1)
	counter.Reset()
	f.DestroyCounter(handle)
}
