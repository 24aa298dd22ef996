package veneer

import "testing"

func TestNoopFactoryShared(t *testing.T) {
	if NewNoopFactory() != NewNoopFactory() {
		t.Error("NewNoopFactory returned distinct instances")
	}
}

func TestNoopFactoryDiscardsEverything(t *testing.T) {
	f, ok := NewNoopFactory().(fullFactory)
	if !ok {
		t.Fatal("no-op factory does not cover the derived kinds")
	}

	counter, h1 := f.MakeCounter("a", nil)
	counter.Increment(1)
	counter.Reset()

	fp, h2 := f.MakeFloatingPointCounter("b", nil)
	fp.Increment(1.5)
	fp.Reset()

	recorder, h3 := f.MakeRecorder("c", nil, true)
	recorder.Record(1)
	recorder.RecordFloat(2.5)

	meter, h4 := f.MakeMeter("d", nil)
	meter.Set(1)
	meter.SetFloat(2)
	meter.Increment(1)
	meter.Decrement(1)

	timer, h5 := f.MakeTimer("e", nil)
	timer.RecordNanoseconds(1)

	for i, h := range []Handle{h1, h2, h3, h4, h5} {
		if h != 0 {
			t.Errorf("handle %d = %d, want 0", i, h)
		}
	}

	f.DestroyCounter(h1)
	f.DestroyFloatingPointCounter(h2)
	f.DestroyRecorder(h3)
	f.DestroyMeter(h4)
	f.DestroyTimer(h5)
}

func TestMetricsBeforeBootstrapAreNoops(t *testing.T) {
	r := NewRegistry()

	counter := NewCounter("early", WithRegistry(r))
	counter.Inc()

	// Bootstrapping afterwards does not rebind the existing metric.
	f := &captureFactory{}
	r.Bootstrap(f)
	counter.Inc()

	if got := f.counterMakes(); got != 0 {
		t.Errorf("counter makes after late bootstrap = %d, want 0", got)
	}
}
