package veneer

import (
	"math"
	"sync"
	"testing"
)

func TestAccumulatingFloatCounterCarriesFraction(t *testing.T) {
	counter := &captureCounter{}
	a := newAccumulatingFloatCounter(counter)

	a.Increment(0.75)
	if got := counter.recorded(); len(got) != 0 {
		t.Fatalf("increments after 0.75 = %v, want none", got)
	}

	// 0.75 pending + 1.5 crosses the boundary: one increment of 2, with
	// exactly 0.25 left over.
	a.Increment(1.5)
	if got, want := counter.recorded(), []int64{2}; !equalInt64s(got, want) {
		t.Errorf("increments = %v, want %v", got, want)
	}
	if a.fraction != 0.25 {
		t.Errorf("remaining fraction = %v, want 0.25", a.fraction)
	}
}

func TestAccumulatingFloatCounterDropsIllegalValues(t *testing.T) {
	counter := &captureCounter{}
	a := newAccumulatingFloatCounter(counter)

	for _, by := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 0, -3.5} {
		a.Increment(by)
	}

	if got := counter.recorded(); len(got) != 0 {
		t.Errorf("increments = %v, want none", got)
	}
	if a.fraction != 0 {
		t.Errorf("fraction = %v, want 0", a.fraction)
	}
}

func TestAccumulatingFloatCounterClampsHugeIncrements(t *testing.T) {
	for _, by := range []float64{
		math.Ldexp(1, 63), // exactly 2^63
		math.Ldexp(1, 64),
		math.MaxFloat64,
	} {
		counter := &captureCounter{}
		a := newAccumulatingFloatCounter(counter)

		a.Increment(by)
		if got, want := counter.recorded(), []int64{math.MaxInt64}; !equalInt64s(got, want) {
			t.Errorf("Increment(%g): increments = %v, want %v", by, got, want)
		}
	}

	// Just below the boundary still splits normally.
	counter := &captureCounter{}
	a := newAccumulatingFloatCounter(counter)
	a.Increment(math.Ldexp(1, 62))
	if got, want := counter.recorded(), []int64{1 << 62}; !equalInt64s(got, want) {
		t.Errorf("Increment(2^62): increments = %v, want %v", got, want)
	}
}

func TestAccumulatingFloatCounterReset(t *testing.T) {
	counter := &captureCounter{}
	a := newAccumulatingFloatCounter(counter)

	a.Increment(0.6)
	a.Reset()
	a.Increment(0.6)

	if got := counter.recorded(); len(got) != 0 {
		t.Errorf("increments = %v, want none", got)
	}
	if counter.resets != 1 {
		t.Errorf("resets = %d, want 1", counter.resets)
	}
	if a.fraction != 0.6 {
		t.Errorf("fraction = %v, want 0.6", a.fraction)
	}
}

func TestAccumulatingFloatCounterConcurrent(t *testing.T) {
	counter := &captureCounter{}
	a := newAccumulatingFloatCounter(counter)

	const (
		goroutines = 8
		perG       = 250
	)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				a.Increment(0.5)
			}
		}()
	}
	wg.Wait()

	// 2000 halves sum to exactly 1000; 0.5 is exact in binary, so no
	// fraction may remain.
	if got, want := counter.total(), int64(goroutines*perG/2); got != want {
		t.Errorf("total = %d, want %d", got, want)
	}
	if a.fraction != 0 {
		t.Errorf("fraction = %v, want 0", a.fraction)
	}
}

func TestAccumulatingMeter(t *testing.T) {
	recorder := &captureRecorder{}
	m := newAccumulatingMeter(recorder)

	m.Set(3)
	m.Increment(1.5)
	m.Decrement(2)
	m.SetFloat(10)

	// Illegal amounts leave the value untouched.
	m.Increment(math.NaN())
	m.Decrement(-1)
	m.Increment(0)

	if got, want := recorder.recorded(), []float64{3, 4.5, 2.5, 10}; !equalFloat64s(got, want) {
		t.Errorf("recorded = %v, want %v", got, want)
	}
}
