package veneer

// noopFactory is the default backend before bootstrap: every handler it
// returns discards updates. A single shared instance backs every caller.
type noopFactory struct{}

var _ fullFactory = (*noopFactory)(nil)

var sharedNoopFactory = &noopFactory{}

// NewNoopFactory returns the shared factory whose handlers discard all
// updates. It is the registry default before bootstrap and a safe sentinel
// for tests.
func NewNoopFactory() Factory {
	return sharedNoopFactory
}

func (*noopFactory) MakeCounter(string, []Dimension) (CounterHandler, Handle) {
	return noopCounter{}, 0
}

func (*noopFactory) DestroyCounter(Handle) {}

func (*noopFactory) MakeFloatingPointCounter(string, []Dimension) (FloatingPointCounterHandler, Handle) {
	return noopFloatCounter{}, 0
}

func (*noopFactory) DestroyFloatingPointCounter(Handle) {}

func (*noopFactory) MakeRecorder(string, []Dimension, bool) (RecorderHandler, Handle) {
	return noopRecorder{}, 0
}

func (*noopFactory) DestroyRecorder(Handle) {}

func (*noopFactory) MakeMeter(string, []Dimension) (MeterHandler, Handle) {
	return noopMeter{}, 0
}

func (*noopFactory) DestroyMeter(Handle) {}

func (*noopFactory) MakeTimer(string, []Dimension) (TimerHandler, Handle) {
	return noopTimer{}, 0
}

func (*noopFactory) DestroyTimer(Handle) {}

type noopCounter struct{}

func (noopCounter) Increment(int64) {}
func (noopCounter) Reset()          {}

type noopFloatCounter struct{}

func (noopFloatCounter) Increment(float64) {}
func (noopFloatCounter) Reset()            {}

type noopRecorder struct{}

func (noopRecorder) Record(int64)        {}
func (noopRecorder) RecordFloat(float64) {}

type noopMeter struct{}

func (noopMeter) Set(int64)         {}
func (noopMeter) SetFloat(float64)  {}
func (noopMeter) Increment(float64) {}
func (noopMeter) Decrement(float64) {}

type noopTimer struct{}

func (noopTimer) RecordNanoseconds(int64)    {}
func (noopTimer) PreferDisplayUnit(TimeUnit) {}
