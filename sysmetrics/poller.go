package sysmetrics

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/veneerhq/veneer"
)

// Poller periodically snapshots a Provider and reports each field through a
// gauge. Gauges are created once at Start against the configured factory and
// destroyed at Stop.
type Poller struct {
	interval time.Duration
	provider Provider
	labels   Labels
	factory  veneer.Factory
	logger   *zap.Logger

	mu      sync.Mutex
	started bool
	stop    chan struct{}
	done    chan struct{}
	gauges  *gauges
}

// Option configures a Poller.
type Option interface {
	apply(*Poller)
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*Poller)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(p *Poller) { f(p) }

// WithInterval sets the polling interval. Default is DefaultInterval.
func WithInterval(d time.Duration) Option {
	return optionFunc(func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	})
}

// WithProvider sets the snapshot source. Default reads /proc for the
// current process.
func WithProvider(provider Provider) Option {
	return optionFunc(func(p *Poller) {
		if provider != nil {
			p.provider = provider
		}
	})
}

// WithLabels sets the gauge naming scheme. Default is DefaultLabels.
func WithLabels(labels Labels) Option {
	return optionFunc(func(p *Poller) {
		p.labels = labels
	})
}

// WithFactory creates the gauges against f instead of the bootstrapped
// global factory.
func WithFactory(f veneer.Factory) Option {
	return optionFunc(func(p *Poller) {
		p.factory = f
	})
}

// WithLogger sets the logger. If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	})
}

// New creates a poller with the given options. The poller does nothing
// until Start is called.
func New(opts ...Option) *Poller {
	p := &Poller{
		interval: DefaultInterval,
		provider: NewProcProvider(),
		labels:   DefaultLabels(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt.apply(p)
	}
	return p
}

// gauges holds one gauge per snapshot field.
type gauges struct {
	virtualMemory  *veneer.Gauge
	residentMemory *veneer.Gauge
	startTime      *veneer.Gauge
	cpuSeconds     *veneer.Gauge
	maxFDs         *veneer.Gauge
	openFDs        *veneer.Gauge
}

func newGauges(labels Labels, factory veneer.Factory) *gauges {
	var opts []veneer.Option
	if factory != nil {
		opts = append(opts, veneer.WithFactory(factory))
	}
	return &gauges{
		virtualMemory:  veneer.NewGauge(labels.label(labels.VirtualMemoryBytes), opts...),
		residentMemory: veneer.NewGauge(labels.label(labels.ResidentMemoryBytes), opts...),
		startTime:      veneer.NewGauge(labels.label(labels.StartTimeSeconds), opts...),
		cpuSeconds:     veneer.NewGauge(labels.label(labels.CPUSecondsTotal), opts...),
		maxFDs:         veneer.NewGauge(labels.label(labels.MaxFileDescriptors), opts...),
		openFDs:        veneer.NewGauge(labels.label(labels.OpenFileDescriptors), opts...),
	}
}

func (g *gauges) report(s Snapshot) {
	g.virtualMemory.Record(float64(s.VirtualMemoryBytes))
	g.residentMemory.Record(float64(s.ResidentMemoryBytes))
	g.startTime.Record(s.StartTimeSeconds)
	g.cpuSeconds.Record(s.CPUSecondsTotal)
	g.maxFDs.Record(float64(s.MaxFileDescriptors))
	g.openFDs.Record(float64(s.OpenFileDescriptors))
}

func (g *gauges) destroy() {
	g.virtualMemory.Destroy()
	g.residentMemory.Destroy()
	g.startTime.Destroy()
	g.cpuSeconds.Destroy()
	g.maxFDs.Destroy()
	g.openFDs.Destroy()
}

// Start creates the gauges and begins polling. Starting an already started
// poller is a no-op.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}
	p.started = true
	p.gauges = newGauges(p.labels, p.factory)
	p.stop = make(chan struct{})
	p.done = make(chan struct{})

	p.logger.Debug("poller started", zap.Duration("interval", p.interval))
	go p.run(p.gauges, p.stop, p.done)
}

// Stop halts polling, waits for the polling goroutine to exit and destroys
// the gauges. Stopping a poller that was never started is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	p.started = false

	close(p.stop)
	<-p.done
	p.gauges.destroy()
	p.gauges = nil

	p.logger.Debug("poller stopped")
}

func (p *Poller) run(g *gauges, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	// Report once immediately so short-lived processes still surface data.
	p.poll(g)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.poll(g)
		case <-stop:
			return
		}
	}
}

func (p *Poller) poll(g *gauges) {
	snapshot, ok := p.provider.Snapshot()
	if !ok {
		p.logger.Debug("resource usage unavailable on this platform")
		return
	}
	g.report(snapshot)
}
