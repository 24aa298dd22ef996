// Package sysmetrics reports process resource usage — memory, CPU time and
// file descriptors — through gauges, polled from /proc on a fixed interval.
//
// The data source is the pull-style Provider interface; the default
// implementation reads the current process via the procfs library and
// signals absence on platforms without /proc, in which case the poller
// simply reports nothing.
package sysmetrics

import (
	"time"

	"github.com/prometheus/procfs"
)

// Snapshot is one observation of the current process's resource usage.
type Snapshot struct {
	// VirtualMemoryBytes is the size of the process's virtual memory.
	VirtualMemoryBytes int64

	// ResidentMemoryBytes is the size of the process's resident set.
	ResidentMemoryBytes int64

	// StartTimeSeconds is the process start time in seconds since the epoch.
	StartTimeSeconds float64

	// CPUSecondsTotal is the cumulative user plus system CPU time.
	CPUSecondsTotal float64

	// MaxFileDescriptors is the soft limit on open file descriptors.
	MaxFileDescriptors int64

	// OpenFileDescriptors is the current number of open file descriptors.
	OpenFileDescriptors int64
}

// Provider supplies resource-usage snapshots. Snapshot returns false when
// the data is unavailable on the current platform; the poller then skips
// the tick entirely rather than reporting zeros.
type Provider interface {
	Snapshot() (Snapshot, bool)
}

// procProvider reads the current process from /proc.
type procProvider struct{}

// Compile-time check that procProvider implements Provider.
var _ Provider = procProvider{}

// NewProcProvider returns a Provider backed by /proc for the current
// process.
func NewProcProvider() Provider {
	return procProvider{}
}

func (procProvider) Snapshot() (Snapshot, bool) {
	proc, err := procfs.Self()
	if err != nil {
		return Snapshot{}, false
	}
	stat, err := proc.Stat()
	if err != nil {
		return Snapshot{}, false
	}
	startTime, err := stat.StartTime()
	if err != nil {
		return Snapshot{}, false
	}
	limits, err := proc.Limits()
	if err != nil {
		return Snapshot{}, false
	}
	openFDs, err := proc.FileDescriptorsLen()
	if err != nil {
		return Snapshot{}, false
	}

	return Snapshot{
		VirtualMemoryBytes:  int64(stat.VirtualMemory()),
		ResidentMemoryBytes: int64(stat.ResidentMemory()),
		StartTimeSeconds:    startTime,
		CPUSecondsTotal:     stat.CPUTime(),
		MaxFileDescriptors:  int64(limits.OpenFiles),
		OpenFileDescriptors: int64(openFDs),
	}, true
}

// Labels names the gauges the poller reports. Prefix is prepended to every
// field name.
type Labels struct {
	Prefix              string
	VirtualMemoryBytes  string
	ResidentMemoryBytes string
	StartTimeSeconds    string
	CPUSecondsTotal     string
	MaxFileDescriptors  string
	OpenFileDescriptors string
}

// DefaultLabels returns the conventional process_ metric names.
func DefaultLabels() Labels {
	return Labels{
		Prefix:              "process_",
		VirtualMemoryBytes:  "virtual_memory_bytes",
		ResidentMemoryBytes: "resident_memory_bytes",
		StartTimeSeconds:    "start_time_seconds",
		CPUSecondsTotal:     "cpu_seconds_total",
		MaxFileDescriptors:  "max_fds",
		OpenFileDescriptors: "open_fds",
	}
}

func (l Labels) label(field string) string {
	return l.Prefix + field
}

// DefaultInterval is the polling interval used unless WithInterval is given.
const DefaultInterval = 15 * time.Second
