package veneer

// TimeUnit is a display hint for timer values: the unit a backend should
// render recorded durations in. It never affects the recorded nanosecond
// value itself.
//
// The zero value behaves as Nanoseconds.
type TimeUnit struct {
	name  string
	scale int64
}

// Predefined display units.
var (
	Nanoseconds  = TimeUnit{name: "ns", scale: 1}
	Microseconds = TimeUnit{name: "us", scale: 1_000}
	Milliseconds = TimeUnit{name: "ms", scale: 1_000_000}
	Seconds      = TimeUnit{name: "s", scale: 1_000_000_000}
	Minutes      = TimeUnit{name: "min", scale: 60_000_000_000}
	Hours        = TimeUnit{name: "h", scale: 3_600_000_000_000}
	Days         = TimeUnit{name: "d", scale: 86_400_000_000_000}
)

// ScaleFromNanoseconds returns the number of nanoseconds in one unit.
func (u TimeUnit) ScaleFromNanoseconds() int64 {
	if u.scale <= 0 {
		return 1
	}
	return u.scale
}

// String returns the unit's short name, e.g. "ms".
func (u TimeUnit) String() string {
	if u.name == "" {
		return "ns"
	}
	return u.name
}
