package valueobjects

import (
	"regexp"
	"time"

	pkgerrors "pledgeboard-backend/pkg/errors"
)

// RawTimestamp is a timestamp as it arrives from the record store. Records
// were written by several generations of ingestion code, so the same field
// may hold a structured instant, a {seconds, nanoseconds} pair, an ISO-8601
// string, or a plain calendar-date string.
type RawTimestamp = interface{}

// EpochPair mirrors the {seconds, nanoseconds} stored form.
type EpochPair struct {
	Seconds     int64
	Nanoseconds int64
}

// Instant is the single internal point-in-time type. All raw timestamp
// representations normalize into it; downstream code never touches raw forms.
//
// The zero Instant is invalid and means "no usable date".
type Instant struct {
	t time.Time
}

// NewInstant wraps a time.Time as an Instant
func NewInstant(t time.Time) Instant {
	return Instant{t: t}
}

// Time returns the underlying time value
func (i Instant) Time() time.Time {
	return i.t
}

// IsZero reports whether the instant is unset
func (i Instant) IsZero() bool {
	return i.t.IsZero()
}

// Before reports whether i is strictly before other
func (i Instant) Before(other Instant) bool {
	return i.t.Before(other.t)
}

// After reports whether i is strictly after other
func (i Instant) After(other Instant) bool {
	return i.t.After(other.t)
}

// Equal reports whether i and other represent the same instant
func (i Instant) Equal(other Instant) bool {
	return i.t.Equal(other.t)
}

// CalendarDate returns the calendar date of the instant in the location it
// was constructed with. A date-only string normalizes to local midnight and a
// structured UTC instant keeps UTC, so both report the calendar date the
// publisher intended regardless of the viewer's offset from UTC.
func (i Instant) CalendarDate() (year int, month time.Month, day int) {
	return i.t.Date()
}

// String formats the instant as RFC3339
func (i Instant) String() string {
	return i.t.Format(time.RFC3339)
}

var dateOnlyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// generalLayouts are tried in order for strings that are neither plain
// calendar dates nor RFC3339.
var generalLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123,
	"January 2, 2006",
}

// Normalize converts any accepted raw timestamp representation into an
// Instant.
//
// Plain YYYY-MM-DD strings are parsed as local calendar-date components, not
// as UTC midnight. Parsing them as UTC would shift the visible date one day
// backward for every viewer west of Greenwich.
//
// Any input that cannot produce a valid instant returns a normalization
// error; callers must treat that as "no usable date", never as epoch zero.
func Normalize(raw RawTimestamp) (Instant, error) {
	switch v := raw.(type) {
	case nil:
		return Instant{}, pkgerrors.NewNormalizationError(raw)

	case Instant:
		if v.IsZero() {
			return Instant{}, pkgerrors.NewNormalizationError(raw)
		}
		return v, nil

	case time.Time:
		if v.IsZero() {
			return Instant{}, pkgerrors.NewNormalizationError(raw)
		}
		return Instant{t: v}, nil

	case *time.Time:
		if v == nil || v.IsZero() {
			return Instant{}, pkgerrors.NewNormalizationError(raw)
		}
		return Instant{t: *v}, nil

	case EpochPair:
		return fromEpochPair(v.Seconds, v.Nanoseconds)

	case map[string]interface{}:
		return fromPairMap(v)

	case string:
		return fromString(v)

	case float64:
		// Numeric store attributes decode as float64: epoch milliseconds.
		return fromEpochMillis(int64(v))

	case int64:
		return fromEpochMillis(v)

	default:
		return Instant{}, pkgerrors.NewNormalizationError(raw)
	}
}

// fromEpochPair applies the pair conversion: seconds*1000 plus whole
// milliseconds from the nanosecond component, floored so a negative
// component moves toward earlier time rather than toward zero.
func fromEpochPair(seconds, nanos int64) (Instant, error) {
	millis := nanos / 1e6
	if nanos%1e6 != 0 && nanos < 0 {
		millis--
	}
	return fromEpochMillis(seconds*1000 + millis)
}

// fromEpochMillis rejects zero on purpose. Upstream numeric date fields
// default to zero when absent, so a zero here means "no date recorded",
// not the 1970 epoch instant.
func fromEpochMillis(millis int64) (Instant, error) {
	if millis == 0 {
		return Instant{}, pkgerrors.NewNormalizationError(millis)
	}
	return Instant{t: time.UnixMilli(millis)}, nil
}

// fromPairMap handles pairs that arrive as generic maps. Both the bare and
// underscore-prefixed key spellings occur in stored records.
func fromPairMap(m map[string]interface{}) (Instant, error) {
	seconds, ok := pairField(m, "seconds", "_seconds")
	if !ok {
		return Instant{}, pkgerrors.NewNormalizationError(m)
	}
	nanos, _ := pairField(m, "nanoseconds", "_nanoseconds")
	return fromEpochPair(seconds, nanos)
}

func pairField(m map[string]interface{}, keys ...string) (int64, bool) {
	for _, key := range keys {
		switch n := m[key].(type) {
		case float64:
			return int64(n), true
		case int64:
			return n, true
		case int:
			return int64(n), true
		}
	}
	return 0, false
}

func fromString(s string) (Instant, error) {
	if s == "" {
		return Instant{}, pkgerrors.NewNormalizationError(s)
	}

	// Plain calendar dates become local midnight so the calendar date the
	// publisher wrote is the calendar date shown.
	if dateOnlyPattern.MatchString(s) {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return Instant{}, pkgerrors.NewNormalizationError(s).WithCause(err)
		}
		return Instant{t: t}, nil
	}

	for _, layout := range generalLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Instant{t: t}, nil
		}
	}

	return Instant{}, pkgerrors.NewNormalizationError(s)
}
