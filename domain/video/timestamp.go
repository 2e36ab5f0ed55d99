package video

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Timestamp represents an offset into a video in milliseconds
type Timestamp int64

var (
	// clockRegex matches [HH:]MM:SS with optional .mmm fraction
	clockRegex = regexp.MustCompile(`^(?:(\d{1,3}):)?(\d{2}):(\d{2})(?:\.(\d{1,3}))?$`)

	// secondsRegex matches a plain (fractional) seconds value
	secondsRegex = regexp.MustCompile(`^(\d+)(?:\.(\d{1,3}))?s?$`)

	// millisRegex matches an explicit millisecond value like 1500ms
	millisRegex = regexp.MustCompile(`^(\d+)ms$`)
)

// ParseTimestamp parses a timestamp in HH:MM:SS[.mmm], MM:SS[.mmm], seconds or NNNms form
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)

	if m := millisRegex.FindStringSubmatch(s); m != nil {
		ms, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
		return Timestamp(ms), nil
	}

	if m := secondsRegex.FindStringSubmatch(s); m != nil {
		secs, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
		if secs > math.MaxInt64/1000-1 {
			return 0, fmt.Errorf("invalid timestamp %q: out of range", s)
		}
		return Timestamp(secs*1000 + fractionMillis(m[2])), nil
	}

	m := clockRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid timestamp format %q: expected HH:MM:SS[.mmm], seconds, or NNNms", s)
	}

	var hours int64
	if m[1] != "" {
		hours, _ = strconv.ParseInt(m[1], 10, 64)
	}
	minutes, _ := strconv.ParseInt(m[2], 10, 64)
	seconds, _ := strconv.ParseInt(m[3], 10, 64)

	if minutes > 59 {
		return 0, fmt.Errorf("invalid timestamp %q: minutes must be 0-59", s)
	}
	if seconds > 59 {
		return 0, fmt.Errorf("invalid timestamp %q: seconds must be 0-59", s)
	}

	total := ((hours*60+minutes)*60+seconds)*1000 + fractionMillis(m[4])
	return Timestamp(total), nil
}

// fractionMillis converts up to three fractional digits into milliseconds ("5" -> 500)
func fractionMillis(frac string) int64 {
	if frac == "" {
		return 0
	}
	for len(frac) < 3 {
		frac += "0"
	}
	ms, _ := strconv.ParseInt(frac, 10, 64)
	return ms
}

// FromSeconds converts fractional seconds to a Timestamp, truncating below a millisecond
func FromSeconds(seconds float64) Timestamp {
	return Timestamp(int64(seconds * 1000))
}

// String returns the timestamp in HH:MM:SS.mmm format
func (t Timestamp) String() string {
	ms := int64(t)
	sign := ""
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	hours := ms / 3_600_000
	minutes := (ms / 60_000) % 60
	seconds := (ms / 1000) % 60
	return fmt.Sprintf("%s%02d:%02d:%02d.%03d", sign, hours, minutes, seconds, ms%1000)
}

// Millis returns the timestamp as milliseconds
func (t Timestamp) Millis() int64 {
	return int64(t)
}

// Seconds returns the timestamp as fractional seconds
func (t Timestamp) Seconds() float64 {
	return float64(t) / 1000
}

// IsZero returns true if the timestamp is 00:00:00.000
func (t Timestamp) IsZero() bool {
	return t == 0
}

// Before returns true if t is before other
func (t Timestamp) Before(other Timestamp) bool {
	return t < other
}

// After returns true if t is after other
func (t Timestamp) After(other Timestamp) bool {
	return t > other
}

// FormatSeconds renders fractional seconds the way ffmpeg accepts them (10, 10.5, 0.25)
func FormatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}
