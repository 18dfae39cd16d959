package ui

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Decimal multipliers used by rate flags and the server tables.
const (
	KILO = 1000
	MEGA = 1000 * KILO
	GIGA = 1000 * MEGA
	TERA = 1000 * GIGA
)

var speedUnits = []string{"bit/s", "kbit/s", "Mbit/s", "Gbit/s", "Tbit/s"}

// FormatSpeed renders a bit rate using binary steps of 1024, at most up to
// Tbit/s, with three decimals.
func FormatSpeed(bitsPerSecond float64) string {
	speed := bitsPerSecond
	idx := 0
	for speed > 1024 && idx < len(speedUnits)-1 {
		idx++
		speed /= 1024
	}
	return strconv.FormatFloat(speed, 'f', 3, 64) + " " + speedUnits[idx]
}

// FormatMillis renders a latency in milliseconds with two decimals.
func FormatMillis(ms float64) string {
	return strconv.FormatFloat(ms, 'f', 2, 64) + " ms"
}

var durationSteps = []struct {
	below time.Duration
	div   float64
	unit  string
}{
	{time.Microsecond, 1, "ns"},
	{time.Millisecond, float64(time.Microsecond), "us"},
	{time.Second, float64(time.Millisecond), "ms"},
	{time.Minute, float64(time.Second), "s"},
}

// DurationToString prints sub minute durations with three decimals in the
// largest unit below the value. Longer or negative values use
// time.Duration's own format.
func DurationToString(d time.Duration) string {
	if d >= 0 {
		for _, s := range durationSteps {
			if d < s.below {
				return strconv.FormatFloat(float64(d)/s.div, 'f', 3, 64) + s.unit
			}
		}
	}
	return d.String()
}

// TruncateStringFromStart keeps the last num bytes of str, marking the cut
// with "..." when there is room.
func TruncateStringFromStart(str string, num int) string {
	l := len(str)
	switch {
	case l <= num:
		return str
	case num > 3:
		return "..." + str[l-num+3:]
	default:
		return str[l-num:]
	}
}

var unitSteps = []struct {
	value  uint64
	suffix string
}{
	{TERA, "T"},
	{GIGA, "G"},
	{MEGA, "M"},
	{KILO, "K"},
}

// NumberToUnit shortens num with a decimal suffix, for example 1.50M.
func NumberToUnit(num uint64) string {
	value, suffix := float64(num), ""
	for _, s := range unitSteps {
		if num >= s.value {
			value, suffix = value/float64(s.value), s.suffix
			break
		}
	}
	return strings.TrimSuffix(strconv.FormatFloat(value, 'f', 2, 64), ".00") + suffix
}

// UnitToNumber parses sizes and rates such as "16KB", "100M" or "1.5g".
// Zero is returned for anything it cannot parse.
func UnitToNumber(s string) uint64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	numPart, suffix := s, ""
	if i := strings.IndexFunc(s, unicode.IsLetter); i >= 0 {
		numPart, suffix = s[:i], s[i:]
	}
	n, err := strconv.ParseFloat(numPart, 64)
	if err != nil || n <= 0 {
		return 0
	}

	var mult float64
	switch strings.TrimSuffix(strings.TrimSuffix(suffix, "B"), "I") {
	case "":
		mult = 1
	case "K":
		mult = KILO
	case "M":
		mult = MEGA
	case "G":
		mult = GIGA
	case "T":
		mult = TERA
	default:
		return 0
	}
	return uint64(n * mult)
}

// BytesToRate renders a per second byte count as bits.
func BytesToRate(bytes uint64) string {
	return NumberToUnit(bytes * 8)
}
