package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatSpeed(t *testing.T) {
	tests := []struct {
		bits float64
		want string
	}{
		{500, "500.000 bit/s"},
		{1024, "1024.000 bit/s"},
		{1500000, "1.431 Mbit/s"},
		{2048, "2.000 kbit/s"},
		{3 * 1024 * 1024 * 1024, "3.000 Gbit/s"},
		{5 * 1024 * 1024 * 1024 * 1024 * 1024, "5120.000 Tbit/s"},
		{0, "0.000 bit/s"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, FormatSpeed(tt.bits))
	}
}

func TestFormatMillis(t *testing.T) {
	require.Equal(t, "0.42 ms", FormatMillis(0.4249))
}

func TestDurationToString(t *testing.T) {
	require.Equal(t, "500.000ns", DurationToString(500))
	require.Equal(t, "1.500us", DurationToString(1500))
	require.Equal(t, "200.000ms", DurationToString(200*time.Millisecond))
	require.Equal(t, "2.000s", DurationToString(2*time.Second))
	require.Equal(t, "2m0s", DurationToString(2*time.Minute))
}

func TestUnitToNumber(t *testing.T) {
	require.EqualValues(t, 100*MEGA, UnitToNumber("100M"))
	require.EqualValues(t, 16*KILO, UnitToNumber("16kb"))
	require.EqualValues(t, 1500*MEGA, UnitToNumber("1.5G"))
	require.EqualValues(t, 42, UnitToNumber("42"))
	require.Zero(t, UnitToNumber("fast"))
	require.Zero(t, UnitToNumber("-3M"))
}

func TestNumberToUnit(t *testing.T) {
	require.Equal(t, "1.50M", NumberToUnit(1500000))
	require.Equal(t, "8K", NumberToUnit(8000))
	require.Equal(t, "80K", BytesToRate(10000))
}

func TestTruncateStringFromStart(t *testing.T) {
	require.Equal(t, "...168.1.100:5001", TruncateStringFromStart("192.168.1.100:5001", 17))
	require.Equal(t, "short", TruncateStringFromStart("short", 17))
}
