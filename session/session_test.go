package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndCounters(t *testing.T) {
	a := Register("10.0.0.1:4000")
	b := Register("10.0.0.2:4000")
	defer Unregister(b)

	a.AddBytesIn(100)
	a.AddBytesIn(50)
	a.AddBytesOut(7)
	a.AddPing()
	a.AddRequest()
	a.AddRequest()

	require.EqualValues(t, 150, a.BytesIn())
	require.EqualValues(t, 7, a.BytesOut())
	require.EqualValues(t, 1, a.Pings())
	require.EqualValues(t, 2, a.Requests())

	in, out := a.SwapInterval()
	require.EqualValues(t, 150, in)
	require.EqualValues(t, 7, out)
	in, out = a.SwapInterval()
	require.Zero(t, in)
	require.Zero(t, out)
	require.EqualValues(t, 150, a.BytesIn())

	live := GetConns()
	require.Contains(t, live, a)
	require.Contains(t, live, b)
	for i := 1; i < len(live); i++ {
		require.Less(t, live[i-1].ID, live[i].ID)
	}

	Unregister(a)
	require.NotContains(t, GetConns(), a)
}
