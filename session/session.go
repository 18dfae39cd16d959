package session

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Conn tracks one live server connection. Counters are updated by the
// connection's reader and writer goroutines and read by the UI and metrics.
type Conn struct {
	ID         uint64
	RemoteAddr string
	Opened     time.Time

	bytesIn     atomic.Uint64
	bytesOut    atomic.Uint64
	intervalIn  atomic.Uint64
	intervalOut atomic.Uint64
	pings       atomic.Uint64
	requests    atomic.Uint64
}

var (
	conns    = make(map[uint64]*Conn)
	connLock sync.RWMutex
	nextID   uint64
)

// Register adds a connection to the live table.
func Register(remoteAddr string) *Conn {
	connLock.Lock()
	defer connLock.Unlock()
	nextID++
	c := &Conn{
		ID:         nextID,
		RemoteAddr: remoteAddr,
		Opened:     time.Now(),
	}
	conns[c.ID] = c
	return c
}

func Unregister(c *Conn) {
	connLock.Lock()
	defer connLock.Unlock()
	delete(conns, c.ID)
}

// GetConns returns the live connections ordered by registration.
func GetConns() []*Conn {
	connLock.RLock()
	out := make([]*Conn, 0, len(conns))
	for _, c := range conns {
		out = append(out, c)
	}
	connLock.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

func (c *Conn) AddBytesIn(n uint64) {
	c.bytesIn.Add(n)
	c.intervalIn.Add(n)
}

func (c *Conn) AddBytesOut(n uint64) {
	c.bytesOut.Add(n)
	c.intervalOut.Add(n)
}

func (c *Conn) AddPing()    { c.pings.Add(1) }
func (c *Conn) AddRequest() { c.requests.Add(1) }

func (c *Conn) BytesIn() uint64  { return c.bytesIn.Load() }
func (c *Conn) BytesOut() uint64 { return c.bytesOut.Load() }
func (c *Conn) Pings() uint64    { return c.pings.Load() }
func (c *Conn) Requests() uint64 { return c.requests.Load() }

// SwapInterval returns the bytes moved since the previous call and resets
// the interval counters.
func (c *Conn) SwapInterval() (in, out uint64) {
	return c.intervalIn.Swap(0), c.intervalOut.Swap(0)
}
