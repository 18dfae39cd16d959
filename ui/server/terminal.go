package server

import (
	"fmt"
	"math"
	"os"
	"sync"

	tm "github.com/nsf/termbox-go"

	"weavelab.xyz/nettest/session"
	"weavelab.xyz/nettest/ui"
)

const (
	minTermW  = 80
	minTermH  = 40
	logPaneH  = 8
	statPaneW = 26
)

// pane is a titled region of the screen.
type pane struct {
	x, y, w int
	title   string
}

func (p pane) drawTitle() {
	titledRule(p.x, p.y-1, p.w, p.title)
}

// Tui is the full screen server view: live connections on the left,
// totals on the right, info and error messages along the bottom.
type Tui struct {
	title string
	w, h  int

	conns, stats, msgs, errs pane
	topSplitX, bottomSplitX  int

	connGrid grid
	msgGrid  grid
	errGrid  grid

	ringLock  sync.Mutex
	msgRing   []string
	errRing   []string
	closeOnce sync.Once
}

func InitTui(title string) (*Tui, error) {
	if err := tm.Init(); err != nil {
		return nil, err
	}

	w, h := tm.Size()
	if h < minTermH || w < minTermW {
		tm.Close()
		return nil, fmt.Errorf("terminal too small (%dwx%dh), must be at least %dhx%dw", w, h, minTermH, minTermW)
	}

	tm.SetInputMode(tm.InputEsc | tm.InputMouse)
	tm.Clear(tm.ColorDefault, tm.ColorDefault)
	tm.Sync()
	tm.Flush()
	tm.HideCursor()

	u := newTui(title, w, h)
	go u.pollKeys()
	return u, nil
}

func newTui(title string, w, h int) *Tui {
	bottomY := h - logPaneH + 1
	msgW := (w+1)/2 + 1
	u := &Tui{
		title:        title,
		w:            w,
		h:            h,
		conns:        pane{x: 0, y: 2, w: w - statPaneW, title: "Connections"},
		stats:        pane{x: w - statPaneW + 1, y: 2, w: statPaneW, title: "Statistics"},
		msgs:         pane{x: 0, y: bottomY, w: msgW, title: "Messages"},
		errs:         pane{x: msgW + 1, y: bottomY, w: w - msgW - 1, title: "Errors"},
		topSplitX:    w - statPaneW,
		bottomSplitX: msgW,
		msgRing:      make([]string, logPaneH-1),
		errRing:      make([]string, logPaneH-1),
	}
	u.connGrid = grid{widths: []int{21, 10, 10, 8, 8}, x: u.conns.x, y: u.conns.y, alignRight: true}
	u.msgGrid = grid{widths: []int{u.msgs.w}, x: u.msgs.x, y: u.msgs.y}
	u.errGrid = grid{widths: []int{u.errs.w}, x: u.errs.x, y: u.errs.y}
	return u
}

func (u *Tui) pollKeys() {
	for {
		switch ev := tm.PollEvent(); ev.Type {
		case tm.EventKey:
			if ev.Key == tm.KeyEsc || ev.Key == tm.KeyCtrlC {
				u.Close()
				os.Exit(0)
			}
		case tm.EventInterrupt:
			return
		}
	}
}

func (u *Tui) Close() {
	u.closeOnce.Do(func() {
		tm.Interrupt()
		tm.Close()
	})
}

func (u *Tui) Paint(seconds uint64) {
	tm.Clear(tm.ColorDefault, tm.ColorDefault)
	defer tm.Flush()

	centeredField(0, 0, u.w, u.title, tm.ColorBlack, tm.ColorWhite)
	for _, p := range []pane{u.conns, u.stats, u.msgs, u.errs} {
		p.drawTitle()
	}
	verticalRule(u.topSplitX, 1, u.h-logPaneH)
	verticalRule(u.bottomSplitX, u.h-logPaneH, logPaneH)

	u.ringLock.Lock()
	u.msgGrid.reset()
	for _, s := range u.msgRing {
		u.msgGrid.line([]string{s})
	}
	u.errGrid.reset()
	for _, s := range u.errRing {
		u.errGrid.line([]string{s})
	}
	u.ringLock.Unlock()

	rows, sumIn, sumOut := connRows(seconds)
	maxRows := u.h - logPaneH - u.conns.y - 2
	u.connGrid.reset()
	u.connGrid.top()
	u.connGrid.line(resultHeader)
	u.connGrid.divider()
	for i, r := range rows {
		if 2*i >= maxRows {
			break
		}
		u.connGrid.line(r)
		u.connGrid.divider()
	}

	x, y, w := u.stats.x, u.stats.y, u.stats.w
	textField(x, y, w, fmt.Sprintf("Conns: %d", len(session.GetConns())), tm.ColorWhite, tm.ColorBlack)
	textField(x, y+1, w, fmt.Sprintf("Rx %sbps", ui.BytesToRate(sumIn)), tm.ColorWhite, tm.ColorBlack)
	usageBar(x+14, y+1, 10, sumIn*8, tm.ColorGreen)
	textField(x, y+2, w, fmt.Sprintf("Tx %sbps", ui.BytesToRate(sumOut)), tm.ColorWhite, tm.ColorBlack)
	usageBar(x+14, y+2, 10, sumOut*8, tm.ColorYellow)
}

// usageBar draws one lit cell per decade of bits/s above 100 bit/s.
func usageBar(x, y, w int, bits uint64, clr tm.Attribute) {
	lit := 0
	if bits > 0 {
		lit = int(math.Log10(float64(bits))) - 2
	}
	lit = max(0, min(lit, w))
	for j := 0; j < w; j++ {
		attr, bg := clr, tm.ColorDefault
		if j < lit {
			attr, bg = clr|tm.AttrBold, clr
		}
		tm.SetCell(x+j, y, ui.Symbols[ui.SymbolBox3], attr, bg)
	}
}

func (u *Tui) AddInfoMsg(msg string) {
	u.addMsg(&u.msgRing, msg, u.msgs.w)
}

func (u *Tui) AddErrorMsg(msg string) {
	u.addMsg(&u.errRing, msg, u.errs.w)
}

// addMsg appends msg to ring, wrapping it at the pane width and dropping the
// oldest lines.
func (u *Tui) addMsg(ring *[]string, msg string, width int) {
	u.ringLock.Lock()
	defer u.ringLock.Unlock()
	r := *ring
	for len(msg) > 0 {
		line := msg
		if width > 0 && len(line) > width {
			line = msg[:width]
		}
		msg = msg[len(line):]
		r = append(r[1:], line)
	}
	*ring = r
}
