package server

import (
	"context"
	"fmt"
	"time"
)

// TODO figure out a better way to interact with tui error/info panes
type ServerUI interface {
	Paint(uint64)
	AddInfoMsg(string)
	AddErrorMsg(string)
}

type UI struct {
	Terminal ServerUI
	isTui    bool
}

func NewUI(terminalUI bool, title string) *UI {
	var ui ServerUI
	var err error

	if terminalUI {
		ui, err = InitTui(title)
		if err != nil {
			fmt.Println("Error: Failed to initialize UI.", err)
			fmt.Println("Using command line view instead of UI")
		}
	}

	if ui == nil {
		terminalUI = false
		ui = InitRawUI()
	}

	return &UI{
		Terminal: ui,
		isTui:    terminalUI,
	}
}

func (u *UI) IsTui() bool {
	return u.isTui
}

func (u *UI) Display(ctx context.Context) {
	go func() {
		paintTicker := time.NewTicker(time.Second)
		defer paintTicker.Stop()
		start := time.Now()
		for {
			select {
			case <-ctx.Done():
				u.Close()
				return
			case <-paintTicker.C:
				seconds := uint64(time.Since(start).Seconds())
				if seconds < 1 {
					seconds = 1
				}
				u.Terminal.Paint(seconds)
				start = time.Now()
			}
		}
	}()
}

// Close restores the terminal if the text UI is in use.
func (u *UI) Close() {
	if t, ok := u.Terminal.(*Tui); ok {
		t.Close()
	}
}
