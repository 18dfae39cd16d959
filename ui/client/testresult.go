package client

import "fmt"

func (u *UI) printUnknownResultType() {
	fmt.Fprintln(u.w, "done, unknown result type")
}
