package server

import (
	"fmt"
)

// RawUI prints a table of live connections once per paint.
type RawUI struct{}

func InitRawUI() *RawUI {
	return &RawUI{}
}

func (u *RawUI) Paint(seconds uint64) {
	rows, _, _ := connRows(seconds)
	if len(rows) == 0 {
		return
	}
	fmt.Println("- - - - - - - - - - - - - - - - - - - - - - - - - - - - - -")
	u.printTestHeader()
	for _, r := range rows {
		u.printTestResults(r)
	}
}

func (u *RawUI) printTestHeader() {
	fmt.Println("-----------------------------------------------------------------------")
	u.printTestResults(resultHeader)
}

func (u *RawUI) printTestResults(results []string) {
	fmt.Printf("[%21s]  %10s  %10s  %8s  %8s\n", results[0], results[1], results[2], results[3], results[4])
}

func (u *RawUI) AddInfoMsg(msg string) {
	// do nothing
}

func (u *RawUI) AddErrorMsg(msg string) {
	// do nothing
}
