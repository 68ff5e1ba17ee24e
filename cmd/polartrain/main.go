// Command polartrain evaluates an optical train from the command line.
//
// It drives the same snap → membership → composition pipeline the editor
// runs on every drag release, so element layouts can be scripted and
// checked without the GUI.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
