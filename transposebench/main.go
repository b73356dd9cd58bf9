// Command transposebench compares a naive matrix transpose with a
// cache-blocked one sized from the L1 data cache.
package main

import (
	"github.com/sarchlab/transposebench/transposebench/cmd"
	"github.com/tebeka/atexit"
)

func main() {
	atexit.Exit(cmd.Execute())
}
