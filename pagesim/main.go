// Command pagesim simulates page replacement policies.
package main

import (
	"github.com/tebeka/atexit"

	"github.com/sarchlab/pagesim/pagesim/cmd"
)

func main() {
	cmd.Execute()
	atexit.Exit(0)
}
