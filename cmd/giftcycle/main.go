// Command giftcycle runs secret gift exchange draws.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/giftcycle/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil && !cli.IsReported(err) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
