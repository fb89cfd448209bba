// coverpost turns book covers into branded social-media posts.
package main

import (
	"os"

	"github.com/tinoreading/coverpost/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
