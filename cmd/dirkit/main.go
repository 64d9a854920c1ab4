// Command dirkit creates, deletes and measures directory trees.
package main

import (
	"os"

	"github.com/nickalie/dirkit/internal/platform/cli"
)

func main() {
	if err := newRootCmd(cli.NewApp()).Execute(); err != nil {
		os.Exit(1)
	}
}
