// Command securepassctl manages a SecurePass vault stored on the local
// filesystem.
package main

import (
	"os"

	"securepass/cmd/securepassctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
