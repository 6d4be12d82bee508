// Command togglectl runs page documents against the toggle runtime and
// prints what happened.
package main

import (
	"os"

	"github.com/go-drift/toggle/cmd/togglectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
