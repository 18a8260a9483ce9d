// ABOUTME: Entry point for the pool-sizer CLI
// ABOUTME: Command-line tool for sizing tenant storage pools

package main

import (
	"fmt"
	"os"

	"github.com/markalston/tenant-pool-sizer/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}
