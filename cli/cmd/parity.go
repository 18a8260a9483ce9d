// ABOUTME: Parity command for the pool-sizer CLI
// ABOUTME: Lists the erasure-code parity levels valid for a server layout

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/tenant-pool-sizer/backend/models"
	"github.com/markalston/tenant-pool-sizer/backend/services"
)

var parityOpts struct {
	nodes  int
	drives int
}

var parityCmd = &cobra.Command{
	Use:     "parity",
	Short:   "List parity levels for a server layout",
	Long:    `List the erasure-code parity levels available for a server and drive count, highest first.`,
	Example: `  pool-sizer parity --nodes 4 --drives 4`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runParity(ctx, os.Stdout, newSizer())
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	parityCmd.Flags().IntVar(&parityOpts.nodes, "nodes", services.MinNodes, "Number of servers")
	parityCmd.Flags().IntVar(&parityOpts.drives, "drives", 1, "Drives per server")
	rootCmd.AddCommand(parityCmd)
}

// runParity lists parity levels and returns exit code
func runParity(ctx context.Context, w io.Writer, s sizer) int {
	levels, err := s.ParityLevels(ctx, parityOpts.nodes, parityOpts.drives)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		return writeJSON(w, models.ParityResponse{
			Nodes:         parityOpts.nodes,
			DrivesPerNode: parityOpts.drives,
			ParityLevels:  levels,
		})
	}
	fmt.Fprintln(w, strings.Join(levels, "\n"))
	return exitOK
}
