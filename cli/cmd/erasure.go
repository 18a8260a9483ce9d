// ABOUTME: Erasure command for the pool-sizer CLI
// ABOUTME: Prints the usable capacity table for each parity level

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/tenant-pool-sizer/backend/models"
	"github.com/markalston/tenant-pool-sizer/backend/services"
	"github.com/markalston/tenant-pool-sizer/cli/internal/tui/styles"
)

var erasureOpts struct {
	nodes        int
	drives       int
	pvSize       string
	parityLevels []string
}

var erasureCmd = &cobra.Command{
	Use:   "erasure",
	Short: "Show usable capacity per parity level",
	Long: `Show the storage factor, usable capacity and drive failure tolerance of
each parity level for a layout. Parity levels default to those valid for
the server and drive count.`,
	Example: `  pool-sizer erasure --nodes 4 --drives 4 --pv-size 468Gi
  pool-sizer erasure --nodes 4 --drives 4 --pv-size 1Ti --parity-levels EC:4,EC:2`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runErasure(ctx, os.Stdout, newSizer())
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	erasureCmd.Flags().IntVar(&erasureOpts.nodes, "nodes", services.MinNodes, "Number of servers")
	erasureCmd.Flags().IntVar(&erasureOpts.drives, "drives", 1, "Drives (volumes) per server")
	erasureCmd.Flags().StringVar(&erasureOpts.pvSize, "pv-size", "", "Size of each volume, e.g. 468Gi")
	erasureCmd.Flags().StringSliceVar(&erasureOpts.parityLevels, "parity-levels", nil, "Parity levels, highest first (default: catalog for the layout)")
	rootCmd.AddCommand(erasureCmd)
}

// runErasure computes the erasure-code table and returns exit code
func runErasure(ctx context.Context, w io.Writer, s sizer) int {
	pvSize, err := quantityBytes(erasureOpts.pvSize)
	if err != nil {
		return fail(w, err)
	}

	levels := erasureOpts.parityLevels
	if len(levels) == 0 {
		if levels, err = s.ParityLevels(ctx, erasureOpts.nodes, erasureOpts.drives); err != nil {
			return fail(w, err)
		}
	}

	resp, err := s.ErasureCode(ctx, models.ErasureCodeRequest{
		ParityLevels: levels,
		TotalDisks:   erasureOpts.nodes * erasureOpts.drives,
		PVSize:       pvSize,
		TotalNodes:   erasureOpts.nodes,
	})
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		return writeJSON(w, resp)
	}
	fmt.Fprintln(w, formatErasureHuman(resp, resp.DefaultEC))
	return exitOK
}

// formatErasureHuman renders the table with the selected level highlighted
func formatErasureHuman(resp models.ErasureCodeResponse, selected string) string {
	highlight := -1
	rows := make([][]string, 0, len(resp.StorageFactors))
	for i, f := range resp.StorageFactors {
		if f.ErasureCode == selected {
			highlight = i
		}
		rows = append(rows, []string{
			f.ErasureCode,
			strconv.FormatFloat(f.StorageFactor, 'f', 2, 64),
			displayBytes(f.MaxCapacity),
			strconv.Itoa(f.MaxFailureTolerations),
		})
	}

	header := fmt.Sprintf("Erasure set: %d drives    Raw capacity: %s    Default: %s",
		resp.ErasureCodeSet, displayBytes(resp.RawCapacity), resp.DefaultEC)
	table := styles.Table([]string{"Parity", "Storage Factor", "Usable Capacity", "Tolerated Failures"}, rows, highlight)
	return header + "\n" + table
}

// displayBytes formats a decimal byte string from the API
func displayBytes(s string) string {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return s
	}
	return services.HumanStringFromBytes(n, false)
}
