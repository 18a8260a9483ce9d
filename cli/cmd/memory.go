// ABOUTME: Memory command for the pool-sizer CLI
// ABOUTME: Validates a per-server memory request and derives its limit

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

var memoryOpts struct {
	memoryGi  float64
	capacity  string
	available string
}

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Size the memory request and limit for pool servers",
	Long: `Validate a per-server memory request in Gi against the pool capacity and
the memory available on each server, and derive the memory limit.`,
	Example: `  pool-sizer memory --memory-gi 4 --capacity 10Ti --available 16Gi`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runMemory(ctx, os.Stdout, newSizer())
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	memoryCmd.Flags().Float64Var(&memoryOpts.memoryGi, "memory-gi", 0, "Memory request per server in Gi")
	memoryCmd.Flags().StringVar(&memoryOpts.capacity, "capacity", "", "Total pool capacity, e.g. 10Ti")
	memoryCmd.Flags().StringVar(&memoryOpts.available, "available", "", "Memory available per server, e.g. 16Gi")
	rootCmd.AddCommand(memoryCmd)
}

// runMemory executes the memory sizing and returns exit code
func runMemory(ctx context.Context, w io.Writer, s sizer) int {
	capacity, err := quantityBytes(memoryOpts.capacity)
	if err != nil {
		return fail(w, err)
	}
	available, err := quantityBytes(memoryOpts.available)
	if err != nil {
		return fail(w, err)
	}

	sizing, err := s.SizeMemory(ctx, models.MemorySizingRequest{
		MemoryGi:                memoryOpts.memoryGi,
		TotalCapacityBytes:      strconv.FormatUint(capacity, 10),
		MaxAvailableMemoryBytes: available,
	})
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		return writeJSON(w, sizing)
	}
	fmt.Fprintln(w, formatMemoryHuman(sizing))
	return exitOK
}

func formatMemoryHuman(m models.MemorySizing) string {
	return styles.KeyValue("Request", sizeWithBytes(m.Request), 10) + "\n" +
		styles.KeyValue("Limit", sizeWithBytes(m.Limit), 10)
}

// quantityBytes converts a size such as "16Gi" to bytes. Empty is zero.
func quantityBytes(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	return services.CapacityBytes(services.ParseQuantity(s))
}

// sizeWithBytes renders "4.0 Gi (4,294,967,296 bytes)"
func sizeWithBytes(n uint64) string {
	return fmt.Sprintf("%s (%s bytes)", services.HumanStringFromBytes(n, true), formatBytes(n))
}
