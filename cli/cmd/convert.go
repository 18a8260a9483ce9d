// ABOUTME: Convert command for the pool-sizer CLI
// ABOUTME: Converts sizes to byte counts and byte counts to readable sizes

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
)

var convertOpts struct {
	platform bool
	toHuman  bool
}

var convertCmd = &cobra.Command{
	Use:   "convert VALUE [UNIT]",
	Short: "Convert between sizes and byte counts",
	Long: `Convert a size such as "7500 Gi" or "10TiB" to bytes.

With --to-human, VALUE is a byte count and is printed with the largest
fitting unit. --platform selects the Ki/Mi/Gi unit names.`,
	Example: `  pool-sizer convert 7500 Gi
  pool-sizer convert 10TiB
  pool-sizer convert --to-human --platform 8053063680000`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runConvert(ctx, os.Stdout, newSizer(), args)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	convertCmd.Flags().BoolVar(&convertOpts.platform, "platform", false, "Use platform unit names (Ki, Mi, Gi, ...)")
	convertCmd.Flags().BoolVar(&convertOpts.toHuman, "to-human", false, "Treat VALUE as bytes and print a readable size")
	rootCmd.AddCommand(convertCmd)
}

// runConvert executes the conversion and returns exit code
func runConvert(ctx context.Context, w io.Writer, s sizer, args []string) int {
	if convertOpts.toHuman {
		n, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			fmt.Fprintf(w, "Error: %q is not a byte count\n", args[0])
			return exitRejected
		}
		human, err := s.Human(ctx, models.HumanRequest{Bytes: n, PlatformUnits: convertOpts.platform})
		if err != nil {
			return fail(w, err)
		}
		if IsJSONOutput() {
			return writeJSON(w, models.HumanResponse{Human: human})
		}
		fmt.Fprintln(w, human)
		return exitOK
	}

	size := services.ParseQuantity(args[0])
	if len(args) == 2 {
		size = models.Capacity{Value: args[0], Unit: args[1]}
	}

	// Platform-only names such as "Gi" switch tables on their own
	platform := convertOpts.platform ||
		(services.UnitIndex(size.Unit, false) < 0 && services.UnitIndex(size.Unit, true) >= 0)

	n, err := s.Bytes(ctx, models.BytesRequest{Value: size.Value, Unit: size.Unit, PlatformUnits: platform})
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		return writeJSON(w, models.BytesResponse{Bytes: strconv.FormatUint(n, 10)})
	}
	fmt.Fprintf(w, "%s bytes\n", formatBytes(n))
	return exitOK
}
