// ABOUTME: Distribute command for the pool-sizer CLI
// ABOUTME: Lays a pool out over servers and persistent volumes

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
	"github.com/markalston/tenant-pool-sizer/cli/internal/tui/styles"
)

var distributeOpts struct {
	capacity     string
	nodes        int
	drives       int
	clusterLimit string
	minVolume    string
	minLabel     string
}

var distributeCmd = &cobra.Command{
	Use:   "distribute",
	Short: "Lay a pool out over servers and volumes",
	Long: `Split the requested capacity evenly over the servers and drives per
server, and report the resulting volume size.`,
	Example: `  pool-sizer distribute --capacity 7500Gi --nodes 4 --drives 4
  pool-sizer distribute --capacity 10Ti --drives 2 --min-volume 100Gi --min-label ssd`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runDistribute(ctx, os.Stdout, newSizer())
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	distributeCmd.Flags().StringVar(&distributeOpts.capacity, "capacity", "", "Raw pool capacity, e.g. 7500Gi")
	distributeCmd.Flags().IntVar(&distributeOpts.nodes, "nodes", services.MinNodes, "Number of servers")
	distributeCmd.Flags().IntVar(&distributeOpts.drives, "drives", 1, "Drives (volumes) per server")
	distributeCmd.Flags().StringVar(&distributeOpts.clusterLimit, "cluster-limit", "", "Largest allocation the cluster allows, e.g. 100Ti")
	distributeCmd.Flags().StringVar(&distributeOpts.minVolume, "min-volume", "", "Minimum volume size required by an integration, e.g. 100Gi")
	distributeCmd.Flags().StringVar(&distributeOpts.minLabel, "min-label", "integration", "Storage type named in the minimum volume message")
	rootCmd.AddCommand(distributeCmd)
}

// runDistribute executes the distribution and returns exit code
func runDistribute(ctx context.Context, w io.Writer, s sizer) int {
	limit, err := quantityBytes(distributeOpts.clusterLimit)
	if err != nil {
		return fail(w, err)
	}

	req := models.DistributionRequest{
		Capacity:              services.ParseQuantity(distributeOpts.capacity),
		Nodes:                 distributeOpts.nodes,
		ClusterSizeLimitBytes: limit,
		DrivesPerServer:       distributeOpts.drives,
		IntegrationMinimum:    volumeFloor(distributeOpts.minVolume, distributeOpts.minLabel),
	}

	dist, err := s.Distribute(ctx, req)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		return writeJSON(w, dist)
	}
	fmt.Fprintln(w, formatDistributionHuman(dist))
	return exitOK
}

// volumeFloor builds an integration minimum from a size flag. Empty is none.
func volumeFloor(size, label string) *models.VolumeSizeFloor {
	if size == "" {
		return nil
	}
	q := services.ParseQuantity(size)
	return &models.VolumeSizeFloor{Label: label, Value: q.Value, Unit: q.Unit}
}

func formatDistributionHuman(d models.StorageDistribution) string {
	lines := []string{
		styles.KeyValue("Servers", fmt.Sprint(d.Nodes), 18),
		styles.KeyValue("Volumes per server", fmt.Sprint(d.Disks), 18),
		styles.KeyValue("Total volumes", fmt.Sprint(d.PersistentVolumes), 18),
		styles.KeyValue("Volume size", sizeWithBytes(d.PVSize), 18),
		styles.KeyValue("Raw capacity", sizeWithBytes(d.TotalBytes()), 18),
	}
	return strings.Join(lines, "\n")
}
