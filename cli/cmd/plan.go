// ABOUTME: Plan command for the pool-sizer CLI
// ABOUTME: Runs the full sizing pipeline from flags, a request file or the wizard

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/markalston/tenant-pool-sizer/backend/models"
	"github.com/markalston/tenant-pool-sizer/backend/services"
	"github.com/markalston/tenant-pool-sizer/cli/internal/tui/styles"
	"github.com/markalston/tenant-pool-sizer/cli/internal/tui/wizard"
)

var planOpts struct {
	file         string
	interactive  bool
	output       string
	name         string
	capacity     string
	nodes        int
	drives       int
	clusterLimit string
	minVolume    string
	minLabel     string
	storageClass string
	parityLevels []string
	erasureCode  string
	memoryGi     float64
	available    string
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a complete storage pool",
	Long: `Size a pool end to end: volume layout, parity catalog, erasure-code
capacity, memory and the resulting pool definition.

The request comes from flags, a YAML or JSON file (--file), or an interactive
wizard (--interactive). Flags given on the command line override the file.`,
	Example: `  pool-sizer plan --capacity 7500Gi --nodes 4 --drives 4 --memory-gi 4 --available 16Gi
  pool-sizer plan --file pool.yaml --output yaml
  pool-sizer plan --interactive`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPlan(ctx, os.Stdout, newSizer(), cmd.Flags().Changed)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	f := planCmd.Flags()
	f.StringVarP(&planOpts.file, "file", "f", "", "Plan request file (YAML or JSON)")
	f.BoolVarP(&planOpts.interactive, "interactive", "i", false, "Collect the request with an interactive wizard")
	f.StringVarP(&planOpts.output, "output", "o", "text", "Output format: text, json or yaml")
	f.StringVar(&planOpts.name, "name", "", "Pool name (default "+services.DefaultPoolName+")")
	f.StringVar(&planOpts.capacity, "capacity", "", "Raw pool capacity, e.g. 7500Gi")
	f.IntVar(&planOpts.nodes, "nodes", services.MinNodes, "Number of servers")
	f.IntVar(&planOpts.drives, "drives", 1, "Drives (volumes) per server")
	f.StringVar(&planOpts.clusterLimit, "cluster-limit", "", "Largest allocation the cluster allows, e.g. 100Ti")
	f.StringVar(&planOpts.minVolume, "min-volume", "", "Minimum volume size required by an integration, e.g. 100Gi")
	f.StringVar(&planOpts.minLabel, "min-label", "integration", "Storage type named in the minimum volume message")
	f.StringVar(&planOpts.storageClass, "storage-class", "", "Storage class for the volume claims")
	f.StringSliceVar(&planOpts.parityLevels, "parity-levels", nil, "Parity levels, highest first (default: catalog for the layout)")
	f.StringVar(&planOpts.erasureCode, "ec", "", "Parity level to plan with (default: table default)")
	f.Float64Var(&planOpts.memoryGi, "memory-gi", 0, "Memory request per server in Gi (0 skips memory sizing)")
	f.StringVar(&planOpts.available, "available", "", "Memory available per server, e.g. 16Gi")
	rootCmd.AddCommand(planCmd)
}

// runPlan builds the request, plans the pool and returns exit code.
// changed reports whether a flag was set on the command line.
func runPlan(ctx context.Context, w io.Writer, s sizer, changed func(string) bool) int {
	format := planOpts.output
	if IsJSONOutput() {
		format = "json"
	}
	if format != "text" && format != "json" && format != "yaml" {
		fmt.Fprintf(w, "Error: unknown output format %q\n", format)
		return exitFailure
	}

	req, err := buildPlanRequest(changed)
	if err != nil {
		return fail(w, err)
	}

	if planOpts.interactive {
		parity := func(nodes, drives int) ([]string, error) {
			return s.ParityLevels(ctx, nodes, drives)
		}
		collected, err := wizard.Run(wizard.New(&req, parity), tea.WithContext(ctx), tea.WithAltScreen())
		if errors.Is(err, wizard.ErrCancelled) {
			fmt.Fprintln(w, "Cancelled")
			return exitFailure
		}
		if err != nil {
			return fail(w, err)
		}
		req = *collected
	}

	plan, err := s.Plan(ctx, req)
	if err != nil {
		return fail(w, err)
	}

	switch format {
	case "json":
		return writeJSON(w, plan)
	case "yaml":
		data, err := yaml.Marshal(plan)
		if err != nil {
			return fail(w, err)
		}
		fmt.Fprint(w, string(data))
		return exitOK
	}

	out, err := formatPlanHuman(plan)
	if err != nil {
		return fail(w, err)
	}
	fmt.Fprintln(w, out)
	return exitOK
}

// buildPlanRequest reads the request file, if any, and applies the flags
// set on the command line over it. Without a file every flag applies.
func buildPlanRequest(changed func(string) bool) (models.PlanRequest, error) {
	var req models.PlanRequest
	set := func(string) bool { return true }

	if planOpts.file != "" {
		data, err := os.ReadFile(planOpts.file)
		if err != nil {
			return req, fmt.Errorf("failed to read plan file: %w", err)
		}
		if err := yaml.Unmarshal(data, &req); err != nil {
			return req, fmt.Errorf("failed to parse plan file %s: %w", planOpts.file, err)
		}
		set = changed
	}

	if set("name") {
		req.PoolName = planOpts.name
	}
	if set("capacity") && planOpts.capacity != "" {
		req.Capacity = services.ParseQuantity(planOpts.capacity)
	}
	if set("nodes") {
		req.Nodes = planOpts.nodes
	}
	if set("drives") {
		req.DrivesPerServer = planOpts.drives
	}
	if set("cluster-limit") {
		limit, err := quantityBytes(planOpts.clusterLimit)
		if err != nil {
			return req, err
		}
		req.ClusterSizeLimitBytes = limit
	}
	if set("min-volume") && planOpts.minVolume != "" {
		req.IntegrationMinimum = volumeFloor(planOpts.minVolume, planOpts.minLabel)
	}
	if set("storage-class") {
		req.StorageClass = planOpts.storageClass
	}
	if set("parity-levels") && len(planOpts.parityLevels) > 0 {
		req.ParityLevels = planOpts.parityLevels
	}
	if set("ec") {
		req.ErasureCode = planOpts.erasureCode
	}
	if set("memory-gi") {
		req.MemoryGi = planOpts.memoryGi
	}
	if set("available") {
		available, err := quantityBytes(planOpts.available)
		if err != nil {
			return req, err
		}
		req.MaxAvailableMemoryBytes = available
	}
	return req, nil
}

// formatPlanHuman renders the plan summary, erasure table and pool definition
func formatPlanHuman(p models.PlanResponse) (string, error) {
	spec, err := yaml.Marshal(p.Pool)
	if err != nil {
		return "", err
	}

	lines := []string{
		styles.Title.Render("Pool " + p.Pool.Name),
		styles.KeyValue("Requested", sizeWithBytes(p.CapacityBytes), 20),
		styles.KeyValue("Servers", fmt.Sprint(p.Distribution.Nodes), 20),
		styles.KeyValue("Volumes per server", fmt.Sprint(p.Distribution.Disks), 20),
		styles.KeyValue("Volume size", p.Summary.VolumeSize, 20),
		styles.KeyValue("Raw capacity", p.Summary.RawCapacity, 20),
		styles.KeyValue("Parity", p.SelectedEC, 20),
		styles.KeyValue("Usable capacity", p.Summary.UsableCapacity, 20),
		styles.KeyValue("Tolerated failures", fmt.Sprint(p.Tolerations), 20),
	}
	if p.Memory != nil {
		lines = append(lines,
			styles.KeyValue("Memory request", sizeWithBytes(p.Memory.Request), 20),
			styles.KeyValue("Memory limit", sizeWithBytes(p.Memory.Limit), 20),
		)
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(lines, "\n"))
	sb.WriteString("\n\n")
	sb.WriteString(formatErasureHuman(p.ErasureCode, p.SelectedEC))
	sb.WriteString("\n\n")
	sb.WriteString(styles.Panel.Render(strings.TrimRight(string(spec), "\n")))
	return sb.String(), nil
}
