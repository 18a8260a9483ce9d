// ABOUTME: Root command for the pool-sizer CLI
// ABOUTME: Handles global flags and configuration

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
	localMode  bool
)

const defaultAPIURL = "http://localhost:8080"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "pool-sizer",
	Short: "CLI for the Tenant Pool Sizer",
	Long: `pool-sizer sizes tenant storage pools: unit conversion, memory sizing,
volume distribution, erasure-code capacity and complete pool plans.

Calculations run on the backend API unless --local is given.

Exit codes:
  0  success
  1  the sizing rules rejected the input
  2  any other failure

Environment Variables:
  POOL_SIZER_API_URL  Backend API URL (default: http://localhost:8080)`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides POOL_SIZER_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().BoolVar(&localMode, "local", false, "Calculate in-process instead of calling the backend")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("POOL_SIZER_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// IsLocal returns whether calculations run in-process
func IsLocal() bool {
	return localMode
}
