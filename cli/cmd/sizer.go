// ABOUTME: Sizing backend selection and shared command output helpers
// ABOUTME: Remote calls go through the API client; --local runs the services in-process

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"

	"github.com/dustin/go-humanize"

	"github.com/markalston/tenant-pool-sizer/backend/models"
	"github.com/markalston/tenant-pool-sizer/backend/services"
	"github.com/markalston/tenant-pool-sizer/cli/internal/client"
)

// Exit codes shared by every command
const (
	exitOK       = 0
	exitRejected = 1
	exitFailure  = 2
)

// sizer runs the sizing calculations, remotely or in-process
type sizer interface {
	Bytes(ctx context.Context, req models.BytesRequest) (uint64, error)
	Human(ctx context.Context, req models.HumanRequest) (string, error)
	SizeMemory(ctx context.Context, req models.MemorySizingRequest) (models.MemorySizing, error)
	Distribute(ctx context.Context, req models.DistributionRequest) (models.StorageDistribution, error)
	ErasureCode(ctx context.Context, req models.ErasureCodeRequest) (models.ErasureCodeResponse, error)
	ParityLevels(ctx context.Context, nodes, drivesPerNode int) ([]string, error)
	Plan(ctx context.Context, req models.PlanRequest) (models.PlanResponse, error)
}

var _ sizer = (*client.Client)(nil)

func newSizer() sizer {
	if IsLocal() {
		return localSizer{planner: services.NewPoolPlanner()}
	}
	return client.New(GetAPIURL())
}

// localSizer calls the sizing services directly
type localSizer struct {
	planner *services.PoolPlanner
}

func (localSizer) Bytes(_ context.Context, req models.BytesRequest) (uint64, error) {
	return services.BytesFromValueAndUnit(req.Value, req.Unit, req.PlatformUnits)
}

func (localSizer) Human(_ context.Context, req models.HumanRequest) (string, error) {
	return services.HumanStringFromBytes(req.Bytes, req.PlatformUnits), nil
}

func (localSizer) SizeMemory(_ context.Context, req models.MemorySizingRequest) (models.MemorySizing, error) {
	return services.SizeMemory(req.MemoryGi, req.TotalCapacityBytes, req.MaxAvailableMemoryBytes)
}

func (localSizer) Distribute(_ context.Context, req models.DistributionRequest) (models.StorageDistribution, error) {
	return services.Distribute(req)
}

func (localSizer) ErasureCode(_ context.Context, req models.ErasureCodeRequest) (models.ErasureCodeResponse, error) {
	result, err := services.ErasureCodeCalc(req.ParityLevels, req.TotalDisks, req.PVSize, req.TotalNodes)
	if err != nil {
		return models.ErasureCodeResponse{}, err
	}
	return models.NewErasureCodeResponse(result, false), nil
}

func (localSizer) ParityLevels(_ context.Context, nodes, drivesPerNode int) ([]string, error) {
	return services.ParityLevels(nodes, drivesPerNode)
}

func (s localSizer) Plan(_ context.Context, req models.PlanRequest) (models.PlanResponse, error) {
	if err := services.ValidatePlanRequest(req); err != nil {
		return models.PlanResponse{}, &services.ValidationError{Message: err.Error(), Err: services.ErrInvalidData}
	}
	return s.planner.Plan(req)
}

// exitCodeFor maps an error to the process exit code
func exitCodeFor(err error) int {
	if err == nil {
		return exitOK
	}
	var ve *services.ValidationError
	if errors.As(err, &ve) || client.IsRejected(err) {
		return exitRejected
	}
	return exitFailure
}

// fail prints err and returns its exit code
func fail(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %s\n", services.Message(err))
	return exitCodeFor(err)
}

// writeJSON prints v as indented JSON
func writeJSON(w io.Writer, v any) int {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fail(w, err)
	}
	fmt.Fprintln(w, string(data))
	return exitOK
}

// formatBytes renders a byte count with thousands separators
func formatBytes(n uint64) string {
	if n > math.MaxInt64 {
		return humanize.BigComma(new(big.Int).SetUint64(n))
	}
	return humanize.Comma(int64(n))
}
