// ABOUTME: Pool planner that runs the full sizing pipeline for one pool
// ABOUTME: Capacity -> distribution -> parity -> erasure table -> memory -> pool spec

package services

import (
	"fmt"
	"strconv"

	"github.com/markalston/tenant-pool-sizer/backend/models"
)

// PoolPlanner computes complete pool plans
type PoolPlanner struct {
	defaultParity string
}

// NewPoolPlanner creates a new pool planner
func NewPoolPlanner() *PoolPlanner {
	return &PoolPlanner{}
}

// WithDefaultParity sets the level chosen when a request names none. It
// applies only when the erasure table contains it; otherwise the table's
// own default is used.
func (p *PoolPlanner) WithDefaultParity(ec string) *PoolPlanner {
	p.defaultParity = ec
	return p
}

// Plan sizes one pool. Parity levels come from the request when given,
// otherwise from the catalog for the computed layout.
func (p *PoolPlanner) Plan(req models.PlanRequest) (models.PlanResponse, error) {
	capacity, err := CapacityBytes(req.Capacity)
	if err != nil {
		return models.PlanResponse{}, err
	}

	dist, err := Distribute(models.DistributionRequest{
		Capacity:              req.Capacity,
		Nodes:                 req.Nodes,
		ClusterSizeLimitBytes: req.ClusterSizeLimitBytes,
		DrivesPerServer:       req.DrivesPerServer,
		IntegrationMinimum:    req.IntegrationMinimum,
	})
	if err != nil {
		return models.PlanResponse{}, err
	}

	levels := req.ParityLevels
	if len(levels) == 0 {
		if levels, err = ParityLevels(dist.Nodes, dist.Disks); err != nil {
			return models.PlanResponse{}, err
		}
	}

	ec, err := ErasureCodeCalc(levels, dist.PersistentVolumes, dist.PVSize, dist.Nodes)
	if err != nil {
		return models.PlanResponse{}, err
	}

	selected := req.ErasureCode
	if selected == "" {
		selected = ec.DefaultEC
		if _, ok := ec.Factor(p.defaultParity); ok {
			selected = p.defaultParity
		}
	}
	factor, ok := ec.Factor(selected)
	if !ok {
		return models.PlanResponse{}, invalid(ErrInvalidParity,
			fmt.Sprintf("%s is not available for %d servers with %d drives each", selected, dist.Nodes, dist.Disks))
	}

	var mem *models.MemorySizing
	if req.MemoryGi > 0 {
		sized, err := SizeMemory(req.MemoryGi, strconv.FormatUint(capacity, 10), req.MaxAvailableMemoryBytes)
		if err != nil {
			return models.PlanResponse{}, err
		}
		mem = &sized
	}

	return models.PlanResponse{
		CapacityBytes:  capacity,
		Distribution:   dist,
		ErasureCode:    models.NewErasureCodeResponse(ec, false),
		SelectedEC:     selected,
		UsableCapacity: factor.MaxCapacity,
		Tolerations:    factor.MaxFailureTolerations,
		Memory:         mem,
		Pool:           BuildPoolSpec(req.PoolName, dist, req.StorageClass, mem),
		Summary: models.PlanSummary{
			RawCapacity:    HumanStringFromBytes(ec.RawCapacity, false),
			UsableCapacity: HumanStringFromBytes(factor.MaxCapacity, false),
			VolumeSize:     HumanStringFromBytes(dist.PVSize, false),
		},
	}, nil
}
