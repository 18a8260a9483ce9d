// ABOUTME: Storage distribution solver for pool volume layouts
// ABOUTME: Picks volumes per server and volume size for a requested capacity

package services

import (
	"fmt"
	"math"

	"github.com/markalston/tenant-pool-sizer/backend/models"
)

const (
	// MaxDiskSize caps the volume size on the legacy layout path.
	MaxDiskSize = 256 * GiB
	// MinVolumeSize is the smallest volume a layout may use.
	MinVolumeSize = GiB
	// MinNodes is the smallest server count that supports erasure coding.
	MinNodes = 4
)

const invalidDataMessage = "Some provided data is invalid, please try again."

// Distribute computes the volume layout for a pool request. A zero node
// count means MinNodes.
func Distribute(req models.DistributionRequest) (models.StorageDistribution, error) {
	requested, err := CapacityBytes(req.Capacity)
	if err != nil {
		return models.StorageDistribution{}, err
	}
	if requested < GiB {
		return models.StorageDistribution{}, invalid(ErrPoolTooSmall, "The pool size must be greater than 1Gi")
	}
	if req.DrivesPerServer <= 0 {
		return models.StorageDistribution{}, invalid(ErrNoDrives, "Number of drives must be at least 1")
	}

	nodes := req.Nodes
	if nodes == 0 {
		nodes = MinNodes
	}
	if nodes < 0 {
		return models.StorageDistribution{}, invalid(ErrInvalidData, invalidDataMessage)
	}
	if nodes < MinNodes {
		return models.StorageDistribution{}, invalid(ErrTooFewNodes,
			fmt.Sprintf("Number of nodes cannot be less than %d", MinNodes))
	}

	return ComputeLayout(nodes, requested, MaxDiskSize, req.ClusterSizeLimitBytes, req.DrivesPerServer, req.IntegrationMinimum)
}

// ComputeLayout solves the layout for a fixed node count.
//
// With drivesPerNode set, every server gets that many volumes and the
// capacity is split evenly across them, rounding the size down.
//
// With drivesPerNode zero (the legacy path) the volume size comes first:
// the capacity over max(MinNodes, nodes), capped at maxDiskSize. A
// fractional volume count per server is rounded up and the size recomputed.
// This path works in float64 and can differ from the other by a byte at
// extreme ratios; both are kept as they are.
//
// maxClusterBytes, when non-zero, bounds the allocation on both paths.
// minimum, when set, is a floor on the volume size.
func ComputeLayout(nodes int, desired, maxDiskSize, maxClusterBytes uint64, drivesPerNode int, minimum *models.VolumeSizeFloor) (models.StorageDistribution, error) {
	if nodes <= 0 || drivesPerNode < 0 || maxDiskSize == 0 {
		return models.StorageDistribution{}, invalid(ErrInvalidData, invalidDataMessage)
	}

	var (
		perServer int
		pvSize    uint64
	)

	if drivesPerNode > 0 {
		perServer = drivesPerNode
		pvSize = desired / (uint64(perServer) * uint64(nodes))
	} else {
		size := math.Floor(math.Min(float64(desired)/float64(max(MinNodes, nodes)), float64(maxDiskSize)))
		if size < 1 {
			return models.StorageDistribution{}, volumeTooSmall()
		}
		volumes := float64(desired) / size
		fractional := volumes / float64(nodes)
		perServer = int(math.Ceil(fractional))
		pvSize = uint64(size)

		// Round the volume count up and the volume size down, never the
		// reverse, so the layout never exceeds the request.
		if float64(perServer) != fractional {
			volumes = float64(perServer * nodes)
			pvSize = uint64(math.Floor(float64(desired) / volumes))
		}
	}

	if maxClusterBytes > 0 && pvSize*uint64(perServer)*uint64(nodes) > maxClusterBytes {
		return models.StorageDistribution{}, invalid(ErrAllocationFailed, "We were not able to allocate this server.")
	}

	if pvSize < MinVolumeSize {
		return models.StorageDistribution{}, volumeTooSmall()
	}

	if minimum != nil {
		floor, err := CapacityBytes(models.Capacity{Value: minimum.Value, Unit: minimum.Unit})
		if err != nil {
			return models.StorageDistribution{}, err
		}
		if pvSize < floor {
			return models.StorageDistribution{}, invalid(ErrBelowIntegrationMin,
				fmt.Sprintf("For the %s storage type the minimum volume size is %s%s", minimum.Label, minimum.Value, minimum.Unit))
		}
	}

	return models.StorageDistribution{
		Nodes:             nodes,
		PersistentVolumes: perServer * nodes,
		Disks:             perServer,
		PVSize:            pvSize,
	}, nil
}

func volumeTooSmall() error {
	return invalid(ErrVolumeTooSmall, "Disk Size with this combination would be less than 1Gi, please try another combination")
}
