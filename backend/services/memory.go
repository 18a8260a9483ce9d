// ABOUTME: Memory request/limit sizing for pool servers
// ABOUTME: Validates requested memory and escalates the limit by pool capacity

package services

import (
	"strconv"

	"github.com/markalston/tenant-pool-sizer/backend/models"
)

// MinMemory is the smallest memory request a pool server accepts.
const MinMemory = 2 * GiB

// memoryLimitTiers raise the memory limit floor for larger pools.
// Ordered from the largest capacity down; the first match wins.
var memoryLimitTiers = []struct {
	capacity uint64
	floor    uint64
}{
	{PiB, 64 * GiB},
	{100 * TiB, 32 * GiB},
	{10 * TiB, 16 * GiB},
	{TiB, 8 * GiB},
}

// SizeMemory validates a memory request given in Gi against the memory the
// selected servers have available, and returns the request/limit pair.
//
// totalCapacityBytes is the raw pool capacity as a decimal string; it only
// affects the limit. Anything after the leading digits is ignored.
func SizeMemory(memoryGi float64, totalCapacityBytes string, maxAvailableBytes uint64) (models.MemorySizing, error) {
	requested, err := BytesFromValueAndUnit(strconv.FormatFloat(memoryGi, 'f', -1, 64), "Gi", true)
	if err != nil {
		return models.MemorySizing{}, err
	}

	switch {
	case maxAvailableBytes == 0:
		return models.MemorySizing{}, invalid(ErrNoMemoryAvailable,
			"There is no memory available for the selected number of nodes")
	case maxAvailableBytes < MinMemory:
		return models.MemorySizing{}, invalid(ErrNotEnoughMemory,
			"There are not enough memory resources available")
	case requested < MinMemory:
		return models.MemorySizing{}, invalid(ErrMemoryRequestTooLow,
			"The requested memory size must be greater than 2Gi")
	case requested > maxAvailableBytes:
		return models.MemorySizing{}, invalid(ErrMemoryOverLimit,
			"The requested memory is greater than the max available memory for the selected number of nodes")
	}

	return models.MemorySizing{
		Request: requested,
		Limit:   memoryLimit(requested, parseLeadingUint(totalCapacityBytes), maxAvailableBytes),
	}, nil
}

// memoryLimit lets the server burst to the memory available on it, and to
// at least the tier floor for its pool capacity. The tier floor is applied
// even when it is above the available memory, so large pools can be
// over-committed: a 1 PiB pool on a 32 GiB server gets a 64 GiB limit.
func memoryLimit(request, capacity, available uint64) uint64 {
	floor := request
	for _, tier := range memoryLimitTiers {
		if capacity >= tier.capacity {
			floor = max(request, tier.floor)
			break
		}
	}
	return max(floor, available)
}
