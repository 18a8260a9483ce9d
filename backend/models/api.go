// ABOUTME: Request and response bodies for the sizing API
// ABOUTME: Wire shapes keep an error field next to the computed values

package models

import (
	"strconv"

	corev1 "k8s.io/api/core/v1"
)

// BytesRequest converts a value/unit pair into bytes
type BytesRequest struct {
	Value         string `json:"value"`
	Unit          string `json:"unit"`
	PlatformUnits bool   `json:"platform_units"`
}

// BytesResponse carries the byte count as a decimal string
type BytesResponse struct {
	Bytes string `json:"bytes"`
}

// HumanRequest formats a byte count for display
type HumanRequest struct {
	Bytes         uint64 `json:"bytes"`
	PlatformUnits bool   `json:"platform_units"`
}

// HumanResponse is a formatted size such as "7.3 TiB"
type HumanResponse struct {
	Human string `json:"human"`
}

// MemorySizingRequest asks for a memory request/limit pair
type MemorySizingRequest struct {
	MemoryGi                float64 `json:"memory_gi"`
	TotalCapacityBytes      string  `json:"total_capacity_bytes"`
	MaxAvailableMemoryBytes uint64  `json:"max_available_memory_bytes"`
}

// MemorySizingResponse is the memory sizing result; Error is empty on success
type MemorySizingResponse struct {
	Error   string `json:"error"`
	Request uint64 `json:"request"`
	Limit   uint64 `json:"limit"`
}

// DistributionRequest asks for a volume layout
type DistributionRequest struct {
	Capacity              Capacity         `json:"capacity"`
	Nodes                 int              `json:"nodes"`
	ClusterSizeLimitBytes uint64           `json:"cluster_size_limit_bytes"`
	DrivesPerServer       int              `json:"drives_per_server"`
	IntegrationMinimum    *VolumeSizeFloor `json:"integration_minimum,omitempty"`
}

// DistributionResponse is a layout; Error is empty on success
type DistributionResponse struct {
	Error string `json:"error"`
	StorageDistribution
}

// ErasureCodeRequest asks for the usable capacity table of a layout
type ErasureCodeRequest struct {
	ParityLevels []string `json:"parity_levels"`
	TotalDisks   int      `json:"total_disks"`
	PVSize       uint64   `json:"pv_size"`
	TotalNodes   int      `json:"total_nodes"`
}

// StorageFactorResponse renders capacities as decimal strings
type StorageFactorResponse struct {
	ErasureCode           string  `json:"erasure_code"`
	StorageFactor         float64 `json:"storage_factor"`
	MaxCapacity           string  `json:"max_capacity"`
	MaxFailureTolerations int     `json:"max_failure_tolerations"`
}

// ErasureCodeResponse is the erasure-code table; Error is 1 when no parity
// level was supplied
type ErasureCodeResponse struct {
	Error          int                     `json:"error"`
	StorageFactors []StorageFactorResponse `json:"storage_factors"`
	MaxEC          string                  `json:"max_ec"`
	RawCapacity    string                  `json:"raw_capacity"`
	ErasureCodeSet int                     `json:"erasure_code_set"`
	DefaultEC      string                  `json:"default_ec"`
}

// NewErasureCodeResponse converts a result into its wire form
func NewErasureCodeResponse(r ErasureCodeResult, failed bool) ErasureCodeResponse {
	resp := ErasureCodeResponse{
		StorageFactors: make([]StorageFactorResponse, 0, len(r.StorageFactors)),
		MaxEC:          r.MaxEC,
		RawCapacity:    strconv.FormatUint(r.RawCapacity, 10),
		ErasureCodeSet: r.ErasureCodeSet,
		DefaultEC:      r.DefaultEC,
	}
	if failed {
		resp.Error = 1
	}
	for _, f := range r.StorageFactors {
		resp.StorageFactors = append(resp.StorageFactors, StorageFactorResponse{
			ErasureCode:           f.ErasureCode,
			StorageFactor:         f.StorageFactor,
			MaxCapacity:           strconv.FormatUint(f.MaxCapacity, 10),
			MaxFailureTolerations: f.MaxFailureTolerations,
		})
	}
	return resp
}

// ParityResponse lists the parity levels valid for a server/drive count
type ParityResponse struct {
	Nodes         int      `json:"nodes"`
	DrivesPerNode int      `json:"drives_per_node"`
	ParityLevels  []string `json:"parity_levels"`
}

// PlanRequest drives the full sizing pipeline for one pool
type PlanRequest struct {
	PoolName              string           `json:"pool_name,omitempty"`
	Capacity              Capacity         `json:"capacity"`
	Nodes                 int              `json:"nodes"`
	DrivesPerServer       int              `json:"drives_per_server"`
	ClusterSizeLimitBytes uint64           `json:"cluster_size_limit_bytes,omitempty"`
	IntegrationMinimum    *VolumeSizeFloor `json:"integration_minimum,omitempty"`
	StorageClass          string           `json:"storage_class,omitempty"`

	// ParityLevels overrides the computed parity catalog when set
	ParityLevels []string `json:"parity_levels,omitempty"`
	// ErasureCode selects a level from the table; defaults to DefaultEC
	ErasureCode string `json:"erasure_code,omitempty"`

	// Memory sizing is skipped when MemoryGi is zero
	MemoryGi                float64 `json:"memory_gi,omitempty"`
	MaxAvailableMemoryBytes uint64  `json:"max_available_memory_bytes,omitempty"`
}

// PlanResponse is the complete sizing outcome for one pool
type PlanResponse struct {
	CapacityBytes  uint64              `json:"capacity_bytes"`
	Distribution   StorageDistribution `json:"distribution"`
	ErasureCode    ErasureCodeResponse `json:"erasure_code"`
	SelectedEC     string              `json:"selected_ec"`
	UsableCapacity uint64              `json:"usable_capacity"`
	Tolerations    int                 `json:"max_failure_tolerations"`
	Memory         *MemorySizing       `json:"memory,omitempty"`
	Pool           PoolSpec            `json:"pool"`
	Summary        PlanSummary         `json:"summary"`
}

// PlanSummary holds display strings for the plan
type PlanSummary struct {
	RawCapacity    string `json:"raw_capacity"`
	UsableCapacity string `json:"usable_capacity"`
	VolumeSize     string `json:"volume_size"`
}

// PoolSpec is the declarative pool definition sent to the platform API
type PoolSpec struct {
	Name                string                           `json:"name"`
	Servers             int                              `json:"servers"`
	VolumesPerServer    int                              `json:"volumesPerServer"`
	VolumeClaimTemplate corev1.PersistentVolumeClaimSpec `json:"volumeClaimTemplate"`
	Resources           *corev1.ResourceRequirements     `json:"resources,omitempty"`
}
