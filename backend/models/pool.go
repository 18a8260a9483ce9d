// ABOUTME: Data models for storage pool sizing calculations
// ABOUTME: Distribution layouts, erasure-code tables, and memory sizing results

package models

// Capacity is a human-entered size such as {"7500", "Gi"}.
type Capacity struct {
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// VolumeSizeFloor is a minimum volume size imposed by a third-party
// marketplace integration for a given storage type.
type VolumeSizeFloor struct {
	Label string `json:"label"` // storage type name shown to the operator
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// MemorySizing is a validated memory request/limit pair in bytes.
type MemorySizing struct {
	Request uint64 `json:"request"`
	Limit   uint64 `json:"limit"`
}

// StorageDistribution is the physical layout chosen for a pool.
// On success PersistentVolumes == Disks * Nodes.
type StorageDistribution struct {
	Nodes             int    `json:"nodes"`
	PersistentVolumes int    `json:"persistent_volumes"` // total volumes in the pool
	Disks             int    `json:"disks"`              // volumes per server
	PVSize            uint64 `json:"pv_size"`            // bytes per volume
}

// TotalBytes returns the raw capacity the layout allocates.
func (d StorageDistribution) TotalBytes() uint64 {
	return d.PVSize * uint64(d.PersistentVolumes)
}

// StorageFactor describes one parity level of an erasure-code table.
type StorageFactor struct {
	ErasureCode           string  `json:"erasure_code"`
	StorageFactor         float64 `json:"storage_factor"`
	MaxCapacity           uint64  `json:"max_capacity"`
	MaxFailureTolerations int     `json:"max_failure_tolerations"`
}

// ErasureCodeResult is the usable capacity table for a layout.
type ErasureCodeResult struct {
	StorageFactors []StorageFactor `json:"storage_factors"`
	MaxEC          string          `json:"max_ec"`
	RawCapacity    uint64          `json:"raw_capacity"`
	ErasureCodeSet int             `json:"erasure_code_set"`
	DefaultEC      string          `json:"default_ec"`
}

// Factor returns the entry for the given parity level, if present.
func (r ErasureCodeResult) Factor(ec string) (StorageFactor, bool) {
	for _, f := range r.StorageFactors {
		if f.ErasureCode == ec {
			return f, true
		}
	}
	return StorageFactor{}, false
}
