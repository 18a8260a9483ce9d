// ABOUTME: Builds the declarative pool definition from a computed layout
// ABOUTME: Renders sizes as Kubernetes quantities for the platform API

package services

import (
	"math"
	"strconv"

	"github.com/markalston/tenant-pool-sizer/backend/models"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
)

// DefaultPoolName is used when a plan does not name its pool.
const DefaultPoolName = "pool-0"

// BuildPoolSpec turns a layout and optional memory sizing into a pool
// definition. An empty storageClass leaves the cluster default in place.
func BuildPoolSpec(name string, d models.StorageDistribution, storageClass string, mem *models.MemorySizing) models.PoolSpec {
	if name == "" {
		name = DefaultPoolName
	}

	spec := models.PoolSpec{
		Name:             name,
		Servers:          d.Nodes,
		VolumesPerServer: d.Disks,
		VolumeClaimTemplate: corev1.PersistentVolumeClaimSpec{
			AccessModes: []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce},
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{
					corev1.ResourceStorage: BytesQuantity(d.PVSize),
				},
			},
		},
	}
	if storageClass != "" {
		spec.VolumeClaimTemplate.StorageClassName = &storageClass
	}

	if mem != nil {
		spec.Resources = &corev1.ResourceRequirements{
			Requests: corev1.ResourceList{corev1.ResourceMemory: BytesQuantity(mem.Request)},
			Limits:   corev1.ResourceList{corev1.ResourceMemory: BytesQuantity(mem.Limit)},
		}
	}

	return spec
}

// BytesQuantity renders a byte count as a binary quantity, e.g. "2Gi".
func BytesQuantity(b uint64) resource.Quantity {
	if b > math.MaxInt64 {
		return resource.MustParse(strconv.FormatUint(b, 10))
	}
	return *resource.NewQuantity(int64(b), resource.BinarySI)
}
