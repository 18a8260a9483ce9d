// ABOUTME: Tests for the pool planner pipeline
// ABOUTME: Validates end-to-end plans, parity selection and error propagation

package services

import (
	"errors"
	"testing"

	"github.com/markalston/tenant-pool-sizer/backend/models"
	corev1 "k8s.io/api/core/v1"
)

func TestPlan_DefaultParity(t *testing.T) {
	// 1 TiB over 4 servers x 4 drives: 16 x 64 GiB, EC:4 on a 16-drive set
	planner := NewPoolPlanner()
	plan, err := planner.Plan(models.PlanRequest{
		Capacity:        models.Capacity{Value: "1", Unit: "TiB"},
		Nodes:           4,
		DrivesPerServer: 4,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if plan.CapacityBytes != TiB {
		t.Errorf("Expected capacity %d, got %d", TiB, plan.CapacityBytes)
	}
	if plan.Distribution.PersistentVolumes != 16 || plan.Distribution.PVSize != 64*GiB {
		t.Errorf("Unexpected distribution %+v", plan.Distribution)
	}
	if plan.SelectedEC != "EC:4" {
		t.Errorf("Expected EC:4, got %s", plan.SelectedEC)
	}
	if plan.ErasureCode.ErasureCodeSet != 16 {
		t.Errorf("Expected erasure code set 16, got %d", plan.ErasureCode.ErasureCodeSet)
	}
	if plan.UsableCapacity != 768*GiB {
		t.Errorf("Expected usable capacity %d, got %d", 768*GiB, plan.UsableCapacity)
	}
	if plan.Tolerations != 4 {
		t.Errorf("Expected 4 tolerated failures, got %d", plan.Tolerations)
	}
	if plan.Memory != nil {
		t.Errorf("Expected no memory sizing, got %+v", plan.Memory)
	}

	expectedSummary := models.PlanSummary{
		RawCapacity:    "1.0 TiB",
		UsableCapacity: "768.0 GiB",
		VolumeSize:     "64.0 GiB",
	}
	if plan.Summary != expectedSummary {
		t.Errorf("Expected summary %+v, got %+v", expectedSummary, plan.Summary)
	}

	if plan.Pool.Name != DefaultPoolName {
		t.Errorf("Expected pool name %s, got %s", DefaultPoolName, plan.Pool.Name)
	}
	if plan.Pool.Servers != 4 || plan.Pool.VolumesPerServer != 4 {
		t.Errorf("Unexpected pool shape %d x %d", plan.Pool.Servers, plan.Pool.VolumesPerServer)
	}
	storage := plan.Pool.VolumeClaimTemplate.Resources.Requests[corev1.ResourceStorage]
	if storage.String() != "64Gi" {
		t.Errorf("Expected volume request 64Gi, got %s", storage.String())
	}
}

func TestPlan_WithMemory(t *testing.T) {
	planner := NewPoolPlanner()
	plan, err := planner.Plan(models.PlanRequest{
		PoolName:                "fast",
		Capacity:                models.Capacity{Value: "1", Unit: "TiB"},
		Nodes:                   4,
		DrivesPerServer:         4,
		StorageClass:            "local-nvme",
		MemoryGi:                4,
		MaxAvailableMemoryBytes: 32 * GiB,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if plan.Memory == nil {
		t.Fatal("Expected memory sizing")
	}
	if plan.Memory.Request != 4*GiB || plan.Memory.Limit != 32*GiB {
		t.Errorf("Unexpected memory sizing %+v", *plan.Memory)
	}

	if plan.Pool.Resources == nil {
		t.Fatal("Expected pool resources")
	}
	request := plan.Pool.Resources.Requests[corev1.ResourceMemory]
	limit := plan.Pool.Resources.Limits[corev1.ResourceMemory]
	if request.String() != "4Gi" {
		t.Errorf("Expected memory request 4Gi, got %s", request.String())
	}
	if limit.String() != "32Gi" {
		t.Errorf("Expected memory limit 32Gi, got %s", limit.String())
	}
	if sc := plan.Pool.VolumeClaimTemplate.StorageClassName; sc == nil || *sc != "local-nvme" {
		t.Errorf("Expected storage class local-nvme, got %v", sc)
	}
}

func TestPlan_SuppliedParityLevels(t *testing.T) {
	planner := NewPoolPlanner()
	plan, err := planner.Plan(models.PlanRequest{
		Capacity:        models.Capacity{Value: "1", Unit: "TiB"},
		Nodes:           4,
		DrivesPerServer: 4,
		ParityLevels:    []string{"EC:2"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if plan.SelectedEC != "EC:2" {
		t.Errorf("Expected EC:2, got %s", plan.SelectedEC)
	}
	if plan.UsableCapacity != 512*GiB {
		t.Errorf("Expected usable capacity %d, got %d", 512*GiB, plan.UsableCapacity)
	}
	if plan.Tolerations != 8 {
		t.Errorf("Expected 8 tolerated failures, got %d", plan.Tolerations)
	}
}

func TestPlan_ConfiguredDefaultParity(t *testing.T) {
	req := models.PlanRequest{
		Capacity:        models.Capacity{Value: "1", Unit: "TiB"},
		Nodes:           4,
		DrivesPerServer: 4,
	}

	plan, err := NewPoolPlanner().WithDefaultParity("EC:6").Plan(req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if plan.SelectedEC != "EC:6" {
		t.Errorf("Expected configured default EC:6, got %s", plan.SelectedEC)
	}

	// A configured level missing from the table falls back to the table default
	plan, err = NewPoolPlanner().WithDefaultParity("EC:12").Plan(req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if plan.SelectedEC != DefaultErasureCode {
		t.Errorf("Expected fallback %s, got %s", DefaultErasureCode, plan.SelectedEC)
	}
}

func TestPlan_Errors(t *testing.T) {
	tests := []struct {
		name  string
		req   models.PlanRequest
		cause error
	}{
		{
			name:  "pool too small",
			req:   models.PlanRequest{Capacity: models.Capacity{Value: "0.5", Unit: "GiB"}, Nodes: 4, DrivesPerServer: 4},
			cause: ErrPoolTooSmall,
		},
		{
			name:  "unavailable erasure code",
			req:   models.PlanRequest{Capacity: models.Capacity{Value: "1", Unit: "TiB"}, Nodes: 4, DrivesPerServer: 4, ErasureCode: "EC:9"},
			cause: ErrInvalidParity,
		},
		{
			name:  "memory sizing failure",
			req:   models.PlanRequest{Capacity: models.Capacity{Value: "1", Unit: "TiB"}, Nodes: 4, DrivesPerServer: 4, MemoryGi: 64, MaxAvailableMemoryBytes: 8 * GiB},
			cause: ErrMemoryOverLimit,
		},
		{
			name:  "no erasure set",
			req:   models.PlanRequest{Capacity: models.Capacity{Value: "1", Unit: "TiB"}, Nodes: 17, DrivesPerServer: 1},
			cause: ErrTooFewDrives,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPoolPlanner().Plan(tt.req)
			if !errors.Is(err, tt.cause) {
				t.Errorf("Expected %v, got %v", tt.cause, err)
			}
		})
	}
}
