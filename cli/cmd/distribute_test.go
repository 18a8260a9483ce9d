// ABOUTME: Tests for the distribute command
// ABOUTME: Verifies layout output, integration minimums and rejections

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/markalston/tenant-pool-sizer/backend/models"
)

func setDistributeOpts(t *testing.T, capacity string, nodes, drives int) {
	t.Helper()
	distributeOpts.capacity = capacity
	distributeOpts.nodes = nodes
	distributeOpts.drives = drives
	t.Cleanup(func() {
		distributeOpts.capacity = ""
		distributeOpts.nodes = 4
		distributeOpts.drives = 1
		distributeOpts.clusterLimit = ""
		distributeOpts.minVolume = ""
		distributeOpts.minLabel = "integration"
	})
}

func TestDistribute_Text(t *testing.T) {
	setDistributeOpts(t, "7500Gi", 4, 4)

	var buf bytes.Buffer
	if code := runDistribute(context.Background(), &buf, local()); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}

	for _, want := range []string{"Servers:", "Total volumes:", "16", "468.8 Gi (503,316,480,000 bytes)"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("expected output to contain %q, got:\n%s", want, buf.String())
		}
	}
}

func TestDistribute_JSON(t *testing.T) {
	setDistributeOpts(t, "7500Gi", 4, 4)
	withJSON(t)

	var buf bytes.Buffer
	if code := runDistribute(context.Background(), &buf, local()); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}

	var dist models.StorageDistribution
	if err := json.Unmarshal(buf.Bytes(), &dist); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	want := models.StorageDistribution{Nodes: 4, PersistentVolumes: 16, Disks: 4, PVSize: 503316480000}
	if dist != want {
		t.Errorf("got %+v, want %+v", dist, want)
	}
}

func TestDistribute_IntegrationMinimum(t *testing.T) {
	setDistributeOpts(t, "100Gi", 4, 4)
	distributeOpts.minVolume = "10Gi"
	distributeOpts.minLabel = "ssd"

	var buf bytes.Buffer
	if code := runDistribute(context.Background(), &buf, local()); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if buf.String() != "Error: For the ssd storage type the minimum volume size is 10Gi\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestDistribute_TooFewNodes(t *testing.T) {
	setDistributeOpts(t, "1Ti", 3, 1)

	var buf bytes.Buffer
	if code := runDistribute(context.Background(), &buf, local()); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !bytes.Contains(buf.Bytes(), []byte("cannot be less than 4")) {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestVolumeFloor(t *testing.T) {
	if volumeFloor("", "ssd") != nil {
		t.Error("expected no floor for an empty size")
	}
	got := volumeFloor("100Gi", "ssd")
	if got == nil || *got != (models.VolumeSizeFloor{Label: "ssd", Value: "100", Unit: "Gi"}) {
		t.Errorf("unexpected floor %+v", got)
	}
}
