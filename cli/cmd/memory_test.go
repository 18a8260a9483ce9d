// ABOUTME: Tests for the memory command
// ABOUTME: Verifies memory request/limit output and rejection exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/markalston/tenant-pool-sizer/backend/models"
)

func setMemoryOpts(t *testing.T, memoryGi float64, capacity, available string) {
	t.Helper()
	memoryOpts.memoryGi = memoryGi
	memoryOpts.capacity = capacity
	memoryOpts.available = available
	t.Cleanup(func() {
		memoryOpts.memoryGi = 0
		memoryOpts.capacity = ""
		memoryOpts.available = ""
	})
}

func TestMemory_TierRaisesLimit(t *testing.T) {
	setMemoryOpts(t, 4, "10Ti", "8Gi")

	var buf bytes.Buffer
	if code := runMemory(context.Background(), &buf, local()); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}

	for _, want := range []string{"Request:", "4.0 Gi (4,294,967,296 bytes)", "Limit:", "16.0 Gi (17,179,869,184 bytes)"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("expected output to contain %q, got:\n%s", want, buf.String())
		}
	}
}

func TestMemory_JSON(t *testing.T) {
	setMemoryOpts(t, 4, "", "16Gi")
	withJSON(t)

	var buf bytes.Buffer
	if code := runMemory(context.Background(), &buf, local()); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}

	var sizing models.MemorySizing
	if err := json.Unmarshal(buf.Bytes(), &sizing); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if sizing.Request != 4<<30 || sizing.Limit != 16<<30 {
		t.Errorf("unexpected sizing %+v", sizing)
	}
}

func TestMemory_Rejected(t *testing.T) {
	tests := []struct {
		name      string
		memoryGi  float64
		available string
		want      string
	}{
		{"no memory", 4, "", "There is no memory available for the selected number of nodes"},
		{"too little available", 4, "1Gi", "There are not enough memory resources available"},
		{"request too low", 1, "16Gi", "The requested memory size must be greater than 2Gi"},
		{"over available", 32, "16Gi", "The requested memory is greater than the max available memory for the selected number of nodes"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setMemoryOpts(t, tc.memoryGi, "", tc.available)

			var buf bytes.Buffer
			if code := runMemory(context.Background(), &buf, local()); code != 1 {
				t.Errorf("expected exit code 1, got %d", code)
			}
			if buf.String() != "Error: "+tc.want+"\n" {
				t.Errorf("unexpected output %q", buf.String())
			}
		})
	}
}

func TestMemory_RemoteRejected(t *testing.T) {
	setMemoryOpts(t, 1, "", "16Gi")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.MemorySizingRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.MaxAvailableMemoryBytes != 16<<30 || req.TotalCapacityBytes != "0" {
			t.Errorf("unexpected request %+v", req)
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(models.MemorySizingResponse{
			Error: "The requested memory size must be greater than 2Gi",
		})
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	if code := runMemory(context.Background(), &buf, newSizer()); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !bytes.Contains(buf.Bytes(), []byte("greater than 2Gi")) {
		t.Errorf("unexpected output %q", buf.String())
	}
}
