// ABOUTME: Tests for the parity level catalog
// ABOUTME: Verifies erasure set selection and best-first parity listing

package services

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestErasureSetSize(t *testing.T) {
	tests := []struct {
		nodes    int
		drives   int
		expected int
	}{
		{4, 4, 16},
		{4, 1, 4},
		{4, 3, 12},
		{5, 4, 10},
		{6, 1, 6},
		{7, 2, 14},
		{8, 8, 16},
		{32, 1, 16},
		{1, 4, 4},
		{3, 1, 0},
		{0, 4, 0},
		{4, 0, 0},
	}

	for _, tt := range tests {
		if got := ErasureSetSize(tt.nodes, tt.drives); got != tt.expected {
			t.Errorf("ErasureSetSize(%d, %d) = %d, expected %d", tt.nodes, tt.drives, got, tt.expected)
		}
	}
}

func TestParityLevels(t *testing.T) {
	tests := []struct {
		name     string
		nodes    int
		drives   int
		expected []string
	}{
		{"sixteen drive set", 4, 4, []string{"EC:8", "EC:7", "EC:6", "EC:5", "EC:4", "EC:3", "EC:2"}},
		{"four drive set", 4, 1, []string{"EC:2"}},
		{"ten drive set", 5, 4, []string{"EC:5", "EC:4", "EC:3", "EC:2"}},
		{"six drive set", 6, 1, []string{"EC:3", "EC:2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			levels, err := ParityLevels(tt.nodes, tt.drives)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.expected, levels); diff != "" {
				t.Errorf("Unexpected levels (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParityLevels_Errors(t *testing.T) {
	if _, err := ParityLevels(3, 1); !errors.Is(err, ErrTooFewDrives) {
		t.Errorf("Expected ErrTooFewDrives for 3 drives, got %v", err)
	}
	if _, err := ParityLevels(0, 4); !errors.Is(err, ErrInvalidData) {
		t.Errorf("Expected ErrInvalidData for zero nodes, got %v", err)
	}
	if _, err := ParityLevels(4, -1); !errors.Is(err, ErrInvalidData) {
		t.Errorf("Expected ErrInvalidData for negative drives, got %v", err)
	}
}

func TestParityLevels_FeedErasureCodeCalc(t *testing.T) {
	levels, err := ParityLevels(4, 4)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	result, err := ErasureCodeCalc(levels, 16, 64*GiB, 4)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.ErasureCodeSet != 16 {
		t.Errorf("Expected erasure code set 16, got %d", result.ErasureCodeSet)
	}
	if result.DefaultEC != DefaultErasureCode {
		t.Errorf("Expected default %s, got %s", DefaultErasureCode, result.DefaultEC)
	}
}
