// ABOUTME: Input validation for plan requests before they reach the planner
// ABOUTME: Checks pool and storage class names and parity level syntax

package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/markalston/tenant-pool-sizer/backend/models"
	"k8s.io/apimachinery/pkg/util/validation"
)

// parityPattern matches parity levels such as "EC:4"
var parityPattern = regexp.MustCompile(`^EC:[0-9]+$`)

// sanitizeForLog removes control characters from strings to prevent log injection
// when including user input in error messages
func sanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1 // Remove control characters
		}
		return r
	}, s)
}

// ValidatePoolName checks that a pool name is usable as a resource name.
// An empty name is allowed and replaced by DefaultPoolName.
func ValidatePoolName(name string) error {
	if name == "" {
		return nil
	}
	if errs := validation.IsDNS1123Label(name); len(errs) > 0 {
		return fmt.Errorf("invalid pool name %q: %s", sanitizeForLog(name), strings.Join(errs, "; "))
	}
	return nil
}

// ValidateStorageClass checks a storage class name. Empty means the
// cluster default.
func ValidateStorageClass(name string) error {
	if name == "" {
		return nil
	}
	if errs := validation.IsDNS1123Subdomain(name); len(errs) > 0 {
		return fmt.Errorf("invalid storage class %q: %s", sanitizeForLog(name), strings.Join(errs, "; "))
	}
	return nil
}

// ValidateParityLevel checks the "EC:<n>" syntax of a parity level.
func ValidateParityLevel(level string) error {
	if !parityPattern.MatchString(level) {
		return fmt.Errorf("invalid parity level format: %s", sanitizeForLog(level))
	}
	return nil
}

// ValidatePlanRequest checks the naming and syntax of a plan request.
// Sizing rules are left to the planner.
func ValidatePlanRequest(req models.PlanRequest) error {
	if err := ValidatePoolName(req.PoolName); err != nil {
		return err
	}
	if err := ValidateStorageClass(req.StorageClass); err != nil {
		return err
	}
	for _, level := range req.ParityLevels {
		if err := ValidateParityLevel(level); err != nil {
			return err
		}
	}
	if req.ErasureCode != "" {
		if err := ValidateParityLevel(req.ErasureCode); err != nil {
			return err
		}
	}
	return nil
}
