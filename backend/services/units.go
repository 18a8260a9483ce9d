// ABOUTME: Byte unit conversion between human value/unit pairs and raw bytes
// ABOUTME: Supports IEC units (KiB, MiB...) and platform quantities (Ki, Mi...)

package services

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/markalston/tenant-pool-sizer/backend/models"
)

// Binary size constants
const (
	KiB uint64 = 1 << (10 * (iota + 1))
	MiB
	GiB
	TiB
	PiB
	EiB
)

var (
	genericUnits  = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB", "ZiB", "YiB"}
	platformUnits = []string{"B", "Ki", "Mi", "Gi", "Ti", "Pi", "Ei"}
)

// twoPow64 is the first float64 value that no longer fits in a uint64.
const twoPow64 = float64(1<<63) * 2

// numericPrefix matches the leading number of a value such as "12.5abc"
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

func unitTable(platform bool) []string {
	if platform {
		return platformUnits
	}
	return genericUnits
}

// UnitIndex returns the power of 1024 for unit in the selected table, or -1
// when the unit is not in the table. Matching ignores case.
func UnitIndex(unit string, platform bool) int {
	for i, u := range unitTable(platform) {
		if strings.EqualFold(u, unit) {
			return i
		}
	}
	return -1
}

// BytesFromValueAndUnit converts a value/unit pair to bytes.
//
// Values that do not parse, and negative values, count as zero. An unknown
// unit yields zero as well. The only error is a result too large for a
// uint64.
func BytesFromValueAndUnit(value, unit string, platform bool) (uint64, error) {
	idx := UnitIndex(unit, platform)
	if idx < 0 {
		return 0, nil
	}

	v := parseLenientFloat(value)
	if v <= 0 {
		return 0, nil
	}

	total := math.Round(math.Ldexp(v, 10*idx))
	if total >= twoPow64 {
		return 0, invalid(ErrCapacityOverflow,
			fmt.Sprintf("%s %s is larger than the largest supported capacity", value, unit))
	}
	return uint64(total), nil
}

// CapacityBytes converts a capacity using the IEC table, falling back to the
// platform table for units such as "Gi".
func CapacityBytes(c models.Capacity) (uint64, error) {
	if UnitIndex(c.Unit, false) < 0 && UnitIndex(c.Unit, true) >= 0 {
		return BytesFromValueAndUnit(c.Value, c.Unit, true)
	}
	return BytesFromValueAndUnit(c.Value, c.Unit, false)
}

// HumanStringFromBytes formats bytes with one decimal place and the largest
// unit that keeps the value below 1024, e.g. "7.3 TiB" or "512.0 Mi".
func HumanStringFromBytes(bytes uint64, platform bool) string {
	table := unitTable(platform)

	v := float64(bytes)
	i := 0
	for v >= 1024 && i < len(table)-1 {
		v /= 1024
		i++
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + " " + table[i]
}

// ParseQuantity splits a size such as "7500Gi" or "10 TiB" into its value
// and unit. A bare number is taken as bytes.
func ParseQuantity(s string) models.Capacity {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, unicode.IsLetter)
	if i < 0 {
		return models.Capacity{Value: s, Unit: "B"}
	}
	return models.Capacity{
		Value: strings.TrimSpace(s[:i]),
		Unit:  strings.TrimSpace(s[i:]),
	}
}

// parseLenientFloat reads the leading number of s. Anything unparseable,
// including NaN, is zero.
func parseLenientFloat(s string) float64 {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		m := numericPrefix.FindString(s)
		if m == "" {
			return 0
		}
		if v, err = strconv.ParseFloat(m, 64); err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0
		}
	}
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// parseLeadingUint reads the leading decimal digits of s. Values too large
// for a uint64 saturate.
func parseLeadingUint(s string) uint64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	v, err := strconv.ParseUint(s[:end], 10, 64)
	if err != nil {
		return math.MaxUint64
	}
	return v
}
