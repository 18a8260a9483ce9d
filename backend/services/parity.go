// ABOUTME: Catalog of erasure-code parity levels valid for a server layout
// ABOUTME: Chooses the erasure set size and lists parities best first

package services

import "fmt"

// Erasure set size bounds, in drives.
const (
	MinErasureSetSize = 4
	MaxErasureSetSize = 16
	minParity         = 2
)

// ErasureSetSize returns the largest set size in [MinErasureSetSize,
// MaxErasureSetSize] that divides the drive count and spreads evenly over
// the servers. It returns zero when no size fits.
func ErasureSetSize(nodes, drivesPerNode int) int {
	if nodes <= 0 || drivesPerNode <= 0 {
		return 0
	}
	total := nodes * drivesPerNode
	for size := MaxErasureSetSize; size >= MinErasureSetSize; size-- {
		if total%size != 0 {
			continue
		}
		if size%nodes == 0 || nodes%size == 0 {
			return size
		}
	}
	return 0
}

// ParityLevels lists the parity levels for a layout from the highest
// (half the erasure set) down to EC:2.
func ParityLevels(nodes, drivesPerNode int) ([]string, error) {
	if nodes <= 0 || drivesPerNode <= 0 {
		return nil, invalid(ErrInvalidData, invalidDataMessage)
	}

	size := ErasureSetSize(nodes, drivesPerNode)
	if size == 0 {
		return nil, invalid(ErrTooFewDrives,
			fmt.Sprintf("No erasure set fits %d servers with %d drives each", nodes, drivesPerNode))
	}

	var levels []string
	for parity := size / 2; parity >= minParity; parity-- {
		if checkEncodable(size-parity, parity) != nil {
			continue
		}
		levels = append(levels, FormatParity(parity))
	}
	if len(levels) == 0 {
		return nil, invalid(ErrNoParityLevels, "There are no erasure code parity levels available for this configuration")
	}
	return levels, nil
}
