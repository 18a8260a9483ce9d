// ABOUTME: Erasure-code parity calculator for pool layouts
// ABOUTME: Computes storage factor, usable capacity and failure tolerance per parity

package services

import (
	"fmt"
	"math/bits"
	"slices"
	"strconv"
	"strings"

	"github.com/klauspost/reedsolomon"
	"github.com/markalston/tenant-pool-sizer/backend/models"
)

// DefaultErasureCode is preferred whenever the platform offers it.
const DefaultErasureCode = "EC:4"

const parityPrefix = "EC:"

// ParseParity returns the parity drive count of a level such as "EC:4".
func ParseParity(level string) (int, error) {
	n, ok := strings.CutPrefix(level, parityPrefix)
	if !ok {
		return 0, invalid(ErrInvalidParity, fmt.Sprintf("%q is not a valid erasure code parity", level))
	}
	parity, err := strconv.Atoi(n)
	if err != nil || parity < 0 {
		return 0, invalid(ErrInvalidParity, fmt.Sprintf("%q is not a valid erasure code parity", level))
	}
	return parity, nil
}

// FormatParity renders a parity drive count as "EC:<n>".
func FormatParity(parity int) string {
	return parityPrefix + strconv.Itoa(parity)
}

// ErasureCodeCalc builds the usable capacity table for a layout.
//
// levels is the platform's list of valid parity levels, best first. The
// stripe set is twice the parity of the first level. Entries keep the input
// order. totalNodes does not change the table.
//
// Usable capacity and tolerations use exact integer math,
// floor(v * data / stripeSet), rather than dividing by the float storage
// factor. The two can differ by one where the float quotient lands just
// below a whole number.
func ErasureCodeCalc(levels []string, totalDisks int, pvSize uint64, totalNodes int) (models.ErasureCodeResult, error) {
	if len(levels) == 0 {
		return models.ErasureCodeResult{}, invalid(ErrNoParityLevels, "There are no erasure code parity levels available for this configuration")
	}
	if totalDisks < 0 || totalNodes < 0 {
		return models.ErasureCodeResult{}, invalid(ErrInvalidData, invalidDataMessage)
	}

	hi, totalStorage := bits.Mul64(uint64(totalDisks), pvSize)
	if hi != 0 {
		return models.ErasureCodeResult{}, invalid(ErrCapacityOverflow, "The raw capacity of this layout is larger than the largest supported capacity")
	}

	maxEC := levels[0]
	maxParity, err := ParseParity(maxEC)
	if err != nil {
		return models.ErasureCodeResult{}, err
	}
	stripeSet := maxParity * 2

	factors := make([]models.StorageFactor, 0, len(levels))
	for _, level := range levels {
		parity, err := ParseParity(level)
		if err != nil {
			return models.ErasureCodeResult{}, err
		}
		if err := checkEncodable(stripeSet-parity, parity); err != nil {
			return models.ErasureCodeResult{}, invalid(ErrInvalidParity,
				fmt.Sprintf("%s cannot be used with an erasure set of %d drives", level, stripeSet))
		}

		data := uint64(stripeSet - parity)
		factors = append(factors, models.StorageFactor{
			ErasureCode:           level,
			StorageFactor:         float64(stripeSet) / float64(data),
			MaxCapacity:           scaleDown(totalStorage, data, uint64(stripeSet)),
			MaxFailureTolerations: totalDisks - int(scaleDown(uint64(totalDisks), data, uint64(stripeSet))),
		})
	}

	defaultEC := maxEC
	if slices.Contains(levels, DefaultErasureCode) {
		defaultEC = DefaultErasureCode
	}

	return models.ErasureCodeResult{
		StorageFactors: factors,
		MaxEC:          maxEC,
		RawCapacity:    totalStorage,
		ErasureCodeSet: stripeSet,
		DefaultEC:      defaultEC,
	}, nil
}

// scaleDown returns floor(v * num / den) without intermediate overflow.
// num must not exceed den.
func scaleDown(v, num, den uint64) uint64 {
	hi, lo := bits.Mul64(v, num)
	q, _ := bits.Div64(hi, lo, den)
	return q
}

// maxCodecShards is the largest stripe set checked against the codec.
// Larger sets keep their arithmetic and skip the codec check.
const maxCodecShards = 256

// checkEncodable reports whether a Reed-Solomon code with the given shard
// counts exists. Shard counts above maxCodecShards are not checked.
func checkEncodable(dataShards, parityShards int) error {
	if dataShards <= 0 || parityShards < 0 {
		return reedsolomon.ErrInvShardNum
	}
	if dataShards+parityShards > maxCodecShards {
		return nil
	}
	_, err := reedsolomon.New(dataShards, parityShards)
	return err
}
