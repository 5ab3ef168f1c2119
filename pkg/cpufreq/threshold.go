package cpufreq

import (
	mceerrors "github.com/nemomobile/mce-buildtools/pkg/errors"
)

// Thresholds computes the frequency range for a percentage scale.
//
// Max is always the last frequency. Min is freqs[(M-1)*percent/100] using
// integer truncation, so the result snaps to a step the hardware exposes.
func Thresholds(freqs []int64, percent int) (Threshold, error) {
	if len(freqs) == 0 {
		return Threshold{}, mceerrors.New(mceerrors.ErrCodeInternal, "empty frequency list")
	}
	if percent < 0 || percent > 100 {
		return Threshold{}, mceerrors.WrapWithContext(mceerrors.ErrCodeInvalidRequest,
			"percentage out of range", nil, map[string]any{"percent": percent})
	}

	last := len(freqs) - 1
	return Threshold{
		Min: freqs[last*percent/100],
		Max: freqs[last],
	}, nil
}
