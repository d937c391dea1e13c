// SPDX-License-Identifier: MIT

package runway

import "errors"

var (
	// ErrFractionRange indicates a position or length fraction outside [0,1].
	ErrFractionRange = errors.New("runway: position and length fractions must be within [0,1]")

	// ErrSmoothRadius indicates SmoothRadius outside [MinSmoothRadius, MaxSmoothRadius].
	ErrSmoothRadius = errors.New("runway: smooth radius out of range")

	// ErrSmoothIntensity indicates SmoothIntensity outside [0, MaxSmoothIntensity].
	ErrSmoothIntensity = errors.New("runway: smooth intensity out of range")
)
