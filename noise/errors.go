// SPDX-License-Identifier: MIT

package noise

import "errors"

var (
	// ErrInvalidDimensions indicates a non-positive width or height.
	ErrInvalidDimensions = errors.New("noise: width and height must be > 0")

	// ErrUnknownNormalizeMode indicates an unrecognised normalize mode name.
	ErrUnknownNormalizeMode = errors.New("noise: unknown normalize mode")
)
