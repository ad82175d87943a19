/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tourney

import "errors"

var (
	// ErrInvalidInput is wrapped by every error caused by structurally
	// invalid caller data (odd player sets, inverted rank pairs, unknown
	// player ids, malformed scores).
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownMode is wrapped by configuration errors naming a floating or
	// seeding mode that does not exist.
	ErrUnknownMode = errors.New("unknown mode")
)
