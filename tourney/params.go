/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tourney

import (
	"fmt"
	"strings"
)

// FloatingMode selects which member of a score group is preferred when a
// player has to be drawn up or down.
type FloatingMode int

const (
	FloatMiddle FloatingMode = iota
	FloatTop
	FloatBottom
)

func (m FloatingMode) String() string {
	switch m {
	case FloatTop:
		return "top"
	case FloatMiddle:
		return "middle"
	case FloatBottom:
		return "bottom"
	}

	return fmt.Sprintf("FloatingMode(%d)", int(m))
}

// Valid reports whether m is one of the declared modes.
func (m FloatingMode) Valid() bool {
	return m == FloatTop || m == FloatMiddle || m == FloatBottom
}

func (m FloatingMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: floating mode %d", ErrUnknownMode, int(m))
	}

	return []byte(m.String()), nil
}

func (m *FloatingMode) UnmarshalText(text []byte) error {
	v, err := ParseFloatingMode(string(text))
	if err != nil {
		return err
	}
	*m = v

	return nil
}

// ParseFloatingMode converts "top", "middle" or "bottom" to a FloatingMode.
func ParseFloatingMode(s string) (FloatingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return FloatTop, nil
	case "middle":
		return FloatMiddle, nil
	case "bottom":
		return FloatBottom, nil
	}

	return 0, fmt.Errorf("%w: floating mode %q", ErrUnknownMode, s)
}

// SeedingMode selects how players of the same score group are paired.
//
//	cross    - the first player is paired with the middle one
//	fold     - the first player is paired with the last one
//	adjacent - first with second, third with fourth and so on
type SeedingMode int

const (
	SeedCross SeedingMode = iota
	SeedFold
	SeedAdjacent
)

func (m SeedingMode) String() string {
	switch m {
	case SeedCross:
		return "cross"
	case SeedFold:
		return "fold"
	case SeedAdjacent:
		return "adjacent"
	}

	return fmt.Sprintf("SeedingMode(%d)", int(m))
}

// Valid reports whether m is one of the declared modes.
func (m SeedingMode) Valid() bool {
	return m == SeedCross || m == SeedFold || m == SeedAdjacent
}

func (m SeedingMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: seeding mode %d", ErrUnknownMode, int(m))
	}

	return []byte(m.String()), nil
}

func (m *SeedingMode) UnmarshalText(text []byte) error {
	v, err := ParseSeedingMode(string(text))
	if err != nil {
		return err
	}
	*m = v

	return nil
}

// ParseSeedingMode converts "cross", "fold" or "adjacent" to a SeedingMode.
func ParseSeedingMode(s string) (SeedingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cross":
		return SeedCross, nil
	case "fold":
		return SeedFold, nil
	case "adjacent":
		return SeedAdjacent, nil
	}

	return 0, fmt.Errorf("%w: seeding mode %q", ErrUnknownMode, s)
}

// Parameters is the pairing policy for a tournament.
type Parameters struct {
	// HandicapBar is the rank below which rank differences are no longer
	// compensated by stones.
	HandicapBar int `json:"handicap_bar" yaml:"handicap_bar"`
	// HandicapCorrection is added to the raw rank difference (usually <= 0).
	HandicapCorrection int `json:"handicap_correction" yaml:"handicap_correction"`
	HandicapMax        int `json:"handicap_max" yaml:"handicap_max"`

	DUDDCompensate bool         `json:"dudd_compensate" yaml:"dudd_compensate"`
	FloatUpMode    FloatingMode `json:"float_up_mode" yaml:"float_up_mode"`
	FloatDownMode  FloatingMode `json:"float_down_mode" yaml:"float_down_mode"`
	SeedingMode    SeedingMode  `json:"seeding_mode" yaml:"seeding_mode"`
}

// DefaultParameters returns even games, draw-up/down compensation,
// middle floating in both directions and cross seeding.
func DefaultParameters() Parameters {
	return Parameters{
		DUDDCompensate: true,
		FloatUpMode:    FloatMiddle,
		FloatDownMode:  FloatMiddle,
		SeedingMode:    SeedCross,
	}
}

// Validate checks the parameter set once before pairing starts.
func (p Parameters) Validate() error {
	if p.HandicapMax < 0 {
		return fmt.Errorf("%w: handicap max %d is negative", ErrInvalidInput,
			p.HandicapMax)
	}
	if !p.FloatUpMode.Valid() {
		return fmt.Errorf("%w: float up mode %d", ErrUnknownMode,
			int(p.FloatUpMode))
	}
	if !p.FloatDownMode.Valid() {
		return fmt.Errorf("%w: float down mode %d", ErrUnknownMode,
			int(p.FloatDownMode))
	}
	if !p.SeedingMode.Valid() {
		return fmt.Errorf("%w: seeding mode %d", ErrUnknownMode,
			int(p.SeedingMode))
	}

	return nil
}
