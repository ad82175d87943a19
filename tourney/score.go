/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tourney

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Score counts half points. A win is 2, a draw is 1 and a skipped round
// is worth 1 as well, so every comparison between scores is exact.
type Score int

// Points returns the Score for a point value such as 3 or 3.5.
func Points(p float64) (Score, error) {
	x2 := p * 2
	if math.IsNaN(x2) || math.IsInf(x2, 0) || x2 != math.Trunc(x2) {
		return 0, fmt.Errorf("%w: score %v is not a multiple of 0.5",
			ErrInvalidInput, p)
	}

	return Score(x2), nil
}

// Float returns the score in points.
func (s Score) Float() float64 {
	return float64(s) / 2
}

func (s Score) String() string {
	whole := int(s) / 2
	if int(s)%2 == 0 {
		return strconv.Itoa(whole)
	}
	if whole == 0 {
		if s < 0 {
			return "-½"
		}
		return "½"
	}

	return fmt.Sprintf("%d½", whole)
}

func (s Score) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(s.Float(), 'f', -1, 64)), nil
}

func (s *Score) UnmarshalJSON(data []byte) error {
	var p float64
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("%w: score: %v", ErrInvalidInput, err)
	}
	v, err := Points(p)
	if err != nil {
		return err
	}
	*s = v

	return nil
}
