/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikeb26/mcmahon-pairings/tourney"
)

func handicapParams(bar, correction, maxStones int) tourney.Parameters {
	p := tourney.DefaultParameters()
	p.HandicapBar = bar
	p.HandicapCorrection = correction
	p.HandicapMax = maxStones
	return p
}

func TestHandicap(t *testing.T) {
	tests := []struct {
		name                      string
		lower, higher             int
		bar, correction, maxStone int
		want                      int
	}{
		{"3k vs 3d without handicap", -3, 2, 0, 0, 0, 0},
		{"3k vs 3d", -3, 2, -30, 0, 9, 5},
		{"3k vs 3d with 2k bar", -3, 2, -2, 0, 9, 4},
		{"3k vs 3d with correction", -3, 2, -30, -1, 9, 4},
		{"3k vs 3d capped", -3, 2, -30, 0, 4, 4},
		{"equal ranks", 1, 1, 0, 0, 9, 0},
		{"equal ranks below bar", -10, -10, 0, 0, 9, 0},
		{"both below bar", -10, -5, 0, 0, 9, 0},
		{"3k vs 3d with 1d bar", -3, 2, 0, 0, 9, 2},
		{"correction never goes negative", -1, 0, -30, -3, 9, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Handicap(tt.lower, tt.higher,
				handicapParams(tt.bar, tt.correction, tt.maxStone))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandicapInvertedRanks(t *testing.T) {
	_, err := Handicap(2, -3, handicapParams(-30, 0, 9))
	require.ErrorIs(t, err, tourney.ErrInvalidInput)
}

func TestSeedingCoefficient(t *testing.T) {
	type seedCase struct {
		i, j, size int
		want       float64
	}
	tests := map[tourney.SeedingMode][]seedCase{
		tourney.SeedFold: {
			{0, 1, 2, 1},
			{0, 1, 5, 0}, {0, 2, 5, 0.25}, {0, 3, 5, 0.5}, {0, 4, 5, 0.75},
			{1, 2, 5, 0.5}, {1, 3, 5, 0.75}, {1, 4, 5, 1}, {2, 3, 5, 1},
			{2, 4, 5, 0.75}, {3, 4, 5, 0.5},
			{0, 1, 6, 0}, {0, 2, 6, 0.25}, {0, 3, 6, 0.5}, {0, 4, 6, 0.75},
			{0, 5, 6, 1}, {1, 2, 6, 0.5}, {1, 3, 6, 0.75}, {1, 4, 6, 1},
			{1, 5, 6, 0.75}, {2, 3, 6, 1}, {2, 4, 6, 0.75}, {2, 5, 6, 0.5},
			{3, 4, 6, 0.5}, {3, 5, 6, 0.25}, {4, 5, 6, 0},
		},
		tourney.SeedAdjacent: {
			{0, 1, 2, 1},
			{0, 1, 6, 1}, {0, 2, 6, 0.75}, {0, 3, 6, 0.5}, {0, 4, 6, 0.25},
			{0, 5, 6, 0}, {1, 2, 6, 1}, {1, 3, 6, 0.75}, {1, 4, 6, 0.5},
			{1, 5, 6, 0.25}, {2, 3, 6, 1}, {2, 4, 6, 0.75}, {2, 5, 6, 0.5},
			{3, 4, 6, 1}, {3, 5, 6, 0.75}, {4, 5, 6, 1},
			{0, 1, 5, 1}, {0, 2, 5, 0.75}, {0, 3, 5, 0.5}, {0, 4, 5, 0.25},
			{1, 2, 5, 1}, {1, 3, 5, 0.75}, {1, 4, 5, 0.5}, {2, 3, 5, 1},
			{2, 4, 5, 0.75}, {3, 4, 5, 1},
		},
		tourney.SeedCross: {
			{0, 1, 2, 1},
			{0, 1, 6, 0}, {0, 2, 6, 0.5}, {0, 3, 6, 1}, {0, 4, 6, 0.5},
			{0, 5, 6, 0}, {1, 2, 6, 0}, {1, 3, 6, 0.5}, {1, 4, 6, 1},
			{1, 5, 6, 0.5}, {2, 3, 6, 0}, {2, 4, 6, 0.5}, {2, 5, 6, 1},
			{3, 4, 6, 0}, {3, 5, 6, 0.5}, {4, 5, 6, 0},
			{0, 1, 5, 0}, {0, 2, 5, 0.5}, {0, 3, 5, 1}, {0, 4, 5, 0.5},
			{1, 2, 5, 0}, {1, 3, 5, 0.5}, {1, 4, 5, 1}, {2, 3, 5, 0},
			{2, 4, 5, 0.5}, {3, 4, 5, 0},
		},
	}
	for mode, cases := range tests {
		for _, tc := range cases {
			name := fmt.Sprintf("%v/%v-%v-of-%v", mode, tc.i, tc.j, tc.size)
			t.Run(name, func(t *testing.T) {
				got, err := SeedingCoefficient(tc.i, tc.j, tc.size, mode)
				require.NoError(t, err)
				assert.InDelta(t, tc.want, got, 1e-9)

				swapped, err := SeedingCoefficient(tc.j, tc.i, tc.size, mode)
				require.NoError(t, err)
				assert.InDelta(t, got, swapped, 1e-9)
			})
		}
	}
}

func TestSeedingCoefficientErrors(t *testing.T) {
	_, err := SeedingCoefficient(0, 5, 5, tourney.SeedCross)
	require.ErrorIs(t, err, tourney.ErrInvalidInput)
	_, err = SeedingCoefficient(-1, 2, 5, tourney.SeedFold)
	require.ErrorIs(t, err, tourney.ErrInvalidInput)
	_, err = SeedingCoefficient(2, 2, 5, tourney.SeedFold)
	require.ErrorIs(t, err, tourney.ErrInvalidInput)
	_, err = SeedingCoefficient(0, 1, 4, tourney.SeedingMode(7))
	require.ErrorIs(t, err, tourney.ErrUnknownMode)
}

func TestFloatingCoefficient(t *testing.T) {
	type floatCase struct {
		place, size int
		want        float64
	}
	tests := map[tourney.FloatingMode][]floatCase{
		tourney.FloatBottom: {
			{0, 1, 1}, {3, 4, 1}, {2, 4, 2.0 / 3}, {1, 4, 1.0 / 3}, {0, 4, 0},
			{4, 5, 1}, {3, 5, 0.75}, {2, 5, 0.5}, {1, 5, 0.25}, {0, 5, 0},
			{5, 6, 1}, {4, 6, 0.8}, {3, 6, 0.6}, {2, 6, 0.4}, {1, 6, 0.2},
			{0, 6, 0},
		},
		tourney.FloatTop: {
			{0, 1, 1}, {0, 4, 1}, {1, 4, 2.0 / 3}, {2, 4, 1.0 / 3}, {3, 4, 0},
			{0, 5, 1}, {1, 5, 0.75}, {2, 5, 0.5}, {3, 5, 0.25}, {4, 5, 0},
			{0, 6, 1}, {1, 6, 0.8}, {2, 6, 0.6}, {3, 6, 0.4}, {4, 6, 0.2},
			{5, 6, 0},
		},
		tourney.FloatMiddle: {
			{0, 1, 1}, {0, 2, 1}, {1, 2, 1},
			{0, 4, 0}, {1, 4, 1}, {2, 4, 1}, {3, 4, 0},
			{0, 5, 0}, {1, 5, 0.5}, {2, 5, 1}, {3, 5, 0.5}, {4, 5, 0},
			{0, 6, 0}, {1, 6, 0.5}, {2, 6, 1}, {3, 6, 1}, {4, 6, 0.5},
			{5, 6, 0},
		},
	}
	for mode, cases := range tests {
		for _, tc := range cases {
			name := fmt.Sprintf("%v/%v-of-%v", mode, tc.place, tc.size)
			t.Run(name, func(t *testing.T) {
				got, err := FloatingCoefficient(tc.place, tc.size, mode)
				require.NoError(t, err)
				assert.InDelta(t, tc.want, got, 1e-9)
			})
		}
	}
}

func TestFloatingMiddleSymmetric(t *testing.T) {
	for size := 1; size <= 12; size++ {
		for place := 0; place < size; place++ {
			a, err := FloatingCoefficient(place, size, tourney.FloatMiddle)
			require.NoError(t, err)
			b, err := FloatingCoefficient(size-1-place, size, tourney.FloatMiddle)
			require.NoError(t, err)
			assert.InDelta(t, a, b, 1e-9, "place %v of %v", place, size)
			assert.GreaterOrEqual(t, a, 0.0)
			assert.LessOrEqual(t, a, 1.0)
		}
	}
}

func TestFloatingCoefficientErrors(t *testing.T) {
	got, err := FloatingCoefficient(0, 0, tourney.FloatTop)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	_, err = FloatingCoefficient(6, 6, tourney.FloatBottom)
	require.ErrorIs(t, err, tourney.ErrInvalidInput)
	_, err = FloatingCoefficient(-1, 6, tourney.FloatMiddle)
	require.ErrorIs(t, err, tourney.ErrInvalidInput)
	_, err = FloatingCoefficient(1, 6, tourney.FloatingMode(-1))
	require.ErrorIs(t, err, tourney.ErrUnknownMode)
}
