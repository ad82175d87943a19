/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package matching

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wedge struct {
	u, v int
	w    int64
}

func buildGraph(t testing.TB, n int, edges []wedge) *Graph {
	g := NewGraph(n)
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e.u, e.v, e.w))
	}
	return g
}

// bruteForce enumerates every matching and returns the best size and
// weight. With maxCard the size is maximized first.
func bruteForce(n int, edges []wedge, maxCard bool) (int, int64) {
	used := make([]bool, n)
	bestSize, bestWeight := 0, int64(0)
	var rec func(v, size int, w int64)
	rec = func(v, size int, w int64) {
		for v < n && used[v] {
			v++
		}
		if v == n {
			better := w > bestWeight
			if maxCard {
				better = size > bestSize || (size == bestSize && w > bestWeight)
			}
			if better {
				bestSize, bestWeight = size, w
			}
			return
		}
		used[v] = true
		rec(v+1, size, w)
		for _, e := range edges {
			u := -1
			switch v {
			case e.u:
				u = e.v
			case e.v:
				u = e.u
			}
			if u >= 0 && !used[u] {
				used[u] = true
				rec(v+1, size+1, w+e.w)
				used[u] = false
			}
		}
		used[v] = false
	}
	rec(0, 0, 0)

	return bestSize, bestWeight
}

// checkMatching verifies that m is a valid matching of the given edges and
// that its reported weight is the sum of its edges.
func checkMatching(t *testing.T, n int, edges []wedge, m *Matching) {
	t.Helper()
	require.Len(t, m.Mate, n)
	weights := make(map[[2]int]int64)
	for _, e := range edges {
		weights[[2]int{min(e.u, e.v), max(e.u, e.v)}] = e.w
	}
	var total int64
	for v, u := range m.Mate {
		if u < 0 {
			continue
		}
		require.Equal(t, v, m.Mate[u], "mate of %v is not symmetric", v)
		w, ok := weights[[2]int{min(u, v), max(u, v)}]
		require.True(t, ok, "matched %v-%v without an edge", v, u)
		if v < u {
			total += w
		}
	}
	assert.Equal(t, total, m.Weight)
}

func TestMaxWeightKnownGraphs(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		edges   []wedge
		maxCard bool
		want    []int
	}{
		{
			name:  "single edge",
			n:     2,
			edges: []wedge{{0, 1, 1}},
			want:  []int{1, 0},
		},
		{
			name:  "heavier middle edge",
			n:     4,
			edges: []wedge{{1, 2, 10}, {2, 3, 11}},
			want:  []int{-1, -1, 3, 2},
		},
		{
			name:  "path of three",
			n:     5,
			edges: []wedge{{1, 2, 5}, {2, 3, 11}, {3, 4, 5}},
			want:  []int{-1, -1, 3, 2, -1},
		},
		{
			name:    "path of three max cardinality",
			n:       5,
			edges:   []wedge{{1, 2, 5}, {2, 3, 11}, {3, 4, 5}},
			maxCard: true,
			want:    []int{-1, 2, 1, 4, 3},
		},
		{
			name:  "negative weights",
			n:     5,
			edges: []wedge{{1, 2, 2}, {1, 3, -2}, {2, 3, 1}, {2, 4, -1}, {3, 4, -6}},
			want:  []int{-1, 2, 1, -1, -1},
		},
		{
			name:    "negative weights max cardinality",
			n:       5,
			edges:   []wedge{{1, 2, 2}, {1, 3, -2}, {2, 3, 1}, {2, 4, -1}, {3, 4, -6}},
			maxCard: true,
			want:    []int{-1, 3, 4, 1, 2},
		},
		{
			name:  "s blossom",
			n:     5,
			edges: []wedge{{1, 2, 8}, {1, 3, 9}, {2, 3, 10}, {3, 4, 7}},
			want:  []int{-1, 2, 1, 4, 3},
		},
		{
			name: "s blossom augmented",
			n:    7,
			edges: []wedge{{1, 2, 8}, {1, 3, 9}, {2, 3, 10}, {3, 4, 7},
				{1, 6, 5}, {4, 5, 6}},
			want: []int{-1, 6, 3, 2, 5, 4, 1},
		},
		{
			name: "t blossom",
			n:    7,
			edges: []wedge{{1, 2, 9}, {1, 3, 8}, {2, 3, 10}, {1, 4, 5},
				{4, 5, 4}, {1, 6, 3}},
			want: []int{-1, 6, 3, 2, 5, 4, 1},
		},
		{
			name: "nested s blossom",
			n:    7,
			edges: []wedge{{1, 2, 9}, {1, 3, 9}, {2, 3, 10}, {2, 4, 8},
				{3, 5, 8}, {4, 5, 10}, {5, 6, 6}},
			want: []int{-1, 3, 4, 1, 2, 6, 5},
		},
		{
			name: "relabel nested s blossom",
			n:    9,
			edges: []wedge{{1, 2, 10}, {1, 7, 10}, {2, 3, 12}, {3, 4, 20},
				{3, 5, 20}, {4, 5, 25}, {5, 6, 10}, {6, 7, 10}, {7, 8, 8}},
			want: []int{-1, 2, 1, 4, 3, 6, 5, 8, 7},
		},
		{
			name: "expand nested s blossom",
			n:    9,
			edges: []wedge{{1, 2, 8}, {1, 3, 8}, {2, 3, 10}, {2, 4, 12},
				{3, 5, 12}, {4, 5, 14}, {4, 6, 12}, {5, 7, 12}, {6, 7, 14},
				{7, 8, 12}},
			want: []int{-1, 2, 1, 5, 6, 3, 4, 8, 7},
		},
		{
			name: "expand t blossom",
			n:    9,
			edges: []wedge{{1, 2, 23}, {1, 5, 22}, {1, 6, 15}, {2, 3, 25},
				{3, 4, 22}, {4, 5, 25}, {4, 8, 14}, {5, 7, 13}},
			want: []int{-1, 6, 3, 2, 8, 7, 1, 5, 4},
		},
		{
			name: "nasty t blossom expansion",
			n:    11,
			edges: []wedge{{1, 2, 45}, {1, 5, 45}, {2, 3, 50}, {3, 4, 45},
				{4, 5, 50}, {1, 6, 30}, {3, 9, 35}, {4, 8, 35}, {5, 7, 26},
				{9, 10, 5}},
			want: []int{-1, 6, 3, 2, 8, 7, 1, 5, 4, 10, 9},
		},
		{
			name: "nested t blossom expansion",
			n:    13,
			edges: []wedge{{1, 2, 45}, {1, 7, 45}, {2, 3, 50}, {3, 4, 45},
				{4, 5, 95}, {4, 6, 94}, {5, 6, 94}, {6, 7, 50}, {1, 8, 30},
				{3, 11, 35}, {5, 9, 36}, {7, 10, 26}, {11, 12, 5}},
			want: []int{-1, 8, 3, 2, 6, 9, 4, 10, 1, 5, 7, 12, 11},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(t, tt.n, tt.edges)
			m, err := MaxWeight(context.Background(), g,
				Options{MaxCardinality: tt.maxCard})
			require.NoError(t, err)
			checkMatching(t, tt.n, tt.edges, m)

			size, weight := bruteForce(tt.n, tt.edges, tt.maxCard)
			assert.Equal(t, weight, m.Weight)
			if tt.maxCard {
				assert.Equal(t, size, m.Size())
			}
			assert.Equal(t, tt.want, m.Mate)
		})
	}
}

func TestMaxWeightEmpty(t *testing.T) {
	m, err := MaxWeight(context.Background(), NewGraph(3), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{-1, -1, -1}, m.Mate)
	assert.Zero(t, m.Weight)
	assert.Zero(t, m.Size())
	assert.False(t, m.IsPerfect())
	assert.Empty(t, m.Pairs())
}

func TestMaxWeightRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for iter := 0; iter < 200; iter++ {
		n := 2 + rnd.Intn(9)
		var edges []wedge
		for u := 0; u < n; u++ {
			for v := u + 1; v < n; v++ {
				if rnd.Intn(3) == 0 {
					continue
				}
				edges = append(edges, wedge{u, v, int64(rnd.Intn(41) - 10)})
			}
		}
		g := buildGraph(t, n, edges)

		for _, maxCard := range []bool{false, true} {
			m, err := MaxWeight(context.Background(), g,
				Options{MaxCardinality: maxCard})
			require.NoError(t, err)
			checkMatching(t, n, edges, m)

			size, weight := bruteForce(n, edges, maxCard)
			require.Equal(t, weight, m.Weight, "iteration %v maxCard %v edges %v",
				iter, maxCard, edges)
			if maxCard {
				require.Equal(t, size, m.Size(), "iteration %v edges %v",
					iter, edges)
			}
		}
	}
}

func TestPerfectLargeWeights(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	const n = 10
	var edges []wedge
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			w := int64(1)
			if rnd.Intn(4) != 0 {
				w += 500_000_000_000_000
			}
			w += int64(rnd.Intn(1000)) * 100_000_000_000
			w += int64(rnd.Intn(1000)) * 1_000_000
			edges = append(edges, wedge{u, v, w})
		}
	}
	g := buildGraph(t, n, edges)

	m, err := Perfect(context.Background(), g)
	require.NoError(t, err)
	assert.True(t, m.IsPerfect())
	assert.Len(t, m.Pairs(), n/2)
	checkMatching(t, n, edges, m)

	_, weight := bruteForce(n, edges, true)
	assert.Equal(t, weight, m.Weight)
}

func TestPerfectDeterministic(t *testing.T) {
	var edges []wedge
	for u := 0; u < 8; u++ {
		for v := u + 1; v < 8; v++ {
			edges = append(edges, wedge{u, v, 7})
		}
	}
	first, err := Perfect(context.Background(), buildGraph(t, 8, edges))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Perfect(context.Background(), buildGraph(t, 8, edges))
		require.NoError(t, err)
		assert.Equal(t, first.Mate, again.Mate)
	}
}

func TestPerfectImpossible(t *testing.T) {
	g := buildGraph(t, 3, []wedge{{0, 1, 1}, {1, 2, 1}, {0, 2, 1}})
	_, err := Perfect(context.Background(), g)
	require.ErrorIs(t, err, ErrNoPerfectMatching)

	g = buildGraph(t, 4, []wedge{{0, 1, 1}, {0, 2, 1}, {0, 3, 1}})
	_, err = Perfect(context.Background(), g)
	require.ErrorIs(t, err, ErrNoPerfectMatching)
}

func TestPerfectPrefersLighterPerfect(t *testing.T) {
	// the heaviest edge 1-2 leaves 0 and 3 unmatched
	g := buildGraph(t, 4, []wedge{{0, 1, 1}, {1, 2, 100}, {2, 3, 1}})
	m, err := Perfect(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 3, 2}, m.Mate)
	assert.Equal(t, int64(2), m.Weight)
}

func TestAddEdgeErrors(t *testing.T) {
	g := NewGraph(3)
	require.ErrorIs(t, g.AddEdge(1, 1, 4), ErrSelfLoop)
	require.ErrorIs(t, g.AddEdge(0, 3, 4), ErrVertexRange)
	require.ErrorIs(t, g.AddEdge(-1, 2, 4), ErrVertexRange)
	require.NoError(t, g.AddEdge(0, 2, 4))
	assert.Equal(t, []Edge{{U: 0, V: 2, Weight: 4}}, g.Edges())
	assert.Equal(t, 3, g.Order())
}

func TestMaxWeightCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := buildGraph(t, 2, []wedge{{0, 1, 1}})
	_, err := MaxWeight(ctx, g, DefaultOptions())
	require.ErrorIs(t, err, context.Canceled)
}
