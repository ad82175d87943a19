/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package matching

import (
	"errors"
	"fmt"
)

var (
	ErrSelfLoop          = errors.New("matching: self loop")
	ErrVertexRange       = errors.New("matching: vertex out of range")
	ErrNoPerfectMatching = errors.New("matching: no perfect matching")
)

// Edge is an undirected weighted edge.
type Edge struct {
	U, V   int
	Weight int64
}

// Graph is an undirected graph on vertices 0..n-1.
type Graph struct {
	order int
	edges []Edge
}

// NewGraph returns an empty graph with n vertices.
func NewGraph(n int) *Graph {
	return &Graph{order: n}
}

// AddEdge adds the edge u-v with weight w.
func (g *Graph) AddEdge(u, v int, w int64) error {
	if u < 0 || u >= g.order || v < 0 || v >= g.order {
		return fmt.Errorf("%w: %v-%v in graph of order %v", ErrVertexRange,
			u, v, g.order)
	}
	if u == v {
		return fmt.Errorf("%w: vertex %v", ErrSelfLoop, u)
	}
	g.edges = append(g.edges, Edge{U: u, V: v, Weight: w})

	return nil
}

// Order returns the number of vertices.
func (g *Graph) Order() int {
	return g.order
}

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)

	return out
}

// Options tune MaxWeight.
type Options struct {
	// MaxCardinality restricts the search to matchings of maximum size.
	MaxCardinality bool
}

// DefaultOptions returns options for an unrestricted maximum-weight
// matching.
func DefaultOptions() Options {
	return Options{}
}

// Matching is the result of a solve. Mate[v] is the vertex matched to v or
// -1 when v is single.
type Matching struct {
	Mate   []int
	Weight int64
}

// Pairs returns each matched pair once as [u, v] with u < v, ordered by u.
func (m *Matching) Pairs() [][2]int {
	var out [][2]int
	for u, v := range m.Mate {
		if v > u {
			out = append(out, [2]int{u, v})
		}
	}

	return out
}

// Size returns the number of matched pairs.
func (m *Matching) Size() int {
	n := 0
	for u, v := range m.Mate {
		if v > u {
			n++
		}
	}

	return n
}

// IsPerfect reports whether every vertex is matched.
func (m *Matching) IsPerfect() bool {
	for _, v := range m.Mate {
		if v < 0 {
			return false
		}
	}

	return true
}
