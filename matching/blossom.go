/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package matching

import (
	"context"
	"fmt"
	"slices"
)

// MaxWeight returns a maximum-weight matching of g.
//
// Edge endpoints are numbered so that endpoint 2k and 2k+1 are the two ends
// of edge k. Vertices are 0..n-1 and non-trivial blossoms n..2n-1.
// Labels: 0 free, 1 S (outer), 2 T (inner), 5 breadcrumb while scanning.
func MaxWeight(ctx context.Context, g *Graph, opts Options) (*Matching, error) {
	n := g.Order()
	m := &Matching{Mate: make([]int, n)}
	for v := range m.Mate {
		m.Mate[v] = -1
	}
	if len(g.edges) == 0 {
		return m, nil
	}

	s := newSolver(n, g.edges)
	if err := s.solve(ctx, opts.MaxCardinality); err != nil {
		return nil, err
	}
	for v := 0; v < n; v++ {
		p := s.mate[v]
		if p < 0 {
			continue
		}
		m.Mate[v] = s.endpoint[p]
		if v < m.Mate[v] {
			m.Weight += s.edges[p/2].Weight
		}
	}

	return m, nil
}

// Perfect returns the maximum-weight perfect matching of g or
// ErrNoPerfectMatching when g has none.
func Perfect(ctx context.Context, g *Graph) (*Matching, error) {
	m, err := MaxWeight(ctx, g, Options{MaxCardinality: true})
	if err != nil {
		return nil, err
	}
	if !m.IsPerfect() {
		return nil, fmt.Errorf("%w: %v of %v vertices matched",
			ErrNoPerfectMatching, 2*m.Size(), g.Order())
	}

	return m, nil
}

type solver struct {
	n     int
	edges []Edge

	endpoint  []int
	neighbend [][]int

	// mate[v] is the remote endpoint of v's matched edge, or -1
	mate []int

	label     []int
	labelend  []int
	inblossom []int

	blossomparent    []int
	blossomchilds    [][]int
	blossombase      []int
	blossomendps     [][]int
	bestedge         []int
	blossombestedges [][]int
	unusedblossoms   []int

	dualvar   []int64
	allowedge []bool
	queue     []int
}

func newSolver(n int, edges []Edge) *solver {
	s := &solver{
		n:                n,
		edges:            edges,
		endpoint:         make([]int, 2*len(edges)),
		neighbend:        make([][]int, n),
		mate:             make([]int, n),
		label:            make([]int, 2*n),
		labelend:         make([]int, 2*n),
		inblossom:        make([]int, n),
		blossomparent:    make([]int, 2*n),
		blossomchilds:    make([][]int, 2*n),
		blossombase:      make([]int, 2*n),
		blossomendps:     make([][]int, 2*n),
		bestedge:         make([]int, 2*n),
		blossombestedges: make([][]int, 2*n),
		dualvar:          make([]int64, 2*n),
		allowedge:        make([]bool, len(edges)),
	}

	var maxWeight int64
	for k, e := range edges {
		maxWeight = max(maxWeight, e.Weight)
		s.endpoint[2*k] = e.U
		s.endpoint[2*k+1] = e.V
		s.neighbend[e.U] = append(s.neighbend[e.U], 2*k+1)
		s.neighbend[e.V] = append(s.neighbend[e.V], 2*k)
	}
	for v := 0; v < n; v++ {
		s.mate[v] = -1
		s.inblossom[v] = v
		s.blossombase[v] = v
		s.dualvar[v] = maxWeight
	}
	for b := 0; b < 2*n; b++ {
		s.labelend[b] = -1
		s.blossomparent[b] = -1
		s.bestedge[b] = -1
		if b >= n {
			s.blossombase[b] = -1
			s.unusedblossoms = append(s.unusedblossoms, b)
		}
	}

	return s
}

// at indexes s, counting negative i from the end.
func at(s []int, i int) int {
	if i < 0 {
		i += len(s)
	}

	return s[i]
}

func (s *solver) slack(k int) int64 {
	e := s.edges[k]

	return s.dualvar[e.U] + s.dualvar[e.V] - 2*e.Weight
}

// leaves returns the vertices contained in blossom b.
func (s *solver) leaves(b int) []int {
	if b < s.n {
		return []int{b}
	}
	var out []int
	for _, c := range s.blossomchilds[b] {
		if c < s.n {
			out = append(out, c)
		} else {
			out = append(out, s.leaves(c)...)
		}
	}

	return out
}

// assignLabel labels w and its top-level blossom with t, reached through
// endpoint p. A T-labelled blossom's mate becomes S in turn.
func (s *solver) assignLabel(w, t, p int) {
	b := s.inblossom[w]
	s.label[w], s.label[b] = t, t
	s.labelend[w], s.labelend[b] = p, p
	s.bestedge[w], s.bestedge[b] = -1, -1
	switch t {
	case 1:
		s.queue = append(s.queue, s.leaves(b)...)
	case 2:
		base := s.blossombase[b]
		s.assignLabel(s.endpoint[s.mate[base]], 1, s.mate[base]^1)
	}
}

// scanBlossom traces back from v and w to find either a new blossom (its
// base is returned) or an augmenting path (-1 is returned).
func (s *solver) scanBlossom(v, w int) int {
	var path []int
	base := -1
	for v != -1 || w != -1 {
		b := s.inblossom[v]
		if s.label[b]&4 != 0 {
			base = s.blossombase[b]
			break
		}
		path = append(path, b)
		s.label[b] = 5
		if s.labelend[b] == -1 {
			v = -1
		} else {
			v = s.endpoint[s.labelend[b]]
			b = s.inblossom[v]
			v = s.endpoint[s.labelend[b]]
		}
		if w != -1 {
			v, w = w, v
		}
	}
	for _, b := range path {
		s.label[b] = 1
	}

	return base
}

// addBlossom builds a new blossom with the given base through edge k, which
// joins two S vertices.
func (s *solver) addBlossom(base, k int) {
	v, w := s.edges[k].U, s.edges[k].V
	bb := s.inblossom[base]
	bv := s.inblossom[v]
	bw := s.inblossom[w]

	b := s.unusedblossoms[len(s.unusedblossoms)-1]
	s.unusedblossoms = s.unusedblossoms[:len(s.unusedblossoms)-1]
	s.blossombase[b] = base
	s.blossomparent[b] = -1
	s.blossomparent[bb] = b

	var path, endps []int
	for bv != bb {
		s.blossomparent[bv] = b
		path = append(path, bv)
		endps = append(endps, s.labelend[bv])
		v = s.endpoint[s.labelend[bv]]
		bv = s.inblossom[v]
	}
	path = append(path, bb)
	slices.Reverse(path)
	slices.Reverse(endps)
	endps = append(endps, 2*k)
	for bw != bb {
		s.blossomparent[bw] = b
		path = append(path, bw)
		endps = append(endps, s.labelend[bw]^1)
		w = s.endpoint[s.labelend[bw]]
		bw = s.inblossom[w]
	}
	s.blossomchilds[b] = path
	s.blossomendps[b] = endps

	s.label[b] = 1
	s.labelend[b] = s.labelend[bb]
	s.dualvar[b] = 0
	for _, v := range s.leaves(b) {
		if s.label[s.inblossom[v]] == 2 {
			// former T vertices become S and must be scanned
			s.queue = append(s.queue, v)
		}
		s.inblossom[v] = b
	}

	bestedgeto := make([]int, 2*s.n)
	for i := range bestedgeto {
		bestedgeto[i] = -1
	}
	for _, c := range path {
		var nblists [][]int
		if s.blossombestedges[c] == nil {
			for _, v := range s.leaves(c) {
				list := make([]int, len(s.neighbend[v]))
				for i, p := range s.neighbend[v] {
					list[i] = p / 2
				}
				nblists = append(nblists, list)
			}
		} else {
			nblists = [][]int{s.blossombestedges[c]}
		}
		for _, nblist := range nblists {
			for _, ek := range nblist {
				j := s.edges[ek].V
				if s.inblossom[j] == b {
					j = s.edges[ek].U
				}
				bj := s.inblossom[j]
				if bj != b && s.label[bj] == 1 &&
					(bestedgeto[bj] == -1 || s.slack(ek) < s.slack(bestedgeto[bj])) {
					bestedgeto[bj] = ek
				}
			}
		}
		s.blossombestedges[c] = nil
		s.bestedge[c] = -1
	}

	best := make([]int, 0, len(bestedgeto))
	for _, ek := range bestedgeto {
		if ek != -1 {
			best = append(best, ek)
		}
	}
	s.blossombestedges[b] = best
	s.bestedge[b] = -1
	for _, ek := range best {
		if s.bestedge[b] == -1 || s.slack(ek) < s.slack(s.bestedge[b]) {
			s.bestedge[b] = ek
		}
	}
}

// expandBlossom dissolves blossom b into its sub-blossoms. In the middle of
// a stage a T blossom is relabelled so the alternating tree stays valid.
func (s *solver) expandBlossom(b int, endstage bool) {
	for _, c := range s.blossomchilds[b] {
		s.blossomparent[c] = -1
		switch {
		case c < s.n:
			s.inblossom[c] = c
		case endstage && s.dualvar[c] == 0:
			s.expandBlossom(c, endstage)
		default:
			for _, v := range s.leaves(c) {
				s.inblossom[v] = c
			}
		}
	}

	if !endstage && s.label[b] == 2 {
		childs := s.blossomchilds[b]
		endps := s.blossomendps[b]
		entrychild := s.inblossom[s.endpoint[s.labelend[b]^1]]
		j := slices.Index(childs, entrychild)
		jstep, endptrick := -1, 1
		if j&1 != 0 {
			j -= len(childs)
			jstep, endptrick = 1, 0
		}

		// relabel the even-length path from the entry child to the base
		p := s.labelend[b]
		for j != 0 {
			s.label[s.endpoint[p^1]] = 0
			s.label[s.endpoint[at(endps, j-endptrick)^endptrick^1]] = 0
			s.assignLabel(s.endpoint[p^1], 2, p)
			s.allowedge[at(endps, j-endptrick)/2] = true
			j += jstep
			p = at(endps, j-endptrick) ^ endptrick
			s.allowedge[p/2] = true
			j += jstep
		}
		bv := at(childs, j)
		s.label[s.endpoint[p^1]], s.label[bv] = 2, 2
		s.labelend[s.endpoint[p^1]], s.labelend[bv] = p, p
		s.bestedge[bv] = -1

		// children on the odd-length path may be reachable from outside
		j += jstep
		for at(childs, j) != entrychild {
			bv = at(childs, j)
			if s.label[bv] == 1 {
				j += jstep
				continue
			}
			reached := -1
			for _, v := range s.leaves(bv) {
				if s.label[v] != 0 {
					reached = v
					break
				}
			}
			if reached >= 0 {
				s.label[reached] = 0
				s.label[s.endpoint[s.mate[s.blossombase[bv]]]] = 0
				s.assignLabel(reached, 2, s.labelend[reached])
			}
			j += jstep
		}
	}

	s.label[b], s.labelend[b] = -1, -1
	s.blossomchilds[b], s.blossomendps[b] = nil, nil
	s.blossombase[b] = -1
	s.blossombestedges[b] = nil
	s.bestedge[b] = -1
	s.unusedblossoms = append(s.unusedblossoms, b)
}

// augmentBlossom swaps matched and unmatched edges along the even path from
// vertex v to the base of blossom b, making v the new base.
func (s *solver) augmentBlossom(b, v int) {
	t := v
	for s.blossomparent[t] != b {
		t = s.blossomparent[t]
	}
	if t >= s.n {
		s.augmentBlossom(t, v)
	}

	childs := s.blossomchilds[b]
	endps := s.blossomendps[b]
	i := slices.Index(childs, t)
	j := i
	jstep, endptrick := -1, 1
	if i&1 != 0 {
		j -= len(childs)
		jstep, endptrick = 1, 0
	}
	for j != 0 {
		j += jstep
		t = at(childs, j)
		p := at(endps, j-endptrick) ^ endptrick
		if t >= s.n {
			s.augmentBlossom(t, s.endpoint[p])
		}
		j += jstep
		t = at(childs, j)
		if t >= s.n {
			s.augmentBlossom(t, s.endpoint[p^1])
		}
		s.mate[s.endpoint[p]] = p ^ 1
		s.mate[s.endpoint[p^1]] = p
	}

	s.blossomchilds[b] = append(slices.Clone(childs[i:]), childs[:i]...)
	s.blossomendps[b] = append(slices.Clone(endps[i:]), endps[:i]...)
	s.blossombase[b] = s.blossombase[s.blossomchilds[b][0]]
}

// augmentMatching flips the augmenting path through edge k.
func (s *solver) augmentMatching(k int) {
	e := s.edges[k]
	for _, start := range [2][2]int{{e.U, 2*k + 1}, {e.V, 2 * k}} {
		v, p := start[0], start[1]
		for {
			bs := s.inblossom[v]
			if bs >= s.n {
				s.augmentBlossom(bs, v)
			}
			s.mate[v] = p
			if s.labelend[bs] == -1 {
				// reached a single vertex
				break
			}
			t := s.endpoint[s.labelend[bs]]
			bt := s.inblossom[t]
			v = s.endpoint[s.labelend[bt]]
			j := s.endpoint[s.labelend[bt]^1]
			if bt >= s.n {
				s.augmentBlossom(bt, j)
			}
			s.mate[j] = s.labelend[bt]
			p = s.labelend[bt] ^ 1
		}
	}
}

func (s *solver) resetStage() {
	for i := range s.label {
		s.label[i] = 0
		s.bestedge[i] = -1
	}
	for b := s.n; b < 2*s.n; b++ {
		s.blossombestedges[b] = nil
	}
	for k := range s.allowedge {
		s.allowedge[k] = false
	}
	s.queue = s.queue[:0]
}

// scan grows the alternating forest from queued S vertices and reports
// whether an augmenting path was applied.
func (s *solver) scan() bool {
	for len(s.queue) > 0 {
		v := s.queue[len(s.queue)-1]
		s.queue = s.queue[:len(s.queue)-1]

		for _, p := range s.neighbend[v] {
			k := p / 2
			w := s.endpoint[p]
			if s.inblossom[v] == s.inblossom[w] {
				continue
			}
			var kslack int64
			if !s.allowedge[k] {
				kslack = s.slack(k)
				if kslack <= 0 {
					s.allowedge[k] = true
				}
			}

			switch {
			case s.allowedge[k]:
				switch {
				case s.label[s.inblossom[w]] == 0:
					s.assignLabel(w, 2, p^1)
				case s.label[s.inblossom[w]] == 1:
					if base := s.scanBlossom(v, w); base >= 0 {
						s.addBlossom(base, k)
					} else {
						s.augmentMatching(k)
						return true
					}
				case s.label[w] == 0:
					// w is inside a T blossom but not yet reached
					s.label[w] = 2
					s.labelend[w] = p ^ 1
				}
			case s.label[s.inblossom[w]] == 1:
				b := s.inblossom[v]
				if s.bestedge[b] == -1 || kslack < s.slack(s.bestedge[b]) {
					s.bestedge[b] = k
				}
			case s.label[w] == 0:
				if s.bestedge[w] == -1 || kslack < s.slack(s.bestedge[w]) {
					s.bestedge[w] = k
				}
			}
		}
	}

	return false
}

const (
	deltaNone = iota
	deltaStop
	deltaFreeEdge
	deltaOuterEdge
	deltaExpand
)

// adjustDuals performs one dual update and reports whether the stage must
// end without augmentation.
func (s *solver) adjustDuals(maxCardinality bool) bool {
	deltaType := deltaNone
	var delta int64
	deltaEdge, deltaBlossom := -1, -1

	if !maxCardinality {
		deltaType = deltaStop
		delta = slices.Min(s.dualvar[:s.n])
	}
	for v := 0; v < s.n; v++ {
		if s.label[s.inblossom[v]] == 0 && s.bestedge[v] != -1 {
			d := s.slack(s.bestedge[v])
			if deltaType == deltaNone || d < delta {
				delta, deltaType, deltaEdge = d, deltaFreeEdge, s.bestedge[v]
			}
		}
	}
	for b := 0; b < 2*s.n; b++ {
		if s.blossomparent[b] == -1 && s.label[b] == 1 && s.bestedge[b] != -1 {
			d := s.slack(s.bestedge[b]) / 2
			if deltaType == deltaNone || d < delta {
				delta, deltaType, deltaEdge = d, deltaOuterEdge, s.bestedge[b]
			}
		}
	}
	for b := s.n; b < 2*s.n; b++ {
		if s.blossombase[b] >= 0 && s.blossomparent[b] == -1 &&
			s.label[b] == 2 &&
			(deltaType == deltaNone || s.dualvar[b] < delta) {
			delta, deltaType, deltaBlossom = s.dualvar[b], deltaExpand, b
		}
	}
	if deltaType == deltaNone {
		// max cardinality reached; finish with a final dual update
		deltaType = deltaStop
		delta = max(0, slices.Min(s.dualvar[:s.n]))
	}

	for v := 0; v < s.n; v++ {
		switch s.label[s.inblossom[v]] {
		case 1:
			s.dualvar[v] -= delta
		case 2:
			s.dualvar[v] += delta
		}
	}
	for b := s.n; b < 2*s.n; b++ {
		if s.blossombase[b] < 0 || s.blossomparent[b] != -1 {
			continue
		}
		switch s.label[b] {
		case 1:
			s.dualvar[b] += delta
		case 2:
			s.dualvar[b] -= delta
		}
	}

	switch deltaType {
	case deltaStop:
		return true
	case deltaFreeEdge:
		s.allowedge[deltaEdge] = true
		i := s.edges[deltaEdge].U
		if s.label[s.inblossom[i]] == 0 {
			i = s.edges[deltaEdge].V
		}
		s.queue = append(s.queue, i)
	case deltaOuterEdge:
		s.allowedge[deltaEdge] = true
		s.queue = append(s.queue, s.edges[deltaEdge].U)
	case deltaExpand:
		s.expandBlossom(deltaBlossom, false)
	}

	return false
}

func (s *solver) solve(ctx context.Context, maxCardinality bool) error {
	// each stage augments the matching by one edge or proves it maximum
	for stage := 0; stage < s.n; stage++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("matching: stage %v: %w", stage, err)
		}
		s.resetStage()
		for v := 0; v < s.n; v++ {
			if s.mate[v] == -1 && s.label[s.inblossom[v]] == 0 {
				s.assignLabel(v, 1, -1)
			}
		}

		augmented := false
		for {
			if s.scan() {
				augmented = true
				break
			}
			if s.adjustDuals(maxCardinality) {
				break
			}
		}
		if !augmented {
			break
		}

		for b := s.n; b < 2*s.n; b++ {
			if s.blossomparent[b] == -1 && s.blossombase[b] >= 0 &&
				s.label[b] == 1 && s.dualvar[b] == 0 {
				s.expandBlossom(b, true)
			}
		}
	}

	return nil
}
