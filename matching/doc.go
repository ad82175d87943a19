/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package matching finds maximum-weight matchings in general (not
// necessarily bipartite) undirected graphs.
//
// The solver is the primal-dual blossom algorithm of Edmonds as refined by
// Galil ("Efficient algorithms for finding maximum matching in graphs",
// ACM Computing Surveys, 1986):
//
//   - Complexity: O(n³) for n vertices.
//   - Weights are int64 and every dual variable stays integral, so results
//     are exact even when weights span many orders of magnitude.
//   - With Options.MaxCardinality the solver returns the heaviest among the
//     matchings of maximum size.
//
// The solver is deterministic: identical graphs (same vertices, same edges
// added in the same order) produce identical mates.
package matching
