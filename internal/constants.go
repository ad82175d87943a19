/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent = "mcmahon-pairings/0.1.0 (+https://github.com/mikeb26/mcmahon-pairings)"
	EnvPrefix = "MMPAIR_"
)
