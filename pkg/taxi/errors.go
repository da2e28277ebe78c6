// pkg/taxi/errors.go
// Copyright(c) 2025-2026 heuristica contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package taxi

import "errors"

var (
	ErrEmptyMap     = errors.New("taxi map has no rows")
	ErrRaggedMap    = errors.New("taxi map rows have differing lengths")
	ErrOutOfBounds  = errors.New("cell is outside the map bounds")
	ErrBlockedStart = errors.New("aircraft start cell is blocked terrain")
	ErrBlockedGoal  = errors.New("aircraft goal cell is blocked terrain")
)
