// pkg/schedule/errors.go
// Copyright(c) 2025-2026 heuristica contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package schedule

import "errors"

var (
	ErrDuplicateAircraftID = errors.New("duplicate aircraft id")
	ErrInvalidSlotCount    = errors.New("slot count must be non-negative")
	ErrEmptyDomain         = errors.New("position domain has no cells")
)
