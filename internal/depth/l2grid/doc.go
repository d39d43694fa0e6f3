// Package l2grid owns Layer 2 (Grid) of the depth data model.
//
// Responsibilities: the per-frame DepthGrid, its construction and input
// validation, destructive cell consumption helpers, and synthetic scenes
// for tests and tuning.
// Key types: Grid, Scene, Box.
//
// Dependency rule: L2 never depends on perception or steering packages.
// A Grid is owned by exactly one scan at a time; scanning zeroes cells.
package l2grid
