// Package l4perception owns Layer 4 (Perception) of the depth data model.
//
// Responsibilities: depth-limited region growing over a DepthGrid, the
// ordered column interval index, and the row-major scan that ties them
// together.
// Key types: Region, Grower, IntervalIndex, Scanner, ScanStats.
//
// Dependency rule: L4 may depend on L2, but never on steering (L5) or the
// pipeline. Scanning consumes the grid it is given: every cell that joins a
// region, and every column claimed by a kept region, is zeroed.
package l4perception
