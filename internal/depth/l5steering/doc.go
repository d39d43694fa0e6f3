// Package l5steering owns Layer 5 (Steering) of the depth data model.
//
// Responsibilities: widest-gap selection over the ordered interval list
// and its conversion into a normalised heading and a left/right label.
// Key types: Gap, Decision, Direction.
//
// Dependency rule: L5 may depend on L4 (regions), never on the grid or
// pipeline. Inputs are read-only.
package l5steering
