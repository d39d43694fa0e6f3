// Package pipeline wires the depth layers into a per-frame processor.
//
// Each frame is validated (L2), scanned into ordered regions (L4) and
// turned into a steering decision (L5). Frames are independent; only the
// tuning configuration carries across them. A Processor runs one frame to
// completion before starting the next because scanning consumes the grid.
package pipeline
