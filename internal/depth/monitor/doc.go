// Package monitor renders debug artefacts for processed depth frames: a
// per-frame column profile image (gonum/plot) and an HTML run report
// (go-echarts). Nothing in the scanning path depends on it.
package monitor
