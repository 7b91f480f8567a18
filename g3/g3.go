// SPDX-License-Identifier: GPL-2.0-or-later

// Package g3 holds the view-space state a polygon model traversal
// renders against, and the contracts of the external rendering
// collaborators. Projection and polygon fill are not done here; a
// Rasterizer implementation owns those.
package g3

import (
	"gopoly/fix"
	"gopoly/math/vec"
)

const (
	// MaxPointsPerPoly is the largest vertex count a polygon record
	// may carry and still be drawn. Larger polygons are skipped.
	MaxPointsPerPoly = 25
	// MaxInterpPoints is the size callers should give the shared
	// interpolated point list.
	MaxInterpPoints = 1000
)

// Glow table sentinels. A glow entry with one of these values changes
// how the next flat polygon is filled instead of supplying a light
// level.
const (
	GlowNoFlatFill fix.Fix = -3
	GlowFullBright fix.Fix = -2
)

// Point is a model vertex rotated into view space.
type Point struct {
	Pos vec.Vec3
}

// LRGB is a per-channel light level.
type LRGB struct {
	R, G, B fix.Fix
}

// UVL is a texture coordinate pair with a light level, as stored in
// textured polygon records.
type UVL struct {
	U, V, L fix.Fix
}

// Texture is an opaque bitmap handle owned by the rendering backend.
// The interpreter only selects one from the caller's texture table.
type Texture interface{}

// Rasterizer is the drawing backend a model is rendered through.
type Rasterizer interface {
	// FlatPoly fills a convex polygon with a single color.
	FlatPoly(points []*Point, color uint8)
	// TexturedPoly draws a convex textured polygon with per-vertex
	// texture coordinates and light.
	TexturedPoly(points []*Point, uvls []UVL, lights []LRGB, tex Texture)
	// Rod draws a cylindrical billboard between two view-space
	// endpoints.
	Rod(tex Texture, bottom *Point, bottomWidth fix.Fix, top *Point, topWidth fix.Fix, light LRGB)
}

type instanceFrame struct {
	matrix   vec.Matrix
	position vec.Vec3
}

// Viewer is the current view transform plus the instance stack pushed
// while sub-models are traversed. A Viewer must not be shared between
// concurrent traversals.
type Viewer struct {
	Matrix   vec.Matrix
	Position vec.Vec3
	stack    []instanceFrame
}

// NewViewer returns a viewer at pos with the given orientation.
func NewViewer(m vec.Matrix, pos vec.Vec3) *Viewer {
	return &Viewer{Matrix: m, Position: pos}
}

// RotatePoint transforms a model-space point into view space.
func (v *Viewer) RotatePoint(p vec.Vec3) Point {
	return Point{Pos: v.Matrix.Rotate(vec.Sub(p, v.Position))}
}

// NormalFacing reports whether a surface at point with the given
// normal faces the viewer.
func (v *Viewer) NormalFacing(point, normal vec.Vec3) bool {
	return vec.Dot(vec.Sub(v.Position, point), normal) > 0
}

// StartInstanceAngles enters the local frame of a sub-model placed at
// trans with orientation a. Must be paired with DoneInstance.
func (v *Viewer) StartInstanceAngles(trans vec.Vec3, a vec.Angles) {
	v.stack = append(v.stack, instanceFrame{v.Matrix, v.Position})
	m := vec.AnglesToMatrix(a)
	v.Position = m.Rotate(vec.Sub(v.Position, trans))
	v.Matrix = vec.Mul(v.Matrix, vec.Transpose(m))
}

// DoneInstance leaves the innermost instance frame.
func (v *Viewer) DoneInstance() {
	n := len(v.stack) - 1
	f := v.stack[n]
	v.stack = v.stack[:n]
	v.Matrix = f.matrix
	v.Position = f.position
}

// InstanceDepth returns how many instance frames are active.
func (v *Viewer) InstanceDepth() int {
	return len(v.stack)
}
