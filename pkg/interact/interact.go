// Package interact translates pointer-drag input into view rotation.
// The controller is a two-state machine (idle, dragging) driven by
// synthetic pointer events, so it needs no windowing system to test.
package interact

import (
	"trigon/pkg/mesh"
	"trigon/pkg/render"
)

// Sensitivity converts drag distance in pixels to radians of rotation.
const Sensitivity = 0.01

// Controller feeds pointer events into a renderer's view state. A
// button-down starts a drag; every move while dragging rotates the view
// by the pointer delta and re-renders synchronously. There is no
// momentum or smoothing: each move is applied independently.
//
// Like the renderer it drives, a Controller belongs to a single
// event-loop goroutine.
type Controller struct {
	renderer *render.Renderer
	dragging bool
}

// NewController returns a controller driving r.
func NewController(r *render.Renderer) *Controller {
	return &Controller{renderer: r}
}

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool {
	return c.dragging
}

// PointerDown starts a drag at the given screen position.
func (c *Controller) PointerDown(x, y int) {
	c.dragging = true
	v := c.renderer.View()
	v.LastX, v.LastY = x, y
}

// PointerUp ends the current drag, if any.
func (c *Controller) PointerUp() {
	c.dragging = false
}

// PointerMove handles a pointer move. While dragging it converts the
// delta from the last recorded position into rotation (horizontal drag
// spins about Y, vertical about X), re-renders m, and reports true.
// Moves outside a drag are ignored.
func (c *Controller) PointerMove(x, y int, m *mesh.Mesh) bool {
	if !c.dragging || m == nil {
		return false
	}
	v := c.renderer.View()
	dx := x - v.LastX
	dy := y - v.LastY

	v.RotY += float64(dx) * Sensitivity
	v.RotX += float64(dy) * Sensitivity
	v.LastX, v.LastY = x, y

	c.renderer.Render(m)
	return true
}
