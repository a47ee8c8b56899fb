// Package camera provides a viewport onto a tank that may be larger than the terminal.
package camera

// Camera controls which part of the tank is on screen.
// X, Y is the tank cell drawn at the viewport's top-left corner.
type Camera struct {
	X, Y int

	// Viewport dimensions in screen cells
	ViewportW, ViewportH int

	// Tank dimensions in cells
	WorldW, WorldH int
}

// New creates a camera showing the tank's top-left corner.
// The viewport never exceeds the tank.
func New(viewportW, viewportH, worldW, worldH int) *Camera {
	c := &Camera{WorldW: worldW, WorldH: worldH}
	c.Resize(viewportW, viewportH)
	return c
}

// WorldToScreen converts tank coordinates to viewport coordinates.
// ok is false when the cell is outside the viewport.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int, ok bool) {
	sx, sy = wx-c.X, wy-c.Y
	ok = sx >= 0 && sx < c.ViewportW && sy >= 0 && sy < c.ViewportH
	return sx, sy, ok
}

// ScreenToWorld converts viewport coordinates to tank coordinates.
func (c *Camera) ScreenToWorld(sx, sy int) (wx, wy int) {
	return sx + c.X, sy + c.Y
}

// IsVisible reports whether any cell of the w x h box at (wx, wy) is on screen.
func (c *Camera) IsVisible(wx, wy, w, h int) bool {
	return wx < c.X+c.ViewportW && wx+w > c.X &&
		wy < c.Y+c.ViewportH && wy+h > c.Y
}

// Resize sets the viewport size, shrinking it to the tank if needed.
func (c *Camera) Resize(viewportW, viewportH int) {
	c.ViewportW = clamp(viewportW, 0, c.WorldW)
	c.ViewportH = clamp(viewportH, 0, c.WorldH)
	c.clampPosition()
}

// Pan moves the viewport by the given number of cells, stopping at the tank edges.
func (c *Camera) Pan(dx, dy int) {
	c.X += dx
	c.Y += dy
	c.clampPosition()
}

// Follow scrolls the least distance needed to bring the w x h box at (wx, wy)
// fully on screen. Boxes larger than the viewport are aligned top-left.
func (c *Camera) Follow(wx, wy, w, h int) {
	if wx+w > c.X+c.ViewportW {
		c.X = wx + w - c.ViewportW
	}
	if wx < c.X {
		c.X = wx
	}
	if wy+h > c.Y+c.ViewportH {
		c.Y = wy + h - c.ViewportH
	}
	if wy < c.Y {
		c.Y = wy
	}
	c.clampPosition()
}

// Reset returns the camera to the top-left corner.
func (c *Camera) Reset() {
	c.X, c.Y = 0, 0
}

// VisibleWorldBounds returns the half-open tank rectangle on screen.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY int) {
	return c.X, c.Y, c.X + c.ViewportW, c.Y + c.ViewportH
}

// Clipped reports whether part of the tank is off screen.
func (c *Camera) Clipped() bool {
	return c.ViewportW < c.WorldW || c.ViewportH < c.WorldH
}

func (c *Camera) clampPosition() {
	c.X = clamp(c.X, 0, c.WorldW-c.ViewportW)
	c.Y = clamp(c.Y, 0, c.WorldH-c.ViewportH)
}

// clamp restricts a value to a range.
func clamp(x, min, max int) int {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
