package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"trigon/pkg/render"
)

// background is the canvas clear color.
var background = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// whiteSubImage is the 1x1 texture used to fill vector paths.
var whiteSubImage *ebiten.Image

func init() {
	whiteImage := ebiten.NewImage(3, 3)
	whiteImage.Fill(color.White)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// Compile-time interface check.
var _ render.Surface = (*canvas)(nil)

// canvas implements render.Surface on an offscreen ebiten image. The
// renderer draws into it whenever an event fires; App.Draw blits it to
// the window every frame. The image is (re)allocated lazily on resize so
// a canvas can exist before the ebiten game loop starts.
type canvas struct {
	img           *ebiten.Image
	width, height int
}

// resize adjusts the drawable size, reallocating the backing image when
// it changes. It reports whether the size actually changed.
func (c *canvas) resize(width, height int) bool {
	if width == c.width && height == c.height {
		return false
	}
	c.width, c.height = width, height
	if c.img != nil {
		c.img.Deallocate()
	}
	c.img = ebiten.NewImage(width, height)
	c.img.Fill(background)
	return true
}

func (c *canvas) Size() (int, int) {
	return c.width, c.height
}

func (c *canvas) Clear() {
	if c.img != nil {
		c.img.Fill(background)
	}
}

func (c *canvas) Line(a, b render.Point, col color.Color, width float64) {
	if c.img == nil {
		return
	}
	vector.StrokeLine(c.img,
		float32(a.X), float32(a.Y),
		float32(b.X), float32(b.Y),
		float32(width), col, true)
}

func (c *canvas) Circle(center render.Point, radius float64, fill color.Color) {
	if c.img == nil {
		return
	}
	vector.DrawFilledCircle(c.img,
		float32(center.X), float32(center.Y),
		float32(radius), fill, true)
}

func (c *canvas) Polygon(pts []render.Point, fill, outline color.Color) {
	if c.img == nil || len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	c.drawPath(vs, is, fill)

	vs, is = path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{Width: 1})
	c.drawPath(vs, is, outline)
}

// drawPath rasterizes triangulated path vertices in a solid color.
func (c *canvas) drawPath(vs []ebiten.Vertex, is []uint16, col color.Color) {
	r, g, b, a := col.RGBA()
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(r) / 0xFFFF
		vs[i].ColorG = float32(g) / 0xFFFF
		vs[i].ColorB = float32(b) / 0xFFFF
		vs[i].ColorA = float32(a) / 0xFFFF
	}
	c.img.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{
		FillRule:  ebiten.EvenOdd,
		AntiAlias: true,
	})
}
