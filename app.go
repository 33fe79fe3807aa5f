package main

import (
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"trigon/pkg/imu"
	"trigon/pkg/interact"
	"trigon/pkg/mesh"
	"trigon/pkg/remote"
	"trigon/pkg/render"
)

// App is the viewer application: it owns the current mesh, the renderer
// and the interaction controller, and adapts ebiten's polled input into
// the controller's event model. Everything mutable is touched only from
// Update/Layout, which ebiten runs on a single goroutine.
type App struct {
	canvas     *canvas
	renderer   *render.Renderer
	controller *interact.Controller // nil in 2D mode
	mesh       *mesh.Mesh

	hub   *remote.Hub           // nil when -listen is off
	quats <-chan imu.Quaternion // nil when -imu is off

	needsRender bool
}

// NewApp builds the viewer in the given mode. m may be nil; a mesh can
// arrive later by dropping a file onto the window.
func NewApp(mode render.Mode, m *mesh.Mesh) *App {
	c := &canvas{}
	r := render.New(c, mode)
	a := &App{
		canvas:   c,
		renderer: r,
		mesh:     m,
	}
	if mode == render.Mode3D {
		a.controller = interact.NewController(r)
	}
	if m != nil {
		a.needsRender = true
	}
	return a
}

// Update handles one tick of input: dropped files, pending IMU samples
// and mouse dragging, then re-renders if anything changed the view.
func (a *App) Update() error {
	if files := ebiten.DroppedFiles(); files != nil {
		a.openDropped(files)
	}
	a.drainIMU()

	if a.controller != nil {
		x, y := ebiten.CursorPosition()
		switch {
		case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
			a.controller.PointerDown(x, y)
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
			if a.controller.PointerMove(x, y, a.mesh) {
				a.publish()
			}
		default:
			a.controller.PointerUp()
		}
	}

	if a.needsRender && a.mesh != nil {
		a.renderer.Render(a.mesh)
		a.needsRender = false
		a.publish()
	}
	return nil
}

// drainIMU applies pending orientation samples. Only the view state is
// updated here; the render happens once at the end of Update even if
// several samples queued up.
func (a *App) drainIMU() {
	if a.quats == nil {
		return
	}
	for {
		select {
		case q := <-a.quats:
			v := a.renderer.View()
			v.RotX, v.RotY = q.ViewAngles()
			a.needsRender = true
		default:
			return
		}
	}
}

// openDropped loads the first file from a drag-and-drop payload. The
// mesh is replaced wholesale on success; on failure the error is logged
// and the previous mesh stays active. Accumulated rotation carries over
// to the new mesh.
func (a *App) openDropped(files fs.FS) {
	err := fs.WalkDir(files, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		f, err := files.Open(path)
		if err != nil {
			log.Printf("open dropped %s: %v", path, err)
			return fs.SkipAll
		}
		defer f.Close()

		m, err := mesh.Load(f)
		if err != nil {
			log.Printf("load %s: %v", path, err)
			return fs.SkipAll
		}
		log.Printf("loaded %s: %d vertices, %d faces", path, m.VertexCount(), m.FaceCount())
		a.mesh = m
		a.needsRender = true
		return fs.SkipAll
	})
	if err != nil {
		log.Printf("dropped files: %v", err)
	}
}

// publish pushes the current view to remote subscribers, if any.
func (a *App) publish() {
	if a.hub == nil {
		return
	}
	v := a.renderer.View()
	a.hub.Broadcast(remote.State{RotX: v.RotX, RotY: v.RotY, Scale: v.Scale})
}

// Draw blits the offscreen canvas; all real drawing happened in Update.
func (a *App) Draw(screen *ebiten.Image) {
	if a.canvas.img != nil {
		screen.DrawImage(a.canvas.img, nil)
	}
}

// Layout tracks the window size. A resize re-renders so the projection
// picks up the new center and fit.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if a.canvas.resize(outsideWidth, outsideHeight) && a.mesh != nil {
		a.needsRender = true
	}
	return outsideWidth, outsideHeight
}
