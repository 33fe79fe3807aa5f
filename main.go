// Trigon displays a triangle mesh loaded from a simple CSV text format,
// either as a static 2D wireframe or as an interactively rotatable,
// depth-sorted, flat-shaded 3D projection.
//
// Usage:
//
//	trigon [flags] [mesh.txt]
//
// A mesh file can also be dropped onto the window at any time.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"trigon/pkg/imu"
	"trigon/pkg/mesh"
	"trigon/pkg/remote"
	"trigon/pkg/render"
)

const (
	defaultWidth  = 800
	defaultHeight = 600
)

func main() {
	modeFlag := flag.String("mode", "3d", "Render mode: 2d (static wireframe) or 3d (rotatable, shaded).")
	listen := flag.String("listen", "", "Serve the live view state over WebSocket on this address (e.g. :8080).")
	imuPort := flag.String("imu", "", "Drive rotation from quaternions on this serial port instead of the mouse.")
	baud := flag.Int("baud", 115200, "Baud rate for -imu.")
	flag.Parse()

	var mode render.Mode
	switch *modeFlag {
	case "2d":
		mode = render.Mode2D
	case "3d":
		mode = render.Mode3D
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *modeFlag)
		flag.Usage()
		os.Exit(2)
	}

	var m *mesh.Mesh
	if flag.NArg() > 0 {
		var err error
		m, err = mesh.LoadFile(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("loaded %s: %d vertices, %d faces", flag.Arg(0), m.VertexCount(), m.FaceCount())
	}

	app := NewApp(mode, m)

	if *listen != "" {
		app.hub = remote.NewHub()
		go func() {
			if err := app.hub.ListenAndServe(*listen); err != nil {
				log.Fatal(err)
			}
		}()
	}

	if *imuPort != "" {
		if mode != render.Mode3D {
			log.Fatal("-imu requires -mode 3d")
		}
		port, err := imu.Open(*imuPort, *baud)
		if err != nil {
			log.Fatal(err)
		}
		quats := make(chan imu.Quaternion, 16)
		app.quats = quats
		go func() {
			defer port.Close()
			if err := imu.Stream(port, quats); err != nil {
				log.Printf("imu: %v", err)
			}
		}()
	}

	title := "Trigon 3D Viewer"
	if mode == render.Mode2D {
		title = "Trigon 2D Viewer"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(defaultWidth, defaultHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
