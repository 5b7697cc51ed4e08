// Package render is the raylib viewer of a studio session. It draws frames captured on the
// event loop and reports input back through callbacks; it never touches the document.
package render

import (
	"fmt"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"game-studio/internal/hierarchy"
	"game-studio/internal/instance"
	"game-studio/internal/primitives"
	"game-studio/internal/project"
	"game-studio/internal/scene"
	"game-studio/internal/ui"
)

const (
	orbitSpeed   = 0.005
	zoomStep     = 1.1
	minDistance  = 3
	maxDistance  = 60
	followHeight = 4
	followBack   = 7
	eyeHeight    = 0.6
)

var selectionColor = rl.NewColor(34, 211, 238, 255)

// Viewer draws the scene objects over the ground grid with the inspector and status line on
// top. In play mode it hides editor chrome, shows the StarterGui layout, follows the player
// with the ViewPort camera and walks the player with WASD or the arrow keys.
type Viewer struct {
	Camera      rl.Camera3D
	GridVisible bool
	Playing     bool

	// OnSelect receives a scene click: an object id, or "" for empty space.
	OnSelect func(id string)
	// OnWalk receives the moved player in play mode.
	OnWalk func(o scene.Object)
	// OnGuiClick receives the id of a clicked GUI element in play mode.
	OnGuiClick func(id string)

	yaw, pitch, distance float32

	sky       *skybox
	prims     *primitives.Registry
	textures  *textureCache
	overlay   overlay
	inspector *ui.Inspector
	status    *ui.Node
	panel     ui.Rect
	gui       []*ui.Node
}

// New returns a viewer looking at the canvas centre from above and in front.
func New() *Viewer {
	v := &Viewer{
		GridVisible: true,
		pitch:       0.7,
		distance:    18,
		sky:         findSkybox(),
		prims:       primitives.NewRegistry(),
		textures:    newTextureCache(),
		overlay:     overlay{sheet: ui.DefaultStylesheet()},
		inspector:   ui.NewInspector(),
		status:      ui.NewNode("label", "", "status", ""),
	}
	v.Camera.Up = rl.NewVector3(0, 1, 0)
	v.Camera.Fovy = 45
	v.Camera.Projection = rl.CameraPerspective
	v.orbit()
	return v
}

// SetFont sets the overlay font. A zero texture ID keeps raylib's default.
func (v *Viewer) SetFont(font rl.Font) {
	v.overlay.font = font
}

// orbit places the editor camera on a sphere around its target.
func (v *Viewer) orbit() {
	t := v.Camera.Target
	cp := v.distance * math32.Cos(v.pitch)
	v.Camera.Position = rl.NewVector3(t.X+cp*math32.Sin(v.yaw), t.Y+v.distance*math32.Sin(v.pitch), t.Z+cp*math32.Cos(v.yaw))
}

// Update handles viewer input for one frame. keyboard is false while another widget (the
// terminal) owns the keys.
func (v *Viewer) Update(f Frame, keyboard bool) {
	if keyboard && rl.IsKeyPressed(rl.KeyF5) {
		v.Playing = !v.Playing
	}
	if keyboard && rl.IsKeyPressed(rl.KeyG) {
		v.GridVisible = !v.GridVisible
	}
	if v.Playing {
		v.updatePlay(f, keyboard)
		return
	}

	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		d := rl.GetMouseDelta()
		v.yaw -= d.X * orbitSpeed
		v.pitch = math32.Max(0.1, math32.Min(v.pitch+d.Y*orbitSpeed, 1.5))
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		if wheel > 0 {
			v.distance /= zoomStep
		} else {
			v.distance *= zoomStep
		}
		v.distance = math32.Max(minDistance, math32.Min(v.distance, maxDistance))
	}
	v.orbit()

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && v.OnSelect != nil && !v.overInspector() {
		ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), v.Camera)
		id, _ := scene.Pick(f.Objects, vec3(ray.Position), vec3(ray.Direction))
		v.OnSelect(id)
	}
}

// overInspector reports whether the mouse is on the inspector panel as last drawn.
func (v *Viewer) overInspector() bool {
	m := rl.GetMousePosition()
	return v.panel.Contains(m.X, m.Y)
}

func (v *Viewer) updatePlay(f Frame, keyboard bool) {
	player, ok := f.first(func(o scene.Object) bool { return o.Kind == instance.Player })
	if !ok {
		return
	}
	if keyboard && v.OnWalk != nil {
		dx, dy := 0, 0
		if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
			dy--
		}
		if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
			dy++
		}
		if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
			dx--
		}
		if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
			dx++
		}
		if moved, ok := scene.Walk(player, dx, dy); ok {
			v.OnWalk(moved)
			player = moved
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && v.OnGuiClick != nil {
		m := rl.GetMousePosition()
		if n, ok := ui.HitTest(v.gui, m.X, m.Y); ok {
			v.OnGuiClick(n.ID)
		}
	}
	v.follow(f, player)
}

// follow points the camera at the player the way the ViewPort asks: behind and above in
// third person, at eye height looking ahead in first person. Zoom divides the distance.
func (v *Viewer) follow(f Frame, player scene.Object) {
	mode, zoom := scene.ThirdPerson, float32(1)
	if cam, ok := f.first(func(o scene.Object) bool { return o.Camera != nil }); ok {
		mode, zoom = cam.Camera.Mode, math32.Max(cam.Camera.Zoom, 0.1)
	}
	b := player.World()
	if mode == scene.FirstPerson {
		eye := rl.NewVector3(b.Center.X, b.Center.Y+eyeHeight*b.Size.Y, b.Center.Z)
		v.Camera.Position = eye
		v.Camera.Target = rl.NewVector3(eye.X, eye.Y, eye.Z-1)
		return
	}
	v.Camera.Target = vec(b.Center)
	v.Camera.Position = rl.NewVector3(b.Center.X, b.Center.Y+followHeight/zoom, b.Center.Z+followBack/zoom)
}

// Draw renders one frame. Call between BeginDrawing and EndDrawing.
func (v *Viewer) Draw(f Frame) {
	if f.State != project.Editor {
		v.drawMenu()
		return
	}
	live := make(map[string]bool, len(f.Objects))
	intensity := float32(0)
	for _, o := range f.Objects {
		live[o.ID] = true
		if o.Kind == instance.DirectionalLight && o.Light != nil {
			intensity = o.Light.Intensity
		}
	}
	v.textures.prune(live)
	p := v.Camera.Position
	v.prims.SetView([3]float32{p.X, p.Y, p.Z}, [3]float32{0.5, 1, 0.5}, intensity)

	rl.BeginMode3D(v.Camera)
	if v.sky != nil {
		v.sky.draw(v.Camera)
	}
	if v.GridVisible && !v.Playing {
		drawGrid()
	}
	for _, o := range f.Objects {
		if v.Playing && (o.Camera != nil || o.Light != nil) {
			continue
		}
		v.prims.Draw(o, hexColor(o.Color), v.textures.get(o.ID, o.Texture))
		if !v.Playing && o.ID == f.Selection.Object {
			v.prims.DrawOutline(o, selectionColor)
		}
	}
	rl.EndMode3D()

	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	mode := "Edit"
	if v.Playing {
		mode = "Play"
	}
	v.status.Text = fmt.Sprintf("%s  |  %s  |  F5 play  G grid  ESC console", mode, f.Status)
	nodes := []*ui.Node{v.status}
	if v.Playing {
		v.gui = ui.Layout(f.Files, w, h)
		nodes = append(nodes, v.gui...)
	} else {
		v.gui = nil
		nodes = v.inspector.AppendNodes(nodes, v.overlay.sheet, w, h, v.inspect(f))
		v.panel = nodes[1].Bounds
	}
	v.overlay.draw(nodes)
}

func (v *Viewer) inspect(f Frame) []ui.Row {
	n, ok := hierarchy.Find(f.Files, f.Selection.Hierarchy)
	if !ok {
		return ui.Inspect(nil, nil)
	}
	if o, ok := f.Object(n.ID); ok {
		return ui.Inspect(n, &o)
	}
	return ui.Inspect(n, nil)
}

func (v *Viewer) drawMenu() {
	v.panel, v.gui = ui.Rect{}, nil
	v.status.Text = "Main menu  |  open the console with ESC and run: cmd new basic"
	v.overlay.draw([]*ui.Node{v.status})
}

func vec(v scene.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X, v.Y, v.Z)
}

func vec3(v rl.Vector3) scene.Vec3 {
	return scene.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}
