package render

import rl "github.com/gen2brain/raylib-go/raylib"

// The ground grid covers the editor canvas: 800x600 pixels at 40 per world unit.
const (
	gridHalfX      = 10
	gridHalfZ      = 8
	gridMajorStep  = 5
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

var (
	gridMinor = rl.NewColor(128, 128, 128, gridMinorAlpha)
	gridMajor = rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX     = rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY     = rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ     = rl.NewColor(80, 80, 220, axisLineAlpha)
)

// drawGrid draws the XZ ground grid with major lines and the three axes through the origin.
func drawGrid() {
	var start, end rl.Vector3
	for x := -gridHalfX; x <= gridHalfX; x++ {
		start.X, start.Y, start.Z = float32(x), 0, -gridHalfZ
		end.X, end.Y, end.Z = float32(x), 0, gridHalfZ
		rl.DrawLine3D(start, end, lineColor(x))
	}
	for z := -gridHalfZ; z <= gridHalfZ; z++ {
		start.X, start.Y, start.Z = -gridHalfX, 0, float32(z)
		end.X, end.Y, end.Z = gridHalfX, 0, float32(z)
		rl.DrawLine3D(start, end, lineColor(z))
	}
	rl.DrawLine3D(rl.NewVector3(-gridHalfX, 0, 0), rl.NewVector3(gridHalfX, 0, 0), axisX)
	rl.DrawLine3D(rl.NewVector3(0, -gridHalfZ, 0), rl.NewVector3(0, gridHalfZ, 0), axisY)
	rl.DrawLine3D(rl.NewVector3(0, 0, -gridHalfZ), rl.NewVector3(0, 0, gridHalfZ), axisZ)
}

func lineColor(i int) rl.Color {
	if i%gridMajorStep == 0 {
		return gridMajor
	}
	return gridMinor
}
