package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"game-studio/internal/scene"
)

const (
	sphereRings    = 16
	sphereSlices   = 16
	coneSlices     = 16
	wedgeSides     = 3
	lightMarkerMax = 0.6
)

// cached holds the mesh of a shape with its flat and textured materials.
type cached struct {
	mesh        rl.Mesh
	mtl         rl.Material
	texturedMtl rl.Material
}

// Registry maps shapes to meshes. Meshes are created on first use so GPU resources are
// allocated after the window exists.
type Registry struct {
	cache          map[Shape]cached
	viewPos        [3]float32
	lightDir       [3]float32
	lightIntensity float32
}

func NewRegistry() *Registry {
	return &Registry{
		cache:          make(map[Shape]cached),
		lightDir:       [3]float32{0.5, 1, 0.5},
		lightIntensity: defaultLightIntensity,
	}
}

// SetView sets the camera position and the scene light for this frame. intensity is the
// DirectionalLight intensity of the document, or 0 to keep the default.
func (r *Registry) SetView(viewPos, lightDir [3]float32, intensity float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
	r.lightIntensity = defaultLightIntensity
	if intensity > 0 {
		r.lightIntensity = defaultLightIntensity * intensity
	}
}

func genMesh(s Shape) rl.Mesh {
	switch s {
	case Wedge:
		return rl.GenMeshCylinder(0.5, 1, wedgeSides)
	case Cone:
		return rl.GenMeshCone(0.5, 1, coneSlices)
	case Sphere:
		return rl.GenMeshSphere(0.5, sphereRings, sphereSlices)
	}
	return rl.GenMeshCube(1, 1, 1)
}

func (r *Registry) ensure(s Shape) cached {
	if c, ok := r.cache[s]; ok {
		return c
	}
	c := cached{mesh: genMesh(s), mtl: rl.LoadMaterialDefault(), texturedMtl: rl.LoadMaterialDefault()}
	if sh := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(sh) {
		c.mtl.Shader = sh
	}
	if sh := rl.LoadShaderFromMemory(litVS, litTexturedFS); rl.IsShaderValid(sh) {
		c.texturedMtl.Shader = sh
	}
	r.cache[s] = c
	return c
}

// Draw draws o between BeginMode3D and EndMode3D. tex, when valid, replaces the flat color.
// Objects with no shape are skipped.
func (r *Registry) Draw(o scene.Object, color rl.Color, tex rl.Texture2D) {
	shape := ShapeOf(o.Kind)
	if shape == None {
		return
	}
	c := r.ensure(shape)
	box := o.World()
	if shape == Sphere {
		d := min(box.Size.X, box.Size.Z, lightMarkerMax)
		box.Size = scene.Vec3{X: d, Y: d, Z: d}
	}
	mtl := c.mtl
	if rl.IsTextureValid(tex) {
		mtl = c.texturedMtl
		rl.SetMaterialTexture(&mtl, rl.MapAlbedo, tex)
		color = rl.White
	}
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = color
	}
	r.setUniforms(mtl.Shader)
	rl.DrawMesh(c.mesh, mtl, transform(box, o.Transform.Rotation, meshOffset[shape]))
}

// DrawOutline draws the wire box of o, used for the selection highlight.
func (r *Registry) DrawOutline(o scene.Object, color rl.Color) {
	b := o.World()
	rl.DrawCubeWiresV(
		rl.NewVector3(b.Center.X, b.Center.Y, b.Center.Z),
		rl.NewVector3(b.Size.X*1.05, b.Size.Y*1.05, b.Size.Z*1.05),
		color,
	)
}

// transform orders offset (centre the mesh), scale, rotation, then translation to the box
// centre. Rotation is in degrees.
func transform(b scene.Box, rot scene.Vec3, offset [3]float32) rl.Matrix {
	m := rl.MatrixTranslate(offset[0], offset[1], offset[2])
	m = rl.MatrixMultiply(m, rl.MatrixScale(b.Size.X, b.Size.Y, b.Size.Z))
	m = rl.MatrixMultiply(m, rl.MatrixRotateXYZ(rl.NewVector3(rot.X*rl.Deg2rad, rot.Y*rl.Deg2rad, rot.Z*rl.Deg2rad)))
	return rl.MatrixMultiply(m, rl.MatrixTranslate(b.Center.X, b.Center.Y, b.Center.Z))
}

var (
	defaultAmbient    = [4]float32{0.2, 0.22, 0.26, 1.0}
	defaultLightColor = [3]float32{1.0, 0.98, 0.95}
)

const (
	defaultLightIntensity   = float32(0.75)
	defaultSpecularPower    = float32(48.0)
	defaultSpecularStrength = float32(0.35)
)

// setUniforms copies the frame lighting into shader. Values go through local arrays so cgo
// never sees Go-managed struct fields.
func (r *Registry) setUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	vec3 := map[string][3]float32{
		"viewPos":    r.viewPos,
		"lightDir":   r.lightDir,
		"lightColor": defaultLightColor,
	}
	for name, v := range vec3 {
		if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
			rl.SetShaderValueV(shader, loc, v[:], rl.ShaderUniformVec3, 1)
		}
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		amb := defaultAmbient
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	floats := map[string]float32{
		"lightIntensity":   r.lightIntensity,
		"specularPower":    defaultSpecularPower,
		"specularStrength": defaultSpecularStrength,
	}
	for name, v := range floats {
		if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
			rl.SetShaderValue(shader, loc, []float32{v}, rl.ShaderUniformFloat)
		}
	}
}

// Lit shaders: directional diffuse, ambient and Blinn-Phong specular. The textured variant
// multiplies the albedo texture into the tint.
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litHeader = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
uniform sampler2D texture0;
out vec4 finalColor;
vec3 shade(vec4 tint) {
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
  return ambient.rgb * tint.rgb + diffuse + lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
}
`
	litFS = litHeader + `void main() {
  finalColor = vec4(shade(colDiffuse), colDiffuse.a);
}
`
	litTexturedFS = litHeader + `void main() {
  vec4 tint = texture(texture0, fragTexCoord) * colDiffuse;
  finalColor = vec4(shade(tint), tint.a);
}
`
)
