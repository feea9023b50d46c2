package scenery

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	mgl "github.com/go-gl/mathgl/mgl32"

	"github.com/xopoww/go-gltut/glutils"
	"github.com/xopoww/go-gltut/shaders"
)

// Scene is everything one tutorial program draws: static vertex data, the
// shaders to draw it with and the colour the framebuffer is cleared to.
// A scene without vertices only clears.
type Scene struct {
	Name string

	Vertices []float32
	Layout   glutils.VertexLayout
	Indices  []uint32
	Mode     uint32

	// Shader sources come from the untagged VertexFile and FragmentFile if
	// set, else from ShaderFile if set, else from the tagged text in
	// ShaderText if set, else from Shader.
	Shader       glutils.SourcePair
	ShaderText   string
	ShaderFile   string
	VertexFile   string
	FragmentFile string

	Clear mgl.Vec4
}

var defaultClear = mgl.Vec4{0.2, 0.3, 0.3, 1.0}

// Drawable reports whether the scene issues a draw call
func (s Scene) Drawable() bool {
	return len(s.Vertices) > 0
}

func (s Scene) Validate() error {
	if !s.Drawable() {
		return nil
	}
	if err := s.Layout.Check(s.Vertices, s.Indices); err != nil {
		return fmt.Errorf("scene %s: %w", s.Name, err)
	}
	return nil
}

// Sources returns the scene's shader pair, reading shader files from disk
func (s Scene) Sources() (glutils.SourcePair, error) {
	switch {
	case s.VertexFile != "" || s.FragmentFile != "":
		if s.VertexFile == "" || s.FragmentFile == "" {
			return glutils.SourcePair{}, fmt.Errorf("scene %s: vertex and fragment shader files go together", s.Name)
		}
		return glutils.ReadShaderFiles(s.VertexFile, s.FragmentFile)
	case s.ShaderFile != "":
		return glutils.ParseShaderFile(s.ShaderFile)
	case s.ShaderText != "":
		return glutils.ParseShader(strings.NewReader(s.ShaderText))
	}
	return s.Shader, nil
}

// WithStageFiles returns the scene reading its vertex and fragment stages
// from two separate files
func (s Scene) WithStageFiles(vertex, fragment string) Scene {
	s.VertexFile, s.FragmentFile = vertex, fragment
	return s
}

// ShaderPaths lists the files Sources reads, if any
func (s Scene) ShaderPaths() []string {
	switch {
	case s.VertexFile != "" && s.FragmentFile != "":
		return []string{s.VertexFile, s.FragmentFile}
	case s.ShaderFile != "":
		return []string{s.ShaderFile}
	}
	return nil
}

// Upload copies the vertex and index data into a new mesh
func (s Scene) Upload() (*glutils.Mesh, error) {
	return glutils.NewMesh(s.Vertices, s.Layout, s.Indices, s.Mode)
}

// position returns the NDC position of vertex i (first two components of
// the first attribute)
func (s Scene) position(i uint32) mgl.Vec2 {
	base := int(i) * s.Layout.Components()
	pos := mgl.Vec2{s.Vertices[base], 0}
	if s.Layout[0].Size > 1 {
		pos[1] = s.Vertices[base+1]
	}
	return pos
}

// Centroid returns the NDC centroid of the scene's first triangle
func (s Scene) Centroid() (mgl.Vec2, error) {
	if err := s.Validate(); err != nil {
		return mgl.Vec2{}, err
	}
	idx := []uint32{0, 1, 2}
	if len(s.Indices) > 0 {
		idx = s.Indices
	}
	if !s.Drawable() || len(idx) < 3 || len(s.Vertices)/s.Layout.Components() < 3 {
		return mgl.Vec2{}, fmt.Errorf("scene %s has no triangle", s.Name)
	}
	sum := s.position(idx[0]).Add(s.position(idx[1])).Add(s.position(idx[2]))
	return sum.Mul(1.0 / 3.0), nil
}

// NDCToPixel maps normalized device coordinates to the pixel of a
// width x height image whose top row is row 0
func NDCToPixel(p mgl.Vec2, width, height int) (x, y int) {
	x = int((p.X() + 1) / 2 * float32(width))
	y = int((1 - p.Y()) / 2 * float32(height))
	return clamp(x, width), clamp(y, height)
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// Window only clears to the default colour
func Window() Scene {
	return Scene{Name: "window", Clear: defaultClear}
}

// Triangle is a red triangle given as 2D positions with inline shader
// strings, on black
func Triangle() Scene {
	return Scene{
		Name: "triangle",
		Vertices: []float32{
			-0.5, -0.5,
			0.0, 0.5,
			0.5, -0.5,
		},
		Layout: glutils.VertexLayout{{Location: 0, Size: 2}},
		Mode:   gl.TRIANGLES,
		Shader: glutils.NewSourcePair(shaders.TriangleVert, shaders.TriangleFrag),
		Clear:  mgl.Vec4{0, 0, 0, 0},
	}
}

// Attributes interleaves a position and a colour per vertex
func Attributes() Scene {
	return Scene{
		Name: "attributes",
		Vertices: []float32{
			// positions     // colors
			0.5, -0.5, 0.0, 1.0, 0.0, 0.0, // bottom right
			-0.5, -0.5, 0.0, 0.0, 1.0, 0.0, // bottom left
			0.0, 0.5, 0.0, 0.0, 0.0, 1.0, // top
		},
		Layout: glutils.VertexLayout{
			{Location: 0, Size: 3},
			{Location: 1, Size: 3},
		},
		Mode:   gl.TRIANGLES,
		Shader: glutils.NewSourcePair(shaders.ColoredVert, shaders.ColoredFrag),
		Clear:  defaultClear,
	}
}

// Quad is two triangles sharing an edge, drawn through an index buffer
func Quad() Scene {
	return Scene{
		Name: "quad",
		Vertices: []float32{
			0.5, 0.5, 0.0, // top right
			0.5, -0.5, 0.0, // bottom right
			-0.5, -0.5, 0.0, // bottom left
			-0.5, 0.5, 0.0, // top left
		},
		Layout:  glutils.VertexLayout{{Location: 0, Size: 3}},
		Indices: []uint32{0, 1, 3, 1, 2, 3},
		Mode:    gl.TRIANGLES,
		Shader:  glutils.NewSourcePair(shaders.TriangleVert, shaders.TriangleFrag),
		Clear:   defaultClear,
	}
}

// ShaderFile draws a triangle with shaders parsed from the tagged file at
// path, or from the embedded basic.shader when path is empty
func ShaderFile(path string) Scene {
	return Scene{
		Name: "shaderfile",
		Vertices: []float32{
			-0.5, -0.5, 0.0,
			0.5, -0.5, 0.0,
			0.0, 0.5, 0.0,
		},
		Layout:     glutils.VertexLayout{{Location: 0, Size: 3}},
		Mode:       gl.TRIANGLES,
		ShaderText: shaders.Basic,
		ShaderFile: path,
		Clear:      defaultClear,
	}
}

var builtin = map[string]func(shaderPath string) Scene{
	"window":     func(string) Scene { return Window() },
	"triangle":   func(string) Scene { return Triangle() },
	"attributes": func(string) Scene { return Attributes() },
	"quad":       func(string) Scene { return Quad() },
	"shaderfile": ShaderFile,
}

// ByName returns the built-in scene called name. shaderPath is only used by
// the shaderfile scene.
func ByName(name, shaderPath string) (Scene, error) {
	newScene, ok := builtin[name]
	if !ok {
		return Scene{}, fmt.Errorf("unknown scene %q (have %s)", name, strings.Join(Names(), ", "))
	}
	return newScene(shaderPath), nil
}

// Names lists the built-in scenes in alphabetical order
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
