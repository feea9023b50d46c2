package scenery

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinScenesValid(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := ByName(name, "")
			require.NoError(t, err)
			assert.Equal(t, name, s.Name)
			require.NoError(t, s.Validate())

			if !s.Drawable() {
				return
			}
			pair, err := s.Sources()
			require.NoError(t, err)
			assert.Contains(t, pair.Vertex, "#version 330 core")
			assert.Contains(t, pair.Fragment, "FragColor")
		})
	}
}

func TestByNameUnknown(t *testing.T) {
	_, err := ByName("cube", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "triangle")
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"attributes", "quad", "shaderfile", "triangle", "window"}, Names())
}

func TestWindowSceneClearsOnly(t *testing.T) {
	s := Window()
	assert.False(t, s.Drawable())
	assert.Equal(t, mgl.Vec4{0.2, 0.3, 0.3, 1.0}, s.Clear)
	_, err := s.Centroid()
	assert.Error(t, err)
}

func TestCentroid(t *testing.T) {
	testCases := []struct {
		name  string
		scene Scene
		want  mgl.Vec2
	}{
		{name: "2D positions", scene: Triangle(), want: mgl.Vec2{0, -1.0 / 6.0}},
		{name: "interleaved colour", scene: Attributes(), want: mgl.Vec2{0, -1.0 / 6.0}},
		{name: "indexed", scene: Quad(), want: mgl.Vec2{1.0 / 6.0, 1.0 / 6.0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.scene.Centroid()
			require.NoError(t, err)
			assert.True(t, got.ApproxEqual(tc.want), "got %v want %v", got, tc.want)
		})
	}
}

func TestNDCToPixel(t *testing.T) {
	testCases := []struct {
		p    mgl.Vec2
		x, y int
	}{
		{p: mgl.Vec2{0, 0}, x: 400, y: 300},
		{p: mgl.Vec2{-1, 1}, x: 0, y: 0},
		{p: mgl.Vec2{1, -1}, x: 799, y: 599},
		{p: mgl.Vec2{0.5, -0.5}, x: 600, y: 450},
		{p: mgl.Vec2{3, -3}, x: 799, y: 599},
	}
	for _, tc := range testCases {
		x, y := NDCToPixel(tc.p, 800, 600)
		assert.Equal(t, tc.x, x, "x of %v", tc.p)
		assert.Equal(t, tc.y, y, "y of %v", tc.p)
	}
}

func TestValidateRejectsBadData(t *testing.T) {
	s := Quad()
	s.Indices = append(s.Indices, 9)
	assert.Error(t, s.Validate())

	s = Attributes()
	s.Vertices = s.Vertices[:len(s.Vertices)-1]
	assert.Error(t, s.Validate())
}

func TestShaderFileSources(t *testing.T) {
	embedded, err := ShaderFile("").Sources()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(embedded.Vertex, "#version 330 core\n"))
	assert.True(t, strings.HasPrefix(embedded.Fragment, "#version 330 core\n"))
	assert.NotContains(t, embedded.Vertex, "#shader")

	path := filepath.Join(t.TempDir(), "custom.shader")
	text := "#shader vertex\nVERT\n#shader fragment\nFRAG\n"
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))

	pair, err := ShaderFile(path).Sources()
	require.NoError(t, err)
	assert.Equal(t, "VERT\n", pair.Vertex)
	assert.Equal(t, "FRAG\n", pair.Fragment)

	_, err = ShaderFile(filepath.Join(t.TempDir(), "missing.shader")).Sources()
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestStageFileSources(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "shader.vs")
	frag := filepath.Join(dir, "shader.fs")
	require.NoError(t, os.WriteFile(vert, []byte("VERT\r\n"), 0o644))
	require.NoError(t, os.WriteFile(frag, []byte("FRAG"), 0o644))

	s := ShaderFile("").WithStageFiles(vert, frag)
	assert.Equal(t, []string{vert, frag}, s.ShaderPaths())

	pair, err := s.Sources()
	require.NoError(t, err)
	assert.Equal(t, "VERT\r\n", pair.Vertex)
	assert.Equal(t, "FRAG", pair.Fragment)

	_, err = ShaderFile("").WithStageFiles(vert, "").Sources()
	assert.Error(t, err)

	_, err = ShaderFile("").WithStageFiles(vert, filepath.Join(dir, "nope.fs")).Sources()
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestShaderPaths(t *testing.T) {
	assert.Nil(t, Triangle().ShaderPaths())
	assert.Nil(t, ShaderFile("").ShaderPaths())
	assert.Equal(t, []string{"a.shader"}, ShaderFile("a.shader").ShaderPaths())
}
