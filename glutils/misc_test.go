package glutils

import (
	"testing"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/stretchr/testify/assert"
)

func TestVertexLayout(t *testing.T) {
	layout := VertexLayout{{Location: 0, Size: 3}, {Location: 1, Size: 3}}
	assert.Equal(t, 6, layout.Components())
	assert.Equal(t, int32(24), layout.Stride())
	assert.Equal(t, uintptr(0), layout.Offset(0))
	assert.Equal(t, uintptr(12), layout.Offset(1))

	posOnly := VertexLayout{{Location: 0, Size: 2}}
	assert.Equal(t, int32(8), posOnly.Stride())
}

func TestVertexLayoutCheck(t *testing.T) {
	layout := VertexLayout{{Location: 0, Size: 3}}
	quad := []float32{
		0.5, 0.5, 0,
		0.5, -0.5, 0,
		-0.5, -0.5, 0,
		-0.5, 0.5, 0,
	}

	testCases := []struct {
		name     string
		layout   VertexLayout
		vertices []float32
		indices  []uint32
		wantErr  bool
	}{
		{name: "arrays", layout: layout, vertices: quad},
		{name: "indexed", layout: layout, vertices: quad, indices: []uint32{0, 1, 3, 1, 2, 3}},
		{name: "index out of range", layout: layout, vertices: quad, indices: []uint32{0, 1, 4}, wantErr: true},
		{name: "partial vertex", layout: layout, vertices: quad[:10], wantErr: true},
		{name: "no vertices", layout: layout, wantErr: true},
		{name: "no layout", vertices: quad, wantErr: true},
		{name: "bad size", layout: VertexLayout{{Location: 0, Size: 5}}, vertices: make([]float32, 10), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.layout.Check(tc.vertices, tc.indices)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGLErrorNames(t *testing.T) {
	assert.Equal(t, "OpenGL error INVALID_OPERATION (0x0502)", GLError(gl.INVALID_OPERATION).Error())
	assert.Equal(t, "OpenGL error INVALID_ENUM (0x0500)", GLError(gl.INVALID_ENUM).Error())
	assert.Equal(t, "OpenGL error unknown (0x1234)", GLError(0x1234).Error())
}
