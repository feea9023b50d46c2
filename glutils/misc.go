package glutils

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/go-gl/gl/v3.3-core/gl"
)

// maxQueuedErrors bounds the gl.GetError drain loop
const maxQueuedErrors = 16

// CheckError drains the GL error queue and returns every pending code as
// a GLError, joined.
func CheckError() error {
	var errs []error
	for i := 0; i < maxQueuedErrors; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		errs = append(errs, GLError(code))
	}
	return errors.Join(errs...)
}

// Attribute is one float vertex attribute of Size components bound to
// shader location Location
type Attribute struct {
	Location uint32
	Size     int32
}

// VertexLayout lists the attributes of an interleaved float32 vertex in order
type VertexLayout []Attribute

// Components returns the float count of one vertex
func (l VertexLayout) Components() int {
	n := 0
	for _, attr := range l {
		n += int(attr.Size)
	}
	return n
}

// Stride returns the byte size of one vertex
func (l VertexLayout) Stride() int32 {
	return int32(4 * l.Components())
}

// Offset returns the byte offset of attribute i within a vertex
func (l VertexLayout) Offset(i int) uintptr {
	n := 0
	for _, attr := range l[:i] {
		n += int(attr.Size)
	}
	return uintptr(4 * n)
}

// Check reports whether vertices and indices fit the layout
func (l VertexLayout) Check(vertices []float32, indices []uint32) error {
	if len(l) == 0 {
		return errors.New("empty vertex layout")
	}
	for _, attr := range l {
		if attr.Size < 1 || attr.Size > 4 {
			return fmt.Errorf("attribute %d: size %d out of range 1..4", attr.Location, attr.Size)
		}
	}
	n := l.Components()
	if len(vertices) == 0 || len(vertices)%n != 0 {
		return fmt.Errorf("%d floats do not make whole vertices of %d components", len(vertices), n)
	}
	count := uint32(len(vertices) / n)
	for i, idx := range indices {
		if idx >= count {
			return fmt.Errorf("index #%d = %d out of range for %d vertices", i, idx, count)
		}
	}
	return nil
}

// Mesh is static vertex (and optional index) data uploaded to the GPU
type Mesh struct {
	vao, vbo, ebo uint32
	mode          uint32
	count         int32
	indexed       bool
}

// NewMesh uploads vertices laid out as layout, and indices if there are any,
// into a new vertex array drawn with mode (e.g. gl.TRIANGLES).
func NewMesh(vertices []float32, layout VertexLayout, indices []uint32, mode uint32) (*Mesh, error) {
	if err := layout.Check(vertices, indices); err != nil {
		return nil, err
	}
	m := &Mesh{mode: mode}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(vertices), gl.Ptr(vertices), gl.STATIC_DRAW)

	stride := layout.Stride()
	for i, attr := range layout {
		gl.VertexAttribPointerWithOffset(attr.Location, attr.Size, gl.FLOAT, false, stride, layout.Offset(i))
		gl.EnableVertexAttribArray(attr.Location)
	}

	if len(indices) > 0 {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 4*len(indices), gl.Ptr(indices), gl.STATIC_DRAW)
		m.indexed = true
		m.count = int32(len(indices))
	} else {
		m.count = int32(len(vertices) / layout.Components())
	}

	// the element buffer binding is VAO state, so the VAO goes first
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	if err := CheckError(); err != nil {
		m.Delete()
		return nil, fmt.Errorf("upload mesh: %w", err)
	}
	return m, nil
}

func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	if m.indexed {
		gl.DrawElements(m.mode, m.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(m.mode, 0, m.count)
	}
	gl.BindVertexArray(0)
}

func (m *Mesh) Delete() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	*m = Mesh{}
}

// ReadPixels copies the width x height lower left corner of the current read
// framebuffer into an image with the top row first.
func ReadPixels(width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("read pixels: invalid size %dx%d", width, height)
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	if err := CheckError(); err != nil {
		return nil, err
	}
	// GL rows start at the bottom
	return imaging.FlipV(img), nil
}
