package glutils

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// CompileError reports a shader stage the driver refused to compile.
// Shader is still a live handle.
type CompileError struct {
	Stage  Stage
	Shader ShaderHandle
	Log    string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s shader %d: %s", e.Stage, e.Shader, e.Log)
}

// LinkError reports a program that failed to link
type LinkError struct {
	Program uint32
	Log     string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link program %d: %s", e.Program, e.Log)
}

// GLError is a code returned by gl.GetError
type GLError uint32

var glErrorNames = map[GLError]string{
	gl.INVALID_ENUM:                  "INVALID_ENUM",
	gl.INVALID_VALUE:                 "INVALID_VALUE",
	gl.INVALID_OPERATION:             "INVALID_OPERATION",
	gl.INVALID_FRAMEBUFFER_OPERATION: "INVALID_FRAMEBUFFER_OPERATION",
	gl.OUT_OF_MEMORY:                 "OUT_OF_MEMORY",
}

func (e GLError) Error() string {
	name, ok := glErrorNames[e]
	if !ok {
		name = "unknown"
	}
	return fmt.Sprintf("OpenGL error %s (0x%04X)", name, uint32(e))
}
