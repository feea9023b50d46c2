package glutils

import (
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Handle of one compiled (or failed-to-compile) shader stage
type ShaderHandle uint32

// Driver is the part of the OpenGL API needed to build shader programs.
// Every call is synchronous and must be made from the thread that holds the
// context current.
type Driver interface {
	CreateShader(stage Stage) ShaderHandle
	ShaderSource(shader ShaderHandle, source string)
	CompileShader(shader ShaderHandle)
	CompileStatus(shader ShaderHandle) bool
	ShaderInfoLog(shader ShaderHandle) string
	DeleteShader(shader ShaderHandle)
	IsShader(shader ShaderHandle) bool

	CreateProgram() uint32
	AttachShader(program uint32, shader ShaderHandle)
	DetachShader(program uint32, shader ShaderHandle)
	LinkProgram(program uint32)
	LinkStatus(program uint32) bool
	ValidateProgram(program uint32)
	ValidateStatus(program uint32) bool
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	IsProgram(program uint32) bool
}

// GLDriver implements Driver on top of the go-gl bindings. gl.Init must have
// been called with a current context before any of its methods are used.
type GLDriver struct{}

func NewGLDriver() GLDriver {
	return GLDriver{}
}

func (GLDriver) CreateShader(stage Stage) ShaderHandle {
	return ShaderHandle(gl.CreateShader(stage.GLenum()))
}

func (GLDriver) ShaderSource(shader ShaderHandle, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(shader), 1, csources, nil)
	free()
}

func (GLDriver) CompileShader(shader ShaderHandle) {
	gl.CompileShader(uint32(shader))
}

func (GLDriver) CompileStatus(shader ShaderHandle) bool {
	var status int32
	gl.GetShaderiv(uint32(shader), gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (GLDriver) ShaderInfoLog(shader ShaderHandle) string {
	var logLength int32
	gl.GetShaderiv(uint32(shader), gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	buf := make([]byte, logLength+1)
	gl.GetShaderInfoLog(uint32(shader), logLength, nil, &buf[0])
	return trimLog(buf)
}

func (GLDriver) DeleteShader(shader ShaderHandle) {
	gl.DeleteShader(uint32(shader))
}

func (GLDriver) IsShader(shader ShaderHandle) bool {
	return gl.IsShader(uint32(shader))
}

func (GLDriver) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (GLDriver) AttachShader(program uint32, shader ShaderHandle) {
	gl.AttachShader(program, uint32(shader))
}

func (GLDriver) DetachShader(program uint32, shader ShaderHandle) {
	gl.DetachShader(program, uint32(shader))
}

func (GLDriver) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (GLDriver) LinkStatus(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (GLDriver) ValidateProgram(program uint32) {
	gl.ValidateProgram(program)
}

func (GLDriver) ValidateStatus(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.VALIDATE_STATUS, &status)
	return status != gl.FALSE
}

func (GLDriver) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	buf := make([]byte, logLength+1)
	gl.GetProgramInfoLog(program, logLength, nil, &buf[0])
	return trimLog(buf)
}

func (GLDriver) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (GLDriver) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (GLDriver) IsProgram(program uint32) bool {
	return gl.IsProgram(program)
}

func trimLog(buf []byte) string {
	return strings.TrimRight(string(buf), "\x00\n ")
}
