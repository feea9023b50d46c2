package glutils

import (
	"errors"
	"log/slog"
	"strings"
)

const noDiagnostic = "driver reported a failure without a diagnostic"

// Program is a linked shader program owned by the caller, who must Delete it
// before the context goes away.
type Program struct {
	ID uint32

	drv    Driver
	linked bool
}

// Linked reports whether the program linked and can be used for drawing
func (p Program) Linked() bool {
	return p.drv != nil && p.linked
}

// Use makes p the current program. Programs that failed to link are not
// bound, so drawing with them renders nothing.
func (p Program) Use() {
	if !p.Linked() {
		return
	}
	p.drv.UseProgram(p.ID)
}

func (p Program) Delete() {
	if p.drv == nil || p.ID == 0 {
		return
	}
	p.drv.DeleteProgram(p.ID)
}

// Builder compiles and links vertex/fragment programs through a Driver.
// It is bound to the driver's context and must not be shared across threads.
type Builder struct {
	drv Driver
	log *slog.Logger
}

func NewBuilder(drv Driver, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{drv: drv, log: logger}
}

// CompileStage compiles one stage. The handle is returned even when
// compilation fails, together with a *CompileError.
func (b *Builder) CompileStage(stage Stage, source string) (ShaderHandle, error) {
	shader := b.drv.CreateShader(stage)
	b.drv.ShaderSource(shader, source)
	b.drv.CompileShader(shader)

	if !b.drv.CompileStatus(shader) {
		gllog := b.drv.ShaderInfoLog(shader)
		if strings.TrimSpace(gllog) == "" {
			gllog = noDiagnostic
		}
		return shader, &CompileError{Stage: stage, Shader: shader, Log: gllog}
	}
	if strings.TrimSpace(source) == "" {
		return shader, &CompileError{Stage: stage, Shader: shader, Log: "empty source"}
	}

	b.log.Debug("compiled shader", "stage", stage, "shader", shader)
	return shader, nil
}

// LinkProgram attaches vs and fs to a new program, links and validates it.
// Both stage handles are detached and deleted before returning, whatever the
// outcome. The program is returned even when linking fails, together with
// a *LinkError.
func (b *Builder) LinkProgram(vs, fs ShaderHandle) (Program, error) {
	id := b.drv.CreateProgram()
	prog := Program{ID: id, drv: b.drv}

	stages := [2]ShaderHandle{vs, fs}
	for _, shader := range stages {
		b.drv.AttachShader(id, shader)
	}
	defer func() {
		for _, shader := range stages {
			b.drv.DetachShader(id, shader)
			b.drv.DeleteShader(shader)
		}
	}()

	b.drv.LinkProgram(id)
	if !b.drv.LinkStatus(id) {
		gllog := b.drv.ProgramInfoLog(id)
		if strings.TrimSpace(gllog) == "" {
			gllog = noDiagnostic
		}
		return prog, &LinkError{Program: id, Log: gllog}
	}
	prog.linked = true

	// Core profile drivers may refuse validation until a vertex array is
	// bound, so a failure here is only reported.
	b.drv.ValidateProgram(id)
	if !b.drv.ValidateStatus(id) {
		b.log.Warn("program validation failed", "program", id, "log", b.drv.ProgramInfoLog(id))
	}

	b.log.Debug("linked program", "program", id)
	return prog, nil
}

// Build compiles both stages of pair and links them. All three steps always
// run; the returned error joins every *CompileError and *LinkError that
// occurred and is nil only when the program is ready to draw with. Every call
// allocates new driver objects.
func (b *Builder) Build(pair SourcePair) (Program, error) {
	var errs []error

	vs, err := b.CompileStage(StageVertex, pair.Vertex)
	if err != nil {
		errs = append(errs, b.report(err))
	}
	fs, err := b.CompileStage(StageFragment, pair.Fragment)
	if err != nil {
		errs = append(errs, b.report(err))
	}
	prog, err := b.LinkProgram(vs, fs)
	if err != nil {
		errs = append(errs, b.report(err))
	}

	return prog, errors.Join(errs...)
}

func (b *Builder) report(err error) error {
	var compileErr *CompileError
	var linkErr *LinkError
	switch {
	case errors.As(err, &compileErr):
		b.log.Error("shader compilation failed", "stage", compileErr.Stage, "log", compileErr.Log)
	case errors.As(err, &linkErr):
		b.log.Error("program linking failed", "program", linkErr.Program, "log", linkErr.Log)
	}
	return err
}
