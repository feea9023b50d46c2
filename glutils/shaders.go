package glutils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

type Stage int

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// GLenum returns the shader type passed to gl.CreateShader
func (s Stage) GLenum() uint32 {
	if s == StageFragment {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

// SourcePair holds the vertex and fragment source of one program
type SourcePair struct {
	Vertex   string
	Fragment string
}

func NewSourcePair(vertex, fragment string) SourcePair {
	return SourcePair{Vertex: vertex, Fragment: fragment}
}

// Source returns the text of the given stage
func (p SourcePair) Source(stage Stage) string {
	if stage == StageFragment {
		return p.Fragment
	}
	return p.Vertex
}

const (
	markerShader   = "#shader"
	markerVertex   = "vertex"
	markerFragment = "fragment"
)

// ParseShader splits a tagged shader source into its two stages.
//
// A line containing "#shader" selects the section named on the same line
// ("vertex" is checked before "fragment"); a marker naming neither keeps the
// current section. Marker lines are dropped, every other line is appended to
// the current section as read, line terminator included, and a final line
// without one gets a newline. Lines before the first marker are discarded and
// a stage with no section is left empty. Lines may be of any length.
func ParseShader(r io.Reader) (SourcePair, error) {
	var sections [2]strings.Builder
	active := -1

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return SourcePair{}, fmt.Errorf("read shader source: %w", err)
		}
		if line != "" {
			if strings.Contains(line, markerShader) {
				switch {
				case strings.Contains(line, markerVertex):
					active = int(StageVertex)
				case strings.Contains(line, markerFragment):
					active = int(StageFragment)
				}
			} else if active >= 0 {
				sections[active].WriteString(line)
				if !strings.HasSuffix(line, "\n") {
					sections[active].WriteByte('\n')
				}
			}
		}
		if err == io.EOF {
			break
		}
	}

	return SourcePair{
		Vertex:   sections[StageVertex].String(),
		Fragment: sections[StageFragment].String(),
	}, nil
}

// ReadShaderFiles reads the vertex and fragment stages from two untagged
// files, each taken verbatim. An unreadable file yields an error wrapping
// the *fs.PathError from os.ReadFile.
func ReadShaderFiles(vertexPath, fragmentPath string) (SourcePair, error) {
	vertex, err := os.ReadFile(vertexPath)
	if err != nil {
		return SourcePair{}, fmt.Errorf("read vertex shader file: %w", err)
	}
	fragment, err := os.ReadFile(fragmentPath)
	if err != nil {
		return SourcePair{}, fmt.Errorf("read fragment shader file: %w", err)
	}
	return NewSourcePair(string(vertex), string(fragment)), nil
}

// ParseShaderFile reads and parses a tagged shader file. An unreadable file
// yields an error wrapping the *fs.PathError from os.Open.
func ParseShaderFile(path string) (SourcePair, error) {
	f, err := os.Open(path)
	if err != nil {
		return SourcePair{}, fmt.Errorf("open shader file: %w", err)
	}
	defer f.Close()

	pair, err := ParseShader(f)
	if err != nil {
		return SourcePair{}, fmt.Errorf("parse %q: %w", path, err)
	}
	return pair, nil
}
