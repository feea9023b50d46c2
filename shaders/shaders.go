package shaders

//
// Embedded GLSL shader sources
//

import _ "embed"

// Pass-through position and constant red colour
var (
	//go:embed triangle.vert
	TriangleVert string

	//go:embed triangle.frag
	TriangleFrag string
)

// Position + per-vertex colour
var (
	//go:embed colored.vert
	ColoredVert string

	//go:embed colored.frag
	ColoredFrag string
)

// Both stages in one file, split by "#shader vertex" / "#shader fragment"
//
//go:embed basic.shader
var Basic string
