// Package material defines the materials a batch can be drawn with.
// Each material carries the shader sources for its pipeline.
package material

// Flat is a single-color material with basic directional lighting. It
// reads the per-instance model matrix from the instance buffer, so one
// multi-draw call covers every mesh and placement in a batch.
type Flat struct{}

// MaterialName implements batch.Material.
func (Flat) MaterialName() string { return "flat" }

// VertexShader returns the GLSL source for the flat vertex stage.
func (Flat) VertexShader() string { return flatVertexSrc }

// FragmentShader returns the GLSL source for the flat fragment stage.
func (Flat) FragmentShader() string { return flatFragmentSrc }

const flatVertexSrc = `#version 450 core

layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aTexCoord;
layout(location = 4) in mat4 aModel;

uniform mat4 uViewProj;

out vec3 vNormal;

void main() {
	vNormal = mat3(aModel) * aNormal;
	gl_Position = uViewProj * aModel * vec4(aPosition, 1.0);
}
`

const flatFragmentSrc = `#version 450 core

in vec3 vNormal;

uniform vec3 uColor;

out vec4 fragColor;

void main() {
	vec3 lightDir = normalize(vec3(0.4, 0.8, 0.3));
	float diffuse = max(dot(normalize(vNormal), lightDir), 0.0);
	vec3 shaded = uColor * (0.25 + 0.75 * diffuse);
	fragColor = vec4(shaded, 1.0);
}
`
