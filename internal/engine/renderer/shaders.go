package renderer

const modelVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;
layout (location = 3) in vec3 aColor;

uniform mat4 uMVP;

out vec3 vNormal;
out vec2 vTexCoord;
out vec3 vColor;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vNormal = aNormal;
	vTexCoord = aTexCoord;
	vColor = aColor;
}
`

const modelFragmentShader = `
#version 410 core

in vec3 vNormal;
in vec2 vTexCoord;
in vec3 vColor;

uniform sampler2D uTexture;
uniform vec3 uLightDir;
uniform vec3 uFlatColor;
uniform int uColorMode; // 0 = texture, 1 = vertex color, 2 = flat color

out vec4 FragColor;

void main() {
	vec3 base;
	if (uColorMode == 1) {
		base = vColor;
	} else if (uColorMode == 2) {
		base = uFlatColor;
	} else {
		base = texture(uTexture, vTexCoord).rgb;
	}

	float light = 1.0;
	if (length(vNormal) > 0.0) {
		light = 0.35 + 0.65 * max(dot(normalize(vNormal), -uLightDir), 0.0);
	}
	FragColor = vec4(base * light, 1.0);
}
`

const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uMVP;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
}
`

const lineFragmentShader = `
#version 410 core

uniform vec3 uColor;

out vec4 FragColor;

void main() {
	FragColor = vec4(uColor, 1.0);
}
`
