package main

const vsSource = `#version 300 es
	layout (location = 0) in vec4 aVertexPosition;
	uniform mat4 uModelMatrix;
	uniform mat4 uViewMatrix;
	uniform mat4 uProjectionMatrix;
	uniform float uYMin;
	uniform float uYRange;
	uniform float uPointSizeBase;
	uniform float uAmbient;
	uniform vec3 uLightPosition;
	uniform float uLightIntensity;
	uniform int uPlaceholder;
	vec4 worldPosition;
	vec4 viewPosition;
	vec3 normal;
	lowp float c;
	lowp float shade;
	out lowp vec4 vColor;

	void main(void) {
		worldPosition = uModelMatrix * aVertexPosition;
		viewPosition = uViewMatrix * worldPosition;
		gl_Position = uProjectionMatrix * viewPosition;
		gl_PointSize = clamp(uPointSizeBase / length(viewPosition), 1.0, uPointSizeBase);

		if (uPlaceholder != 0) {
			vColor = vec4(1.0, 0.3, 0.8, 1.0);
			return;
		}

		// Points carry no normal; approximate it radially from the model origin.
		normal = vec3(worldPosition) - vec3(uModelMatrix[3]);
		if (dot(normal, normal) > 0.0) {
			normal = normalize(normal);
		}
		shade = 0.25 * uAmbient + 0.25 * uLightIntensity * max(dot(normal, normalize(uLightPosition)), 0.0);
		shade = clamp(shade, 0.15, 1.0);

		c = clamp((worldPosition[1] - uYMin) / uYRange, 0.0, 1.0);
		vColor = vec4(vec3(0.35 + 0.4 * c, 0.75 - 0.3 * c, 0.35) * shade, 1.0);
	}
`

const fsSource = `#version 300 es
	in lowp vec4 vColor;
	out lowp vec4 outColor;

	void main(void) {
		outColor = vColor;
	}
`

const vsBackgroundSource = `#version 300 es
	layout (location = 0) in vec2 aVertexPosition;
	uniform mat4 uInvViewProjection;
	out highp vec3 vDirection;

	void main(void) {
		gl_Position = vec4(aVertexPosition, 1.0, 1.0);
		vec4 d = uInvViewProjection * vec4(aVertexPosition, 1.0, 1.0);
		vDirection = vec3(d) / d.w;
	}
`

const fsBackgroundSource = `#version 300 es
	in highp vec3 vDirection;
	uniform sampler2D uSampler;
	out lowp vec4 outColor;

	void main(void) {
		highp vec3 d = normalize(vDirection);
		highp float u = 0.5 + atan(d.x, -d.z) / 6.28318530718;
		highp float v = 0.5 - asin(clamp(d.y, -1.0, 1.0)) / 3.14159265359;
		outColor = texture(uSampler, vec2(u, v));
	}
`
