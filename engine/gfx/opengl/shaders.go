package opengl

// MaxLights is the number of point lights the shaded pass evaluates.
const MaxLights = 16

const vertexShader = `#version 330 core
layout(location = 0) in vec3 a_position;
layout(location = 1) in vec3 a_normal;
layout(location = 2) in vec2 a_texcoord;

uniform mat4 u_model;
uniform mat4 u_view;
uniform mat4 u_proj;

out vec3 v_position;
out vec3 v_normal;
out vec2 v_texcoord;

void main() {
	vec4 world = u_model * vec4(a_position, 1.0);
	v_position = world.xyz;
	v_normal = mat3(transpose(inverse(u_model))) * a_normal;
	v_texcoord = a_texcoord;
	gl_Position = u_proj * u_view * world;
}
`

const flatFragmentShader = `#version 330 core
in vec3 v_position;
in vec3 v_normal;
in vec2 v_texcoord;

uniform sampler2D u_ka;
uniform sampler2D u_kd;

out vec4 o_color;

void main() {
	o_color = texture(u_kd, v_texcoord);
}
`

const shadedFragmentShader = `#version 330 core
#define MAX_LIGHTS 16

in vec3 v_position;
in vec3 v_normal;
in vec2 v_texcoord;

uniform sampler2D u_ka;
uniform sampler2D u_kd;
uniform vec4 u_ambient;
uniform int u_light_count;
uniform vec3 u_light_center[MAX_LIGHTS];
uniform vec4 u_light_color[MAX_LIGHTS];
uniform float u_light_radius[MAX_LIGHTS];
uniform vec3 u_light_propagation[MAX_LIGHTS];

out vec4 o_color;

void main() {
	vec4 ka = texture(u_ka, v_texcoord);
	vec4 kd = texture(u_kd, v_texcoord);
	vec3 normal = normalize(v_normal);
	vec3 color = ka.rgb * u_ambient.rgb;

	for (int i = 0; i < u_light_count; i++) {
		vec3 delta = u_light_center[i] - v_position;
		float dist = length(delta);
		if (dist > u_light_radius[i]) {
			continue;
		}
		vec3 p = u_light_propagation[i];
		float attenuation = 1.0 / (p.x + p.y * dist + p.z * dist * dist);
		float lambert = max(dot(normal, delta / dist), 0.0);
		color += kd.rgb * u_light_color[i].rgb * lambert * attenuation;
	}
	o_color = vec4(color, kd.a);
}
`

// Writes the attributes a deferred lighting pass reads back.
const geometryFragmentShader = `#version 330 core
in vec3 v_position;
in vec3 v_normal;
in vec2 v_texcoord;

uniform sampler2D u_ka;
uniform sampler2D u_kd;

layout(location = 0) out vec4 o_position;
layout(location = 1) out vec4 o_normal;
layout(location = 2) out vec4 o_ka;
layout(location = 3) out vec4 o_kd;

void main() {
	o_position = vec4(v_position, 1.0);
	o_normal = vec4(normalize(v_normal), 0.0);
	o_ka = texture(u_ka, v_texcoord);
	o_kd = texture(u_kd, v_texcoord);
}
`
