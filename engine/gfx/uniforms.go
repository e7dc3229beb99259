package gfx

// Uniform names shared by the renderer, the GLSL sources and the software
// shaders.
const (
	UniformMVP          = "uMVP"
	UniformTexture      = "uTexture"
	UniformHasTexture   = "uHasTexture"
	UniformObjColor     = "uObjColor"
	UniformLightColor   = "uLightColor"
	UniformLightPosObj  = "uLightPosObj"
	UniformCameraPosObj = "uCameraPosObj"

	UniformMaterialAmbient   = "uMaterial.ambient"
	UniformMaterialDiffuse   = "uMaterial.diffuse"
	UniformMaterialSpecular  = "uMaterial.specular"
	UniformMaterialShininess = "uMaterial.shininess"

	UniformLightAmbient  = "uLight.ambient"
	UniformLightDiffuse  = "uLight.diffuse"
	UniformLightSpecular = "uLight.specular"
)
