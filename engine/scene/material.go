package scene

import "github.com/go-gl/mathgl/mgl32"

// Material holds Phong reflectance terms. Shininess is a fraction of 128.
type Material struct {
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Shininess float32
}

func mat(ar, ag, ab, dr, dg, db, sr, sg, sb, shininess float32) Material {
	return Material{
		Ambient:   mgl32.Vec3{ar, ag, ab},
		Diffuse:   mgl32.Vec3{dr, dg, db},
		Specular:  mgl32.Vec3{sr, sg, sb},
		Shininess: shininess,
	}
}

// Classic OpenGL material table.
var (
	Emerald       = mat(0.0215, 0.1745, 0.0215, 0.07568, 0.61424, 0.07568, 0.633, 0.727811, 0.633, 0.6)
	Jade          = mat(0.135, 0.2225, 0.1575, 0.54, 0.89, 0.63, 0.316228, 0.316228, 0.316228, 0.1)
	Obsidian      = mat(0.05375, 0.05, 0.06625, 0.18275, 0.17, 0.22525, 0.332741, 0.328634, 0.346435, 0.3)
	Pearl         = mat(0.25, 0.20725, 0.20725, 1.0, 0.829, 0.829, 0.296648, 0.296648, 0.296648, 0.088)
	Ruby          = mat(0.1745, 0.01175, 0.01175, 0.61424, 0.04136, 0.04136, 0.727811, 0.626959, 0.626959, 0.6)
	Turquoise     = mat(0.1, 0.18725, 0.1745, 0.396, 0.74151, 0.69102, 0.297254, 0.30829, 0.306678, 0.1)
	Brass         = mat(0.329412, 0.223529, 0.027451, 0.780392, 0.568627, 0.113725, 0.992157, 0.941176, 0.807843, 0.21794872)
	Bronze        = mat(0.2125, 0.1275, 0.054, 0.714, 0.4284, 0.18144, 0.393548, 0.271906, 0.166721, 0.2)
	Chrome        = mat(0.25, 0.25, 0.25, 0.4, 0.4, 0.4, 0.774597, 0.774597, 0.774597, 0.6)
	Copper        = mat(0.19125, 0.0735, 0.0225, 0.7038, 0.27048, 0.0828, 0.256777, 0.137622, 0.086014, 0.1)
	Gold          = mat(0.24725, 0.1995, 0.0745, 0.75164, 0.60648, 0.22648, 0.628281, 0.555802, 0.366065, 0.4)
	Silver        = mat(0.19225, 0.19225, 0.19225, 0.50754, 0.50754, 0.50754, 0.508273, 0.508273, 0.508273, 0.4)
	BlackPlastic  = mat(0, 0, 0, 0.01, 0.01, 0.01, 0.50, 0.50, 0.50, 0.25)
	CyanPlastic   = mat(0, 0.1, 0.06, 0, 0.50980392, 0.50980392, 0.50196078, 0.50196078, 0.50196078, 0.25)
	GreenPlastic  = mat(0, 0, 0, 0.1, 0.35, 0.1, 0.45, 0.55, 0.45, 0.25)
	RedPlastic    = mat(0, 0, 0, 0.5, 0, 0, 0.7, 0.6, 0.6, 0.25)
	WhitePlastic  = mat(0, 0, 0, 0.55, 0.55, 0.55, 0.70, 0.70, 0.70, 0.25)
	YellowPlastic = mat(0, 0, 0, 0.5, 0.5, 0, 0.60, 0.60, 0.50, 0.25)
	BlackRubber   = mat(0.02, 0.02, 0.02, 0.01, 0.01, 0.01, 0.4, 0.4, 0.4, 0.078125)
	CyanRubber    = mat(0, 0.05, 0.05, 0.4, 0.5, 0.5, 0.04, 0.7, 0.7, 0.078125)
	GreenRubber   = mat(0, 0.05, 0, 0.4, 0.5, 0.4, 0.04, 0.7, 0.04, 0.078125)
	RedRubber     = mat(0.05, 0, 0, 0.5, 0.4, 0.4, 0.7, 0.04, 0.04, 0.078125)
	WhiteRubber   = mat(0.05, 0.05, 0.05, 0.5, 0.5, 0.5, 0.7, 0.7, 0.7, 0.078125)
	YellowRubber  = mat(0.05, 0.05, 0, 0.5, 0.5, 0.4, 0.7, 0.7, 0.04, 0.078125)
)

var materials = map[string]Material{
	"emerald": Emerald, "jade": Jade, "obsidian": Obsidian, "pearl": Pearl,
	"ruby": Ruby, "turquoise": Turquoise, "brass": Brass, "bronze": Bronze,
	"chrome": Chrome, "copper": Copper, "gold": Gold, "silver": Silver,
	"black_plastic": BlackPlastic, "cyan_plastic": CyanPlastic,
	"green_plastic": GreenPlastic, "red_plastic": RedPlastic,
	"white_plastic": WhitePlastic, "yellow_plastic": YellowPlastic,
	"black_rubber": BlackRubber, "cyan_rubber": CyanRubber,
	"green_rubber": GreenRubber, "red_rubber": RedRubber,
	"white_rubber": WhiteRubber, "yellow_rubber": YellowRubber,
}

// MaterialByName looks up a preset by its snake_case name, e.g. "red_plastic".
func MaterialByName(name string) (Material, bool) {
	m, ok := materials[name]
	return m, ok
}
