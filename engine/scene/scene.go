// Package scene holds what gets drawn: objects, lights and the camera.
package scene

// Scene lists drawables in draw order.
type Scene struct {
	objects []*Object
	lights  []*LightSource
}

func New() *Scene { return &Scene{} }

func (s *Scene) AddObject(o *Object)     { s.objects = append(s.objects, o) }
func (s *Scene) AddLight(l *LightSource) { s.lights = append(s.lights, l) }
func (s *Scene) Objects() []*Object      { return s.objects }
func (s *Scene) Lights() []*LightSource  { return s.lights }

// RemoveObject drops o from the draw list, keeping the order of the rest.
func (s *Scene) RemoveObject(o *Object) bool {
	for i, x := range s.objects {
		if x.Equal(o) {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return true
		}
	}
	return false
}

// Textured counts objects carrying a texture.
func (s *Scene) Textured() int {
	n := 0
	for _, o := range s.objects {
		if o.Texture != nil {
			n++
		}
	}
	return n
}
