package render

// Canvas is the drawing surface effects paint onto once per frame
// Coordinates and radii are in logical units; implementations scale for density
type Canvas interface {
	Clear()
	FillCircle(x, y, radius float64, c RGBA)
}

// Circle is one recorded FillCircle call
type Circle struct {
	X, Y, Radius float64
	Color        RGBA
}

// Recorder is a Canvas that keeps the calls of the last frame
// Used by headless runs and tests
type Recorder struct {
	Circles []Circle
	Clears  int
}

// Clear drops recorded circles and counts the frame
func (r *Recorder) Clear() {
	r.Circles = r.Circles[:0]
	r.Clears++
}

// FillCircle records the call
func (r *Recorder) FillCircle(x, y, radius float64, c RGBA) {
	r.Circles = append(r.Circles, Circle{X: x, Y: y, Radius: radius, Color: c})
}
