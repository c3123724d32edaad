package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// HalfBlock is the glyph used to show two vertical subpixels per cell
const HalfBlock = '▀'

// Metrics maps terminal cells to logical units
type Metrics struct {
	CellWidth  float64 `mapstructure:"cell_width" toml:"cell_width"`
	CellHeight float64 `mapstructure:"cell_height" toml:"cell_height"`
}

// DefaultMetrics approximates a common 8x16 terminal font
var DefaultMetrics = Metrics{CellWidth: 8, CellHeight: 16}

// Surface is a subpixel raster behind a grid of half-block cells
// A terminal of cols x rows yields cols x rows*2 subpixels for a logical
// viewport of cols*CellWidth x rows*CellHeight units
type Surface struct {
	cols, rows  int
	metrics     Metrics
	sx, sy      float64 // subpixels per logical unit
	minCoverage float64
	bg          RGB
	pix         []RGB
}

// NewSurface creates a surface for a terminal of cols x rows cells
func NewSurface(cols, rows int, m Metrics, bg RGB, minCoverage float64) *Surface {
	if m.CellWidth <= 0 || m.CellHeight <= 0 {
		m = DefaultMetrics
	}
	s := &Surface{
		metrics:     m,
		sx:          1.0 / m.CellWidth,
		sy:          2.0 / m.CellHeight,
		minCoverage: minCoverage,
		bg:          bg,
	}
	s.Resize(cols, rows)
	return s
}

// Resize reallocates the raster, content is discarded
func (s *Surface) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	s.cols, s.rows = cols, rows
	s.pix = make([]RGB, cols*rows*2)
	s.Clear()
}

// Cells returns the terminal grid size
func (s *Surface) Cells() (cols, rows int) {
	return s.cols, s.rows
}

// LogicalSize returns the viewport in logical units, floored to whole units
func (s *Surface) LogicalSize() (w, h int) {
	return int(float64(s.cols) * s.metrics.CellWidth), int(float64(s.rows) * s.metrics.CellHeight)
}

// Density returns subpixels per logical unit on each axis
func (s *Surface) Density() (x, y float64) {
	return s.sx, s.sy
}

// ToLogical converts a cell coordinate to the logical position of its centre
func (s *Surface) ToLogical(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * s.metrics.CellWidth, (float64(row) + 0.5) * s.metrics.CellHeight
}

// Clear fills the raster with the background
func (s *Surface) Clear() {
	for i := range s.pix {
		s.pix[i] = s.bg
	}
}

// At returns the subpixel colour, background when out of bounds
func (s *Surface) At(px, py int) RGB {
	if px < 0 || px >= s.cols || py < 0 || py >= s.rows*2 {
		return s.bg
	}
	return s.pix[py*s.cols+px]
}

// Cell returns the two subpixels shown by one terminal cell
func (s *Surface) Cell(col, row int) (top, bottom RGB) {
	return s.At(col, row*2), s.At(col, row*2+1)
}

func (s *Surface) blend(px, py int, src RGB, alpha float64) {
	if px < 0 || px >= s.cols || py < 0 || py >= s.rows*2 {
		return
	}
	idx := py*s.cols + px
	s.pix[idx] = Blend(s.pix[idx], src, alpha)
}

// FillCircle composites a filled circle source-over
// Circles smaller than one subpixel land on the subpixel holding their centre
// with coverage proportional to diameter, floored at minCoverage
func (s *Surface) FillCircle(x, y, radius float64, c RGBA) {
	if c.A <= 0 || radius <= 0 || len(s.pix) == 0 {
		return
	}

	cx := x * s.sx
	cy := y * s.sy
	rr := radius * (s.sx + s.sy) / 2
	src := c.Opaque()
	alpha := math.Min(c.A, 1)

	centerX := int(math.Floor(cx))
	centerY := int(math.Floor(cy))

	if rr < 0.5 {
		coverage := math.Max(rr*2, s.minCoverage)
		s.blend(centerX, centerY, src, alpha*math.Min(coverage, 1))
		return
	}

	minX := int(math.Floor(cx - rr))
	maxX := int(math.Ceil(cx + rr))
	minY := int(math.Floor(cy - rr))
	maxY := int(math.Ceil(cy + rr))
	rr2 := rr * rr

	painted := false
	for py := minY; py < maxY; py++ {
		dy := float64(py) + 0.5 - cy
		for px := minX; px < maxX; px++ {
			dx := float64(px) + 0.5 - cx
			if dx*dx+dy*dy <= rr2 {
				s.blend(px, py, src, alpha)
				painted = true
			}
		}
	}

	// Radius between subpixel centres
	if !painted {
		s.blend(centerX, centerY, src, alpha)
	}
}

// Flush writes every cell as a half block, top subpixel as foreground
// Caller owns Show()
func (s *Surface) Flush(screen tcell.Screen) {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			top, bottom := s.Cell(col, row)
			style := tcell.StyleDefault.Foreground(top.TCell()).Background(bottom.TCell())
			screen.SetContent(col, row, HalfBlock, nil, style)
		}
	}
}
