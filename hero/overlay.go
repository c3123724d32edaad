package hero

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/particle-hero/render"
)

// Element identifies one overlay text block
type Element int

const (
	ElementNone Element = iota
	ElementBadge
	ElementTitle
	ElementSubtitle
	ElementCTA
)

func (e Element) String() string {
	switch e {
	case ElementBadge:
		return "badge"
	case ElementTitle:
		return "title"
	case ElementSubtitle:
		return "subtitle"
	case ElementCTA:
		return "cta"
	default:
		return "none"
	}
}

// Block is a single-row text element placed in cell coordinates
type Block struct {
	Kind  Element
	Text  string
	Col   int
	Row   int
	Width int
}

// Contains reports whether the cell lies on the block
func (b Block) Contains(col, row int) bool {
	return row == b.Row && col >= b.Col && col < b.Col+b.Width
}

// Fixed overlay copy
const (
	BadgeText    = " Full Stack · Web3 · DevOps "
	TitleText    = "Building the Future"
	SubtitleText = "One system at a time"
	CTAText      = "  Explore Projects  "
)

var (
	ctaFill     = render.RGB{R: 240, G: 240, B: 240}
	ctaInk      = render.RGB{R: 5, G: 5, B: 5}
	titleInk    = render.RGB{R: 240, G: 240, B: 240}
	overlayInk  = render.RGBWhite
	badgeAlpha  = 0.5
	subAlpha    = 0.35
	badgeShadeA = 0.03
	// Above this luminance the title and subtitle switch to dark ink
	brightCell = 0.6
)

// Overlay is the centred text stack drawn over the effect
type Overlay struct {
	blocks []Block
}

// NewOverlay creates an overlay laid out for the given grid
func NewOverlay(cols, rows int) *Overlay {
	o := &Overlay{}
	o.Layout(cols, rows)
	return o
}

// Layout centres every block horizontally around the middle row
func (o *Overlay) Layout(cols, rows int) {
	mid := rows / 2
	place := func(kind Element, text string, row int) Block {
		w := runewidth.StringWidth(text)
		return Block{Kind: kind, Text: text, Col: (cols - w) / 2, Row: row, Width: w}
	}
	o.blocks = []Block{
		place(ElementBadge, BadgeText, mid-3),
		place(ElementTitle, TitleText, mid-1),
		place(ElementSubtitle, SubtitleText, mid),
		place(ElementCTA, CTAText, mid+2),
	}
}

// Blocks returns the laid out elements in draw order
func (o *Overlay) Blocks() []Block {
	return append([]Block(nil), o.blocks...)
}

// Block returns the placement of kind
func (o *Overlay) Block(kind Element) (Block, bool) {
	for _, b := range o.blocks {
		if b.Kind == kind {
			return b, true
		}
	}
	return Block{}, false
}

// Hit returns the element under a cell, ElementNone for empty space
func (o *Overlay) Hit(col, row int) Element {
	for _, b := range o.blocks {
		if b.Contains(col, row) {
			return b.Kind
		}
	}
	return ElementNone
}

// Draw writes the blocks over whatever the surface left on screen
// Translucent text is blended against the averaged colour of the cell beneath
func (o *Overlay) Draw(screen tcell.Screen, s *render.Surface, hovered Element) {
	cols, rows := screen.Size()
	for _, b := range o.blocks {
		if b.Row < 0 || b.Row >= rows {
			continue
		}
		col := b.Col
		for _, r := range b.Text {
			w := runewidth.RuneWidth(r)
			if col >= 0 && col < cols {
				top, bottom := s.Cell(col, b.Row)
				under := render.Mix(top, bottom)
				screen.SetContent(col, b.Row, r, nil, blockStyle(b.Kind, under, hovered == b.Kind))
			}
			col += max(w, 1)
		}
	}
}

func blockStyle(kind Element, under render.RGB, hovered bool) tcell.Style {
	st := tcell.StyleDefault
	switch kind {
	case ElementBadge:
		bg := render.Blend(under, overlayInk, badgeShadeA)
		return st.Foreground(render.Blend(bg, overlayInk, badgeAlpha).TCell()).Background(bg.TCell())
	case ElementTitle:
		ink := titleInk
		if render.Luminance(under) > brightCell {
			ink = ctaInk
		}
		return st.Foreground(ink.TCell()).Background(under.TCell()).Bold(true)
	case ElementSubtitle:
		ink := overlayInk
		if render.Luminance(under) > brightCell {
			ink = render.RGBBlack
		}
		return st.Foreground(render.Blend(under, ink, subAlpha).TCell()).Background(under.TCell())
	case ElementCTA:
		fill := ctaFill
		if hovered {
			fill = render.RGBWhite
		}
		return st.Foreground(ctaInk.TCell()).Background(fill.TCell()).Bold(true)
	}
	return st
}
