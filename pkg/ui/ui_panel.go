package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	panelPadding  = 10.0
	titleHeight   = 30.0
	headerHeight  = 25.0
	labelHeight   = 15.0
	scrollPerStep = 20.0
)

// Widget is anything the panel can stack vertically.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	// Height is the vertical room the widget needs, label excluded.
	Height() float64
	// Place moves the widget top edge to y.
	Place(y float64)
}

type sliderRow struct{ *Slider }

func (r sliderRow) Height() float64 { return r.H + 10 }
func (r sliderRow) Place(y float64) { r.Y = y }

type checkboxRow struct{ *Checkbox }

func (r checkboxRow) Height() float64 { return r.Size + 5 }
func (r checkboxRow) Place(y float64) { r.Y = y }

type buttonRow struct{ *Button }

func (r buttonRow) Height() float64 { return r.Button.Height + 8 }
func (r buttonRow) Place(y float64) { r.Y = y }

type row struct {
	label  string
	widget Widget
	y      float64 // top of the label, set by layout
}

// Section is a titled group of rows.
type Section struct {
	Title string
	rows  []*row
	y     float64
}

// Panel is a scrollable column of sections on the right side of the window.
type Panel struct {
	Title         string
	X, Y          float64
	Width, Height float64
	Scroll        float64

	BGColor      color.RGBA
	BorderColor  color.RGBA
	SectionColor color.RGBA

	sections []*Section
}

func NewPanel(x, y, width, height float64) *Panel {
	return &Panel{
		Title:        "Controls",
		X:            x,
		Y:            y,
		Width:        width,
		Height:       height,
		BGColor:      color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor:  color.RGBA{R: 100, G: 100, B: 110, A: 255},
		SectionColor: color.RGBA{R: 60, G: 60, B: 70, A: 255},
	}
}

// AddSection starts a new section; the following Add* calls go into it.
func (p *Panel) AddSection(title string) *Section {
	s := &Section{Title: title}
	p.sections = append(p.sections, s)
	return s
}

func (p *Panel) current() *Section {
	if len(p.sections) == 0 {
		return p.AddSection("")
	}
	return p.sections[len(p.sections)-1]
}

func (p *Panel) add(label string, w Widget) {
	s := p.current()
	s.rows = append(s.rows, &row{label: label, widget: w})
	p.layout()
}

func (p *Panel) innerWidth() float64 { return p.Width - 2*panelPadding }

// AddSlider appends a labelled slider to the current section.
func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(p.X+panelPadding, 0, p.innerWidth(), label, min, max, value)
	p.add(label, sliderRow{s})
	return s
}

// AddCheckbox appends a checkbox, its label is drawn by the checkbox itself.
func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+panelPadding, 0, label, value)
	p.add("", checkboxRow{c})
	return c
}

// AddButton appends a full width button.
func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(p.X+panelPadding, 0, p.innerWidth(), buttonHeight, label, onClick)
	p.add("", buttonRow{b})
	return b
}

// contentHeight is the unscrolled height of everything below the title.
func (p *Panel) contentHeight() float64 {
	h := 0.0
	for _, s := range p.sections {
		if s.Title != "" {
			h += headerHeight
		}
		for _, r := range s.rows {
			if r.label != "" {
				h += labelHeight
			}
			h += r.widget.Height()
		}
	}
	return h
}

// layout positions every section and widget for the current scroll offset.
// It runs before input handling so hit boxes match what was drawn.
func (p *Panel) layout() {
	y := p.Y + titleHeight - p.Scroll
	for _, s := range p.sections {
		s.y = y
		if s.Title != "" {
			y += headerHeight
		}
		for _, r := range s.rows {
			r.y = y
			if r.label != "" {
				y += labelHeight
			}
			r.widget.Place(y)
			y += r.widget.Height()
		}
	}
}

func (p *Panel) visible(top, height float64) bool {
	return top >= p.Y+titleHeight-height && top <= p.Y+p.Height
}

// Update scrolls with the mouse wheel then forwards input to the visible widgets.
func (p *Panel) Update() {
	if _, dy := ebiten.Wheel(); dy != 0 {
		maxScroll := max(0, p.contentHeight()+titleHeight-p.Height+panelPadding)
		p.Scroll = min(max(p.Scroll-dy*scrollPerStep, 0), maxScroll)
	}
	p.layout()

	for _, s := range p.sections {
		for _, r := range s.rows {
			if p.visible(r.y, r.widget.Height()) {
				r.widget.Update()
			}
		}
	}
}

func (p *Panel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), p.BGColor, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), 2, p.BorderColor, true)

	for _, s := range p.sections {
		if s.Title != "" && p.visible(s.y, headerHeight) {
			vector.FillRect(screen, float32(p.X+5), float32(s.y), float32(p.Width-10), 20, p.SectionColor, true)
			ebitenutil.DebugPrintAt(screen, s.Title, int(p.X+panelPadding), int(s.y+5))
		}
		for _, r := range s.rows {
			if !p.visible(r.y, r.widget.Height()) {
				continue
			}
			if r.label != "" {
				ebitenutil.DebugPrintAt(screen, r.label, int(p.X+panelPadding), int(r.y))
			}
			r.widget.Draw(screen)
		}
	}

	// title last, over anything scrolled under it
	vector.FillRect(screen, float32(p.X+1), float32(p.Y+1), float32(p.Width-2), titleHeight-2, p.BGColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+panelPadding), int(p.Y+5))
}
