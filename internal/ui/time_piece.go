package ui

import (
	"fmt"
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"github.com/tartampluch/go-clock/internal/config"
)

var (
	timeColor = color.NRGBA{R: 0x21, G: 0x96, B: 0xF3, A: 0xFF} // blue
	dateColor = color.NRGBA{R: 0xFF, G: 0xC1, B: 0x07, A: 0xFF} // amber
)

// ParseShow validates a show mode.
func ParseShow(show string) (string, error) {
	for _, m := range config.ShowModes {
		if m == show {
			return show, nil
		}
	}
	return "", fmt.Errorf("%s: %q", config.ErrShowMode, show)
}

// TimePiece displays the time and the date as two large lines of text.
// It implements engine.Display; updates may come from any goroutine.
type TimePiece struct {
	TimeText *canvas.Text
	DateText *canvas.Text

	show    string
	lines   *fyne.Container
	content fyne.CanvasObject
}

// NewTimePiece builds the control for a show mode (see config.ShowModes).
// An unknown mode falls back to config.DefaultShow.
func NewTimePiece(show string) *TimePiece {
	p := &TimePiece{
		TimeText: canvas.NewText("", timeColor),
		DateText: canvas.NewText("", dateColor),
	}
	p.TimeText.TextSize = config.TimeTextSize
	p.TimeText.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	p.TimeText.Alignment = fyne.TextAlignCenter
	p.DateText.TextSize = config.DateTextSize
	p.DateText.TextStyle = fyne.TextStyle{Monospace: true}
	p.DateText.Alignment = fyne.TextAlignCenter

	p.lines = container.NewVBox()
	p.content = container.NewCenter(p.lines)
	p.SetShow(show)

	slog.Info(config.MsgControlBuilt,
		config.LogKeyComponent, config.CompPiece,
		config.LogKeyShow, p.show)
	return p
}

// CanvasObject returns the object to place in a window.
func (p *TimePiece) CanvasObject() fyne.CanvasObject {
	return p.content
}

// Show returns the active show mode.
func (p *TimePiece) Show() string {
	return p.show
}

// SetShow selects which lines are visible and in which order.
// Must be called from the UI goroutine.
func (p *TimePiece) SetShow(show string) {
	mode, err := ParseShow(show)
	if err != nil {
		slog.Warn(config.ErrShowMode,
			config.LogKeyComponent, config.CompPiece,
			config.LogKeyShow, show)
		mode = config.DefaultShow
	}
	p.show = mode

	switch mode {
	case config.ShowTime:
		p.lines.Objects = []fyne.CanvasObject{p.TimeText}
	case config.ShowDate:
		p.lines.Objects = []fyne.CanvasObject{p.DateText}
	case config.ShowDateTime:
		p.lines.Objects = []fyne.CanvasObject{p.DateText, p.TimeText}
	default:
		p.lines.Objects = []fyne.CanvasObject{p.TimeText, p.DateText}
	}
	p.lines.Refresh()
}

// UpdateTime implements engine.Display.
func (p *TimePiece) UpdateTime(value string) {
	fyne.Do(func() { p.setTime(value) })
}

// UpdateDate implements engine.Display.
func (p *TimePiece) UpdateDate(value string) {
	fyne.Do(func() { p.setDate(value) })
}

func (p *TimePiece) setTime(value string) {
	p.TimeText.Text = value
	p.TimeText.Refresh()
}

func (p *TimePiece) setDate(value string) {
	p.DateText.Text = value
	p.DateText.Refresh()
}
