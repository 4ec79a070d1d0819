package backend

import (
	"github.com/dshills/canvasterm/internal/renderer/core"
	"github.com/dshills/canvasterm/internal/renderer/surface"
)

// painter issues surface calls for one frame and remembers what it last
// applied, so consecutive cells with the same style do not repeat
// SetFillStyle/SetFont. A painter lives for a single Draw.
type painter struct {
	s surface.Surface

	fill    string
	hasFill bool
	font    string
	hasFont bool
}

// cellStyle is a cell's style resolved to surface values.
type cellStyle struct {
	fg        string
	bg        string
	ulColor   string
	font      string
	hidden    bool
	underline bool
	strike    bool
}

// resolveStyle applies reverse/dim and substitutes the backend defaults
// for reset colors.
func resolveStyle(cell core.Cell) cellStyle {
	fg, bg := cell.Fg, cell.Bg
	if fg.IsDefault() {
		fg = DefaultForeground
	}
	if bg.IsDefault() {
		bg = Backdrop
	}
	if cell.Attrs.Has(core.AttrReverse) {
		fg, bg = bg, fg
	}
	if cell.Attrs.Has(core.AttrDim) {
		fg = fg.Blend(bg, 0.5)
	}

	ul := fg
	if !cell.UnderlineColor.IsDefault() {
		ul = cell.UnderlineColor
	}

	font := surface.Font{
		Size:   FontSize,
		Bold:   cell.Attrs.Has(core.AttrBold),
		Italic: cell.Attrs.Has(core.AttrItalic),
		Family: FontFamily,
	}

	return cellStyle{
		fg:        fg.CSS(),
		bg:        bg.CSS(),
		ulColor:   ul.CSS(),
		font:      font.String(),
		hidden:    cell.Attrs.Has(core.AttrHidden),
		underline: cell.Attrs.Has(core.AttrUnderline),
		strike:    cell.Attrs.Has(core.AttrStrikethrough),
	}
}

func (p *painter) setFill(color string, x, y int) error {
	if p.hasFill && p.fill == color {
		return nil
	}
	if err := p.s.SetFillStyle(color); err != nil {
		return &DrawError{Op: "SetFillStyle", X: x, Y: y, Err: err}
	}
	p.fill, p.hasFill = color, true
	return nil
}

func (p *painter) setFont(font string, x, y int) error {
	if p.hasFont && p.font == font {
		return nil
	}
	if err := p.s.SetFont(font); err != nil {
		return &DrawError{Op: "SetFont", X: x, Y: y, Err: err}
	}
	p.font, p.hasFont = font, true
	return nil
}

// backdrop fills the whole surface with the backdrop color.
func (p *painter) backdrop(width, height float64) error {
	if err := p.setFill(Backdrop.CSS(), -1, -1); err != nil {
		return err
	}
	if err := p.s.FillRect(0, 0, width, height); err != nil {
		return &DrawError{Op: "FillRect", X: -1, Y: -1, Err: err}
	}
	return nil
}

// paint draws one cell. move is false when the cell directly follows the
// previous one on the same row. A wide symbol paints the background and
// decorations of its continuation column too, since frames may omit it.
func (p *painter) paint(pl core.Placement, move bool) error {
	x, y := CellOrigin(pl.X, pl.Y)
	st := resolveStyle(pl.Cell)
	width := float64(max(core.SymbolWidth(pl.Cell.Symbol), 1)) * CellWidth

	if move {
		if err := p.s.MoveTo(x, y); err != nil {
			return &DrawError{Op: "MoveTo", X: pl.X, Y: pl.Y, Err: err}
		}
	}

	if err := p.setFill(st.bg, pl.X, pl.Y); err != nil {
		return err
	}
	if err := p.s.FillRect(x, y, width, LineHeight); err != nil {
		return &DrawError{Op: "FillRect", X: pl.X, Y: pl.Y, Err: err}
	}

	if err := p.setFont(st.font, pl.X, pl.Y); err != nil {
		return err
	}

	if st.hidden || pl.Cell.IsContinuation() {
		return nil
	}

	baseline := Baseline(y)
	if err := p.setFill(st.fg, pl.X, pl.Y); err != nil {
		return err
	}
	if err := p.s.FillText(pl.Cell.Symbol, x, baseline); err != nil {
		return &DrawError{Op: "FillText", X: pl.X, Y: pl.Y, Err: err}
	}

	if st.strike {
		if err := p.s.FillRect(x, y+LineHeight/2, width, 1); err != nil {
			return &DrawError{Op: "FillRect", X: pl.X, Y: pl.Y, Err: err}
		}
	}
	if st.underline {
		if err := p.setFill(st.ulColor, pl.X, pl.Y); err != nil {
			return err
		}
		if err := p.s.FillRect(x, UnderlineY(y), width, 1); err != nil {
			return &DrawError{Op: "FillRect", X: pl.X, Y: pl.Y, Err: err}
		}
	}
	return nil
}
