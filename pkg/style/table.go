package style

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func NewDefaultTableStyle() *table.Style {
	style := table.Style{
		Name:    "StyleRounded",
		Box:     table.StyleBoxRounded,
		Format:  table.FormatOptionsDefault,
		HTML:    table.DefaultHTMLOptions,
		Options: table.OptionsDefault,
		Title:   table.TitleOptionsDefault,
		Color:   table.ColorOptions{},
	}
	style.Color.Header = text.Colors{text.Bold}
	return &style
}

// NewTableWriter returns a table writer rendering to w with the default style.
// Colors are only used when color is true, so piped output stays plain.
func NewTableWriter(w io.Writer, color bool) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	style := NewDefaultTableStyle()
	if !color {
		style.Color = table.ColorOptions{}
	}
	t.SetStyle(*style)
	return t
}
