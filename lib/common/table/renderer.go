// Copyright 2021 Silvio Böhler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package table

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

// TextRenderer renders a table as aligned text.
type TextRenderer struct {
	// Color prints positive numbers in green and negative ones in red.
	Color bool
	// Thousands shows numbers in units of 1000.
	Thousands bool
	// Round is the number of decimal places.
	Round int32
}

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

// Render renders the table to w.
func (r *TextRenderer) Render(t *Table, w io.Writer) error {
	color.NoColor = !r.Color
	widths := r.widths(t)
	var b strings.Builder
	for _, row := range t.rows {
		if len(row.cells) == 0 {
			continue
		}
		b.Reset()
		r.renderRow(&b, row.cells, widths)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// widths computes the width of every column, which is the widest cell in
// its group.
func (r *TextRenderer) widths(t *Table) []int {
	groupWidths := make(map[int]int)
	for _, row := range t.rows {
		for i, c := range row.cells {
			if l := r.length(c); l > groupWidths[t.groups[i]] {
				groupWidths[t.groups[i]] = l
			}
		}
	}
	res := make([]int, t.Width())
	for i, g := range t.groups {
		res[i] = groupWidths[g]
	}
	return res
}

func (r *TextRenderer) renderRow(b *strings.Builder, cells []cell, widths []int) {
	for i, c := range cells {
		switch {
		case i == 0 && c.isSep():
			b.WriteString("+-")
		case i == 0:
			b.WriteString("| ")
		case cells[i-1].isSep() && c.isSep():
			b.WriteString("-+-")
		case cells[i-1].isSep():
			b.WriteString("-+ ")
		case c.isSep():
			b.WriteString(" +-")
		default:
			b.WriteString(" | ")
		}
		r.renderCell(b, c, widths[i])
	}
	if cells[len(cells)-1].isSep() {
		b.WriteString("-+\n")
	} else {
		b.WriteString(" |\n")
	}
}

func (r *TextRenderer) renderCell(b *strings.Builder, c cell, width int) {
	switch c.kind {
	case separatorCell:
		b.WriteString(strings.Repeat("-", width))
	case emptyCell:
		b.WriteString(strings.Repeat(" ", width))
	case textCell:
		var (
			pad    = width - utf8.RuneCountInString(c.text)
			before int
		)
		switch c.align {
		case Right:
			before = pad
		case Center:
			before = pad / 2
		}
		b.WriteString(strings.Repeat(" ", before))
		b.WriteString(c.text)
		b.WriteString(strings.Repeat(" ", pad-before))
	case numberCell:
		s := r.format(c.number)
		b.WriteString(strings.Repeat(" ", width-utf8.RuneCountInString(s)))
		switch c.number.Sign() {
		case 1:
			b.WriteString(green.Sprint(s))
		case -1:
			b.WriteString(red.Sprint(s))
		default:
			b.WriteString(s)
		}
	}
}

func (r *TextRenderer) length(c cell) int {
	switch c.kind {
	case textCell:
		return utf8.RuneCountInString(c.text)
	case numberCell:
		return utf8.RuneCountInString(r.format(c.number))
	}
	return 0
}

func (r *TextRenderer) format(d decimal.Decimal) string {
	if r.Thousands {
		d = d.Shift(-3)
	}
	return addThousandsSep(d.StringFixed(r.Round))
}

// addThousandsSep inserts commas into the integer part of a formatted
// number.
func addThousandsSep(s string) string {
	var sign string
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	integer, fraction := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		integer, fraction = s[:i], s[i:]
	}
	var b strings.Builder
	b.WriteString(sign)
	for i, ch := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	b.WriteString(fraction)
	return b.String()
}
