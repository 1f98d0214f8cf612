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

// Package table renders result tables as aligned text or CSV.
package table

import (
	"math"

	"github.com/shopspring/decimal"
)

// Table is a matrix of cells. Every column belongs to a group, and the
// columns of a group are rendered with the same width.
type Table struct {
	groups []int
	rows   []*Row
}

// New creates a table. Each argument is the number of columns of the next
// group.
func New(groupSizes ...int) *Table {
	t := new(Table)
	for g, n := range groupSizes {
		for i := 0; i < n; i++ {
			t.groups = append(t.groups, g)
		}
	}
	return t
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.groups)
}

// Len returns the number of rows, separators included.
func (t *Table) Len() int {
	return len(t.rows)
}

// AddRow appends an empty row.
func (t *Table) AddRow() *Row {
	r := &Row{cells: make([]cell, 0, t.Width())}
	t.rows = append(t.rows, r)
	return r
}

// AddSeparatorRow appends a row of separators.
func (t *Table) AddSeparatorRow() {
	r := t.AddRow()
	for i := 0; i < t.Width(); i++ {
		r.cells = append(r.cells, cell{kind: separatorCell})
	}
}

// Row is a table row.
type Row struct {
	cells []cell
}

// AddEmpty adds an empty cell.
func (r *Row) AddEmpty() *Row {
	r.cells = append(r.cells, cell{kind: emptyCell})
	return r
}

// AddText adds a text cell.
func (r *Row) AddText(content string, align Alignment) *Row {
	r.cells = append(r.cells, cell{kind: textCell, text: content, align: align})
	return r
}

// AddNumber adds a number cell.
func (r *Row) AddNumber(n decimal.Decimal) *Row {
	r.cells = append(r.cells, cell{kind: numberCell, number: n})
	return r
}

// AddFloat adds a number cell for a float. NaN and infinities become
// empty cells.
func (r *Row) AddFloat(f float64) *Row {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return r.AddEmpty()
	}
	return r.AddNumber(decimal.NewFromFloat(f))
}

// AddOptional adds a number cell, or an empty cell for a missing value.
func (r *Row) AddOptional(f *float64) *Row {
	if f == nil {
		return r.AddEmpty()
	}
	return r.AddFloat(*f)
}

// FillEmpty pads the row with empty cells up to the table width.
func (r *Row) FillEmpty() {
	for len(r.cells) < cap(r.cells) {
		r.AddEmpty()
	}
}

// Alignment is the alignment of a text cell.
type Alignment int

const (
	// Left aligns to the left.
	Left Alignment = iota
	// Right aligns to the right.
	Right
	// Center centers.
	Center
)

type cellKind int

const (
	emptyCell cellKind = iota
	textCell
	numberCell
	separatorCell
)

type cell struct {
	kind   cellKind
	text   string
	align  Alignment
	number decimal.Decimal
}

func (c cell) isSep() bool {
	return c.kind == separatorCell
}
