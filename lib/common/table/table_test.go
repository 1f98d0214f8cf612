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
	"bytes"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestAddThousandsSep(t *testing.T) {
	var tests = []struct {
		input, want string
	}{
		{"1", "1"},
		{"12", "12"},
		{"123", "123"},
		{"1234", "1,234"},
		{"-1234", "-1,234"},
		{"1234.5678", "1,234.5678"},
		{"12345678.9", "12,345,678.9"},
		{"-123.45", "-123.45"},
		{"0", "0"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got := addThousandsSep(test.input)
			if got != test.want {
				t.Errorf("addThousandsSep(%q) = %q, want %q", test.input, got, test.want)
			}
		})
	}
}

func sampleTable() *Table {
	tbl := New(1, 1)
	tbl.AddRow().AddText("A", Left).AddText("Value", Right)
	tbl.AddSeparatorRow()
	tbl.AddRow().AddText("x", Left).AddNumber(decimal.RequireFromString("1234.5"))
	tbl.AddRow().AddText("yy", Left).AddOptional(nil)
	return tbl
}

func TestTextRenderer(t *testing.T) {
	var (
		buf  bytes.Buffer
		r    = TextRenderer{Round: 2}
		want = "| A  |    Value |\n" +
			"+----+----------+\n" +
			"| x  | 1,234.50 |\n" +
			"| yy |          |\n" +
			"\n"
	)
	if err := r.Render(sampleTable(), &buf); err != nil {
		t.Fatalf("Render() returned unexpected error %v", err)
	}
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Render(): unexpected diff (-want, +got):\n%s", diff)
	}
}

func TestCSVRenderer(t *testing.T) {
	var (
		buf  bytes.Buffer
		r    CSVRenderer
		want = "A,Value\nx,1234.5\nyy,\n"
	)
	if err := r.Render(sampleTable(), &buf); err != nil {
		t.Fatalf("Render() returned unexpected error %v", err)
	}
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Render(): unexpected diff (-want, +got):\n%s", diff)
	}
}

func TestAddFloat(t *testing.T) {
	tbl := New(1)
	tests := []struct {
		desc string
		row  *Row
		want cellKind
	}{
		{"float", tbl.AddRow().AddFloat(1.5), numberCell},
		{"NaN", tbl.AddRow().AddFloat(math.NaN()), emptyCell},
		{"infinity", tbl.AddRow().AddFloat(math.Inf(-1)), emptyCell},
		{"optional", tbl.AddRow().AddOptional(func() *float64 { v := 2.0; return &v }()), numberCell},
		{"missing", tbl.AddRow().AddOptional(nil), emptyCell},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			if got := test.row.cells[0].kind; got != test.want {
				t.Errorf("got cell kind %d, want %d", got, test.want)
			}
		})
	}
}

func TestThousands(t *testing.T) {
	var (
		buf bytes.Buffer
		r   = TextRenderer{Thousands: true, Round: 1}
		tbl = New(1)
	)
	tbl.AddRow().AddNumber(decimal.RequireFromString("-1234567"))

	if err := r.Render(tbl, &buf); err != nil {
		t.Fatalf("Render() returned unexpected error %v", err)
	}

	if diff := cmp.Diff("| -1,234.6 |\n\n", buf.String()); diff != "" {
		t.Errorf("Render(): unexpected diff (-want, +got):\n%s", diff)
	}
}
