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

package impact

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sboehler/fundsim/lib/accountant"
	"github.com/sboehler/fundsim/lib/common/date"
)

func rows(customer, fund, shareClass string, expenses ...float64) []accountant.Row {
	var res []accountant.Row
	for i, e := range expenses {
		res = append(res, accountant.Row{
			Account:    customer + "-" + fund + "_" + shareClass,
			Customer:   customer,
			Fund:       fund,
			ShareClass: shareClass,
			Date:       date.Date(2020, 1, 6).AddDate(0, 0, i),
			Expense:    e,
		})
	}
	return res
}

func ptr(f float64) *float64 {
	return &f
}

func TestTotalExpenses(t *testing.T) {
	var input []accountant.Row
	input = append(input, rows("Jim_0", "spx", "B", 50, 100)...)
	input = append(input, rows("Jim_0", "spx", "A", 40, 60)...)
	got := TotalExpenses(input)
	want := []Row{
		{Key: Key{"Jim_0", "spx", "A"}, TotalExpense: 100},
		{Key: Key{"Jim_0", "spx", "B"}, TotalExpense: 150},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TotalExpenses(): unexpected diff (-want, +got):\n%s", diff)
	}
}

func TestCompute(t *testing.T) {
	var tests = []struct {
		desc  string
		input []accountant.Row
		want  []Row
	}{
		{
			desc: "empty",
		},
		{
			desc: "two share classes",
			input: append(
				rows("Jim_0", "spx", "B", 50, 100),
				rows("Jim_0", "spx", "A", 40, 60)...,
			),
			want: []Row{
				{Key: Key{"Jim_0", "spx", "A"}, TotalExpense: 100},
				{Key: Key{"Jim_0", "spx", "B"}, TotalExpense: 150, Impact: ptr(50)},
			},
		},
		{
			desc: "groups by customer and fund",
			input: concat(
				rows("Susan_1", "spx", "A", 10),
				rows("Jim_0", "tech", "C", 7),
				rows("Jim_0", "tech", "A", 3),
				rows("Jim_0", "tech", "B", 5),
				rows("Jim_0", "spx", "A", 1),
			),
			want: []Row{
				{Key: Key{"Jim_0", "spx", "A"}, TotalExpense: 1},
				{Key: Key{"Jim_0", "tech", "A"}, TotalExpense: 3},
				{Key: Key{"Jim_0", "tech", "B"}, TotalExpense: 5, Impact: ptr(2)},
				{Key: Key{"Jim_0", "tech", "C"}, TotalExpense: 7, Impact: ptr(2)},
				{Key: Key{"Susan_1", "spx", "A"}, TotalExpense: 10},
			},
		},
		{
			desc:  "single share class has no impact",
			input: rows("Bob_2", "esg", "A", 0, 0),
			want: []Row{
				{Key: Key{"Bob_2", "esg", "A"}, TotalExpense: 0},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			got := Compute(test.input)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Compute(): unexpected diff (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestComputeOrderIndependent(t *testing.T) {
	a := concat(rows("Jim_0", "spx", "A", 40, 60), rows("Jim_0", "spx", "B", 50, 100))
	b := concat(rows("Jim_0", "spx", "B", 50, 100), rows("Jim_0", "spx", "A", 40, 60))
	if diff := cmp.Diff(Compute(a), Compute(b)); diff != "" {
		t.Errorf("Compute() depends on input order:\n%s", diff)
	}
}

func TestRecord(t *testing.T) {
	r := Row{Key: Key{"Jim_0", "spx", "A"}, TotalExpense: 1}
	if got := r.Values()[4]; got != nil {
		t.Errorf("impact of first share class = %v, want nil", got)
	}
	r.Impact = ptr(2)
	if got := r.Values()[4]; got != 2.0 {
		t.Errorf("impact = %v, want 2", got)
	}
}

func concat(rs ...[]accountant.Row) []accountant.Row {
	var res []accountant.Row
	for _, r := range rs {
		res = append(res, r...)
	}
	return res
}
