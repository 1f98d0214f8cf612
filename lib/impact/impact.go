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

// Package impact quantifies what the choice of share class costs a customer.
package impact

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/sboehler/fundsim/lib/accountant"
	"github.com/sboehler/fundsim/lib/model"
)

// Key identifies the holdings of a customer in a share class.
type Key struct {
	Customer   string
	Fund       string
	ShareClass string
}

// Row is the total expense of a customer in one share class, and the
// difference to the previous share class of the same customer and fund.
type Row struct {
	Key
	TotalExpense float64
	// Impact is nil for the first share class of a customer and fund.
	Impact *float64
}

var _ model.Record = Row{}

// Columns implements model.Record.
func (r Row) Columns() []string {
	return []string{"customer", "fund", "shareclass", "total_expense", "impact"}
}

// Values implements model.Record.
func (r Row) Values() []any {
	var impact any
	if r.Impact != nil {
		impact = *r.Impact
	}
	return []any{r.Customer, r.Fund, r.ShareClass, r.TotalExpense, impact}
}

// TotalExpenses sums the expenses of all valuation rows by customer, fund and
// share class. The result is ordered by customer, fund and share class name.
func TotalExpenses(rows []accountant.Row) []Row {
	index := make(map[Key]int)
	var res []Row
	for _, r := range rows {
		k := Key{r.Customer, r.Fund, r.ShareClass}
		i, ok := index[k]
		if !ok {
			i = len(res)
			index[k] = i
			res = append(res, Row{Key: k})
		}
		res[i].TotalExpense += r.Expense
	}
	slices.SortFunc(res, func(a, b Row) int {
		return compareKeys(a.Key, b.Key)
	})
	return res
}

func compareKeys(a, b Key) int {
	if c := strings.Compare(a.Customer, b.Customer); c != 0 {
		return c
	}
	if c := strings.Compare(a.Fund, b.Fund); c != 0 {
		return c
	}
	return strings.Compare(a.ShareClass, b.ShareClass)
}

// Compute computes the impact table. Within each customer and fund, share
// classes are ordered by name, and the impact of a share class is its total
// expense minus the total expense of the preceding share class.
func Compute(rows []accountant.Row) []Row {
	res := TotalExpenses(rows)
	for i := range res {
		if i == 0 || res[i-1].Customer != res[i].Customer || res[i-1].Fund != res[i].Fund {
			continue
		}
		d := res[i].TotalExpense - res[i-1].TotalExpense
		res[i].Impact = &d
	}
	return res
}
