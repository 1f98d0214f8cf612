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

// Package report lays out results as tables.
package report

import (
	"fmt"
	"strconv"

	"github.com/sboehler/fundsim/lib/accountant"
	"github.com/sboehler/fundsim/lib/common/table"
	"github.com/sboehler/fundsim/lib/impact"
	"github.com/sboehler/fundsim/lib/model"
)

// AccountSummary is the outcome of valuing one account.
type AccountSummary struct {
	Account      string
	Days         int
	FinalNAV     *float64
	TotalExpense float64
}

// Summarize reduces the valuation rows to one summary per account, in the
// order of v.Accounts.
func Summarize(v *accountant.Valuations) []AccountSummary {
	var (
		res   = make([]AccountSummary, len(v.Accounts))
		index = make(map[string]int, len(v.Accounts))
	)
	for i, a := range v.Accounts {
		res[i].Account = a
		index[a] = i
	}
	for _, r := range v.Rows {
		i, ok := index[r.Account]
		if !ok {
			continue
		}
		s := &res[i]
		s.Days++
		s.TotalExpense += r.Expense
		nav := r.NAV
		s.FinalNAV = &nav
	}
	return res
}

// Summary renders the account summaries.
func Summary(summaries []AccountSummary) *table.Table {
	t := table.New(1, 1, 2)
	t.AddSeparatorRow()
	t.AddRow().
		AddText("Account", table.Center).
		AddText("Days", table.Center).
		AddText("Final NAV", table.Center).
		AddText("Total expense", table.Center)
	t.AddSeparatorRow()
	var total float64
	for _, s := range summaries {
		t.AddRow().
			AddText(s.Account, table.Left).
			AddText(strconv.Itoa(s.Days), table.Right).
			AddOptional(s.FinalNAV).
			AddFloat(s.TotalExpense)
		total += s.TotalExpense
	}
	t.AddSeparatorRow()
	t.AddRow().
		AddText("Total", table.Left).
		AddEmpty().
		AddEmpty().
		AddFloat(total)
	t.AddSeparatorRow()
	return t
}

// Impact renders the impact rows. Rows of one customer and fund are grouped
// between separators.
func Impact(rows []impact.Row) *table.Table {
	t := table.New(3, 2)
	t.AddSeparatorRow()
	t.AddRow().
		AddText("Customer", table.Center).
		AddText("Fund", table.Center).
		AddText("Share class", table.Center).
		AddText("Total expense", table.Center).
		AddText("Impact", table.Center)
	t.AddSeparatorRow()
	for i, r := range rows {
		if i > 0 && (r.Customer != rows[i-1].Customer || r.Fund != rows[i-1].Fund) {
			t.AddSeparatorRow()
		}
		t.AddRow().
			AddText(r.Customer, table.Left).
			AddText(r.Fund, table.Left).
			AddText(r.ShareClass, table.Left).
			AddFloat(r.TotalExpense).
			AddOptional(r.Impact)
	}
	t.AddSeparatorRow()
	return t
}

// Records renders entities generically, one row per record. The columns are
// taken from the first record.
func Records[T model.Record](records []T) *table.Table {
	if len(records) == 0 {
		return table.New()
	}
	cols := records[0].Columns()
	t := table.New(len(cols))
	t.AddSeparatorRow()
	header := t.AddRow()
	for _, c := range cols {
		header.AddText(c, table.Center)
	}
	t.AddSeparatorRow()
	for _, rec := range records {
		row := t.AddRow()
		for _, v := range rec.Values() {
			addValue(row, v)
		}
		row.FillEmpty()
	}
	t.AddSeparatorRow()
	return t
}

func addValue(row *table.Row, v any) {
	switch t := v.(type) {
	case nil:
		row.AddEmpty()
	case string:
		row.AddText(t, table.Left)
	case float64:
		row.AddFloat(t)
	case int:
		row.AddText(strconv.Itoa(t), table.Right)
	default:
		row.AddText(fmt.Sprint(t), table.Left)
	}
}
