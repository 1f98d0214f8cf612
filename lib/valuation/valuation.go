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

// Package valuation computes the daily asset values of a single account.
//
// For every day t, starting with the initial investment as the previous
// net asset value:
//
//	InitGAV[t] = NAV[t-1] * return[t]
//	GAV[t]     = InitGAV[t] + cashflow[t]
//	Expense[t] = GAV[t] * expenseRatio
//	NAV[t]     = GAV[t] - Expense[t]
//
// Expenses are deducted every day. Values are kept at full float precision
// and are not floored at zero.
package valuation

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sboehler/fundsim/lib/model"
	"github.com/sboehler/fundsim/lib/series"
)

// Day is the valuation of an account on one day.
type Day struct {
	Date    time.Time
	InitGAV float64
	GAV     float64
	Expense float64
	NAV     float64
}

// DomainMismatchError is returned when the cash flow and return series are
// not on the same date index.
type DomainMismatchError struct {
	// Index is the first position where the indices differ.
	Index int
	// CashFlowDate and ReturnDate are the dates at Index, zero if the
	// respective series is shorter.
	CashFlowDate, ReturnDate time.Time
	CashFlowLen, ReturnLen   int
}

func (e *DomainMismatchError) Error() string {
	return fmt.Sprintf("domain mismatch at index %d: cash flow date %s, return date %s (lengths %d and %d)",
		e.Index, formatDate(e.CashFlowDate), formatDate(e.ReturnDate), e.CashFlowLen, e.ReturnLen)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "<none>"
	}
	return t.Format("2006-01-02")
}

// Engine computes account valuations.
type Engine struct {
	Log zerolog.Logger
}

// Compute runs the valuation recurrence.
func (e Engine) Compute(initialInvestment float64, cashflow, grossReturn series.Daily, expenseRatio float64) ([]Day, error) {
	if err := Validate(initialInvestment, cashflow, grossReturn, expenseRatio); err != nil {
		return nil, err
	}
	var (
		res  = make([]Day, cashflow.Len())
		prev = initialInvestment
	)
	for t := range res {
		d := &res[t]
		d.Date = grossReturn.Dates[t]
		d.InitGAV = prev * grossReturn.Values[t]
		d.GAV = d.InitGAV + cashflow.Values[t]
		d.Expense = d.GAV * expenseRatio
		d.NAV = d.GAV - d.Expense
		prev = d.NAV
	}
	if n := len(res); n > 0 && res[n-1].NAV < 0 {
		e.Log.Debug().Float64("nav", res[n-1].NAV).Time("date", res[n-1].Date).Msg("negative final net asset value")
	}
	return res, nil
}

// Compute runs the valuation recurrence without logging.
func Compute(initialInvestment float64, cashflow, grossReturn series.Daily, expenseRatio float64) ([]Day, error) {
	return Engine{Log: zerolog.Nop()}.Compute(initialInvestment, cashflow, grossReturn, expenseRatio)
}

// Validate checks the preconditions of Compute.
func Validate(initialInvestment float64, cashflow, grossReturn series.Daily, expenseRatio float64) error {
	if err := model.ValidateInvestment("", initialInvestment); err != nil {
		return err
	}
	if err := model.ValidateExpenseRatio("", expenseRatio); err != nil {
		return err
	}
	if i := series.Mismatch(cashflow, grossReturn); i >= 0 {
		err := &DomainMismatchError{
			Index:       i,
			CashFlowLen: cashflow.Len(),
			ReturnLen:   grossReturn.Len(),
		}
		if i < cashflow.Len() {
			err.CashFlowDate = cashflow.Dates[i]
		}
		if i < grossReturn.Len() {
			err.ReturnDate = grossReturn.Dates[i]
		}
		return err
	}
	if len(cashflow.Values) != cashflow.Len() || len(grossReturn.Values) != grossReturn.Len() {
		return fmt.Errorf("series values do not match their date index")
	}
	return nil
}
