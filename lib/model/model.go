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

// Package model contains the entities of the fund accounting system: funds,
// share classes, customers, cash flows and accounts.
package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/sboehler/fundsim/lib/common/date"
	"github.com/sboehler/fundsim/lib/series"
)

// Record is implemented by everything that can be flattened into a table row.
type Record interface {
	Columns() []string
	Values() []any
}

// Fund is an investable fund. A fund is shared read-only by its share classes.
type Fund struct {
	Name      string
	Period    date.Period
	Mean      float64
	Scale     float64
	Generator string
}

var _ Record = (*Fund)(nil)

// Columns implements Record.
func (f *Fund) Columns() []string {
	return []string{"name", "start_date", "end_date", "return_mean", "return_scale", "return_generator"}
}

// Values implements Record.
func (f *Fund) Values() []any {
	return []any{f.Name, date.Format(f.Period.Start), date.Format(f.Period.End), f.Mean, f.Scale, f.Generator}
}

func (f *Fund) String() string {
	return f.Name
}

// ShareClass is a share class of a fund.
type ShareClass struct {
	Name         string
	Fund         *Fund
	ExpenseRatio float64
}

// NewShareClass creates a share class, validating the expense ratio.
func NewShareClass(name string, fund *Fund, expenseRatio float64) (*ShareClass, error) {
	if fund == nil {
		return nil, fmt.Errorf("share class %s: missing fund", name)
	}
	sc := &ShareClass{Name: name, Fund: fund, ExpenseRatio: expenseRatio}
	if err := ValidateExpenseRatio(sc.ID(), expenseRatio); err != nil {
		return nil, err
	}
	return sc, nil
}

// ID returns the identifier <fund>_<name>, which is unique across funds.
func (sc *ShareClass) ID() string {
	return sc.Fund.Name + "_" + sc.Name
}

var _ Record = (*ShareClass)(nil)

// Columns implements Record.
func (sc *ShareClass) Columns() []string {
	return []string{"name", "fund", "expense_ratio"}
}

// Values implements Record.
func (sc *ShareClass) Values() []any {
	return []any{sc.Name, sc.Fund.Name, sc.ExpenseRatio}
}

func (sc *ShareClass) String() string {
	return sc.ID()
}

// Customer is an investor.
type Customer struct {
	Name string
	// Turnover is the rough multiple of the initial investment a customer
	// moves in and out over the observation window.
	Turnover float64
}

var _ Record = (*Customer)(nil)

// Columns implements Record.
func (c *Customer) Columns() []string {
	return []string{"name", "turnover"}
}

// Values implements Record.
func (c *Customer) Values() []any {
	return []any{c.Name, c.Turnover}
}

func (c *Customer) String() string {
	return c.Name
}

// CashFlow is a named series of subscriptions (positive) and redemptions
// (negative), in currency units.
type CashFlow struct {
	Name   string
	Series series.Daily
}

var _ Record = (*CashFlow)(nil)

// Columns implements Record.
func (cf *CashFlow) Columns() []string {
	return []string{"name", "days", "flows", "net"}
}

// Values implements Record.
func (cf *CashFlow) Values() []any {
	var flows int
	for _, v := range cf.Series.Values {
		if v != 0 {
			flows++
		}
	}
	return []any{cf.Name, cf.Series.Len(), flows, cf.Series.Sum()}
}

// Account is a holding of a customer in a share class.
type Account struct {
	Customer          *Customer
	ShareClass        *ShareClass
	CashFlow          *CashFlow
	InitialInvestment float64
}

// NewAccount creates an account, validating the initial investment.
func NewAccount(customer *Customer, shareClass *ShareClass, cashFlow *CashFlow, initialInvestment float64) (*Account, error) {
	if customer == nil || shareClass == nil || cashFlow == nil {
		return nil, fmt.Errorf("account: customer, share class and cash flow are required")
	}
	a := &Account{
		Customer:          customer,
		ShareClass:        shareClass,
		CashFlow:          cashFlow,
		InitialInvestment: initialInvestment,
	}
	if err := ValidateInvestment(a.ID(), initialInvestment); err != nil {
		return nil, err
	}
	return a, nil
}

// AccountID builds the identifier of an account.
func AccountID(customer, shareClassID string) string {
	return customer + "-" + shareClassID
}

// ID returns the identifier <customer>-<fund>_<shareclass>.
func (a *Account) ID() string {
	return AccountID(a.Customer.Name, a.ShareClass.ID())
}

// Fund returns the fund of the account's share class.
func (a *Account) Fund() *Fund {
	return a.ShareClass.Fund
}

var _ Record = (*Account)(nil)

// Columns implements Record.
func (a *Account) Columns() []string {
	return []string{"account", "customer", "fund", "shareclass", "initial_investment"}
}

// Values implements Record.
func (a *Account) Values() []any {
	return []any{a.ID(), a.Customer.Name, a.Fund().Name, a.ShareClass.Name, a.InitialInvestment}
}

func (a *Account) String() string {
	return a.ID()
}

// InvalidParameterError reports a parameter outside its domain.
type InvalidParameterError struct {
	Entity string
	Param  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	var b strings.Builder
	b.WriteString("invalid parameter")
	if e.Entity != "" {
		fmt.Fprintf(&b, " for %s", e.Entity)
	}
	fmt.Fprintf(&b, ": %s = %v", e.Param, e.Value)
	if e.Reason != "" {
		fmt.Fprintf(&b, " (%s)", e.Reason)
	}
	return b.String()
}

// ValidateInvestment checks that an initial investment is positive and finite.
func ValidateInvestment(entity string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return &InvalidParameterError{Entity: entity, Param: "initial_investment", Value: v, Reason: "must be positive"}
	}
	return nil
}

// ValidateExpenseRatio checks that an expense ratio is non-negative and finite.
func ValidateExpenseRatio(entity string, v float64) error {
	if !(v >= 0) || math.IsInf(v, 0) {
		return &InvalidParameterError{Entity: entity, Param: "expense_ratio", Value: v, Reason: "must be non-negative"}
	}
	return nil
}
