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

// Package accountant values all accounts of a dataset and combines the
// results into one table.
package accountant

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"github.com/sboehler/fundsim/lib/common/cpr"
	"github.com/sboehler/fundsim/lib/common/date"
	"github.com/sboehler/fundsim/lib/model"
	"github.com/sboehler/fundsim/lib/series"
	"github.com/sboehler/fundsim/lib/valuation"
)

// ErrWorkLimit is returned when accounts × days exceeds the configured ceiling.
var ErrWorkLimit = errors.New("work limit exceeded")

// FundNotFoundError is returned when an account references a fund without
// return data.
type FundNotFoundError struct {
	Account string
	Fund    string
}

func (e *FundNotFoundError) Error() string {
	return fmt.Sprintf("account %s: no returns for fund %s", e.Account, e.Fund)
}

// AccountError attaches the account and fund to a valuation error.
type AccountError struct {
	Account string
	Fund    string
	Err     error
}

func (e *AccountError) Error() string {
	return fmt.Sprintf("account %s (fund %s): %v", e.Account, e.Fund, e.Err)
}

func (e *AccountError) Unwrap() error {
	return e.Err
}

// Row is the valuation of one account on one day.
type Row struct {
	Account    string
	Customer   string
	Fund       string
	ShareClass string
	Date       time.Time
	InitGAV    float64
	GAV        float64
	Expense    float64
	NAV        float64
}

var _ model.Record = Row{}

// Columns implements model.Record.
func (r Row) Columns() []string {
	return []string{"account", "customer", "fund", "shareclass", "date", "init_GAV", "GAV", "expense", "NAV"}
}

// Values implements model.Record.
func (r Row) Values() []any {
	return []any{r.Account, r.Customer, r.Fund, r.ShareClass, date.Format(r.Date), r.InitGAV, r.GAV, r.Expense, r.NAV}
}

// Valuations is the combined valuation table. Rows of one account are
// contiguous and in date order; accounts appear in input order.
type Valuations struct {
	Rows []Row
	// Accounts lists the ids of the valued accounts, in order.
	Accounts []string
}

// Accountant values accounts in parallel.
type Accountant struct {
	Log zerolog.Logger
	// Workers bounds the number of concurrent valuations. Zero means
	// GOMAXPROCS.
	Workers int
	// MaxCells bounds accounts × days. Zero disables the check.
	MaxCells int
	// OnAccount, if set, is called after each account has been processed.
	// It may be called concurrently.
	OnAccount func()
}

// New creates an accountant with default settings.
func New(log zerolog.Logger) *Accountant {
	return &Accountant{Log: log, Workers: runtime.GOMAXPROCS(0)}
}

type result struct {
	rows []Row
	err  error
}

// ComputeAll values all accounts and fails on the first error.
func (a *Accountant) ComputeAll(ctx context.Context, accounts []*model.Account, fundReturns map[string]series.Daily) (*Valuations, error) {
	results, err := a.run(ctx, accounts, fundReturns, true)
	if err != nil {
		return nil, err
	}
	return combine(accounts, results), nil
}

// ComputeEach values all accounts, skipping those that fail. The returned
// error combines the failures of all skipped accounts and is nil if every
// account was valued.
func (a *Accountant) ComputeEach(ctx context.Context, accounts []*model.Account, fundReturns map[string]series.Daily) (*Valuations, error) {
	results, err := a.run(ctx, accounts, fundReturns, false)
	if err != nil {
		return nil, err
	}
	var errs error
	for _, r := range results {
		errs = multierr.Append(errs, r.err)
	}
	return combine(accounts, results), errs
}

func (a *Accountant) run(ctx context.Context, accounts []*model.Account, fundReturns map[string]series.Daily, failFast bool) ([]result, error) {
	if err := a.checkLimit(accounts, fundReturns); err != nil {
		return nil, err
	}
	engine := valuation.Engine{Log: a.Log}
	return cpr.Map(ctx, a.Workers, accounts, func(_ context.Context, _ int, acc *model.Account) (result, error) {
		if a.OnAccount != nil {
			defer a.OnAccount()
		}
		rows, err := a.valuate(engine, acc, fundReturns)
		if err != nil {
			a.Log.Debug().Str("account", acc.ID()).Err(err).Msg("valuation failed")
			if failFast {
				return result{}, err
			}
		}
		return result{rows, err}, nil
	})
}

func (a *Accountant) valuate(engine valuation.Engine, acc *model.Account, fundReturns map[string]series.Daily) ([]Row, error) {
	var (
		id   = acc.ID()
		fund = acc.Fund().Name
	)
	returns, ok := fundReturns[fund]
	if !ok {
		return nil, &FundNotFoundError{Account: id, Fund: fund}
	}
	days, err := engine.Compute(acc.InitialInvestment, acc.CashFlow.Series, returns, acc.ShareClass.ExpenseRatio)
	if err != nil {
		var ipe *model.InvalidParameterError
		if errors.As(err, &ipe) && ipe.Entity == "" {
			ipe.Entity = id
		}
		return nil, &AccountError{Account: id, Fund: fund, Err: err}
	}
	rows := make([]Row, len(days))
	for i, d := range days {
		rows[i] = Row{
			Account:    id,
			Customer:   acc.Customer.Name,
			Fund:       fund,
			ShareClass: acc.ShareClass.Name,
			Date:       d.Date,
			InitGAV:    d.InitGAV,
			GAV:        d.GAV,
			Expense:    d.Expense,
			NAV:        d.NAV,
		}
	}
	a.Log.Debug().Str("account", id).Int("days", len(rows)).Msg("valuated account")
	return rows, nil
}

func (a *Accountant) checkLimit(accounts []*model.Account, fundReturns map[string]series.Daily) error {
	if a.MaxCells <= 0 {
		return nil
	}
	var cells int
	for _, acc := range accounts {
		n := acc.CashFlow.Series.Len()
		if r, ok := fundReturns[acc.Fund().Name]; ok && r.Len() > n {
			n = r.Len()
		}
		cells += n
		if cells > a.MaxCells {
			return fmt.Errorf("%w: more than %d account days requested", ErrWorkLimit, a.MaxCells)
		}
	}
	return nil
}

func combine(accounts []*model.Account, results []result) *Valuations {
	var n int
	for _, r := range results {
		n += len(r.rows)
	}
	res := &Valuations{Rows: make([]Row, 0, n)}
	for i, r := range results {
		if r.err != nil {
			continue
		}
		res.Rows = append(res.Rows, r.rows...)
		res.Accounts = append(res.Accounts, accounts[i].ID())
	}
	return res
}
