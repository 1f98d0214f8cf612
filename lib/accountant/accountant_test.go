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

package accountant

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"

	"github.com/sboehler/fundsim/lib/common/date"
	"github.com/sboehler/fundsim/lib/common/logging"
	"github.com/sboehler/fundsim/lib/model"
	"github.com/sboehler/fundsim/lib/series"
	"github.com/sboehler/fundsim/lib/valuation"
)

type fixture struct {
	accounts []*model.Account
	returns  map[string]series.Daily
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	var (
		period = date.Period{Start: date.Date(2021, 3, 1), End: date.Date(2021, 3, 12)}
		days   = period.BusinessDays()
		spx    = &model.Fund{Name: "spx", Period: period, Generator: "normal"}
		tech   = &model.Fund{Name: "tech", Period: period, Generator: "normal"}
		jim    = &model.Customer{Name: "Jim_0", Turnover: 1}
		alice  = &model.Customer{Name: "Alice_1", Turnover: 2}
	)
	returns := map[string]series.Daily{
		"spx":  {Dates: days, Values: make([]float64, len(days))},
		"tech": {Dates: days, Values: make([]float64, len(days))},
	}
	for i := range days {
		returns["spx"].Values[i] = 1 + 0.001*float64(i%3)
		returns["tech"].Values[i] = 1 - 0.002*float64(i%2)
	}
	var accounts []*model.Account
	for _, f := range []*model.Fund{spx, tech} {
		for j, name := range []string{"A", "B"} {
			sc, err := model.NewShareClass(name, f, 0.0001*float64(j+1))
			if err != nil {
				t.Fatal(err)
			}
			for k, c := range []*model.Customer{jim, alice} {
				cf := &model.CashFlow{Name: c.Name + "-" + sc.ID(), Series: series.Zero(days)}
				cf.Series.Values[3] = 100 * float64(k+1)
				a, err := model.NewAccount(c, sc, cf, 1000*float64(k+1))
				if err != nil {
					t.Fatal(err)
				}
				accounts = append(accounts, a)
			}
		}
	}
	return fixture{accounts, returns}
}

func TestComputeAll(t *testing.T) {
	f := newFixture(t)
	acc := New(logging.Silent())
	got, err := acc.ComputeAll(context.Background(), f.accounts, f.returns)
	if err != nil {
		t.Fatalf("ComputeAll() returned unexpected error %v", err)
	}
	days := f.returns["spx"].Len()
	if len(got.Rows) != len(f.accounts)*days {
		t.Fatalf("got %d rows, want %d", len(got.Rows), len(f.accounts)*days)
	}
	for i, a := range f.accounts {
		want, err := valuation.Compute(a.InitialInvestment, a.CashFlow.Series, f.returns[a.Fund().Name], a.ShareClass.ExpenseRatio)
		if err != nil {
			t.Fatal(err)
		}
		if got.Accounts[i] != a.ID() {
			t.Errorf("account %d is %s, want %s", i, got.Accounts[i], a.ID())
		}
		for j, d := range want {
			row := got.Rows[i*days+j]
			wantRow := Row{
				Account:    a.ID(),
				Customer:   a.Customer.Name,
				Fund:       a.Fund().Name,
				ShareClass: a.ShareClass.Name,
				Date:       d.Date,
				InitGAV:    d.InitGAV,
				GAV:        d.GAV,
				Expense:    d.Expense,
				NAV:        d.NAV,
			}
			if diff := cmp.Diff(wantRow, row); diff != "" {
				t.Fatalf("row %d of %s: unexpected diff (-want, +got):\n%s", j, a.ID(), diff)
			}
		}
	}
}

func TestComputeAllDeterministic(t *testing.T) {
	f := newFixture(t)
	var results []*Valuations
	for _, workers := range []int{1, 3, 16} {
		acc := New(logging.Silent())
		acc.Workers = workers
		v, err := acc.ComputeAll(context.Background(), f.accounts, f.returns)
		if err != nil {
			t.Fatalf("ComputeAll() returned unexpected error %v", err)
		}
		results = append(results, v)
	}
	for i := 1; i < len(results); i++ {
		if diff := cmp.Diff(results[0], results[i]); diff != "" {
			t.Errorf("run %d differs from run 0:\n%s", i, diff)
		}
	}
}

func TestComputeAllFundNotFound(t *testing.T) {
	f := newFixture(t)
	delete(f.returns, "tech")
	_, err := New(logging.Silent()).ComputeAll(context.Background(), f.accounts, f.returns)
	var fnf *FundNotFoundError
	if !errors.As(err, &fnf) {
		t.Fatalf("ComputeAll(): got error %v, want FundNotFoundError", err)
	}
	if fnf.Fund != "tech" {
		t.Errorf("Fund = %q, want %q", fnf.Fund, "tech")
	}
}

func TestComputeAllDomainMismatch(t *testing.T) {
	f := newFixture(t)
	cf := f.accounts[0].CashFlow
	cf.Series = series.Daily{Dates: cf.Series.Dates[1:], Values: cf.Series.Values[1:]}
	_, err := New(logging.Silent()).ComputeAll(context.Background(), f.accounts, f.returns)
	var (
		ae  *AccountError
		dme *valuation.DomainMismatchError
	)
	if !errors.As(err, &ae) || !errors.As(err, &dme) {
		t.Fatalf("ComputeAll(): got error %v, want AccountError wrapping DomainMismatchError", err)
	}
	if ae.Account != f.accounts[0].ID() {
		t.Errorf("Account = %q, want %q", ae.Account, f.accounts[0].ID())
	}
}

func TestComputeEach(t *testing.T) {
	f := newFixture(t)
	bad := f.accounts[1].CashFlow
	bad.Series = series.Zero(bad.Series.Dates[:2])
	f.accounts[2].InitialInvestment = -5

	var calls atomic.Int32
	acc := New(logging.Silent())
	acc.OnAccount = func() { calls.Add(1) }
	got, err := acc.ComputeEach(context.Background(), f.accounts, f.returns)
	if err == nil {
		t.Fatalf("ComputeEach() returned nil error")
	}
	if n := len(multierr.Errors(err)); n != 2 {
		t.Errorf("got %d errors, want 2: %v", n, err)
	}
	var ipe *model.InvalidParameterError
	if !errors.As(err, &ipe) || ipe.Entity != f.accounts[2].ID() {
		t.Errorf("expected InvalidParameterError for %s, got %v", f.accounts[2].ID(), err)
	}
	if len(got.Accounts) != len(f.accounts)-2 {
		t.Errorf("got %d valued accounts, want %d", len(got.Accounts), len(f.accounts)-2)
	}
	for _, id := range got.Accounts {
		if id == f.accounts[1].ID() || id == f.accounts[2].ID() {
			t.Errorf("failed account %s present in result", id)
		}
	}
	if int(calls.Load()) != len(f.accounts) {
		t.Errorf("OnAccount called %d times, want %d", calls.Load(), len(f.accounts))
	}
}

func TestComputeEachNoErrors(t *testing.T) {
	f := newFixture(t)
	got, err := New(logging.Silent()).ComputeEach(context.Background(), f.accounts, f.returns)
	if err != nil {
		t.Fatalf("ComputeEach() returned unexpected error %v", err)
	}
	if len(got.Accounts) != len(f.accounts) {
		t.Errorf("got %d accounts, want %d", len(got.Accounts), len(f.accounts))
	}
}

func TestWorkLimit(t *testing.T) {
	f := newFixture(t)
	acc := New(logging.Silent())
	acc.MaxCells = 10
	_, err := acc.ComputeAll(context.Background(), f.accounts, f.returns)
	if !errors.Is(err, ErrWorkLimit) {
		t.Fatalf("ComputeAll(): got error %v, want ErrWorkLimit", err)
	}
	acc.MaxCells = len(f.accounts) * f.returns["spx"].Len()
	if _, err := acc.ComputeAll(context.Background(), f.accounts, f.returns); err != nil {
		t.Errorf("ComputeAll() at the limit returned unexpected error %v", err)
	}
}

func TestEmpty(t *testing.T) {
	got, err := New(logging.Silent()).ComputeAll(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("ComputeAll() returned unexpected error %v", err)
	}
	if len(got.Rows) != 0 || len(got.Accounts) != 0 {
		t.Errorf("ComputeAll(nil) = %+v, want empty", got)
	}
}
