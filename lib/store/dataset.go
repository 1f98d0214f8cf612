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

package store

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sboehler/fundsim/lib/common/date"
	"github.com/sboehler/fundsim/lib/model"
	"github.com/sboehler/fundsim/lib/series"
)

type fundRecord struct {
	Name      string  `parquet:"name"`
	StartDate string  `parquet:"start_date"`
	EndDate   string  `parquet:"end_date"`
	Mean      float64 `parquet:"return_mean"`
	Scale     float64 `parquet:"return_scale"`
	Generator string  `parquet:"return_generator"`
}

type shareClassRecord struct {
	Name         string  `parquet:"name"`
	Fund         string  `parquet:"fund"`
	ExpenseRatio float64 `parquet:"expense_ratio"`
}

type returnRecord struct {
	Fund   string  `parquet:"fund"`
	Date   string  `parquet:"date"`
	Return float64 `parquet:"returns"`
}

type customerRecord struct {
	Name     string  `parquet:"name"`
	Turnover float64 `parquet:"turnover"`
}

type accountRecord struct {
	Account           string  `parquet:"account"`
	Customer          string  `parquet:"customer"`
	Fund              string  `parquet:"fund"`
	ShareClass        string  `parquet:"shareclass"`
	CashFlow          string  `parquet:"cashflow"`
	InitialInvestment float64 `parquet:"initial_investment"`
}

type cashFlowRecord struct {
	CashFlow string  `parquet:"cashflow"`
	Date     string  `parquet:"date"`
	Value    float64 `parquet:"value"`
}

// Store reads and writes the tables of one data directory.
type Store struct {
	Dir string
	Log zerolog.Logger
}

// WriteDataset writes all entity tables.
func (s *Store) WriteDataset(ds *model.Dataset) error {
	if err := EnsureDir(s.Dir); err != nil {
		return err
	}
	s.Log.Info().Str("dir", s.Dir).Msg("writing dataset")

	var funds []fundRecord
	for _, f := range ds.Funds {
		funds = append(funds, fundRecord{
			Name:      f.Name,
			StartDate: date.Format(f.Period.Start),
			EndDate:   date.Format(f.Period.End),
			Mean:      f.Mean,
			Scale:     f.Scale,
			Generator: f.Generator,
		})
	}
	var shareClasses []shareClassRecord
	for _, sc := range ds.ShareClasses {
		shareClasses = append(shareClasses, shareClassRecord{sc.Name, sc.Fund.Name, sc.ExpenseRatio})
	}
	var returns []returnRecord
	for _, f := range ds.Funds {
		fromSeries(f.Name, ds.Returns[f.Name], func(name, d string, v float64) {
			returns = append(returns, returnRecord{name, d, v})
		})
	}
	var customers []customerRecord
	for _, c := range ds.Customers {
		customers = append(customers, customerRecord{c.Name, c.Turnover})
	}
	var (
		accounts  []accountRecord
		cashFlows []cashFlowRecord
	)
	for _, a := range ds.Accounts {
		accounts = append(accounts, accountRecord{
			Account:           a.ID(),
			Customer:          a.Customer.Name,
			Fund:              a.Fund().Name,
			ShareClass:        a.ShareClass.Name,
			CashFlow:          a.CashFlow.Name,
			InitialInvestment: a.InitialInvestment,
		})
		fromSeries(a.CashFlow.Name, a.CashFlow.Series, func(name, d string, v float64) {
			cashFlows = append(cashFlows, cashFlowRecord{name, d, v})
		})
	}

	if err := writeTable(s.Dir, FundsFile, funds); err != nil {
		return err
	}
	if err := writeTable(s.Dir, ShareClassesFile, shareClasses); err != nil {
		return err
	}
	if err := writeTable(s.Dir, ReturnsFile, returns); err != nil {
		return err
	}
	if err := writeTable(s.Dir, CustomersFile, customers); err != nil {
		return err
	}
	if err := writeTable(s.Dir, AccountsFile, accounts); err != nil {
		return err
	}
	return writeTable(s.Dir, CashFlowsFile, cashFlows)
}

// ReadDataset reads all entity tables and links them. Share classes of a
// fund share the same *model.Fund.
func (s *Store) ReadDataset() (*model.Dataset, error) {
	s.Log.Info().Str("dir", s.Dir).Msg("reading dataset")
	var (
		ds  = new(model.Dataset)
		err error
	)
	if ds.Funds, err = s.readFunds(); err != nil {
		return nil, err
	}
	if ds.Returns, err = s.readReturns(); err != nil {
		return nil, err
	}
	for _, f := range ds.Funds {
		if _, ok := ds.Returns[f.Name]; !ok && len(f.Period.BusinessDays()) == 0 {
			ds.Returns[f.Name] = series.Daily{}
		}
	}
	if ds.ShareClasses, err = s.readShareClasses(ds); err != nil {
		return nil, err
	}
	if ds.Customers, err = s.readCustomers(); err != nil {
		return nil, err
	}
	if ds.Accounts, err = s.readAccounts(ds); err != nil {
		return nil, err
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	s.Log.Debug().
		Int("funds", len(ds.Funds)).
		Int("shareclasses", len(ds.ShareClasses)).
		Int("customers", len(ds.Customers)).
		Int("accounts", len(ds.Accounts)).
		Msg("read dataset")
	return ds, nil
}

func (s *Store) readFunds() ([]*model.Fund, error) {
	records, err := readTable[fundRecord](s.Dir, FundsFile)
	if err != nil {
		return nil, err
	}
	var res []*model.Fund
	for _, r := range records {
		start, err := date.Parse(r.StartDate)
		if err != nil {
			return nil, fmt.Errorf("fund %s: %w", r.Name, err)
		}
		end, err := date.Parse(r.EndDate)
		if err != nil {
			return nil, fmt.Errorf("fund %s: %w", r.Name, err)
		}
		res = append(res, &model.Fund{
			Name:      r.Name,
			Period:    date.Period{Start: start, End: end},
			Mean:      r.Mean,
			Scale:     r.Scale,
			Generator: r.Generator,
		})
	}
	return res, nil
}

func (s *Store) readReturns() (map[string]series.Daily, error) {
	records, err := readTable[returnRecord](s.Dir, ReturnsFile)
	if err != nil {
		return nil, err
	}
	points := make([]point, 0, len(records))
	for _, r := range records {
		d, err := date.Parse(r.Date)
		if err != nil {
			return nil, fmt.Errorf("returns of fund %s: %w", r.Fund, err)
		}
		points = append(points, point{r.Fund, d, r.Return})
	}
	return toSeries(points)
}

func (s *Store) readShareClasses(ds *model.Dataset) ([]*model.ShareClass, error) {
	records, err := readTable[shareClassRecord](s.Dir, ShareClassesFile)
	if err != nil {
		return nil, err
	}
	var res []*model.ShareClass
	for _, r := range records {
		f, ok := ds.Fund(r.Fund)
		if !ok {
			return nil, fmt.Errorf("share class %s references unknown fund %s", r.Name, r.Fund)
		}
		sc, err := model.NewShareClass(r.Name, f, r.ExpenseRatio)
		if err != nil {
			return nil, err
		}
		res = append(res, sc)
	}
	return res, nil
}

func (s *Store) readCustomers() ([]*model.Customer, error) {
	records, err := readTable[customerRecord](s.Dir, CustomersFile)
	if err != nil {
		return nil, err
	}
	var res []*model.Customer
	for _, r := range records {
		res = append(res, &model.Customer{Name: r.Name, Turnover: r.Turnover})
	}
	return res, nil
}

func (s *Store) readCashFlows() (map[string]series.Daily, error) {
	records, err := readTable[cashFlowRecord](s.Dir, CashFlowsFile)
	if err != nil {
		return nil, err
	}
	points := make([]point, 0, len(records))
	for _, r := range records {
		d, err := date.Parse(r.Date)
		if err != nil {
			return nil, fmt.Errorf("cash flow %s: %w", r.CashFlow, err)
		}
		points = append(points, point{r.CashFlow, d, r.Value})
	}
	return toSeries(points)
}

func (s *Store) readAccounts(ds *model.Dataset) ([]*model.Account, error) {
	records, err := readTable[accountRecord](s.Dir, AccountsFile)
	if err != nil {
		return nil, err
	}
	cashFlows, err := s.readCashFlows()
	if err != nil {
		return nil, err
	}
	var (
		customers    = make(map[string]*model.Customer)
		shareClasses = make(map[string]*model.ShareClass)
		res          []*model.Account
	)
	for _, c := range ds.Customers {
		customers[c.Name] = c
	}
	for _, sc := range ds.ShareClasses {
		shareClasses[sc.ID()] = sc
	}
	for _, r := range records {
		c, ok := customers[r.Customer]
		if !ok {
			return nil, fmt.Errorf("account %s references unknown customer %s", r.Account, r.Customer)
		}
		scID := r.Fund + "_" + r.ShareClass
		sc, ok := shareClasses[scID]
		if !ok {
			return nil, fmt.Errorf("account %s references unknown share class %s", r.Account, scID)
		}
		// accounts without any cash flow rows have an empty series, which
		// the valuation reports as a domain mismatch
		cf := &model.CashFlow{Name: r.CashFlow, Series: cashFlows[r.CashFlow]}
		a, err := model.NewAccount(c, sc, cf, r.InitialInvestment)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, nil
}
