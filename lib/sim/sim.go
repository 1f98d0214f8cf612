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

// Package sim generates synthetic fund accounting data.
package sim

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/sboehler/fundsim/lib/model"
	"github.com/sboehler/fundsim/lib/series"
)

// Simulator generates a dataset from a configuration. The same configuration
// and seed always produce the same dataset.
type Simulator struct {
	Config Config
	Log    zerolog.Logger
}

// Simulate generates funds with their returns, share classes, customers and
// one account per customer and share class.
func (s *Simulator) Simulate() (*model.Dataset, error) {
	if err := s.Config.Validate(); err != nil {
		return nil, err
	}
	var (
		rnd  = rand.New(rand.NewSource(s.Config.Seed))
		days = s.Config.Period().BusinessDays()
		ds   = &model.Dataset{Returns: make(map[string]series.Daily)}
	)
	s.Log.Info().
		Stringer("period", s.Config.Period()).
		Int("days", len(days)).
		Int64("seed", s.Config.Seed).
		Msg("generating data")

	ds.Funds = s.generateFunds(rnd)
	for _, f := range ds.Funds {
		ds.Returns[f.Name] = s.generateReturns(rnd, f, days)
	}
	shareClasses, err := s.generateShareClasses(rnd, ds.Funds)
	if err != nil {
		return nil, err
	}
	ds.ShareClasses = shareClasses
	ds.Customers = s.generateCustomers(rnd)
	accounts, err := s.generateAccounts(rnd, ds.Customers, ds.ShareClasses, days)
	if err != nil {
		return nil, err
	}
	ds.Accounts = accounts

	s.Log.Debug().
		Int("funds", len(ds.Funds)).
		Int("shareclasses", len(ds.ShareClasses)).
		Int("customers", len(ds.Customers)).
		Int("accounts", len(ds.Accounts)).
		Msg("generated data")
	return ds, nil
}

func (s *Simulator) generateFunds(rnd *rand.Rand) []*model.Fund {
	var res []*model.Fund
	for _, i := range rnd.Perm(len(FundNames))[:s.Config.NumFunds] {
		res = append(res, &model.Fund{
			Name:      FundNames[i],
			Period:    s.Config.Period(),
			Mean:      s.Config.ReturnMean,
			Scale:     s.Config.ReturnScale,
			Generator: "normal",
		})
	}
	return res
}

// generateReturns draws daily gross return factors 1 + N(mean, scale).
func (s *Simulator) generateReturns(rnd *rand.Rand, f *model.Fund, days []time.Time) series.Daily {
	values := make([]float64, len(days))
	for i := range values {
		values[i] = 1 + f.Mean + f.Scale*rnd.NormFloat64()
	}
	return series.Daily{Dates: days, Values: values}
}

func (s *Simulator) generateShareClasses(rnd *rand.Rand, funds []*model.Fund) ([]*model.ShareClass, error) {
	var res []*model.ShareClass
	for _, f := range funds {
		for _, name := range ShareClassNames[:s.Config.NumShareClasses] {
			ratio := s.Config.ExpenseRatios[rnd.Intn(len(s.Config.ExpenseRatios))]
			sc, err := model.NewShareClass(name, f, ratio)
			if err != nil {
				return nil, err
			}
			res = append(res, sc)
		}
	}
	return res, nil
}

func (s *Simulator) generateCustomers(rnd *rand.Rand) []*model.Customer {
	var res []*model.Customer
	for i := 0; i < s.Config.NumCustomers; i++ {
		res = append(res, &model.Customer{
			Name:     fmt.Sprintf("%s_%d", CustomerNames[rnd.Intn(len(CustomerNames))], i),
			Turnover: math.Abs(s.Config.AvgTurnover + rnd.NormFloat64()),
		})
	}
	return res
}

func (s *Simulator) generateAccounts(rnd *rand.Rand, customers []*model.Customer, shareClasses []*model.ShareClass, days []time.Time) ([]*model.Account, error) {
	var res []*model.Account
	for _, c := range customers {
		for _, sc := range shareClasses {
			investment := float64(s.Config.MinInvestment+rnd.Intn(s.Config.MaxInvestment-s.Config.MinInvestment)) * 1000
			cf := &model.CashFlow{
				Name: model.AccountID(c.Name, sc.ID()),
				Series: series.Daily{
					Dates:  days,
					Values: CashFlows(rnd, len(days), c.Turnover, investment),
				},
			}
			a, err := model.NewAccount(c, sc, cf, investment)
			if err != nil {
				return nil, err
			}
			res = append(res, a)
		}
	}
	return res, nil
}

// CashFlows draws n daily subscriptions and redemptions in currency units.
//
// Each day carries a flow with probability 2*turnover/n, so that with an
// average flow of half the investment the absolute flows add up to about
// turnover times the investment. The flow sizes are normalized so that this
// holds exactly whenever at least one flow is drawn.
func CashFlows(rnd *rand.Rand, n int, turnover, investment float64) []float64 {
	values := make([]float64, n)
	if n == 0 || !(turnover > 0) {
		return values
	}
	var (
		p     = math.Min(1, 2*turnover/float64(n))
		k     = binomial(rnd, n, p)
		days  = rnd.Perm(n)[:k]
		sizes = make([]float64, k)
		total float64
	)
	for i := range sizes {
		sizes[i] = rnd.NormFloat64()
		total += math.Abs(sizes[i])
	}
	if total == 0 {
		return values
	}
	for i, d := range days {
		values[d] = sizes[i] / total * turnover * investment
	}
	return values
}

func binomial(rnd *rand.Rand, n int, p float64) int {
	var k int
	for i := 0; i < n; i++ {
		if rnd.Float64() < p {
			k++
		}
	}
	return k
}
