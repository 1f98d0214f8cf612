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
	"github.com/sboehler/fundsim/lib/accountant"
	"github.com/sboehler/fundsim/lib/common/date"
	"github.com/sboehler/fundsim/lib/impact"
)

type valuationRecord struct {
	Account    string  `parquet:"account"`
	Customer   string  `parquet:"customer"`
	Fund       string  `parquet:"fund"`
	ShareClass string  `parquet:"shareclass"`
	Date       string  `parquet:"date"`
	InitGAV    float64 `parquet:"init_GAV"`
	GAV        float64 `parquet:"GAV"`
	Expense    float64 `parquet:"expense"`
	NAV        float64 `parquet:"NAV"`
}

type impactRecord struct {
	Customer     string   `parquet:"customer"`
	Fund         string   `parquet:"fund"`
	ShareClass   string   `parquet:"shareclass"`
	TotalExpense float64  `parquet:"total_expense"`
	Impact       *float64 `parquet:"impact,optional"`
}

// WriteValuations writes the combined valuation table.
func (s *Store) WriteValuations(rows []accountant.Row) error {
	records := make([]valuationRecord, len(rows))
	for i, r := range rows {
		records[i] = valuationRecord{
			Account:    r.Account,
			Customer:   r.Customer,
			Fund:       r.Fund,
			ShareClass: r.ShareClass,
			Date:       date.Format(r.Date),
			InitGAV:    r.InitGAV,
			GAV:        r.GAV,
			Expense:    r.Expense,
			NAV:        r.NAV,
		}
	}
	s.Log.Debug().Int("rows", len(records)).Msg("writing valuations")
	return writeTable(s.Dir, ValuationsFile, records)
}

// ReadValuations reads the combined valuation table.
func (s *Store) ReadValuations() ([]accountant.Row, error) {
	records, err := readTable[valuationRecord](s.Dir, ValuationsFile)
	if err != nil {
		return nil, err
	}
	rows := make([]accountant.Row, len(records))
	for i, r := range records {
		d, err := date.Parse(r.Date)
		if err != nil {
			return nil, err
		}
		rows[i] = accountant.Row{
			Account:    r.Account,
			Customer:   r.Customer,
			Fund:       r.Fund,
			ShareClass: r.ShareClass,
			Date:       d,
			InitGAV:    r.InitGAV,
			GAV:        r.GAV,
			Expense:    r.Expense,
			NAV:        r.NAV,
		}
	}
	return rows, nil
}

// WriteImpact writes the impact table. Missing impacts are stored as nulls.
func (s *Store) WriteImpact(rows []impact.Row) error {
	records := make([]impactRecord, len(rows))
	for i, r := range rows {
		records[i] = impactRecord{
			Customer:     r.Customer,
			Fund:         r.Fund,
			ShareClass:   r.ShareClass,
			TotalExpense: r.TotalExpense,
			Impact:       r.Impact,
		}
	}
	s.Log.Debug().Int("rows", len(records)).Msg("writing impact")
	return writeTable(s.Dir, ImpactFile, records)
}

// ReadImpact reads the impact table.
func (s *Store) ReadImpact() ([]impact.Row, error) {
	records, err := readTable[impactRecord](s.Dir, ImpactFile)
	if err != nil {
		return nil, err
	}
	rows := make([]impact.Row, len(records))
	for i, r := range records {
		rows[i] = impact.Row{
			Key:          impact.Key{Customer: r.Customer, Fund: r.Fund, ShareClass: r.ShareClass},
			TotalExpense: r.TotalExpense,
			Impact:       r.Impact,
		}
	}
	return rows, nil
}
