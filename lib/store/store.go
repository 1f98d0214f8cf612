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

// Package store reads and writes the tables of a run as Parquet files in a
// data directory.
package store

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
	"github.com/parquet-go/parquet-go"
	"golang.org/x/exp/slices"

	"github.com/sboehler/fundsim/lib/common/date"
	"github.com/sboehler/fundsim/lib/series"
)

// File names of the tables in a data directory.
const (
	FundsFile        = "funds.parquet"
	ShareClassesFile = "shareclasses.parquet"
	ReturnsFile      = "fund_returns.parquet"
	CustomersFile    = "customers.parquet"
	AccountsFile     = "accounts.parquet"
	CashFlowsFile    = "cashflows.parquet"
	ValuationsFile   = "valuations.parquet"
	ImpactFile       = "impact.parquet"
)

// DatasetFiles lists the input tables written by WriteDataset.
var DatasetFiles = []string{
	FundsFile,
	ShareClassesFile,
	ReturnsFile,
	CustomersFile,
	AccountsFile,
	CashFlowsFile,
}

func writeTable[T any](dir, name string, rows []T) error {
	var buf bytes.Buffer
	if err := parquet.Write(&buf, rows); err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := atomic.WriteFile(filepath.Join(dir, name), &buf); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func readTable[T any](dir, name string) ([]T, error) {
	rows, err := parquet.ReadFile[T](filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return rows, nil
}

// EnsureDir creates the data directory if it does not exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// point is one observation of a named series in long format.
type point struct {
	Name  string
	Date  time.Time
	Value float64
}

// toSeries groups long-format observations by name. Observations are sorted
// by date within each series; duplicate dates are an error.
func toSeries(points []point) (map[string]series.Daily, error) {
	grouped := make(map[string][]point)
	for _, p := range points {
		grouped[p.Name] = append(grouped[p.Name], p)
	}
	res := make(map[string]series.Daily, len(grouped))
	for name, ps := range grouped {
		slices.SortStableFunc(ps, func(a, b point) int {
			return a.Date.Compare(b.Date)
		})
		var (
			dates  = make([]time.Time, len(ps))
			values = make([]float64, len(ps))
		)
		for i, p := range ps {
			dates[i], values[i] = p.Date, p.Value
		}
		s, err := series.New(dates, values)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		res[name] = s
	}
	return res, nil
}

func fromSeries(name string, s series.Daily, f func(name, date string, value float64)) {
	for i, d := range s.Dates {
		f(name, date.Format(d), s.Values[i])
	}
}
