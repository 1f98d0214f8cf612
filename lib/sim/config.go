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

package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v2"

	"github.com/sboehler/fundsim/lib/common/date"
)

// Date is a date in YYYY-MM-DD format in configuration files.
type Date time.Time

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Date) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	t, err := date.Parse(s)
	if err != nil {
		return err
	}
	*d = Date(t)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Date) MarshalYAML() (interface{}, error) {
	return date.Format(time.Time(d)), nil
}

// Equal reports whether both dates are the same instant.
func (d Date) Equal(o Date) bool {
	return time.Time(d).Equal(time.Time(o))
}

// Time returns the date as time.Time.
func (d Date) Time() time.Time {
	return time.Time(d)
}

// Config holds the parameters of a simulation.
type Config struct {
	StartDate       Date      `yaml:"start_date"`
	EndDate         Date      `yaml:"end_date"`
	NumShareClasses int       `yaml:"num_shareclasses"`
	NumFunds        int       `yaml:"num_funds"`
	NumCustomers    int       `yaml:"num_customers"`
	AvgTurnover     float64   `yaml:"avg_turnover"`
	ExpenseRatios   []float64 `yaml:"expense_ratios"`
	ReturnMean      float64   `yaml:"return_mean"`
	ReturnScale     float64   `yaml:"return_scale"`
	// MinInvestment and MaxInvestment bound initial investments, in
	// thousands. MaxInvestment is exclusive.
	MinInvestment int   `yaml:"min_investment"`
	MaxInvestment int   `yaml:"max_investment"`
	Seed          int64 `yaml:"seed"`
}

// DefaultExpenseRatios returns n evenly spaced daily expense ratios between
// 0.95 and 1 basis point.
func DefaultExpenseRatios(n int) []float64 {
	const lo, hi = 0.000095, 0.0001
	res := make([]float64, n)
	for i := range res {
		res[i] = lo + (hi-lo)*float64(i)/float64(n)
	}
	return res
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		StartDate:       Date(date.Date(2020, 1, 1)),
		EndDate:         Date(date.Date(2022, 1, 1)),
		NumShareClasses: 2,
		NumFunds:        1,
		NumCustomers:    25,
		AvgTurnover:     1,
		ExpenseRatios:   DefaultExpenseRatios(50),
		ReturnMean:      0.01,
		ReturnScale:     0.005,
		MinInvestment:   10,
		MaxInvestment:   1000,
		Seed:            1,
	}
}

// Period returns the observation window.
func (c Config) Period() date.Period {
	return date.Period{Start: c.StartDate.Time(), End: c.EndDate.Time()}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := c.Period().Validate(); err != nil {
		return err
	}
	if c.NumShareClasses < 1 || c.NumShareClasses > len(ShareClassNames) {
		return fmt.Errorf("num_shareclasses must be between 1 and %d, got %d", len(ShareClassNames), c.NumShareClasses)
	}
	if c.NumFunds < 1 || c.NumFunds > len(FundNames) {
		return fmt.Errorf("num_funds must be between 1 and %d, got %d", len(FundNames), c.NumFunds)
	}
	if c.NumCustomers < 0 {
		return fmt.Errorf("num_customers must be non-negative, got %d", c.NumCustomers)
	}
	if c.AvgTurnover < 0 {
		return fmt.Errorf("avg_turnover must be non-negative, got %v", c.AvgTurnover)
	}
	if len(c.ExpenseRatios) == 0 {
		return fmt.Errorf("expense_ratios must not be empty")
	}
	for _, r := range c.ExpenseRatios {
		if !(r >= 0) {
			return fmt.Errorf("expense ratios must be non-negative, got %v", r)
		}
	}
	if !(c.ReturnScale >= 0) {
		return fmt.Errorf("return_scale must be non-negative, got %v", c.ReturnScale)
	}
	if c.MinInvestment < 1 || c.MaxInvestment <= c.MinInvestment {
		return fmt.Errorf("investment bounds must satisfy 1 <= min < max, got %d and %d", c.MinInvestment, c.MaxInvestment)
	}
	return nil
}

// LoadConfig reads a YAML (or JSON) configuration. Missing fields keep their
// default values, unknown fields are an error.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(f)
	dec.SetStrict(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes the configuration as YAML.
func SaveConfig(path string, cfg Config) error {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(b))
}
