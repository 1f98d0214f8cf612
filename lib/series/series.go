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

// Package series contains date-indexed float series.
package series

import (
	"fmt"
	"time"
)

// Daily is a series of values on an ordered date index.
type Daily struct {
	Dates  []time.Time
	Values []float64
}

// New creates a series. It fails if the lengths differ or the dates are not
// strictly increasing.
func New(dates []time.Time, values []float64) (Daily, error) {
	if len(dates) != len(values) {
		return Daily{}, fmt.Errorf("series has %d dates but %d values", len(dates), len(values))
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			return Daily{}, fmt.Errorf("series dates not increasing at index %d (%s)", i, dates[i].Format("2006-01-02"))
		}
	}
	return Daily{Dates: dates, Values: values}, nil
}

// Zero creates a series of zeros on the given dates.
func Zero(dates []time.Time) Daily {
	return Daily{Dates: dates, Values: make([]float64, len(dates))}
}

// Len returns the number of observations.
func (s Daily) Len() int {
	return len(s.Dates)
}

// Mismatch compares the date indices of two series. It returns -1 if they are
// identical, otherwise the first index at which they differ. If one index is a
// prefix of the other, the length of the shorter one is returned.
func Mismatch(a, b Daily) int {
	n := len(a.Dates)
	if len(b.Dates) < n {
		n = len(b.Dates)
	}
	for i := 0; i < n; i++ {
		if !a.Dates[i].Equal(b.Dates[i]) {
			return i
		}
	}
	if len(a.Dates) != len(b.Dates) {
		return n
	}
	return -1
}

// SameDomain returns whether both series have the identical date index.
func SameDomain(a, b Daily) bool {
	return Mismatch(a, b) < 0
}

// Sum returns the sum of all values.
func (s Daily) Sum() float64 {
	var res float64
	for _, v := range s.Values {
		res += v
	}
	return res
}
