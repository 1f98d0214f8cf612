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

// Package date contains calendar helpers.
package date

import (
	"fmt"
	"time"
)

// Layout is the date layout used in files and flags.
const Layout = "2006-01-02"

// Date creates a new UTC date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Parse parses a date in YYYY-MM-DD format.
func Parse(s string) (time.Time, error) {
	return time.Parse(Layout, s)
}

// Format formats a date in YYYY-MM-DD format.
func Format(d time.Time) string {
	return d.Format(Layout)
}

// Today returns today's date.
func Today() time.Time {
	now := time.Now().Local()
	return Date(now.Year(), now.Month(), now.Day())
}

// IsBusinessDay returns whether d is a weekday.
func IsBusinessDay(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// Period is a closed date interval.
type Period struct {
	Start, End time.Time
}

// Validate checks that the period is not inverted.
func (p Period) Validate() error {
	if p.End.Before(p.Start) {
		return fmt.Errorf("invalid period: end %s is before start %s", Format(p.End), Format(p.Start))
	}
	return nil
}

// BusinessDays returns all weekdays in the period, in order.
func (p Period) BusinessDays() []time.Time {
	var res []time.Time
	for t := p.Start; !t.After(p.End); t = t.AddDate(0, 0, 1) {
		if IsBusinessDay(t) {
			res = append(res, t)
		}
	}
	return res
}

func (p Period) String() string {
	return fmt.Sprintf("%s..%s", Format(p.Start), Format(p.End))
}
