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

// Package regex holds lists of regular expressions.
package regex

import "regexp"

// Regexes matches if any of its expressions matches.
type Regexes []*regexp.Regexp

// Compile compiles the patterns.
func Compile(patterns ...string) (Regexes, error) {
	var res Regexes
	for _, p := range patterns {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		res.Add(r)
	}
	return res, nil
}

// Add adds an expression.
func (rxs *Regexes) Add(r *regexp.Regexp) {
	*rxs = append(*rxs, r)
}

// MatchString reports whether any expression matches s.
func (rxs Regexes) MatchString(s string) bool {
	for _, r := range rxs {
		if r.MatchString(s) {
			return true
		}
	}
	return false
}

func (rxs Regexes) String() string {
	var s string
	for i, r := range rxs {
		if i > 0 {
			s += ","
		}
		s += r.String()
	}
	return s
}
