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

// Package predicate combines filters.
package predicate

import (
	"github.com/sboehler/fundsim/lib/common/regex"
)

// Predicate filters values of type T.
type Predicate[T any] func(T) bool

// And matches if all predicates match.
func And[T any](predicates ...Predicate[T]) Predicate[T] {
	return func(t T) bool {
		for _, pred := range predicates {
			if !pred(t) {
				return false
			}
		}
		return true
	}
}

// True matches everything.
func True[T any](_ T) bool {
	return true
}

// ByName matches if the name of t matches any of the expressions. An empty
// list matches everything.
func ByName[T any](rxs regex.Regexes, name func(T) string) Predicate[T] {
	if len(rxs) == 0 {
		return True[T]
	}
	return func(t T) bool {
		return rxs.MatchString(name(t))
	}
}

// Filter returns the elements of ts which match.
func Filter[T any](ts []T, pred Predicate[T]) []T {
	var res []T
	for _, t := range ts {
		if pred(t) {
			res = append(res, t)
		}
	}
	return res
}
