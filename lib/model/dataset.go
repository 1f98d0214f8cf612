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

package model

import (
	"fmt"

	"github.com/sboehler/fundsim/lib/series"
)

// Dataset holds the entity tables of one run. It is loaded or generated once
// and not modified afterwards.
type Dataset struct {
	Funds        []*Fund
	ShareClasses []*ShareClass
	Customers    []*Customer
	Accounts     []*Account
	// Returns maps fund names to daily gross return factors.
	Returns map[string]series.Daily
}

// Fund returns the fund with the given name.
func (ds *Dataset) Fund(name string) (*Fund, bool) {
	for _, f := range ds.Funds {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Validate checks uniqueness of identifiers and references between tables.
func (ds *Dataset) Validate() error {
	funds := make(map[string]*Fund)
	for _, f := range ds.Funds {
		if _, ok := funds[f.Name]; ok {
			return fmt.Errorf("duplicate fund %s", f.Name)
		}
		funds[f.Name] = f
	}
	shareClasses := make(map[string]bool)
	for _, sc := range ds.ShareClasses {
		if funds[sc.Fund.Name] != sc.Fund {
			return fmt.Errorf("share class %s references unknown fund %s", sc.ID(), sc.Fund.Name)
		}
		if shareClasses[sc.ID()] {
			return fmt.Errorf("duplicate share class %s", sc.ID())
		}
		shareClasses[sc.ID()] = true
	}
	customers := make(map[string]bool)
	for _, c := range ds.Customers {
		if customers[c.Name] {
			return fmt.Errorf("duplicate customer %s", c.Name)
		}
		customers[c.Name] = true
	}
	accounts := make(map[string]bool)
	for _, a := range ds.Accounts {
		if !customers[a.Customer.Name] {
			return fmt.Errorf("account %s references unknown customer %s", a.ID(), a.Customer.Name)
		}
		if !shareClasses[a.ShareClass.ID()] {
			return fmt.Errorf("account %s references unknown share class %s", a.ID(), a.ShareClass.ID())
		}
		if accounts[a.ID()] {
			return fmt.Errorf("duplicate account %s", a.ID())
		}
		accounts[a.ID()] = true
	}
	return nil
}
