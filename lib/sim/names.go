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

// FundNames are the names funds are drawn from.
var FundNames = []string{
	"divincome",
	"emerging",
	"esg",
	"fixedincome",
	"growth",
	"junkbond",
	"largecap",
	"midcap",
	"momentum",
	"reit",
	"retire20",
	"smallcap",
	"spx",
	"tech",
	"value",
	"vice",
	"world",
}

// ShareClassNames are the names of the share classes of a fund, in order.
var ShareClassNames = []string{"A", "B", "C", "D", "E", "F", "G"}

// CustomerNames are the names customers are drawn from.
var CustomerNames = []string{
	"Jim",
	"Susan",
	"Bob",
	"Alice",
	"Karen",
	"Peter",
	"John",
	"Paul",
	"Mitt",
	"Michael",
}
