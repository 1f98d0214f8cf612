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

package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"

	"github.com/sboehler/fundsim/cmd/cmdtest"
	"github.com/sboehler/fundsim/cmd/flags"
	"github.com/sboehler/fundsim/lib/common/date"
	"github.com/sboehler/fundsim/lib/common/logging"
	"github.com/sboehler/fundsim/lib/model"
	"github.com/sboehler/fundsim/lib/series"
	"github.com/sboehler/fundsim/lib/sim"
	"github.com/sboehler/fundsim/lib/store"
)

// writeDataset writes one fund with two share classes and one customer
// holding both.
func writeDataset(t *testing.T) string {
	t.Helper()
	var (
		dir  = t.TempDir()
		days = []time.Time{date.Date(2021, 3, 1), date.Date(2021, 3, 2)}
		fund = &model.Fund{
			Name:      "Global Bonds",
			Period:    date.Period{Start: days[0], End: days[1]},
			Mean:      0.01,
			Scale:     0.005,
			Generator: "normal",
		}
		customer = &model.Customer{Name: "Sarah", Turnover: 0.1}
		ds       = &model.Dataset{
			Funds:     []*model.Fund{fund},
			Customers: []*model.Customer{customer},
			Returns: map[string]series.Daily{
				fund.Name: {Dates: days, Values: []float64{1.1, 1.0}},
			},
		}
	)
	for _, sc := range []struct {
		name string
		e    float64
	}{{"A", 0.01}, {"B", 0.03}} {
		shareClass, err := model.NewShareClass(sc.name, fund, sc.e)
		if err != nil {
			t.Fatal(err)
		}
		cf := &model.CashFlow{
			Name:   model.AccountID(customer.Name, shareClass.ID()),
			Series: series.Daily{Dates: days, Values: []float64{0, 10}},
		}
		a, err := model.NewAccount(customer, shareClass, cf, 100)
		if err != nil {
			t.Fatal(err)
		}
		ds.ShareClasses = append(ds.ShareClasses, shareClass)
		ds.Accounts = append(ds.Accounts, a)
	}
	st := store.Store{Dir: dir, Log: logging.Silent()}
	if err := st.WriteDataset(ds); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestValuateAndImpact(t *testing.T) {
	var (
		dir = writeDataset(t)
		lf  flags.LogFlags
	)

	valuations := cmdtest.Run(t, CreateValuateCommand(&lf), []string{"--workers", "2", dir})
	impacts := cmdtest.Run(t, CreateImpactCommand(&lf), []string{dir})

	g := goldie.New(t)
	g.Assert(t, "valuate", valuations)
	g.Assert(t, "impact", impacts)
}

func TestValuateWritesResults(t *testing.T) {
	var (
		dir = writeDataset(t)
		db  = filepath.Join(t.TempDir(), "results.db")
		lf  flags.LogFlags
	)

	cmdtest.Run(t, CreateValuateCommand(&lf), []string{"--csv", "--sqlite", db, dir})

	st := store.Store{Dir: dir, Log: logging.Silent()}
	rows, err := st.ReadValuations()
	if err != nil {
		t.Fatalf("ReadValuations() returned unexpected error %v", err)
	}
	if len(rows) != 4 {
		t.Errorf("got %d valuation rows, want 4", len(rows))
	}
	impacts, err := st.ReadImpact()
	if err != nil {
		t.Fatalf("ReadImpact() returned unexpected error %v", err)
	}
	if len(impacts) != 2 || impacts[0].Impact != nil || impacts[1].Impact == nil {
		t.Errorf("unexpected impact rows %v", impacts)
	}
	if _, err := os.Stat(db); err != nil {
		t.Errorf("sqlite database was not created: %v", err)
	}
}

func TestValuateFilter(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--customer", "^Sarah$"}, "valued 2 of 2 accounts, 4 rows\n"},
		{[]string{"--customer", "Tom", "--customer", "Sarah"}, "valued 2 of 2 accounts, 4 rows\n"},
		{[]string{"--customer", "Sarah", "--fund", "Equity"}, "valued 0 of 0 accounts, 0 rows\n"},
	}
	for _, test := range tests {
		t.Run(strings.Join(test.args, " "), func(t *testing.T) {
			var lf flags.LogFlags

			got := cmdtest.Run(t, CreateValuateCommand(&lf), append(test.args, writeDataset(t)))

			if !strings.HasSuffix(string(got), test.want) {
				t.Errorf("valuate %v printed %q, want suffix %q", test.args, got, test.want)
			}
		})
	}
}

func TestList(t *testing.T) {
	tests := []struct {
		entity string
		want   string
	}{
		{
			entity: "shareclasses",
			want:   "name,fund,expense_ratio\nA,Global Bonds,0.01\nB,Global Bonds,0.03\n",
		},
		{
			entity: "cashflows",
			want:   "name,days,flows,net\nSarah-Global Bonds_A,2,1,10\nSarah-Global Bonds_B,2,1,10\n",
		},
		{
			entity: "funds",
			want:   "name,start_date,end_date,return_mean,return_scale,return_generator\nGlobal Bonds,2021-03-01,2021-03-02,0.01,0.005,normal\n",
		},
	}
	dir := writeDataset(t)
	for _, test := range tests {
		t.Run(test.entity, func(t *testing.T) {
			var lf flags.LogFlags

			got := cmdtest.Run(t, CreateListCommand(&lf), []string{"--csv", test.entity, dir})

			if diff := cmp.Diff(test.want, string(got)); diff != "" {
				t.Errorf("list %s returned unexpected diff (-want/+got):\n%s", test.entity, diff)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	var (
		dir = filepath.Join(t.TempDir(), "data")
		lf  flags.LogFlags
	)
	args := []string{"--from", "2021-03-01", "--to", "2021-03-31", "--customers", "3", "--seed", "7", dir}

	got := cmdtest.Run(t, CreateGenerateCommand(&lf), args)

	want := "generated 1 funds, 2 share classes, 3 customers and 6 accounts over 23 business days\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("generate returned unexpected diff (-want/+got):\n%s", diff)
	}
	for _, f := range store.DatasetFiles {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Errorf("%s was not written: %v", f, err)
		}
	}
	st := store.Store{Dir: dir, Log: logging.Silent()}
	ds, err := st.ReadDataset()
	if err != nil {
		t.Fatalf("ReadDataset() returned unexpected error %v", err)
	}
	for _, a := range ds.Accounts {
		if a.CashFlow.Series.Len() != 23 {
			t.Errorf("cash flow of %s has %d days, want 23", a.ID(), a.CashFlow.Series.Len())
		}
	}
}

func TestGenerateWithConfig(t *testing.T) {
	var (
		dir = t.TempDir()
		cfg = filepath.Join(dir, "sim.json")
		lf  flags.LogFlags
	)
	content := `{"start_date": "2021-03-01", "end_date": "2021-03-05", "num_funds": 2, "num_customers": 1}`
	if err := os.WriteFile(cfg, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got := cmdtest.Run(t, CreateGenerateCommand(&lf), []string{"--config", cfg, "--shareclasses", "3", filepath.Join(dir, "data")})

	want := "generated 2 funds, 6 share classes, 1 customers and 6 accounts over 5 business days\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("generate returned unexpected diff (-want/+got):\n%s", diff)
	}
}

func TestConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")

	cmdtest.Run(t, CreateConfigCommand(), []string{"init", path})
	out := cmdtest.Run(t, CreateConfigCommand(), []string{"show", path})

	got, err := sim.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() returned unexpected error %v", err)
	}
	if diff := cmp.Diff(sim.DefaultConfig(), got); diff != "" {
		t.Errorf("config init wrote unexpected config (-want/+got):\n%s", diff)
	}
	if len(out) == 0 {
		t.Errorf("config show printed nothing")
	}
}
