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
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sboehler/fundsim/cmd/flags"
	"github.com/sboehler/fundsim/lib/common/table"
	"github.com/sboehler/fundsim/lib/model"
	"github.com/sboehler/fundsim/lib/report"
	"github.com/sboehler/fundsim/lib/store"
)

var entities = map[string]func(*model.Dataset) *table.Table{
	"funds":        func(ds *model.Dataset) *table.Table { return report.Records(ds.Funds) },
	"shareclasses": func(ds *model.Dataset) *table.Table { return report.Records(ds.ShareClasses) },
	"customers":    func(ds *model.Dataset) *table.Table { return report.Records(ds.Customers) },
	"accounts":     func(ds *model.Dataset) *table.Table { return report.Records(ds.Accounts) },
	"cashflows": func(ds *model.Dataset) *table.Table {
		cfs := make([]*model.CashFlow, 0, len(ds.Accounts))
		for _, a := range ds.Accounts {
			cfs = append(cfs, a.CashFlow)
		}
		return report.Records(cfs)
	},
}

var entityNames = []string{"funds", "shareclasses", "customers", "accounts", "cashflows"}

// CreateListCommand creates the command.
func CreateListCommand(logFlags *flags.LogFlags) *cobra.Command {
	r := listRunner{logFlags: logFlags}
	c := &cobra.Command{
		Use:   fmt.Sprintf("list {%s} <dir>", strings.Join(entityNames, "|")),
		Short: "List the entities of a dataset",
		Long:  `List the funds, share classes, customers, accounts or cash flows of the dataset in the given data directory.`,

		Args:      cobra.ExactArgs(2),
		ValidArgs: entityNames,

		Run: r.run,
	}
	r.renderFlags.setup(c, 6)
	return c
}

type listRunner struct {
	logFlags *flags.LogFlags
	renderFlags
}

func (r *listRunner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *listRunner) execute(cmd *cobra.Command, args []string) error {
	tbl, ok := entities[args[0]]
	if !ok {
		return fmt.Errorf("unknown entity %q, want one of %s", args[0], strings.Join(entityNames, ", "))
	}
	st := store.Store{Dir: args[1], Log: r.logFlags.Logger(cmd.ErrOrStderr())}
	ds, err := st.ReadDataset()
	if err != nil {
		return err
	}
	return r.render(tbl(ds), cmd.OutOrStdout())
}
