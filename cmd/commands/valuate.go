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

	"github.com/cheggaaa/pb/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sboehler/fundsim/cmd/flags"
	"github.com/sboehler/fundsim/lib/accountant"
	"github.com/sboehler/fundsim/lib/common/predicate"
	"github.com/sboehler/fundsim/lib/impact"
	"github.com/sboehler/fundsim/lib/model"
	"github.com/sboehler/fundsim/lib/report"
	"github.com/sboehler/fundsim/lib/store"
)

// CreateValuateCommand creates the command.
func CreateValuateCommand(logFlags *flags.LogFlags) *cobra.Command {
	r := valuateRunner{logFlags: logFlags}
	c := &cobra.Command{
		Use:   "valuate <dir>",
		Short: "Value all accounts and compute the expense impact",
		Long:  `Value all accounts of the dataset in the given data directory, write the valuations and the impact table and print a summary per account.`,

		Args: cobra.ExactArgs(1),

		Run: r.run,
	}
	r.setupFlags(c)
	return c
}

type valuateRunner struct {
	logFlags *flags.LogFlags

	renderFlags

	workers, maxCells    int
	skipErrors, progress bool
	sqlite               string
	customers, funds     flags.RegexFlag
}

func (r *valuateRunner) setupFlags(c *cobra.Command) {
	c.Flags().IntVarP(&r.workers, "workers", "w", 0, "number of concurrent valuations (0 uses all CPUs)")
	c.Flags().IntVar(&r.maxCells, "max-cells", 0, "maximum number of account days to value (0 disables the limit)")
	c.Flags().BoolVar(&r.skipErrors, "skip-errors", false, "skip accounts which cannot be valued")
	c.Flags().BoolVar(&r.progress, "progress", false, "show a progress bar")
	c.Flags().StringVar(&r.sqlite, "sqlite", "", "also record the results in this SQLite database")
	c.Flags().Var(&r.customers, "customer", "only value accounts of customers matching the regex")
	c.Flags().Var(&r.funds, "fund", "only value accounts in funds matching the regex")
	r.renderFlags.setup(c, 2)
}

func (r *valuateRunner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *valuateRunner) execute(cmd *cobra.Command, args []string) (err error) {
	var (
		log = r.logFlags.Logger(cmd.ErrOrStderr())
		st  = store.Store{Dir: args[0], Log: log}
	)
	ds, err := st.ReadDataset()
	if err != nil {
		return err
	}

	accounts := predicate.Filter(ds.Accounts, predicate.And(
		predicate.ByName(r.customers.Value(), func(a *model.Account) string { return a.Customer.Name }),
		predicate.ByName(r.funds.Value(), func(a *model.Account) string { return a.Fund().Name }),
	))

	acc := accountant.New(log)
	acc.MaxCells = r.maxCells
	if r.workers > 0 {
		acc.Workers = r.workers
	}
	if r.progress {
		bar := pb.New(len(accounts)).SetWriter(cmd.ErrOrStderr()).Start()
		defer bar.Finish()
		acc.OnAccount = func() { bar.Increment() }
	}

	var v *accountant.Valuations
	if r.skipErrors {
		var errs error
		v, errs = acc.ComputeEach(cmd.Context(), accounts, ds.Returns)
		if v == nil {
			return errs
		}
		for _, e := range multierr.Errors(errs) {
			log.Warn().Err(e).Msg("skipped account")
		}
	} else if v, err = acc.ComputeAll(cmd.Context(), accounts, ds.Returns); err != nil {
		return err
	}
	impacts := impact.Compute(v.Rows)

	if err := st.WriteValuations(v.Rows); err != nil {
		return err
	}
	if err := st.WriteImpact(impacts); err != nil {
		return err
	}
	if err := r.record(v, impacts, log); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := r.render(report.Summary(report.Summarize(v)), out); err != nil {
		return err
	}
	if r.csv {
		return nil
	}
	p := message.NewPrinter(language.English)
	_, err = p.Fprintf(out, "valued %d of %d accounts, %d rows\n", len(v.Accounts), len(accounts), len(v.Rows))
	return err
}

func (r *valuateRunner) record(v *accountant.Valuations, impacts []impact.Row, log zerolog.Logger) (err error) {
	var rec store.Recorder = store.NoopRecorder{}
	if r.sqlite != "" {
		if rec, err = store.NewSQLiteRecorder(r.sqlite, log); err != nil {
			return err
		}
	}
	defer func() { err = multierr.Append(err, rec.Close()) }()
	if err := rec.RecordValuations(v.Rows); err != nil {
		return err
	}
	return rec.RecordImpact(impacts)
}
