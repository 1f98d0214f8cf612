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

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sboehler/fundsim/cmd/flags"
	"github.com/sboehler/fundsim/lib/sim"
	"github.com/sboehler/fundsim/lib/store"
)

// CreateGenerateCommand creates the command.
func CreateGenerateCommand(logFlags *flags.LogFlags) *cobra.Command {
	r := generateRunner{logFlags: logFlags}
	c := &cobra.Command{
		Use:   "generate <dir>",
		Short: "Generate a synthetic dataset",
		Long:  `Generate funds, share classes, customers, accounts, fund returns and cash flows and write them to the given data directory.`,

		Args: cobra.ExactArgs(1),

		Run: r.run,
	}
	r.setupFlags(c)
	return c
}

type generateRunner struct {
	logFlags *flags.LogFlags

	config                         string
	period                         flags.PeriodFlag
	funds, shareClasses, customers int
	turnover                       float64
	seed                           int64
}

func (r *generateRunner) setupFlags(c *cobra.Command) {
	def := sim.DefaultConfig()
	r.period.Setup(c)
	c.Flags().StringVarP(&r.config, "config", "c", "", "simulation config file (YAML or JSON)")
	c.Flags().IntVar(&r.funds, "funds", def.NumFunds, "number of funds")
	c.Flags().IntVar(&r.shareClasses, "shareclasses", def.NumShareClasses, "number of share classes per fund")
	c.Flags().IntVar(&r.customers, "customers", def.NumCustomers, "number of customers")
	c.Flags().Float64Var(&r.turnover, "turnover", def.AvgTurnover, "average customer turnover")
	c.Flags().Int64Var(&r.seed, "seed", def.Seed, "random seed")
}

func (r *generateRunner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *generateRunner) execute(cmd *cobra.Command, args []string) error {
	log := r.logFlags.Logger(cmd.ErrOrStderr())
	cfg, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	s := sim.Simulator{Config: cfg, Log: log}
	ds, err := s.Simulate()
	if err != nil {
		return err
	}
	st := store.Store{Dir: args[0], Log: log}
	if err := st.WriteDataset(ds); err != nil {
		return err
	}
	p := message.NewPrinter(language.English)
	_, err = p.Fprintf(cmd.OutOrStdout(), "generated %d funds, %d share classes, %d customers and %d accounts over %d business days\n",
		len(ds.Funds), len(ds.ShareClasses), len(ds.Customers), len(ds.Accounts), len(cfg.Period().BusinessDays()))
	return err
}

// loadConfig reads the config file, if any, and applies the flags which
// have been set explicitly.
func (r *generateRunner) loadConfig(cmd *cobra.Command) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if r.config != "" {
		var err error
		if cfg, err = sim.LoadConfig(r.config); err != nil {
			return sim.Config{}, err
		}
	}
	period := r.period.Value(cfg.Period())
	cfg.StartDate, cfg.EndDate = sim.Date(period.Start), sim.Date(period.End)
	fs := cmd.Flags()
	if fs.Changed("funds") {
		cfg.NumFunds = r.funds
	}
	if fs.Changed("shareclasses") {
		cfg.NumShareClasses = r.shareClasses
	}
	if fs.Changed("customers") {
		cfg.NumCustomers = r.customers
	}
	if fs.Changed("turnover") {
		cfg.AvgTurnover = r.turnover
	}
	if fs.Changed("seed") {
		cfg.Seed = r.seed
	}
	return cfg, cfg.Validate()
}
