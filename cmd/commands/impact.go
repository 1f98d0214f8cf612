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

	"github.com/sboehler/fundsim/cmd/flags"
	"github.com/sboehler/fundsim/lib/report"
	"github.com/sboehler/fundsim/lib/store"
)

// CreateImpactCommand creates the command.
func CreateImpactCommand(logFlags *flags.LogFlags) *cobra.Command {
	r := impactRunner{logFlags: logFlags}
	c := &cobra.Command{
		Use:   "impact <dir>",
		Short: "Print the expense impact table",
		Long:  `Print the impact table written by the valuate command. For every customer and fund, the impact of a share class is the difference of its total expense to the previous share class.`,

		Args: cobra.ExactArgs(1),

		Run: r.run,
	}
	r.renderFlags.setup(c, 2)
	return c
}

type impactRunner struct {
	logFlags *flags.LogFlags
	renderFlags
}

func (r *impactRunner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *impactRunner) execute(cmd *cobra.Command, args []string) error {
	st := store.Store{Dir: args[0], Log: r.logFlags.Logger(cmd.ErrOrStderr())}
	rows, err := st.ReadImpact()
	if err != nil {
		return err
	}
	return r.render(report.Impact(rows), cmd.OutOrStdout())
}
