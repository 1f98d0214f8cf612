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

// Package cmd is the main command file for Cobra
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sboehler/fundsim/cmd/commands"
	"github.com/sboehler/fundsim/cmd/flags"
)

// CreateCmd creates the root command.
func CreateCmd(version string) *cobra.Command {
	var logFlags flags.LogFlags
	c := &cobra.Command{
		Use:     "fundsim",
		Short:   "fundsim simulates fund accounts and analyzes expenses",
		Long:    `fundsim generates synthetic funds, share classes and customer accounts, values the accounts day by day and reports the expense impact of share class choices.`,
		Version: version,
	}
	logFlags.Setup(c)
	c.AddCommand(commands.CreateGenerateCommand(&logFlags))
	c.AddCommand(commands.CreateValuateCommand(&logFlags))
	c.AddCommand(commands.CreateImpactCommand(&logFlags))
	c.AddCommand(commands.CreateListCommand(&logFlags))
	c.AddCommand(commands.CreateConfigCommand())
	return c
}

// Execute runs the root command. This is called by main.main().
func Execute(version string) {
	rootCmd := CreateCmd(version)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}
