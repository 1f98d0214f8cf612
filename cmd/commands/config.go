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
	"gopkg.in/yaml.v2"

	"github.com/sboehler/fundsim/lib/sim"
)

// CreateConfigCommand creates the command.
func CreateConfigCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Manage simulation configs",
	}
	c.AddCommand(&cobra.Command{
		Use:   "init <path>",
		Short: "Write the default simulation config",
		Args:  cobra.ExactArgs(1),
		Run:   runWith(initConfig),
	})
	c.AddCommand(&cobra.Command{
		Use:   "show <path>",
		Short: "Validate a simulation config and print it with defaults applied",
		Args:  cobra.ExactArgs(1),
		Run:   runWith(showConfig),
	})
	return c
}

func runWith(f func(*cobra.Command, []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := f(cmd, args); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			os.Exit(1)
		}
	}
}

func initConfig(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(args[0]); err == nil {
		return fmt.Errorf("%s already exists", args[0])
	}
	return sim.SaveConfig(args[0], sim.DefaultConfig())
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := sim.LoadConfig(args[0])
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(b)
	return err
}
