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

package flags

import (
	"io"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sboehler/fundsim/lib/common/date"
	"github.com/sboehler/fundsim/lib/common/logging"
	"github.com/sboehler/fundsim/lib/common/regex"
)

// DateFlag manages a flag to determine a date.
type DateFlag time.Time

var _ pflag.Value = (*DateFlag)(nil)

func (tf DateFlag) String() string {
	if tf.Value().IsZero() {
		return ""
	}
	return date.Format(tf.Value())
}

// Set implements pflag.Value.
func (tf *DateFlag) Set(v string) error {
	t, err := date.Parse(v)
	if err != nil {
		return err
	}
	*tf = (DateFlag)(t)
	return nil
}

// Type implements pflag.Value.
func (tf DateFlag) Type() string {
	return "YYYY-MM-DD"
}

// Value returns the flag value.
func (tf DateFlag) Value() time.Time {
	return time.Time(tf)
}

// ValueOr returns the flag value, or t if the flag is not set.
func (tf DateFlag) ValueOr(t time.Time) time.Time {
	v := tf.Value()
	if v.IsZero() {
		return t
	}
	return v
}

// RegexFlag manages a repeatable flag to get a list of regexes.
type RegexFlag struct {
	rxs regex.Regexes
}

var _ pflag.Value = (*RegexFlag)(nil)

func (rf RegexFlag) String() string {
	return rf.rxs.String()
}

// Set implements pflag.Value.
func (rf *RegexFlag) Set(v string) error {
	t, err := regexp.Compile(v)
	if err != nil {
		return err
	}
	rf.rxs.Add(t)
	return nil
}

// Type implements pflag.Value.
func (rf RegexFlag) Type() string {
	return "<regex>"
}

// Value returns the regexes.
func (rf RegexFlag) Value() regex.Regexes {
	return rf.rxs
}

// PeriodFlag manages the --from and --to flags.
type PeriodFlag struct {
	from, to DateFlag
}

// Setup configures the flags.
func (pf *PeriodFlag) Setup(cmd *cobra.Command) {
	cmd.Flags().Var(&pf.from, "from", "from date")
	cmd.Flags().Var(&pf.to, "to", "to date")
}

// Value returns the period. Bounds which have not been set are taken
// from def.
func (pf PeriodFlag) Value(def date.Period) date.Period {
	return date.Period{
		Start: pf.from.ValueOr(def.Start),
		End:   pf.to.ValueOr(def.End),
	}
}

// LogFlags manages the persistent logging flags.
type LogFlags struct {
	debug, json bool
}

// Setup configures the flags on the root command.
func (lf *LogFlags) Setup(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&lf.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&lf.json, "log-json", false, "log JSON lines instead of text")
}

// Logger creates a logger writing to w.
func (lf *LogFlags) Logger(w io.Writer) zerolog.Logger {
	level := "info"
	if lf.debug {
		level = "debug"
	}
	if lf.json {
		return logging.NewJSON(level, w)
	}
	return logging.New(level, w)
}
