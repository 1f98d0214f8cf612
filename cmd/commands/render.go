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
	"io"

	"github.com/spf13/cobra"

	"github.com/sboehler/fundsim/lib/common/table"
)

// renderFlags selects how result tables are printed.
type renderFlags struct {
	csv, color, thousands bool
	digits                int32
}

func (rf *renderFlags) setup(c *cobra.Command, digits int32) {
	c.Flags().BoolVar(&rf.csv, "csv", false, "render as CSV")
	c.Flags().BoolVar(&rf.color, "color", false, "print output in color")
	c.Flags().BoolVarP(&rf.thousands, "thousands", "k", false, "show numbers in thousands")
	c.Flags().Int32VarP(&rf.digits, "digits", "d", digits, "round to number of digits")
}

func (rf *renderFlags) render(t *table.Table, w io.Writer) error {
	if rf.csv {
		var rn table.CSVRenderer
		return rn.Render(t, w)
	}
	rn := table.TextRenderer{
		Color:     rf.color,
		Thousands: rf.thousands,
		Round:     rf.digits,
	}
	return rn.Render(t, w)
}
