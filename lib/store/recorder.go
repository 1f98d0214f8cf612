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

package store

import (
	"github.com/sboehler/fundsim/lib/accountant"
	"github.com/sboehler/fundsim/lib/impact"
)

// Recorder persists the results of a run outside the data directory.
type Recorder interface {
	RecordValuations(rows []accountant.Row) error
	RecordImpact(rows []impact.Row) error
	Close() error
}

// NoopRecorder is used when no recorder is configured.
type NoopRecorder struct{}

var _ Recorder = NoopRecorder{}

func (NoopRecorder) RecordValuations([]accountant.Row) error { return nil }
func (NoopRecorder) RecordImpact([]impact.Row) error         { return nil }
func (NoopRecorder) Close() error                            { return nil }
