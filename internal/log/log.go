// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package log is the structured logging wrapper used throughout the
// engine: one line per skipped ingestion row, per rule round, per
// loaded table. It is a thin shim over log/slog rather than a bespoke
// logger, matching the plain-stdlib-logging idiom the rest of this
// codebase's ancestry uses in its command-line tools.
package log

import (
	"fmt"
	"log/slog"
	"os"
)

var def = slog.New(slog.NewTextHandler(os.Stderr, nil))

// SetDefault replaces the package-level logger, e.g. to switch to a
// JSON handler or a different level in cmd/dltrie.
func SetDefault(l *slog.Logger) { def = l }

// IngestRowSkipped logs a single malformed input row being dropped
// during ingestion, identifying the source and the reason.
func IngestRowSkipped(source string, line int, reason error) {
	def.Warn("skipped ingestion row", "source", source, "line", line, "reason", reason)
}

// RuleFired logs one round of rule evaluation.
func RuleFired(name string, newRows int) {
	def.Info("rule fired", "rule", name, "new_rows", newRows)
}

// PlanRun logs the start of one uuid-tagged execution plan run, for
// correlating the RuleFired line it precedes with the rest of a
// request's log output.
func PlanRun(name, runID string) {
	def.Debug("running plan", "rule", name, "run_id", runID)
}

// TableLoaded logs a relation reaching a fixpoint and being retired
// from the active rule-selection strategy.
func TableLoaded(name string, rows int) {
	def.Info("table reached fixpoint", "table", name, "rows", rows)
}

// Errorf logs a formatted error-level message.
func Errorf(format string, args ...any) {
	def.Error(fmt.Sprintf(format, args...))
}
