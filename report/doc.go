// SPDX-License-Identifier: MIT

// Package report renders a pipeline.Result: a human-readable text report,
// a machine-readable YAML document and a PNG plot of the standardized
// centralities.
//
// All renderers read the result only. Phrases are always looked up through
// the result's selections, never by parsing labels.
package report
