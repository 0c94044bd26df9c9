// Package preflight verifies that a join run can start.
//
// The join command calls RunAll before pairing fragments. A failed check
// stops the run before any external tool is launched. The deps command uses
// CheckSystemDeps to render the tool table.
package preflight
