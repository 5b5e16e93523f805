// Package preflight provides readiness checks for the paths and files goalie
// depends on.
//
// The CLI "goalie doctor" command runs RunAll and prints one line per check.
// Checks never fail hard; each reports a Result describing what it found.
// Checks for a breakdown strategy are only run when that strategy is
// configured.
package preflight
