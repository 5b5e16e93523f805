// Package main hosts the goalie CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into calls on
// the lifecycle manager and recommendation engine, plus configuration
// scaffolding and readiness checks. It centralizes configuration resolution,
// logger setup, and the workspace lock so subcommands can focus on output.
//
// Keep this package lean: add behaviour to the internal packages first, then
// surface it through a command or flag here.
package main
