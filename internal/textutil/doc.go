// Package textutil provides small text helpers shared by the goal store and
// the CLI.
//
// The primary use cases are:
//   - Deriving URL- and filesystem-safe slugs from goal names
//   - Rendering enum tokens as human-readable labels
//   - Truncating long titles for table output
//
// Case mapping goes through golang.org/x/text so non-ASCII names lowercase the
// same way regardless of the host locale.
package textutil
