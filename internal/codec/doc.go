// Package codec converts goals and tasks to and from their on-disk text form.
//
// The current format is a YAML frontmatter block delimited by "---" lines,
// a blank line, and the description as a markdown body. Decoding also accepts
// two historical shapes, tried in a fixed order:
//
//  1. FormatCurrent: frontmatter + body.
//  2. FormatLegacyText: markdown with "# Title" and "**Key:** value" lines
//     followed by a "## Description" section (tasks only).
//  3. FormatLegacyRecord: the whole-record goal.json file (goals only).
//
// Absent keys map to type defaults through an explicit table rather than
// truthiness, so a stored difficulty of 0 survives a round trip. Markdown
// decoding never fails: unusable metadata degrades to body text. Encoding
// always produces FormatCurrent and omits empty optional keys.
package codec
