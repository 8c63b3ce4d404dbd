// Package manifest parses the line-oriented URL manifest into download tasks.
//
// The manifest format is one task per line:
//
//	<name> <url>
//
// where <name> is the output filename stem (no spaces) and <url> is the
// stream URL, separated by a single space. Blank lines and lines starting
// with '#' are ignored. Malformed lines are skipped, not fatal; their line
// numbers are returned so front-ends can warn about them.
package manifest
