// Package glob resolves a copy task's source pattern to the concrete files
// it selects.
//
// Patterns use doublestar syntax (`*`, `**`, `?`, `[...]`, `{a,b}`) with
// forward slashes. A pattern is split into a base (the leading elements
// without wildcards) and the glob proper; matched files are reported with
// their path relative to that base, which is the path they keep under the
// task's destination.
//
// Exclude patterns are matched against the relative path; a pattern
// without a slash also matches the file name at any depth, so "*.map"
// drops source maps everywhere below the base.
//
// Wildcards do not match dotfiles unless the task sets Dot. A pattern
// segment that starts with a dot names dotfiles explicitly and still
// matches. Matched directories are reported too, so empty ones can be
// recreated.
package glob
