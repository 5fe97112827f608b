// Package report presents pipeline runs to the user.
//
// A run summary or a task listing can be rendered as styled terminal
// output, plain text, JSON or YAML. Terminal and text output share the
// same templates; in plain text every style is a no-op. Progress is
// reported separately on stderr while tasks run.
package report
