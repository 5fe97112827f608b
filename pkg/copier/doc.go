// Package copier runs a vendoring pipeline: an ordered list of copy tasks,
// each copying the files matched by a glob under the dependency root into a
// directory under the vendor root.
//
// Tasks run strictly in order and files within a task are copied one at a
// time, in lexical order of their relative path. Copying is additive: files
// are created or overwritten, never deleted, and a failure does not roll
// back what was already written. With StopOnFirstError the tasks after a
// failed one stay pending; with ContinueOnError every task runs and the
// failures are joined into the returned error.
package copier
