// Package types defines the data model shared by the copier, the
// configuration loader and the reporters: copy tasks, the pipeline that
// orders them, their status state machines and the run summary.
package types
