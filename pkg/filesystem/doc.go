// Package filesystem provides the rooted filesystems the copier reads from
// and writes to.
//
// Both the dependency root and the vendor root are exposed as afero.Fs
// values whose paths are relative to the root, so the copier never handles
// absolute paths and tests can swap in an in-memory filesystem.
package filesystem
