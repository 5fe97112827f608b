// Package testutil provides utilities for testing vendorcp components.
//
// Key components:
//   - FaultyFs: afero wrapper that fails selected paths, for permission and
//     disk errors that an in-memory filesystem cannot produce on its own
//   - WriteTree / ReadTree: declarative setup and inspection of file trees
//
// Usage guidelines:
//   - Prefer in-memory filesystems (filesystem.NewMemory) for copier tests
//   - Use t.TempDir() only when the behavior under test is the OS filesystem
//   - Define test trees inline, not in external fixture files
package testutil
