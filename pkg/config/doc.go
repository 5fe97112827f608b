// Package config loads the vendoring pipeline definition.
//
// Configuration is layered with koanf, lowest precedence first: the
// embedded defaults (the stock stylesheet pipeline), a project file
// (vendorcp.toml, .vendorcp.toml, vendorcp.yaml or vendorcp.yml) and
// overrides from command-line flags. A project file that defines tasks
// replaces the default task list rather than extending it.
package config
