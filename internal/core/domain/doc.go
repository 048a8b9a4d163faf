// Package domain defines the core business entities for webrig.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Project: A front-end workspace described by its manifest
//   - BundleConfig: Module bundler settings (entries, output, loader rules)
//   - TranspileConfig: Syntax transpiler presets
//   - LintConfig: Static analysis environment and rule severities
//   - FormatConfig: Code formatter style options
//   - ServeConfig: Local development server settings
//   - RunRecord: One recorded invocation of an external tool
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
