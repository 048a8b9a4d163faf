// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ManifestStore: Workspace manifest persistence (TOML file)
//   - RunStore: Toolchain run history persistence
//   - ToolRunner: External toolchain binary invocation
//   - WorkspaceWatcher: File change notification for watch mode and live reload
//   - EnvSource: Dotenv file loading
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TemplateRegistry: Remote starter template discovery and download.
//     Without it, only the embedded presets are available.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
