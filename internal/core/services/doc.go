// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go; everything that touches the network, the
// database or child processes sits behind a driven port.
package services
