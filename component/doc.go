// Package component defines the lifecycle interfaces implemented by bound
// clients, and Lazy, the one-time initialization cell holding their
// transport.
//
// # Interfaces
//
//   - Component: Start/Stop/Health lifecycle
//   - Describable: one-line self description for startup summaries
package component
