// Package driving provides interfaces for presentation adapters
// (primary/inbound ports). These are the only operations the CLI, TUI,
// and MCP layers are expected to call.
package driving
