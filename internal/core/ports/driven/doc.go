// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): page extraction, embedding, generation,
// and the vector index.
package driven
