// Package domain holds the core types of the question-answering pipeline:
// documents, chunks, conversation turns, the session aggregate, and the
// sentinel errors shared across layers. It has no dependencies on adapters
// or external services.
package domain
