// Package services implements the core pipeline behind the driving
// ports: document ingestion (size check, extraction, chunking, batched
// embedding, atomic indexing), top-k retrieval, and the conversation
// orchestrator that turns retrieved chunks into grounded answers.
package services
