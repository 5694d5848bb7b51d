// Package generation provides interfaces for interacting with external
// AI/LLM services. It abstracts the details of LLM API integration
// (Gemini), allowing the story composer and the memory indexer to
// generate text and embeddings without coupling to a specific provider.
package generation
