// Package gemini implements the generation interfaces using Google's
// Gemini API: text generation for story composition and embeddings for
// semantic-memory indexing.
package gemini
