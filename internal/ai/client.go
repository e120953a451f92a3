// Package ai wraps the remote generative-AI provider behind a small client
// interface so handlers can be tested against a fake.
package ai

import "context"

// CompletionRequest is a single chat-completion call. ImageURLs may be
// plain URLs or data URLs.
type CompletionRequest struct {
	Model       string
	Temperature float64
	System      string
	Text        string
	ImageURLs   []string
}

// Client is the remote AI provider surface used by the orchestrator.
type Client interface {
	// Complete runs a chat completion and returns the assistant text.
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// Caption describes an uploaded image given its raw bytes and mime type.
	Caption(ctx context.Context, mimeType string, data []byte) (string, error)

	// Transcribe turns the audio file at path into text.
	Transcribe(ctx context.Context, path string) (string, error)

	// GenerateImage renders the prompt and returns base64-encoded image data.
	GenerateImage(ctx context.Context, prompt string) (string, error)

	// Speak synthesizes speech for text in the given voice, returning mp3 bytes.
	Speak(ctx context.Context, text, voice string) ([]byte, error)
}
