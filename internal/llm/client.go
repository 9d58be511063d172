// Package llm provides vision-capable chat clients used to read class
// schedules out of screenshots.
package llm

import (
	"context"
	"encoding/base64"
)

// Image is an inline image attached to a message.
type Image struct {
	MIMEType string
	Data     []byte
}

// DataURI returns the image encoded as a data: URI.
func (i Image) DataURI() string {
	return "data:" + i.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// Message represents a chat message.
type Message struct {
	Role    string  `json:"role"`
	Content string  `json:"content"`
	Images  []Image `json:"-"`
}

// Client defines the interface for LLM providers.
type Client interface {
	// Chat sends messages to the LLM and returns the response.
	Chat(ctx context.Context, messages []Message) (string, error)

	// ChatJSON sends messages and parses the response as JSON into the provided type.
	ChatJSON(ctx context.Context, messages []Message, result any) error
}
