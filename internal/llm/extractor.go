package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrNoClasses is returned when the model answer holds no class list.
var ErrNoClasses = errors.New("no class list in model response")

const extractPrompt = `Extract all classes from this school schedule image.
Return a JSON array of objects with these keys:
- "subject": Full name of the course
- "day": Full name of the day (Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday)
- "time": Full time range (e.g., "08:00AM-11:00AM")
- "room": Room code or "TBA"

Output ONLY raw JSON.`

// ExtractedClass is one class read from a schedule image.
type ExtractedClass struct {
	Subject string `json:"subject"`
	Day     string `json:"day"`
	Time    string `json:"time"`
	Room    string `json:"room"`
}

// Extractor reads class lists out of schedule images.
type Extractor struct {
	client Client
}

// NewExtractor creates an extractor backed by client.
func NewExtractor(client Client) *Extractor {
	return &Extractor{client: client}
}

// BuildMessages returns the prompt sent along with img.
func (e *Extractor) BuildMessages(img Image) []Message {
	return []Message{{
		Role:    "user",
		Content: extractPrompt,
		Images:  []Image{img},
	}}
}

// Extract asks the model for the classes shown in img.
func (e *Extractor) Extract(ctx context.Context, img Image) ([]ExtractedClass, error) {
	var raw json.RawMessage
	if err := e.client.ChatJSON(ctx, e.BuildMessages(img), &raw); err != nil {
		return nil, err
	}
	return ParseClasses(raw)
}

// ParseClasses accepts either a bare array of classes or an object whose
// first array-valued field holds them, e.g. {"classes": [...]}.
func ParseClasses(data []byte) ([]ExtractedClass, error) {
	root := gjson.ParseBytes(data)

	list := root
	if root.IsObject() {
		list = gjson.Result{}
		root.ForEach(func(_, v gjson.Result) bool {
			if v.IsArray() {
				list = v
				return false
			}
			return true
		})
	}
	if !list.IsArray() {
		return nil, ErrNoClasses
	}

	var classes []ExtractedClass
	if err := json.Unmarshal([]byte(list.Raw), &classes); err != nil {
		return nil, fmt.Errorf("decoding classes: %w", err)
	}
	return classes, nil
}
