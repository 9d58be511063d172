// Package input parses the TUI command prompt.
package input

import "strings"

// PromptCommand describes a command suggestion entry.
type PromptCommand struct {
	Name        string
	Args        string // usage hint, e.g. "<path>"
	Description string
}

// Usage returns the command name followed by its argument hint.
func (c PromptCommand) Usage() string {
	if c.Args == "" {
		return c.Name
	}
	return c.Name + " " + c.Args
}

// PromptMatchingCommands returns commands that match the current input prefix.
// Suggestions stop once the user starts typing arguments.
func PromptMatchingCommands(input string, commands []PromptCommand) []PromptCommand {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "/") || strings.Contains(input, " ") {
		return nil
	}

	prefix := strings.ToLower(trimmed)
	matches := make([]PromptCommand, 0, len(commands))
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd.Name), prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// PromptAutocomplete returns the first matching command and whether it exists.
func PromptAutocomplete(input string, commands []PromptCommand) (string, bool) {
	matches := PromptMatchingCommands(input, commands)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Name + " ", true
}

// ParsePrompt splits a prompt line into a lower-cased command name and its
// arguments. Input without a leading slash yields an empty name.
func ParsePrompt(input string) (string, []string) {
	fields := strings.Fields(input)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", fields
	}
	return strings.ToLower(fields[0]), fields[1:]
}
