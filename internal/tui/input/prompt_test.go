package input

import (
	"reflect"
	"testing"
)

var testCommands = []PromptCommand{
	{Name: "/scan", Args: "<path>", Description: "Scan"},
	{Name: "/save", Description: "Save"},
	{Name: "/theme", Args: "[name]", Description: "Theme"},
}

func TestPromptMatchingCommands(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "no_slash", input: "scan", want: 0},
		{name: "empty", input: "", want: 0},
		{name: "full", input: "/scan", want: 1},
		{name: "shared_prefix", input: "/s", want: 2},
		{name: "case_insensitive", input: "/TH", want: 1},
		{name: "with_space", input: "/scan x", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PromptMatchingCommands(tt.input, testCommands)
			if len(got) != tt.want {
				t.Fatalf("matches = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestPromptAutocomplete(t *testing.T) {
	got, ok := PromptAutocomplete("/th", testCommands)
	if !ok || got != "/theme " {
		t.Fatalf("PromptAutocomplete = %q, %v", got, ok)
	}
	if _, ok := PromptAutocomplete("/zzz", testCommands); ok {
		t.Fatal("expected no completion")
	}
}

func TestParsePrompt(t *testing.T) {
	tests := []struct {
		input    string
		wantName string
		wantArgs []string
	}{
		{"/Scan ~/pics/sched.png", "/scan", []string{"~/pics/sched.png"}},
		{"  /clear  ", "/clear", []string{}},
		{"hello there", "", []string{"hello", "there"}},
		{"", "", nil},
	}
	for _, tt := range tests {
		name, args := ParsePrompt(tt.input)
		if name != tt.wantName {
			t.Errorf("ParsePrompt(%q) name = %q, want %q", tt.input, name, tt.wantName)
		}
		if len(args) != len(tt.wantArgs) || (len(args) > 0 && !reflect.DeepEqual(args, tt.wantArgs)) {
			t.Errorf("ParsePrompt(%q) args = %v, want %v", tt.input, args, tt.wantArgs)
		}
	}
}

func TestUsage(t *testing.T) {
	if got := testCommands[0].Usage(); got != "/scan <path>" {
		t.Errorf("Usage = %q", got)
	}
	if got := testCommands[1].Usage(); got != "/save" {
		t.Errorf("Usage = %q", got)
	}
}
