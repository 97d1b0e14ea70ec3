package output

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestColorizeMasked(t *testing.T) {
	got := ColorizeMasked("*")
	if got != colorYellow+"*"+colorReset {
		t.Errorf("ColorizeMasked() = %q", got)
	}
}

func TestColorizeProblem_PreservesContent(t *testing.T) {
	lines := []string{
		"counts.csv: row 3: exactly one masked cell",
		`counts.csv: column "female": exactly one masked cell`,
		"line with unicode: 你好世界",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			colored := ColorizeProblem(line)
			if !strings.HasPrefix(colored, colorBold+colorRed) {
				t.Errorf("expected bold red prefix, got %q", colored)
			}
			cleaned := strings.TrimSuffix(strings.TrimPrefix(colored, colorBold+colorRed), colorReset)
			if cleaned != line {
				t.Errorf("content was modified: expected %q, got %q", line, cleaned)
			}
		})
	}
}

func TestShouldColorize(t *testing.T) {
	tests := []struct {
		name     string
		mode     ColorMode
		writer   interface{}
		expected bool
	}{
		{
			name:     "ColorAlways - any writer",
			mode:     ColorAlways,
			writer:   &bytes.Buffer{},
			expected: true,
		},
		{
			name:     "ColorNever - any writer",
			mode:     ColorNever,
			writer:   os.Stdout,
			expected: false,
		},
		{
			name:     "ColorAuto - non-file writer",
			mode:     ColorAuto,
			writer:   &bytes.Buffer{},
			expected: false,
		},
		{
			name:     "ColorAuto - file writer (stdout)",
			mode:     ColorAuto,
			writer:   os.Stdout,
			expected: isTerminal(os.Stdout), // Depends on test environment
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shouldColorize(tt.mode, tt.writer)
			if result != tt.expected {
				t.Errorf("shouldColorize() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestANSIColorCodes(t *testing.T) {
	codes := []struct {
		name  string
		value string
	}{
		{"reset", colorReset},
		{"red", colorRed},
		{"yellow", colorYellow},
		{"bold", colorBold},
	}

	for _, code := range codes {
		t.Run(code.name, func(t *testing.T) {
			if !strings.HasPrefix(code.value, "\033[") {
				t.Errorf("Color code %q should start with ANSI escape sequence", code.name)
			}
			if !strings.HasSuffix(code.value, "m") {
				t.Errorf("Color code %q should end with 'm'", code.name)
			}
		})
	}
}
