package utils_test

import (
	"testing"

	"wordcomplete/internal/utils"
)

func TestURIToPath(t *testing.T) {
	tests := []struct {
		uri      string
		expected string
	}{
		{"file:///home/user/notes.txt", "/home/user/notes.txt"},
		{"file:///home/user/my%20notes.txt", "/home/user/my notes.txt"},
		{"file:///tmp/caf%C3%A9.md", "/tmp/café.md"},
		{"untitled:Untitled-1", "untitled:Untitled-1"},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			if got := utils.URIToPath(tt.uri); got != tt.expected {
				t.Errorf("URIToPath() = %v, want %v", got, tt.expected)
			}
		})
	}
}
