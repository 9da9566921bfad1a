package slugify

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Hello World", "hello-world"},
		{"special chars", "Hello, World!", "hello-world"},
		{"underscores", "hello_world_again", "hello-world-again"},
		{"collapse runs", "too   many    spaces", "too-many-spaces"},
		{"edge dashes", "--trimmed--", "trimmed"},
		{"already slug", "already-a-slug", "already-a-slug"},
		{"mixed", "  Go 1.24: What's New?  ", "go-124-whats-new"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
