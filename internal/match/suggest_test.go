package match

import (
	"slices"
	"testing"
)

func TestSuggest(t *testing.T) {
	names := []string{"hello", "foo", "inner", "created_at"}

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"helo", "hello", true},
		{"inenr", "inner", true},
		{"createdAt", "created_at", true},
		{"fo", "foo", true},
		{"qqqqqq", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Suggest(tt.name, names)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Suggest(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSuggestEmpty(t *testing.T) {
	if got, ok := Suggest("x", nil); ok || got != "" {
		t.Errorf("Suggest with no candidates = %q, %v", got, ok)
	}
}

func TestRankOrder(t *testing.T) {
	ranked := Rank("abc", []string{"xyz", "abd", "abc", "abe"})

	var names []string
	for _, c := range ranked {
		names = append(names, c.Name)
	}

	want := []string{"abc", "abd", "abe", "xyz"}
	if !slices.Equal(names, want) {
		t.Errorf("Rank order = %q, want %q", names, want)
	}

	if ranked[0].Score != 1 {
		t.Errorf("exact match score = %v, want 1", ranked[0].Score)
	}
}

func TestTop(t *testing.T) {
	got := Top("colour", []string{"color", "colors", "flavour", "x"}, 2)
	want := []string{"color", "colors"}

	if !slices.Equal(got, want) {
		t.Errorf("Top = %q, want %q", got, want)
	}
}
