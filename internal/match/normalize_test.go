package match

import (
	"slices"
	"testing"
)

func TestWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"name", []string{"name"}},
		{"OrderID", []string{"order", "id"}},
		{"customerName", []string{"customer", "name"}},
		{"XMLParser", []string{"xml", "parser"}},
		{"HTTPServerID", []string{"http", "server", "id"}},
		{"created_at", []string{"created", "at"}},
		{"Created-At", []string{"created", "at"}},
		{"__x__", []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Words(tt.in); !slices.Equal(got, tt.want) {
				t.Errorf("Words(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	for _, in := range []string{"created_at", "createdAt", "CreatedAt", "Created-At", "created at"} {
		if got := Normalize(in); got != "createdat" {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, "createdat")
		}
	}
}
