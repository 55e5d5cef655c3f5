package tabular

import (
	"reflect"
	"testing"
)

func TestHeaderOnly(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"empty", "", true},
		{"header", "a,b\n", true},
		{"header with blank lines", "a,b\n\n  \n", true},
		{"one row", "a,b\n1,2\n", false},
		{"no trailing newline", "a,b\n1,2", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HeaderOnly([]byte(tt.in)); got != tt.want {
				t.Errorf("HeaderOnly(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHeader(t *testing.T) {
	if got := Header([]byte(" word\tsentiment \nhyvä\t2\n"), '\t'); !reflect.DeepEqual(got, []string{"word", "sentiment"}) {
		t.Errorf("unexpected header %q", got)
	}
	if got := Header(nil, ','); got != nil {
		t.Errorf("expected nil header for empty input, got %q", got)
	}
}
