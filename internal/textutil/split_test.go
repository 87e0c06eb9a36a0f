package textutil

import (
	"slices"
	"testing"
)

func TestSplitMulti(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		separators []string
		want       []string
	}{
		{"single separator", "A & B", []string{"&"}, []string{"A", "B"}},
		{"multiple separators", "A, B & C", []string{"&", ","}, []string{"A", "B", "C"}},
		{"empty parts dropped", " & A &  & B & ", []string{"&"}, []string{"A", "B"}},
		{"multi-rune separator", "A feat. B", []string{"feat."}, []string{"A", "B"}},
		{"no separators", "  Solo  ", nil, []string{"Solo"}},
		{"empty separator ignored", "A&B", []string{""}, []string{"A&B"}},
		{"empty text", "", []string{"&"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitMulti(tt.text, tt.separators)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("SplitMulti(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestContainsAny(t *testing.T) {
	if !ContainsAny("A & B", []string{",", "&"}) {
		t.Fatal("expected match")
	}
	if ContainsAny("A and B", []string{",", "&"}) {
		t.Fatal("expected no match")
	}
	if ContainsAny("anything", []string{""}) {
		t.Fatal("empty separator must never match")
	}
}
