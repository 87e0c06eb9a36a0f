package collab

import (
	"slices"
	"testing"

	"cr4te/internal/record"
)

func creator(t *testing.T, name string, isCollab bool, members ...string) record.Creator {
	t.Helper()
	c, err := record.NewCreator(name)
	if err != nil {
		t.Fatalf("NewCreator(%q): %v", name, err)
	}
	c.IsCollaboration = isCollab
	if members != nil {
		c.Members = members
	}
	return c
}

func TestIsCollaboration(t *testing.T) {
	seps := []string{"&", ","}
	tests := []struct {
		name string
		want bool
	}{
		{"Jane Doe", false},
		{"Jane & John", true},
		{"A, B, C", true},
		{"Simon and Garfunkel", false},
	}
	for _, tt := range tests {
		if got := IsCollaboration(tt.name, seps); got != tt.want {
			t.Errorf("IsCollaboration(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	if IsCollaboration("A & B", nil) {
		t.Fatal("no separators should never detect a collaboration")
	}
}

func TestSplitMembers(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{"A & B", []string{"A", "B"}},
		{"A, B & C", []string{"A", "B", "C"}},
		{"A & & B", []string{"A", "B"}},
		{"Solo", []string{"Solo"}},
	}
	for _, tt := range tests {
		got := SplitMembers(tt.name, []string{"&", ","})
		if !slices.Equal(got, tt.want) {
			t.Errorf("SplitMembers(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestResolveSymmetry(t *testing.T) {
	creators := []record.Creator{
		creator(t, "A", false),
		creator(t, "A & B", true, "A", "B"),
		creator(t, "B", false),
		creator(t, "C", false),
	}
	Resolve(creators)

	if !slices.Equal(creators[0].Collaborations, []string{"A & B"}) {
		t.Fatalf("A collaborations = %v", creators[0].Collaborations)
	}
	if !slices.Equal(creators[2].Collaborations, []string{"A & B"}) {
		t.Fatalf("B collaborations = %v", creators[2].Collaborations)
	}
	if len(creators[1].Collaborations) != 0 || creators[1].Collaborations == nil {
		t.Fatalf("collaboration creator should have empty list, got %#v", creators[1].Collaborations)
	}
	if len(creators[3].Collaborations) != 0 {
		t.Fatalf("C collaborations = %v", creators[3].Collaborations)
	}
}

func TestResolveMergesManualAndSorts(t *testing.T) {
	a := creator(t, "A", false)
	a.ManualCollaborations = []string{"Zed Band", "B & A", "A & B"}
	creators := []record.Creator{
		a,
		creator(t, "B & A", true, "B", "A"),
		creator(t, "A & B", true, "A", "B"),
		creator(t, "A & C", true),
	}
	Resolve(creators)

	want := []string{"A & B", "B & A", "Zed Band"}
	if !slices.Equal(creators[0].Collaborations, want) {
		t.Fatalf("collaborations = %v, want %v", creators[0].Collaborations, want)
	}
}

func TestResolveIsNotTransitive(t *testing.T) {
	creators := []record.Creator{
		creator(t, "A", false),
		creator(t, "A & B", true, "A", "B"),
		creator(t, "A & B, C", true, "A & B", "C"),
	}
	Resolve(creators)
	if !slices.Equal(creators[0].Collaborations, []string{"A & B"}) {
		t.Fatalf("expected only direct membership, got %v", creators[0].Collaborations)
	}
}

func TestResolveNormalizesUnicode(t *testing.T) {
	decomposed := "Jose\u0301"
	composed := "Jos\u00e9"
	creators := []record.Creator{
		creator(t, decomposed, false),
		creator(t, composed+" & Ana", true, composed, "Ana"),
	}
	Resolve(creators)
	if !slices.Equal(creators[0].Collaborations, []string{composed + " & Ana"}) {
		t.Fatalf("expected NFC match, got %v", creators[0].Collaborations)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	creators := []record.Creator{
		creator(t, "A", false),
		creator(t, "A & B", true, "A", "B"),
	}
	Resolve(creators)
	first := slices.Clone(creators[0].Collaborations)
	Resolve(creators)
	if !slices.Equal(first, creators[0].Collaborations) {
		t.Fatalf("second pass changed result: %v vs %v", first, creators[0].Collaborations)
	}
}
