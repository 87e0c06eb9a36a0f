// Package collab detects collaboration creators and links every member
// creator back to the collaborations it belongs to.
//
// Resolution is a single pass over direct membership. A creator that is a
// member of "A & B" gets "A & B" in its collaborations list; membership is not
// followed transitively, and collaboration creators never link to anything
// themselves. Names are compared after Unicode NFC normalization so folder
// names produced by filesystems that store decomposed characters still match.
package collab

import (
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"cr4te/internal/record"
	"cr4te/internal/textutil"
)

// Normalize returns the canonical comparison form of a creator name.
func Normalize(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// IsCollaboration reports whether name contains any of the separators.
func IsCollaboration(name string, separators []string) bool {
	return textutil.ContainsAny(name, separators)
}

// SplitMembers splits name on every separator and returns the trimmed,
// non-empty parts in order of appearance.
func SplitMembers(name string, separators []string) []string {
	return textutil.SplitMulti(name, separators)
}

// Resolve recomputes the collaborations list of every creator in place.
func Resolve(creators []record.Creator) {
	type collaboration struct {
		name    string
		members map[string]struct{}
	}
	var collabs []collaboration
	for _, c := range creators {
		if !c.IsCollaboration || len(c.Members) == 0 {
			continue
		}
		members := make(map[string]struct{}, len(c.Members))
		for _, m := range c.Members {
			members[Normalize(m)] = struct{}{}
		}
		collabs = append(collabs, collaboration{name: c.Name, members: members})
	}

	for i := range creators {
		c := &creators[i]
		if c.IsCollaboration {
			c.Collaborations = []string{}
			continue
		}
		self := Normalize(c.Name)
		linked := make([]string, 0, len(c.ManualCollaborations))
		seen := make(map[string]struct{})
		add := func(name string) {
			key := Normalize(name)
			if key == "" {
				return
			}
			if _, ok := seen[key]; ok {
				return
			}
			seen[key] = struct{}{}
			linked = append(linked, name)
		}
		for _, collab := range collabs {
			if _, ok := collab.members[self]; ok {
				add(collab.name)
			}
		}
		for _, manual := range c.ManualCollaborations {
			add(manual)
		}
		slices.Sort(linked)
		c.Collaborations = linked
	}
}
