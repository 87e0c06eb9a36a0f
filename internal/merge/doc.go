// Package merge combines freshly discovered creator records with the JSON
// written by the previous run so hand-edited fields survive a rebuild.
//
// Structural fields (media lists, cover, portrait, names, collaborations) are
// always taken from the fresh record. Curatable fields (tags, dates,
// nationality, aliases, info without a README, member and collaboration
// overrides, enable flags, featured picks) come from the prior record when
// present. Projects are matched by title only; a renamed project folder starts
// over with defaults and a warning naming the closest new title.
package merge
