// Package pipeline turns an input tree of creator folders into one validated
// cr4te.json record per creator.
//
// A build runs in four phases:
//
//  1. Scan: every creator folder is walked, its projects and media groups are
//     assembled, and portrait and cover images are selected.
//  2. Merge: curated fields from the previous cr4te.json are carried over.
//  3. Resolve: collaboration links are recomputed across all creators.
//  4. Write: every record is validated first, then written atomically. A
//     single validation failure aborts the run before any file is touched.
//
// Builds hold an advisory lock on <input>/.cr4te.lock so two invocations
// against the same tree fail fast instead of interleaving writes.
package pipeline
