package mediagroup_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"testing"

	"cr4te/internal/images"
	"cr4te/internal/logging"
	"cr4te/internal/mediagroup"
	"cr4te/internal/mediatype"
	"cr4te/internal/record"
	"cr4te/internal/testsupport"
)

func defaultRules() mediagroup.Rules {
	return mediagroup.Rules{
		MaxDepth:      5,
		ExcludePrefix: "_",
		Classifier:    mediatype.NewClassifier("cover", "portrait", "README.md"),
		GalleryMax:    20,
		Strategy:      images.SampleSpread,
	}
}

func mustBuild(t *testing.T, b *mediagroup.Builder, root string, rules mediagroup.Rules) []record.MediaGroup {
	t.Helper()
	groups, err := b.Build(context.Background(), root, rules)
	if err != nil {
		t.Fatalf("Build(%s) returned error: %v", root, err)
	}
	return groups
}

func TestBuildGroupsByFolder(t *testing.T) {
	input := t.TempDir()
	testsupport.MakeTree(t, input,
		"Jane Doe/Album 1/track2.mp3",
		"Jane Doe/Album 1/track1.mp3",
		"Jane Doe/Album 1/cover.jpg",
		"Jane Doe/Album 1/README.md",
		"Jane Doe/Album 1/notes.md",
		"Jane Doe/Album 1/Disc 2/track1.m4a",
		"Jane Doe/Album 1/Disc 2/booklet.pdf",
		"Jane Doe/Album 1/Videos/live.mp4",
		"Jane Doe/Album 1/data.bin",
	)

	b := mediagroup.NewBuilder(input, logging.NewNop())
	groups := mustBuild(t, b, filepath.Join(input, "Jane Doe", "Album 1"), defaultRules())

	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d: %+v", len(groups), groups)
	}
	byPath := map[string]int{}
	for i, g := range groups {
		byPath[g.FolderPath] = i
	}

	root := groups[byPath["Jane Doe/Album 1"]]
	if !root.IsRoot {
		t.Fatal("expected album folder to be the root group")
	}
	if !slices.Equal(root.Tracks, []string{"Jane Doe/Album 1/track1.mp3", "Jane Doe/Album 1/track2.mp3"}) {
		t.Fatalf("unexpected tracks: %v", root.Tracks)
	}
	if len(root.Images) != 0 {
		t.Fatalf("cover should be reserved, got images %v", root.Images)
	}
	if !slices.Equal(root.Texts, []string{"Jane Doe/Album 1/notes.md"}) {
		t.Fatalf("README should be reserved, got texts %v", root.Texts)
	}

	disc := groups[byPath["Jane Doe/Album 1/Disc 2"]]
	if disc.IsRoot {
		t.Fatal("subfolder must not be marked root")
	}
	if !slices.Equal(disc.Documents, []string{"Jane Doe/Album 1/Disc 2/booklet.pdf"}) {
		t.Fatalf("unexpected documents: %v", disc.Documents)
	}
	if !slices.Equal(groups[byPath["Jane Doe/Album 1/Videos"]].Videos, []string{"Jane Doe/Album 1/Videos/live.mp4"}) {
		t.Fatalf("unexpected videos: %+v", groups[byPath["Jane Doe/Album 1/Videos"]])
	}
}

func TestBuildSkipsExcludedPaths(t *testing.T) {
	input := t.TempDir()
	testsupport.MakeTree(t, input,
		"Jane/Album/_draft.mp3",
		"Jane/Album/keep.mp3",
		"Jane/Album/_private/hidden.mp3",
		"Jane/Album/_private/deeper/also.mp3",
	)

	b := mediagroup.NewBuilder(input, logging.NewNop())
	groups := mustBuild(t, b, filepath.Join(input, "Jane", "Album"), defaultRules())
	if len(groups) != 1 {
		t.Fatalf("expected single group, got %+v", groups)
	}
	if !slices.Equal(groups[0].Tracks, []string{"Jane/Album/keep.mp3"}) {
		t.Fatalf("unexpected tracks: %v", groups[0].Tracks)
	}
}

func TestBuildHonoursMaxDepth(t *testing.T) {
	input := t.TempDir()
	testsupport.MakeTree(t, input,
		"C/P/a.mp3",
		"C/P/one/b.mp3",
		"C/P/one/two/c.mp3",
		"C/P/one/two/three/d.mp3",
	)
	root := filepath.Join(input, "C", "P")

	tests := []struct {
		depth int
		want  int
	}{
		{1, 1},
		{2, 2},
		{3, 3},
		{0, 4},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("depth=%d", tt.depth), func(t *testing.T) {
			rules := defaultRules()
			rules.MaxDepth = tt.depth
			groups := mustBuild(t, mediagroup.NewBuilder(input, logging.NewNop()), root, rules)
			total := 0
			for _, g := range groups {
				total += g.Len()
			}
			if total != tt.want {
				t.Fatalf("expected %d files, got %d (%+v)", tt.want, total, groups)
			}
		})
	}
}

func TestBuildSamplesImages(t *testing.T) {
	input := t.TempDir()
	var paths []string
	for i := 1; i <= 30; i++ {
		paths = append(paths, fmt.Sprintf("Jane Doe/Album 1/photo%d.jpg", i))
	}
	testsupport.MakeTree(t, input, paths...)

	rules := defaultRules()
	rules.GalleryMax = 10
	groups := mustBuild(t, mediagroup.NewBuilder(input, logging.NewNop()), filepath.Join(input, "Jane Doe", "Album 1"), rules)
	if len(groups) != 1 {
		t.Fatalf("expected one group, got %d", len(groups))
	}
	if len(groups[0].Images) != 10 {
		t.Fatalf("expected 10 images, got %d", len(groups[0].Images))
	}
	if !slices.IsSorted(groups[0].Images) {
		t.Fatalf("expected sorted images: %v", groups[0].Images)
	}
}

func TestBuildCountsClassifiedFiles(t *testing.T) {
	input := t.TempDir()
	testsupport.MakeTree(t, input, "C/P/a.mp3", "C/P/b.mp4", "C/P/c.jpg", "C/P/ignored.txt")

	counts := map[mediatype.MediaType]int{}
	b := mediagroup.NewBuilder(input, logging.NewNop())
	b.OnClassified = func(kind mediatype.MediaType) { counts[kind]++ }
	mustBuild(t, b, filepath.Join(input, "C", "P"), defaultRules())

	if counts[mediatype.Audio] != 1 || counts[mediatype.Video] != 1 || counts[mediatype.Image] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if counts[mediatype.None] != 0 {
		t.Fatalf("ignored files should not be counted: %v", counts)
	}
}

func TestBuildEmptyAndMissingRoots(t *testing.T) {
	input := t.TempDir()
	testsupport.MakeTree(t, input, "C/Empty/")

	b := mediagroup.NewBuilder(input, logging.NewNop())
	if groups := mustBuild(t, b, filepath.Join(input, "C", "Empty"), defaultRules()); len(groups) != 0 {
		t.Fatalf("expected no groups for empty folder, got %+v", groups)
	}
	groups := mustBuild(t, b, filepath.Join(input, "C", "missing"), defaultRules())
	if groups == nil || len(groups) != 0 {
		t.Fatalf("expected empty non-nil groups for missing folder, got %#v", groups)
	}
}

func TestBuildRootFolderKeyFallsBackToName(t *testing.T) {
	input := t.TempDir()
	testsupport.MakeTree(t, input, "loose.mp3")

	groups := mustBuild(t, mediagroup.NewBuilder(input, logging.NewNop()), input, defaultRules())
	if len(groups) != 1 {
		t.Fatalf("expected one group, got %+v", groups)
	}
	if groups[0].FolderPath != filepath.Base(input) {
		t.Fatalf("expected folder key %q, got %q", filepath.Base(input), groups[0].FolderPath)
	}
	if !groups[0].IsRoot {
		t.Fatal("expected root group")
	}
}

func TestBuildStopsWhenCanceled(t *testing.T) {
	input := t.TempDir()
	testsupport.MakeTree(t, input, "C/P/a.mp3", "C/P/b.mp3", "C/P/more/c.mp3")

	ctx, cancel := context.WithCancel(context.Background())
	b := mediagroup.NewBuilder(input, logging.NewNop())
	b.OnClassified = func(mediatype.MediaType) { cancel() }

	groups, err := b.Build(ctx, filepath.Join(input, "C", "P"), defaultRules())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if groups != nil {
		t.Fatalf("expected no partial groups, got %+v", groups)
	}
}

func TestBuildSkipsFoldersWithoutMedia(t *testing.T) {
	input := t.TempDir()
	testsupport.MakeTree(t, input, "C/P/cover.jpg", "C/P/README.md", "C/cr4te.json")

	b := mediagroup.NewBuilder(input, logging.NewNop())
	if groups := mustBuild(t, b, filepath.Join(input, "C", "P"), defaultRules()); len(groups) != 0 {
		t.Fatalf("cover and README alone should not form a group, got %+v", groups)
	}
	rules := defaultRules()
	rules.MaxDepth = 1
	if groups := mustBuild(t, b, filepath.Join(input, "C"), rules); len(groups) != 0 {
		t.Fatalf("record file should not form a group, got %+v", groups)
	}
}
