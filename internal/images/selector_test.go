package images_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"cr4te/internal/images"
	"cr4te/internal/logging"
	"cr4te/internal/testsupport"
)

func TestSelectExactBasenameWins(t *testing.T) {
	root := t.TempDir()
	sel := images.NewSelector(root, logging.NewNop())
	sel.Probe = func(string) (images.Dimensions, error) {
		t.Fatal("probe should not run when a basename matches")
		return images.Dimensions{}, nil
	}

	candidates := []string{"Jane/Album/a.jpg", "Jane/Album/Cover.PNG", "Jane/Album/z.jpg"}
	got := sel.Select(context.Background(), candidates, "cover", images.Landscape, true)
	if got != "Jane/Album/Cover.PNG" {
		t.Fatalf("Select = %q", got)
	}
}

func TestSelectOrientationFallback(t *testing.T) {
	root := t.TempDir()
	testsupport.WritePNG(t, filepath.Join(root, "Jane", "b_square.png"), 20, 20)
	testsupport.WritePNG(t, filepath.Join(root, "Jane", "c_tall.png"), 10, 30)
	testsupport.WritePNG(t, filepath.Join(root, "Jane", "d_wide.png"), 30, 10)
	testsupport.WriteFile(t, filepath.Join(root, "Jane", "a_broken.jpg"), 32)

	sel := images.NewSelector(root, logging.NewNop())
	candidates := []string{"Jane/d_wide.png", "Jane/c_tall.png", "Jane/b_square.png", "Jane/a_broken.jpg"}

	if got := sel.Select(context.Background(), candidates, "portrait", images.Portrait, true); got != "Jane/c_tall.png" {
		t.Fatalf("portrait fallback = %q", got)
	}
	if got := sel.Select(context.Background(), candidates, "cover", images.Landscape, true); got != "Jane/d_wide.png" {
		t.Fatalf("landscape fallback = %q", got)
	}
}

func TestSelectScansByBaseName(t *testing.T) {
	sel := images.NewSelector(t.TempDir(), logging.NewNop())
	var probed []string
	sel.Probe = func(path string) (images.Dimensions, error) {
		probed = append(probed, filepath.Base(path))
		return images.Dimensions{Width: 10, Height: 20}, nil
	}

	candidates := []string{"Jane/a/zeta.jpg", "Jane/z/alpha.jpg"}
	got := sel.Select(context.Background(), candidates, "portrait", images.Portrait, true)
	if got != "Jane/z/alpha.jpg" {
		t.Fatalf("expected alpha.jpg first in base-name order, got %q", got)
	}
	if len(probed) != 1 || probed[0] != "alpha.jpg" {
		t.Fatalf("unexpected probe order: %v", probed)
	}
}

func TestSelectFirstCandidateWhenNothingMatches(t *testing.T) {
	sel := images.NewSelector(t.TempDir(), logging.NewNop())
	var warnings []string
	ctx := logging.WithWarnObserver(context.Background(), func(eventType string) {
		warnings = append(warnings, eventType)
	})
	sel.Probe = func(path string) (images.Dimensions, error) {
		if filepath.Base(path) == "b.jpg" {
			return images.Dimensions{}, errors.New("truncated")
		}
		return images.Dimensions{Width: 10, Height: 10}, nil
	}

	candidates := []string{"x/c.jpg", "x/b.jpg", "x/a.jpg"}
	got := sel.Select(ctx, candidates, "cover", images.Landscape, true)
	if got != "x/c.jpg" {
		t.Fatalf("expected first original candidate, got %q", got)
	}
	if len(warnings) != 1 || warnings[0] != "image_probe_failed" {
		t.Fatalf("expected one probe warning, got %v", warnings)
	}
}

func TestSelectWithoutFallbackRequiresExactName(t *testing.T) {
	sel := images.NewSelector(t.TempDir(), logging.NewNop())
	sel.Probe = func(string) (images.Dimensions, error) {
		t.Fatal("probe should not run without fallback")
		return images.Dimensions{}, nil
	}
	if got := sel.Select(context.Background(), []string{"x/tall.jpg"}, "portrait", images.Portrait, false); got != "" {
		t.Fatalf("expected no selection, got %q", got)
	}
	if got := sel.Select(context.Background(), []string{"x/portrait.jpg"}, "portrait", images.Portrait, false); got != "x/portrait.jpg" {
		t.Fatalf("expected exact match, got %q", got)
	}
}

func TestSelectEmptyCandidates(t *testing.T) {
	sel := images.NewSelector(t.TempDir(), logging.NewNop())
	if got := sel.Select(context.Background(), nil, "cover", images.Landscape, true); got != "" {
		t.Fatalf("expected empty selection, got %q", got)
	}
}

func TestProbeHonoursExifRotation(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain.jpg")
	rotated := filepath.Join(dir, "rotated.jpg")
	testsupport.WriteJPEG(t, plain, 40, 20, 0)
	testsupport.WriteJPEG(t, rotated, 40, 20, 6)

	dims, err := images.Probe(plain)
	if err != nil {
		t.Fatalf("Probe(plain) returned error: %v", err)
	}
	if dims.Width != 40 || dims.Height != 20 {
		t.Fatalf("unexpected plain dimensions: %+v", dims)
	}

	dims, err = images.Probe(rotated)
	if err != nil {
		t.Fatalf("Probe(rotated) returned error: %v", err)
	}
	if dims.Width != 20 || dims.Height != 40 {
		t.Fatalf("expected swapped dimensions for orientation 6, got %+v", dims)
	}
}

func TestProbeMissingFile(t *testing.T) {
	if _, err := images.Probe(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOrientationMatches(t *testing.T) {
	square := images.Dimensions{Width: 5, Height: 5}
	if images.Portrait.Matches(square) || images.Landscape.Matches(square) {
		t.Fatal("square images should match no orientation")
	}
	if !images.Portrait.Matches(images.Dimensions{Width: 1, Height: 2}) {
		t.Fatal("expected portrait match")
	}
	if !images.Landscape.Matches(images.Dimensions{Width: 2, Height: 1}) {
		t.Fatal("expected landscape match")
	}
}

func TestSelectZeroValueLogger(t *testing.T) {
	sel := &images.Selector{
		Root: t.TempDir(),
		Probe: func(path string) (images.Dimensions, error) {
			if filepath.Base(path) == "broken.jpg" {
				return images.Dimensions{}, errors.New("bad header")
			}
			return images.Dimensions{Width: 30, Height: 10}, nil
		},
	}

	got := sel.Select(context.Background(), []string{"P/broken.jpg", "P/wide.jpg"}, "cover", images.Landscape, true)
	if got != "P/wide.jpg" {
		t.Fatalf("Select = %q", got)
	}
}
