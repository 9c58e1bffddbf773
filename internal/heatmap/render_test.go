package heatmap

import (
	"bytes"
	"math"
	"testing"

	"github.com/rickgao/stockboard/internal/analytics"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func testMatrix() *analytics.Matrix {
	return &analytics.Matrix{
		Columns: []string{"Open", "High", "Close"},
		Values: [][]float64{
			{1, 0.8, -0.2},
			{0.8, 1, 0.1},
			{-0.2, 0.1, 1},
		},
	}
}

func testOptions() Options {
	return Options{Title: "early", WidthPts: 216, HeightPts: 216, Divisions: 16}
}

func TestRenderProducesPNG(t *testing.T) {
	png, err := Render(testMatrix(), testOptions())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("Render returned empty image")
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Errorf("image starts with % x, want PNG magic", png[:4])
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	a, err := Render(testMatrix(), testOptions())
	if err != nil {
		t.Fatalf("first Render failed: %v", err)
	}
	b, err := Render(testMatrix(), testOptions())
	if err != nil {
		t.Fatalf("second Render failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two renders of the same matrix differ")
	}
}

func TestRenderHandlesNaN(t *testing.T) {
	m := testMatrix()
	m.Values[0][2] = math.NaN()
	m.Values[2][0] = math.NaN()

	png, err := Render(m, testOptions())
	if err != nil {
		t.Fatalf("Render failed on NaN entries: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("Render with NaN entries did not produce a PNG")
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	small := &analytics.Matrix{Columns: []string{"Close"}, Values: [][]float64{{1}}}
	if _, err := Render(small, testOptions()); err == nil {
		t.Error("Render succeeded on a 1x1 matrix, want error")
	}
	if _, err := Render(nil, testOptions()); err == nil {
		t.Error("Render succeeded on a nil matrix, want error")
	}

	opts := testOptions()
	opts.WidthPts = 0
	if _, err := Render(testMatrix(), opts); err == nil {
		t.Error("Render succeeded with zero width, want error")
	}

	opts = testOptions()
	opts.Divisions = 1
	if _, err := Render(testMatrix(), opts); err == nil {
		t.Error("Render succeeded with one palette division, want error")
	}
}
