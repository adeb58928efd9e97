package grid2edge

import (
	i2stypes "img2svg/type"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// gridFromRows 用字符画构造网格：'#' 为前景
func gridFromRows(rows ...string) i2stypes.PixelGrid {
	h := len(rows)
	w := 0
	if h > 0 {
		w = len(rows[0])
	}
	g := i2stypes.PixelGrid{Width: w, Height: h, Pixels: make([]i2stypes.Pixel, w*h)}
	for y, row := range rows {
		for x, ch := range row {
			g.Pixels[y*w+x] = i2stypes.Pixel{
				Selected: ch == '#',
				Color:    i2stypes.RGB{R: uint8(x), G: uint8(y)},
			}
		}
	}
	return g
}

func coords(edges []i2stypes.BoundaryPoint) [][2]int {
	out := make([][2]int, len(edges))
	for i, e := range edges {
		out[i] = [2]int{e.X, e.Y}
	}
	return out
}

func TestFindEdgesSingleCenter(t *testing.T) {
	edges := FindEdges(gridFromRows("...", ".#.", "..."))
	assert.Equal(t, [][2]int{{1, 1}}, coords(edges))
	assert.Equal(t, i2stypes.RGB{R: 1, G: 1}, edges[0].Color)
}

func TestFindEdgesOutOfBoundsIsNotBackground(t *testing.T) {
	// 全前景：所有邻居要么越界要么是前景
	assert.Empty(t, FindEdges(gridFromRows("##", "##")))
}

func TestFindEdgesSkipsInterior(t *testing.T) {
	g := gridFromRows(
		".....",
		".###.",
		".###.",
		".###.",
		".....",
	)
	got := coords(FindEdges(g))
	want := [][2]int{
		{1, 1}, {2, 1}, {3, 1},
		{1, 2}, {3, 2},
		{1, 3}, {2, 3}, {3, 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FindEdges mismatch (-want +got):\n%s", diff)
	}
}

func TestFindEdgesRowMajorOrder(t *testing.T) {
	g := gridFromRows("#.#", ".#.")
	assert.Equal(t, [][2]int{{0, 0}, {2, 0}, {1, 1}}, coords(FindEdges(g)))
}

func TestFindEdgesStrip(t *testing.T) {
	n := 6
	g := gridFromRows(strings.Repeat(".", n), strings.Repeat("#", n), strings.Repeat(".", n))
	edges := FindEdges(g)
	assert.Len(t, edges, n)
	for i, e := range edges {
		assert.Equal(t, i, e.X)
		assert.Equal(t, 1, e.Y)
	}
}

func TestFindEdgesEmpty(t *testing.T) {
	assert.Empty(t, FindEdges(i2stypes.PixelGrid{}))
}
