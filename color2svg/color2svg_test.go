package color2svg

import (
	"encoding/xml"
	"errors"
	"image"
	"image/color"
	i2stypes "img2svg/type"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexColor(t *testing.T) {
	assert.Equal(t, "#000000", HexColor(i2stypes.RGB{}))
	assert.Equal(t, "#ffffff", HexColor(i2stypes.RGB{R: 255, G: 255, B: 255}))
	assert.Equal(t, "#0a0b0c", HexColor(i2stypes.RGB{R: 10, G: 11, B: 12}))
	for v := 0; v < 256; v++ {
		got := HexColor(i2stypes.RGB{R: uint8(v)})
		require.Len(t, got, 7)
	}
}

func TestPathDataLine(t *testing.T) {
	assert.Equal(t, "M0,1 L4,1", PathData(i2stypes.Trace{{X: 0, Y: 1}, {X: 4, Y: 1}}))
	assert.Equal(t, "", PathData(nil))
}

func TestPathDataCurve(t *testing.T) {
	path := i2stypes.Trace{
		{X: 0, Y: 0},
		{X: 12, Y: 0, Control: true},
		{X: 10, Y: -2, Control: true},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
	}
	assert.Equal(t, "M0,0 C12,0 10,-2 10,0 L10,10", PathData(path))
}

func TestPathDataTrailingControlFallsBackToLine(t *testing.T) {
	path := i2stypes.Trace{{X: 0, Y: 0}, {X: 1.5, Y: 2, Control: true}, {X: 3, Y: 3}}
	assert.Equal(t, "M0,0 L1.5,2 L3,3", PathData(path))
}

func TestBuildDocument(t *testing.T) {
	groups := []i2stypes.ColorGroup{
		{Representative: i2stypes.RGB{R: 255}, Traces: []i2stypes.Trace{{{X: 0}, {X: 1}}, nil}},
		{Representative: i2stypes.RGB{B: 255}, Traces: []i2stypes.Trace{{{Y: 0}, {Y: 1}}}},
	}
	doc := BuildDocument(groups, 4, 3, DefaultStrokeWidth)
	assert.Equal(t, 4, doc.Width)
	assert.Equal(t, 3, doc.Height)
	require.Len(t, doc.Paths, 2)
	assert.Equal(t, "#ff0000", doc.Paths[0].Fill)
	assert.Equal(t, "#0000ff", doc.Paths[1].Fill)
	assert.Equal(t, "M0,0 L0,1", doc.Paths[1].D)
}

type parsedSVG struct {
	Width   string `xml:"width,attr"`
	Height  string `xml:"height,attr"`
	ViewBox string `xml:"viewBox,attr"`
	Paths   []struct {
		D           string `xml:"d,attr"`
		Fill        string `xml:"fill,attr"`
		Stroke      string `xml:"stroke,attr"`
		StrokeWidth string `xml:"stroke-width,attr"`
	} `xml:"path"`
}

func TestRenderSVG(t *testing.T) {
	doc := i2stypes.Document{
		Width:  5,
		Height: 3,
		Paths:  []i2stypes.PathElement{{D: "M0,1 L4,1", Fill: "#102030", Width: DefaultStrokeWidth}},
	}
	out, err := RenderSVG(doc)
	require.NoError(t, err)

	var parsed parsedSVG
	require.NoError(t, xml.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, "5", parsed.Width)
	assert.Equal(t, "3", parsed.Height)
	assert.Equal(t, "0 0 5 3", parsed.ViewBox)
	require.Len(t, parsed.Paths, 1)
	assert.Equal(t, "M0,1 L4,1", parsed.Paths[0].D)
	assert.Equal(t, "#102030", parsed.Paths[0].Fill)
	assert.Equal(t, "#102030", parsed.Paths[0].Stroke)
	assert.Equal(t, "0.5", parsed.Paths[0].StrokeWidth)
}

func TestRenderSVGEmpty(t *testing.T) {
	out, err := RenderSVG(i2stypes.Document{})
	require.NoError(t, err)
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "</svg>")
	assert.NotContains(t, out, "<path")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteSVGReportsWriterError(t *testing.T) {
	err := WriteSVG(failingWriter{}, i2stypes.Document{Width: 1, Height: 1})
	assert.EqualError(t, err, "disk full")
}

func TestConvertToSVG(t *testing.T) {
	frames, err := ConvertToSVG([]i2stypes.Document{{Width: 1, Height: 1}, {Width: 2, Height: 2}})
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, 1, frames[1].FrameIndex)
	assert.True(t, strings.Contains(frames[1].Layers[0].SVGData, `width="2"`))
}

func TestTraceGrayToSVG(t *testing.T) {
	mask := image.NewGray(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			v := uint8(255)
			if x >= 2 && x < 6 && y >= 2 && y < 6 {
				v = 0
			}
			mask.SetGray(x, y, color.Gray{Y: v})
		}
	}
	out, err := TraceGrayToSVG(mask)
	require.NoError(t, err)
	assert.Contains(t, out, "<svg")
}
