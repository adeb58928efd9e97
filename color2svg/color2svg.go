package color2svg

import (
	"bytes"
	"fmt"
	"image"
	i2stypes "img2svg/type"
	"io"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/gotranspile/gotrace"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultStrokeWidth path 描边宽度
const DefaultStrokeWidth = 0.5

// HexColor 返回 #rrggbb 形式的颜色
func HexColor(c i2stypes.RGB) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// PathData 生成 path 的 d 属性。
// 控制点且后面至少还有两个点时输出 C，否则退化为 L。
func PathData(path i2stypes.Trace) string {
	if len(path) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("M")
	writePoint(&b, path[0])
	for i := 1; i < len(path); i++ {
		if path[i].Control && i+2 < len(path) {
			b.WriteString(" C")
			writePoint(&b, path[i])
			b.WriteString(" ")
			writePoint(&b, path[i+1])
			b.WriteString(" ")
			writePoint(&b, path[i+2])
			i += 2
			continue
		}
		b.WriteString(" L")
		writePoint(&b, path[i])
	}
	return b.String()
}

func writePoint(b *strings.Builder, p i2stypes.Point) {
	b.WriteString(formatNumber(p.X))
	b.WriteString(",")
	b.WriteString(formatNumber(p.Y))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BuildDocument 按分组顺序生成文档，每条路径一个 path 元素
func BuildDocument(groups []i2stypes.ColorGroup, width, height int, strokeWidth float64) i2stypes.Document {
	doc := i2stypes.Document{Width: width, Height: height}
	for _, group := range groups {
		hex := HexColor(group.Representative)
		for _, path := range group.Traces {
			if len(path) == 0 {
				continue
			}
			doc.Paths = append(doc.Paths, i2stypes.PathElement{
				D:     PathData(path),
				Fill:  hex,
				Width: strokeWidth,
			})
		}
	}
	return doc
}

// errWriter 记录第一次写入错误，svgo 本身不返回错误
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// WriteSVG 把文档写成 SVG
func WriteSVG(w io.Writer, doc i2stypes.Document) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Startview(doc.Width, doc.Height, 0, 0, doc.Width, doc.Height)
	for _, p := range doc.Paths {
		canvas.Path(p.D, fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="%s"`,
			p.Fill, p.Fill, formatNumber(p.Width)))
	}
	canvas.End()
	return ew.err
}

// RenderSVG 返回 SVG 字符串
func RenderSVG(doc i2stypes.Document) (string, error) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ConvertToSVG 把每一帧的文档渲染为 FrameSVG
func ConvertToSVG(docs []i2stypes.Document) ([]i2stypes.FrameSVG, error) {
	result := make([]i2stypes.FrameSVG, len(docs))
	for fi, doc := range docs {
		svgStr, err := RenderSVG(doc)
		if err != nil {
			return nil, fmt.Errorf("render frame %d: %w", fi, err)
		}
		result[fi] = i2stypes.FrameSVG{
			FrameIndex: fi,
			Layers:     []i2stypes.LayerSVG{{ColorIndex: 0, SVGData: svgStr}},
		}
	}
	return result, nil
}

// TraceGrayToSVG 使用 gotrace 将黑白掩码转 SVG 字符串（potrace 引擎）
func TraceGrayToSVG(mask *image.Gray) (string, error) {
	bm := gotrace.BitmapFromGray(mask, nil)

	paths, err := gotrace.Trace(bm, nil)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	sz := mask.Bounds().Size()
	if err := gotrace.Render("svg", nil, &buf, paths, sz.X, sz.Y); err != nil {
		return "", err
	}

	return buf.String(), nil
}
