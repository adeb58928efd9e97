package image2svg

import (
	"context"
	"errors"
	"fmt"
	"img2svg/color2svg"
	"img2svg/edge2path"
	"img2svg/grid2edge"
	"img2svg/path2curve"
	"img2svg/path2group"
	"img2svg/raster2grid"
	i2stypes "img2svg/type"
)

var (
	// ErrAcquisition 图像缓冲未能送达
	ErrAcquisition = errors.New("image acquisition failed")
	// ErrBufferSize 缓冲长度与宽高不符
	ErrBufferSize = errors.New("pixel buffer size mismatch")
)

// Source 外部图像来源，阻塞直到缓冲可用
type Source interface {
	Acquire(ctx context.Context) (i2stypes.RGBBuffer, error)
}

type Options struct {
	// 亮度 <= Threshold 的像素视为前景
	Threshold int
	// 每通道颜色差严格小于该值才并入已有分组
	ColorTolerance int
	Epsilon        float64
	StrokeWidth    float64
}

func DefaultOptions() Options {
	return Options{
		Threshold:      raster2grid.DefaultThreshold,
		ColorTolerance: path2group.DefaultTolerance,
		Epsilon:        path2curve.DefaultEpsilon,
		StrokeWidth:    color2svg.DefaultStrokeWidth,
	}
}

// Tracer 单线程的位图转矢量流水线，不可并发使用。
// 每次 Trace 会先重置当前图像尺寸。
type Tracer struct {
	Options Options
	width   int
	height  int
}

func New(opt Options) *Tracer {
	return &Tracer{Options: opt}
}

// Size 返回最近一次处理的图像尺寸
func (t *Tracer) Size() (int, int) {
	return t.width, t.height
}

func (t *Tracer) Reset() {
	t.width, t.height = 0, 0
}

// TraceSource 等待来源送达缓冲后再处理。获取失败时不返回任何文档
func (t *Tracer) TraceSource(ctx context.Context, src Source) (i2stypes.Document, error) {
	t.Reset()
	if src == nil {
		return i2stypes.Document{}, fmt.Errorf("%w: nil source", ErrAcquisition)
	}
	buf, err := src.Acquire(ctx)
	if err != nil {
		Logger().Warn("acquire image", "err", err)
		return i2stypes.Document{}, fmt.Errorf("%w: %w", ErrAcquisition, err)
	}
	if err := checkBuffer(buf); err != nil {
		Logger().Warn("acquire image", "err", err)
		return i2stypes.Document{}, fmt.Errorf("%w: %w", ErrAcquisition, err)
	}
	return t.Trace(buf), nil
}

func checkBuffer(buf i2stypes.RGBBuffer) error {
	if buf.Width < 0 || buf.Height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrBufferSize, buf.Width, buf.Height)
	}
	if want := buf.Width * buf.Height * 3; len(buf.Pix) != want {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrBufferSize, len(buf.Pix), want)
	}
	return nil
}

// Trace 对已送达的缓冲运行整个流水线，总是返回合法文档（可能为空）
func (t *Tracer) Trace(buf i2stypes.RGBBuffer) i2stypes.Document {
	t.Reset()
	if checkBuffer(buf) != nil {
		return i2stypes.Document{}
	}
	t.width, t.height = buf.Width, buf.Height
	log := Logger()

	grid := raster2grid.Classify(buf, t.Options.Threshold)
	edges := grid2edge.FindEdges(grid)
	log.Debug("edges found", "edges", len(edges), "width", t.width, "height", t.height)

	raws, discarded := edge2path.TracePaths(edges, t.width, t.height)
	log.Debug("paths traced", "traces", len(raws), "discarded", len(discarded))

	groups := t.group(raws)
	doc := color2svg.BuildDocument(groups, t.width, t.height, t.Options.StrokeWidth)
	log.Debug("document built", "groups", len(groups), "paths", len(doc.Paths))
	return doc
}

// group 几何取简化平滑后的结果，颜色取简化前的原始点
func (t *Tracer) group(raws []i2stypes.RawTrace) []i2stypes.ColorGroup {
	g := path2group.NewGrouper(t.Options.ColorTolerance)
	for _, raw := range raws {
		if len(raw) < 2 {
			continue
		}
		simplified := path2curve.Simplify(raw.Points(), t.Options.Epsilon)
		g.Add(raw, path2curve.Smooth(simplified))
	}
	return g.Groups()
}

// TraceMask potrace 引擎：二值化后交给 gotrace，返回 SVG 字符串
func (t *Tracer) TraceMask(buf i2stypes.RGBBuffer) (string, error) {
	t.Reset()
	if err := checkBuffer(buf); err != nil {
		return "", err
	}
	t.width, t.height = buf.Width, buf.Height
	grid := raster2grid.Classify(buf, t.Options.Threshold)
	return color2svg.TraceGrayToSVG(raster2grid.Mask(grid))
}
