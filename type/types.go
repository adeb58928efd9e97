package i2stypes

import (
	"image"
)

// RGB 表示 8 位 RGB 颜色
type RGB struct {
	R, G, B uint8
}

// RGBBuffer 外部提供的原始像素缓冲，每像素 3 字节，按行存储
type RGBBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// At 返回 (x, y) 处的颜色
func (b RGBBuffer) At(x, y int) RGB {
	i := (y*b.Width + x) * 3
	return RGB{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2]}
}

// Pixel 二值化后的像素，Selected 为 true 表示暗色（前景）
type Pixel struct {
	Selected bool
	Color    RGB
}

// PixelGrid 按行存储的像素网格，创建后只读
type PixelGrid struct {
	Width  int
	Height int
	Pixels []Pixel
}

// At 返回 (x, y) 处的像素
func (g PixelGrid) At(x, y int) Pixel {
	return g.Pixels[y*g.Width+x]
}

// InBounds 判断坐标是否在网格内
func (g PixelGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// BoundaryPoint 边缘像素，携带像素自身颜色
type BoundaryPoint struct {
	X, Y  int
	Color RGB
}

// RawTrace 简化前的路径，相邻点 8 连通
type RawTrace []BoundaryPoint

// Points 转成几何点序列
func (t RawTrace) Points() Trace {
	pts := make(Trace, len(t))
	for i, p := range t {
		pts[i] = Point{X: float64(p.X), Y: float64(p.Y)}
	}
	return pts
}

// Point 路径点；Control 为 true 时是贝塞尔控制点
type Point struct {
	X, Y    float64
	Control bool
}

// Trace 简化/平滑后的路径
type Trace []Point

// ColorGroup 颜色分组，代表色在创建时确定，不再更新
type ColorGroup struct {
	Representative RGB
	Traces         []Trace
}

// PathElement 文档中的一条 path
type PathElement struct {
	D     string
	Fill  string
	Width float64 // stroke-width
}

// Document 矢量文档
type Document struct {
	Width  int
	Height int
	Paths  []PathElement
}

// LayerSVG 表示单个颜色图层的 SVG
type LayerSVG struct {
	ColorIndex int
	SVGData    string
}

// FrameSVG 表示一帧的 SVG
type FrameSVG struct {
	FrameIndex int
	Layers     []LayerSVG
}

// FrameData 封装输出的数据结构
type FrameData struct {
	FrameIndex int                 `json:"frameIndex"`
	Data       []map[string]string `json:"data"`
}

// Frame 表示一帧图像
type Frame struct {
	Index int
	Image image.Image
}
