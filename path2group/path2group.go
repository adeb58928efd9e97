package path2group

import (
	i2stypes "img2svg/type"
	"math"
)

// DefaultTolerance 默认每通道颜色容差
const DefaultTolerance = 30

// AverageColor 计算路径原始点颜色的平均值（四舍五入）
func AverageColor(path i2stypes.RawTrace) i2stypes.RGB {
	if len(path) == 0 {
		return i2stypes.RGB{}
	}
	var r, g, b int
	for _, p := range path {
		r += int(p.Color.R)
		g += int(p.Color.G)
		b += int(p.Color.B)
	}
	n := float64(len(path))
	return i2stypes.RGB{
		R: uint8(math.Floor(float64(r)/n + 0.5)),
		G: uint8(math.Floor(float64(g)/n + 0.5)),
		B: uint8(math.Floor(float64(b)/n + 0.5)),
	}
}

// Grouper 按创建顺序保存分组，新路径归入第一个每通道差值都小于容差的组
type Grouper struct {
	Tolerance int
	groups    []i2stypes.ColorGroup
}

func NewGrouper(tolerance int) *Grouper {
	return &Grouper{Tolerance: tolerance}
}

// Add 把平滑后的路径放入分组，颜色取自原始路径。返回组下标
func (g *Grouper) Add(raw i2stypes.RawTrace, smoothed i2stypes.Trace) int {
	avg := AverageColor(raw)
	for i := range g.groups {
		if g.within(g.groups[i].Representative, avg) {
			g.groups[i].Traces = append(g.groups[i].Traces, smoothed)
			return i
		}
	}
	g.groups = append(g.groups, i2stypes.ColorGroup{
		Representative: avg,
		Traces:         []i2stypes.Trace{smoothed},
	})
	return len(g.groups) - 1
}

func (g *Grouper) within(a, b i2stypes.RGB) bool {
	return absDiff(a.R, b.R) < g.Tolerance &&
		absDiff(a.G, b.G) < g.Tolerance &&
		absDiff(a.B, b.B) < g.Tolerance
}

// Groups 返回当前分组（按创建顺序）
func (g *Grouper) Groups() []i2stypes.ColorGroup {
	return g.groups
}

// GroupPaths raws 与 smoothed 一一对应
func GroupPaths(raws []i2stypes.RawTrace, smoothed []i2stypes.Trace, tolerance int) []i2stypes.ColorGroup {
	g := NewGrouper(tolerance)
	for i, raw := range raws {
		if i >= len(smoothed) {
			break
		}
		g.Add(raw, smoothed[i])
	}
	return g.Groups()
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}
