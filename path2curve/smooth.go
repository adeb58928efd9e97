package path2curve

import (
	i2stypes "img2svg/type"
)

// SmoothRatio 控制点沿相邻线段的偏移比例
const SmoothRatio = 0.2

// Smooth 为每个内部锚点生成两个控制点，输出
// P0, in(P1), out(P1), P1, ..., Pn
func Smooth(path i2stypes.Trace) i2stypes.Trace {
	if len(path) < 3 {
		return path
	}

	smoothed := make(i2stypes.Trace, 0, 3*len(path)-4)
	smoothed = append(smoothed, anchor(path[0]))
	for i := 1; i < len(path)-1; i++ {
		prev, curr, next := path[i-1], path[i], path[i+1]
		smoothed = append(smoothed,
			i2stypes.Point{
				X:       curr.X + (curr.X-prev.X)*SmoothRatio,
				Y:       curr.Y + (curr.Y-prev.Y)*SmoothRatio,
				Control: true,
			},
			i2stypes.Point{
				X:       curr.X - (next.X-curr.X)*SmoothRatio,
				Y:       curr.Y - (next.Y-curr.Y)*SmoothRatio,
				Control: true,
			},
			anchor(curr),
		)
	}
	return append(smoothed, anchor(path[len(path)-1]))
}

func anchor(p i2stypes.Point) i2stypes.Point {
	p.Control = false
	return p
}
