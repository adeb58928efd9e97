package path2curve

import (
	i2stypes "img2svg/type"
	"math"
)

// DefaultEpsilon 默认简化容差
const DefaultEpsilon = 1.0

type span struct{ first, last int }

// Simplify 使用 Ramer-Douglas-Peucker 算法简化路径。
// 用显式栈代替递归，结果与递归版本一致，首尾点保持不变。
func Simplify(path i2stypes.Trace, epsilon float64) i2stypes.Trace {
	if len(path) <= 2 {
		return path
	}
	if epsilon < 0 {
		epsilon = 0
	}

	keep := make([]bool, len(path))
	keep[0], keep[len(path)-1] = true, true

	stack := []span{{0, len(path) - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.last-s.first < 2 {
			continue
		}

		index, maxDistance := farthest(path, s.first, s.last)
		if index == 0 || maxDistance <= epsilon {
			continue
		}
		keep[index] = true
		stack = append(stack, span{index, s.last}, span{s.first, index})
	}

	out := make(i2stypes.Trace, 0, len(path))
	for i, k := range keep {
		if k {
			out = append(out, path[i])
		}
	}
	return out
}

// farthest 返回 (first, last) 区间内离首尾连线最远的点，距离相同时取靠前的
func farthest(path i2stypes.Trace, first, last int) (int, float64) {
	index, maxDistance := 0, 0.0
	for i := first + 1; i < last; i++ {
		d := perpendicularDistance(path[i], path[first], path[last])
		if d > maxDistance {
			maxDistance = d
			index = i
		}
	}
	return index, maxDistance
}

// perpendicularDistance 点到直线的距离；直线退化为点时取两点距离
func perpendicularDistance(p, a, b i2stypes.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	return math.Abs(dx*(p.Y-a.Y)-dy*(p.X-a.X)) / length
}
