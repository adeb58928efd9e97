package grid2edge

import (
	i2stypes "img2svg/type"
)

// 上、下、左、右
var neighbors4 = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// FindEdges 按行扫描，输出至少有一个 4 邻域背景像素的前景像素。
// 越界的邻居直接跳过，不视为背景。
func FindEdges(grid i2stypes.PixelGrid) []i2stypes.BoundaryPoint {
	var edges []i2stypes.BoundaryPoint
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			p := grid.At(x, y)
			if !p.Selected {
				continue
			}
			if isBoundary(grid, x, y) {
				edges = append(edges, i2stypes.BoundaryPoint{X: x, Y: y, Color: p.Color})
			}
		}
	}
	return edges
}

func isBoundary(grid i2stypes.PixelGrid, x, y int) bool {
	for _, d := range neighbors4 {
		nx, ny := x+d[0], y+d[1]
		if !grid.InBounds(nx, ny) {
			continue
		}
		if !grid.At(nx, ny).Selected {
			return true
		}
	}
	return false
}
