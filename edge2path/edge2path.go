package edge2path

import (
	i2stypes "img2svg/type"
)

// 邻居优先级固定，分叉处的走向完全由这个顺序决定
var neighbors8 = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// TracePaths 贪心地把相邻边缘点串成路径。
// 每次取集合中最早的点作为起点，沿第一个可用邻居一直延伸，不回溯。
// 只有一个点的路径被丢弃，作为第二个返回值给出。
func TracePaths(edges []i2stypes.BoundaryPoint, width, height int) ([]i2stypes.RawTrace, []i2stypes.BoundaryPoint) {
	return TraceSet(NewEdgeSet(edges), width, height)
}

// TraceSet 与 TracePaths 相同，但直接消耗给定集合
func TraceSet(set *EdgeSet, width, height int) ([]i2stypes.RawTrace, []i2stypes.BoundaryPoint) {
	var paths []i2stypes.RawTrace
	var discarded []i2stypes.BoundaryPoint

	for set.Len() > 0 {
		seed, ok := set.PopFirst()
		if !ok {
			break
		}
		path := i2stypes.RawTrace{seed}
		// 取出即访问：集合里剩下的点都未访问
		for {
			next, found := nextNeighbor(set, path[len(path)-1], width, height)
			if !found {
				break
			}
			path = append(path, next)
		}

		if len(path) > 1 {
			paths = append(paths, path)
		} else {
			discarded = append(discarded, seed)
		}
	}

	return paths, discarded
}

func nextNeighbor(set *EdgeSet, last i2stypes.BoundaryPoint, width, height int) (i2stypes.BoundaryPoint, bool) {
	for _, d := range neighbors8 {
		nx, ny := last.X+d[0], last.Y+d[1]
		if nx < 0 || nx >= width || ny < 0 || ny >= height {
			continue
		}
		if p, ok := set.Take(nx, ny); ok {
			return p, true
		}
	}
	return i2stypes.BoundaryPoint{}, false
}
