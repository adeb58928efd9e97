package edge2path

import (
	i2stypes "img2svg/type"
)

type coord struct{ x, y int }

// EdgeSet 按插入顺序保存边缘点，支持按坐标 O(1) 查找和删除
type EdgeSet struct {
	points []i2stypes.BoundaryPoint
	alive  []bool
	index  map[coord]int
	head   int
	size   int
}

// NewEdgeSet 按给定顺序建立集合，重复坐标只保留第一个
func NewEdgeSet(edges []i2stypes.BoundaryPoint) *EdgeSet {
	s := &EdgeSet{
		points: make([]i2stypes.BoundaryPoint, 0, len(edges)),
		alive:  make([]bool, 0, len(edges)),
		index:  make(map[coord]int, len(edges)),
	}
	for _, e := range edges {
		s.Add(e)
	}
	return s
}

// Add 追加一个点；坐标已存在时返回 false
func (s *EdgeSet) Add(p i2stypes.BoundaryPoint) bool {
	k := coord{p.X, p.Y}
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = len(s.points)
	s.points = append(s.points, p)
	s.alive = append(s.alive, true)
	s.size++
	return true
}

func (s *EdgeSet) Len() int { return s.size }

func (s *EdgeSet) Has(x, y int) bool {
	_, ok := s.index[coord{x, y}]
	return ok
}

// Take 按坐标取出并删除
func (s *EdgeSet) Take(x, y int) (i2stypes.BoundaryPoint, bool) {
	k := coord{x, y}
	i, ok := s.index[k]
	if !ok {
		return i2stypes.BoundaryPoint{}, false
	}
	delete(s.index, k)
	s.alive[i] = false
	s.size--
	return s.points[i], true
}

// PopFirst 取出最早插入且仍存在的点
func (s *EdgeSet) PopFirst() (i2stypes.BoundaryPoint, bool) {
	for s.head < len(s.points) && !s.alive[s.head] {
		s.head++
	}
	if s.head >= len(s.points) {
		return i2stypes.BoundaryPoint{}, false
	}
	p := s.points[s.head]
	return s.Take(p.X, p.Y)
}
