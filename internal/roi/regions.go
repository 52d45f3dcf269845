package roi

import "sort"

// Region is one 8-connected group of set pixels in a mask.
type Region struct {
	// Bounds is the bounding box; Max is exclusive.
	Bounds ROI `json:"bounds"`
	// Area is the number of pixels in the group.
	Area int `json:"area"`
	// CentroidX and CentroidY are the mean pixel coordinates.
	CentroidX float64 `json:"centroid_x"`
	CentroidY float64 `json:"centroid_y"`
}

// Regions groups the set pixels of m into 8-connected components and returns
// those with at least minArea pixels, largest first. Equal areas are ordered
// top-to-bottom, then left-to-right.
func Regions(m *Mask, minArea int) []Region {
	visited := make([]bool, len(m.Pix))
	regions := make([]Region, 0)

	for y := m.Rect.Min.Y; y < m.Rect.Max.Y; y++ {
		for x := m.Rect.Min.X; x < m.Rect.Max.X; x++ {
			i := m.offset(x, y)
			if !m.Pix[i] || visited[i] {
				continue
			}
			r := floodFill(m, visited, Point{X: x, Y: y})
			if r.Area >= minArea {
				regions = append(regions, r)
			}
		}
	}

	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].Area > regions[j].Area
	})
	return regions
}

// floodFill walks one component with an explicit stack so large blobs cannot
// overflow the goroutine stack.
func floodFill(m *Mask, visited []bool, start Point) Region {
	minX, minY := start.X, start.Y
	maxX, maxY := start.X, start.Y
	var sumX, sumY float64
	area := 0

	stack := []Point{start}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !m.At(p.X, p.Y) {
			continue
		}
		i := m.offset(p.X, p.Y)
		if visited[i] {
			continue
		}
		visited[i] = true

		area++
		sumX += float64(p.X)
		sumY += float64(p.Y)
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}

	return Region{
		Bounds:    ROI{Min: Point{X: minX, Y: minY}, Max: Point{X: maxX + 1, Y: maxY + 1}},
		Area:      area,
		CentroidX: sumX / float64(area),
		CentroidY: sumY / float64(area),
	}
}
