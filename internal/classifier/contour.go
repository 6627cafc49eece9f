package classifier

import (
	"math"
	"sort"
)

type point struct {
	x, y int
}

// Neighbor offsets in clockwise order for image coordinates (y grows down).
var clockwise = [8]point{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// shapeFeatures finds the largest external contour of the nonzero pixels
// and summarizes it as the six-value shape block: area/10000,
// perimeter/1000, circularity, bounding-box aspect ratio, solidity and
// hull area/10000. All zeros when the frame has no foreground.
func shapeFeatures(gray []uint8, w, h int) []float64 {
	mask := make([]bool, len(gray))
	for i, v := range gray {
		mask[i] = v > 0
	}

	var (
		bestBoundary []point
		bestArea     float64
		bestBox      [4]int
		found        bool
	)

	visited := make([]bool, len(mask))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if !mask[idx] || visited[idx] {
				continue
			}

			pixels := fillComponent(mask, visited, w, h, point{x, y})
			boundary := traceBoundary(mask, w, h, point{x, y})
			area := polygonArea(boundary)

			if !found || area > bestArea {
				found = true
				bestArea = area
				bestBoundary = boundary
				bestBox = boundingBox(pixels)
			}
		}
	}

	if !found {
		return []float64{0, 0, 0, 0, 0, 0}
	}

	perimeter := polygonPerimeter(bestBoundary)

	var circularity float64
	if perimeter > 0 {
		circularity = 4 * math.Pi * bestArea / (perimeter * perimeter)
	}

	boxW := float64(bestBox[2] - bestBox[0] + 1)
	boxH := float64(bestBox[3] - bestBox[1] + 1)

	var aspect float64
	if boxH > 0 {
		aspect = boxW / boxH
	}

	hullArea := polygonArea(convexHull(bestBoundary))

	var solidity float64
	if hullArea > 0 {
		solidity = bestArea / hullArea
	}

	return []float64{
		bestArea / 10000,
		perimeter / 1000,
		circularity,
		aspect,
		solidity,
		hullArea / 10000,
	}
}

func fillComponent(mask, visited []bool, w, h int, start point) []point {
	queue := []point{start}
	visited[start.y*w+start.x] = true

	var pixels []point
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		pixels = append(pixels, p)

		for _, d := range clockwise {
			nx, ny := p.x+d.x, p.y+d.y
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}

			idx := ny*w + nx
			if mask[idx] && !visited[idx] {
				visited[idx] = true
				queue = append(queue, point{nx, ny})
			}
		}
	}

	return pixels
}

// traceBoundary walks the outer border Moore-neighbor style, starting at
// the topmost-leftmost pixel of a component and scanning neighbors
// clockwise. Stops when it re-enters the start pixel along the first move
// direction; the step cap guards pathological masks.
func traceBoundary(mask []bool, w, h int, start point) []point {
	at := func(p point) bool {
		return p.x >= 0 && p.x < w && p.y >= 0 && p.y < h && mask[p.y*w+p.x]
	}

	boundary := []point{start}
	current := start
	backtrack := 4 // entered scanning raster order, background sits west
	firstDir := -1

	for step := 0; step < 8*w*h; step++ {
		dir := -1
		for k := 1; k <= 8; k++ {
			d := (backtrack + k) % 8
			next := point{current.x + clockwise[d].x, current.y + clockwise[d].y}
			if at(next) {
				dir = d
				break
			}
		}

		if dir < 0 {
			break
		}

		if current == start {
			if firstDir < 0 {
				firstDir = dir
			} else if dir == firstDir {
				break
			}
		}

		current = point{current.x + clockwise[dir].x, current.y + clockwise[dir].y}
		boundary = append(boundary, current)
		backtrack = (dir + 4) % 8
	}

	if len(boundary) > 1 && boundary[len(boundary)-1] == start {
		boundary = boundary[:len(boundary)-1]
	}

	return boundary
}

func boundingBox(pixels []point) [4]int {
	box := [4]int{pixels[0].x, pixels[0].y, pixels[0].x, pixels[0].y}
	for _, p := range pixels[1:] {
		if p.x < box[0] {
			box[0] = p.x
		}
		if p.y < box[1] {
			box[1] = p.y
		}
		if p.x > box[2] {
			box[2] = p.x
		}
		if p.y > box[3] {
			box[3] = p.y
		}
	}

	return box
}

func polygonArea(pts []point) float64 {
	if len(pts) < 3 {
		return 0
	}

	var sum float64
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += float64(pts[i].x)*float64(pts[j].y) - float64(pts[j].x)*float64(pts[i].y)
	}

	return math.Abs(sum) / 2
}

func polygonPerimeter(pts []point) float64 {
	if len(pts) < 2 {
		return 0
	}

	var sum float64
	for i := range pts {
		j := (i + 1) % len(pts)
		dx := float64(pts[j].x - pts[i].x)
		dy := float64(pts[j].y - pts[i].y)
		sum += math.Hypot(dx, dy)
	}

	return sum
}

// convexHull is the Andrew monotone chain over the boundary points.
func convexHull(pts []point) []point {
	unique := make(map[point]bool, len(pts))
	sorted := make([]point, 0, len(pts))
	for _, p := range pts {
		if !unique[p] {
			unique[p] = true
			sorted = append(sorted, p)
		}
	}

	if len(sorted) < 3 {
		return sorted
	}

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].x != sorted[j].x {
			return sorted[i].x < sorted[j].x
		}

		return sorted[i].y < sorted[j].y
	})

	cross := func(o, a, b point) int {
		return (a.x-o.x)*(b.y-o.y) - (a.y-o.y)*(b.x-o.x)
	}

	var hull []point
	for _, p := range sorted {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	return hull[:len(hull)-1]
}
