package geometry

import "math"

// BoundingBox computes the axis-aligned bounding box of a set of points.
func BoundingBox(points []Point2D) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Centroid computes the centroid (average position) of a set of points.
func Centroid(points []Point2D) Point2D {
	if len(points) == 0 {
		return Point2D{}
	}
	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(points))
	return Point2D{X: sumX / n, Y: sumY / n}
}

// SignedArea computes the signed area of a closed polygon using the shoelace
// formula. Positive for counter-clockwise winding, negative for clockwise.
func SignedArea(polygon []Point2D) float64 {
	if len(polygon) < 3 {
		return 0
	}
	var sum float64
	n := len(polygon)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += polygon[i].X*polygon[j].Y - polygon[j].X*polygon[i].Y
	}
	return sum / 2
}

// PointInPolygon tests if a point is inside a polygon using ray casting.
func PointInPolygon(p Point2D, polygon []Point2D) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	n := len(polygon)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := polygon[i], polygon[j]

		// Check if ray from p going right intersects edge pi-pj
		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}

	return inside
}

// PathLength sums the Euclidean lengths of consecutive segments in a path.
func PathLength(points []Point2D) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += points[i-1].Distance(points[i])
	}
	return total
}

// SimplifyPath reduces the vertex count of a path using the Douglas-Peucker
// algorithm. Points farther than epsilon from the simplified path are kept.
func SimplifyPath(points []Point2D, epsilon float64) []Point2D {
	if len(points) < 3 || epsilon <= 0 {
		return points
	}

	// Find the point with maximum distance from the line between endpoints
	maxDist := 0.0
	maxIdx := 0
	first, last := points[0], points[len(points)-1]

	for i := 1; i < len(points)-1; i++ {
		d := pointToSegmentDistance(points[i], first, last)
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= epsilon {
		return []Point2D{first, last}
	}

	left := SimplifyPath(points[:maxIdx+1], epsilon)
	right := SimplifyPath(points[maxIdx:], epsilon)
	return append(left[:len(left)-1], right...)
}

// pointToSegmentDistance returns the distance from p to the segment a-b.
func pointToSegmentDistance(p, a, b Point2D) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Distance(a.Add(ab.Scale(t)))
}

// NearestVertex returns the index of the vertex closest to p, and its
// distance. Returns -1 on an empty slice.
func NearestVertex(p Point2D, vertices []Point2D) (int, float64) {
	best := -1
	bestDist := math.MaxFloat64
	for i, v := range vertices {
		d := p.Distance(v)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, bestDist
}
