package geometry

// Line is an ordered sequence of points. Open unless first equals last.
type Line struct {
	Points []Point
}

// DedupAdjacent removes consecutive equal points, per the "length >= 2
// after dedup of adjacent equals" line invariant.
func (l Line) DedupAdjacent() Line {
	if len(l.Points) == 0 {
		return l
	}
	out := make([]Point, 0, len(l.Points))
	out = append(out, l.Points[0])
	for _, p := range l.Points[1:] {
		if !p.Equal(out[len(out)-1]) {
			out = append(out, p)
		}
	}
	return Line{Points: out}
}

// IsClosed reports whether first and last point of the line are equal.
func (l Line) IsClosed() bool {
	if len(l.Points) < 2 {
		return false
	}
	return l.Points[0].Equal(l.Points[len(l.Points)-1])
}

// Round3 rounds every point to three decimals.
func (l Line) Round3() Line {
	out := make([]Point, len(l.Points))
	for i, p := range l.Points {
		out[i] = p.Round3()
	}
	return Line{Points: out}
}

// Translate shifts every point of l by (dx, dy).
func (l Line) Translate(dx, dy float64) Line {
	out := make([]Point, len(l.Points))
	for i, p := range l.Points {
		out[i] = p.Translate(dx, dy)
	}
	return Line{Points: out}
}

// Segments returns the consecutive point pairs (a, b) of the line.
func (l Line) Segments() [][2]Point {
	if len(l.Points) < 2 {
		return nil
	}
	segs := make([][2]Point, 0, len(l.Points)-1)
	for i := 0; i+1 < len(l.Points); i++ {
		segs = append(segs, [2]Point{l.Points[i], l.Points[i+1]})
	}
	return segs
}

// Rect returns the axis-aligned bounds of the line's points.
func (l Line) Rect() Rectangle {
	if len(l.Points) == 0 {
		return Rectangle{}
	}
	r := Rectangle{MinX: l.Points[0].X, MaxX: l.Points[0].X, MinY: l.Points[0].Y, MaxY: l.Points[0].Y}
	for _, p := range l.Points[1:] {
		if p.X < r.MinX {
			r.MinX = p.X
		}
		if p.X > r.MaxX {
			r.MaxX = p.X
		}
		if p.Y < r.MinY {
			r.MinY = p.Y
		}
		if p.Y > r.MaxY {
			r.MaxY = p.Y
		}
	}
	return r
}

// SignedArea returns the shoelace signed area of the line treated as a
// closed ring (positive for counter-clockwise winding).
func (l Line) SignedArea() float64 {
	pts := l.Points
	if len(pts) < 3 {
		return 0
	}
	var sum float64
	n := len(pts)
	for i := 0; i < n; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Reversed returns the line with point order reversed.
func (l Line) Reversed() Line {
	out := make([]Point, len(l.Points))
	for i, p := range l.Points {
		out[len(out)-1-i] = p
	}
	return Line{Points: out}
}
