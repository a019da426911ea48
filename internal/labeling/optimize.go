package labeling

import (
	"math"
	"math/rand"
	"sort"

	"github.com/rawblock/cadastral-engine/internal/geometry"
	"github.com/rawblock/cadastral-engine/pkg/models"
)

// Candidate is an unplaced label: an anchor point (typically the
// owner polygon's pole of inaccessibility, see
// geometry.Polygon.GetLabelPos), the text to draw, and the polygon it
// labels (used both for area-ascending ordering and as the source of
// leader-line targets).
type Candidate struct {
	Kuerzel   string
	Status    models.TextStatus
	Text      string
	Anchor    geometry.Point
	OwnerPoly geometry.Polygon
}

// Placement is an optimized Candidate: its final position and the
// owner-polygon vertex its leader line targets.
type Placement struct {
	Candidate
	Pos          geometry.Point
	LeaderTarget geometry.Point
}

// Optimize runs the C7 search over candidates, ascending by owner
// polygon area, against a raster built from background and
// must-avoid polygons. toleranceMM is millimeters-per-pixel at 1:1
// ground scale; rnd drives the disk sampling and must be supplied by
// the caller for reproducible tests. If the raster cannot be
// initialized (a degenerate drawing rectangle), the initial
// candidates are returned unplaced.
func Optimize(rect geometry.Rectangle, background, mustAvoid []geometry.Polygon, candidates []Candidate, toleranceMM float64, rnd *rand.Rand) []models.TextPlacement {
	placements := optimizeInternal(rect, background, mustAvoid, candidates, toleranceMM, rnd)
	out := make([]models.TextPlacement, len(placements))
	for i, p := range placements {
		out[i] = models.TextPlacement{
			Kuerzel: p.Kuerzel,
			Status:  p.Status,
			Text:    p.Text,
			Pos:     p.Pos,
			Area:    p.OwnerPoly.AreaAbs(),
		}
	}
	return out
}

func optimizeInternal(rect geometry.Rectangle, background, mustAvoid []geometry.Polygon, candidates []Candidate, toleranceMM float64, rnd *rand.Rand) []Placement {
	pxPerM := pixelsPerMeter(toleranceMM)
	bg := newBackgroundGrid(rect, pxPerM, append(append([]geometry.Polygon{}, background...), mustAvoid...))
	if bg == nil {
		return unplaced(candidates)
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(1))
	}

	labels := newPixelGrid(rect, pxPerM)
	leaders := newPixelGrid(rect, pxPerM)

	ordered := append([]Candidate{}, candidates...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OwnerPoly.AreaAbs() < ordered[j].OwnerPoly.AreaAbs()
	})

	out := make([]Placement, 0, len(ordered))
	for _, c := range ordered {
		placed := placeOne(c, bg, labels, leaders, rnd)
		out = append(out, placed)
		labels.paintRect(labelBBox(placed.Pos, placed.Text))
		leaders.paintLine(placed.Pos, placed.LeaderTarget)
	}
	return out
}

// placeOne runs the iteration-0-then-disk-sampling search described
// in spec §4.7 for a single candidate, against the raster state left
// by every candidate placed before it.
func placeOne(c Candidate, bg, labels, leaders *pixelGrid, rnd *rand.Rand) Placement {
	used := map[geometry.Point]bool{}

	best := Placement{Candidate: c, Pos: c.Anchor, LeaderTarget: c.Anchor}
	bestPenalty := math.Inf(1)

	for i := 0; i < maxIterations; i++ {
		var samples []geometry.Point
		if i == 0 {
			samples = []geometry.Point{c.Anchor}
		} else {
			samples = sampleDisk(c.Anchor, 4.0*float64(i), maxPointsPerIter, rnd)
		}

		for _, pos := range samples {
			target, ok := nearestUnusedVertex(c.OwnerPoly, pos, used)
			if !ok {
				target = pos
			}
			used[target] = true

			p := penalty(c.Text, c.Anchor, pos, target, bg, labels, leaders)
			if p < bestPenalty {
				bestPenalty = p
				best.Pos = pos
				best.LeaderTarget = target
			}
		}

		if bestPenalty < acceptPenalty {
			break
		}
	}
	return best
}

func penalty(text string, anchor, pos, target geometry.Point, bg, labels, leaders *pixelGrid) float64 {
	bbox := labelBBox(pos, text)
	if bg.rectOverlaps(bbox) || labels.rectOverlaps(bbox) || leaders.rectOverlaps(bbox) {
		return math.Inf(1)
	}

	p := math.Round(distance(pos, anchor) * 10)
	if labels.lineCrosses(pos, target) {
		p += penaltyLeaderCrossesLabel
	}
	if leaders.lineCrosses(pos, target) {
		p += penaltyCrossesLine
	}
	if bg.lineCrosses(pos, target) {
		p += penaltyCrossesBackground
	}
	return p
}

func nearestUnusedVertex(poly geometry.Polygon, pos geometry.Point, used map[geometry.Point]bool) (geometry.Point, bool) {
	best := geometry.Point{}
	bestDist := math.Inf(1)
	found := false

	consider := func(p geometry.Point) {
		if used[p] {
			return
		}
		if d := distance(p, pos); d < bestDist {
			bestDist = d
			best = p
			found = true
		}
	}
	for _, r := range poly.OuterRings {
		for _, p := range r.Points {
			consider(p)
		}
	}
	for _, r := range poly.InnerRings {
		for _, p := range r.Points {
			consider(p)
		}
	}
	return best, found
}

func sampleDisk(center geometry.Point, radius float64, n int, rnd *rand.Rand) []geometry.Point {
	out := make([]geometry.Point, n)
	for i := 0; i < n; i++ {
		theta := rnd.Float64() * 2 * math.Pi
		r := radius * math.Sqrt(rnd.Float64())
		out[i] = geometry.Point{X: center.X + r*math.Cos(theta), Y: center.Y + r*math.Sin(theta)}
	}
	return out
}

func unplaced(candidates []Candidate) []Placement {
	out := make([]Placement, len(candidates))
	for i, c := range candidates {
		out[i] = Placement{Candidate: c, Pos: c.Anchor, LeaderTarget: c.Anchor}
	}
	return out
}

func labelBBox(pos geometry.Point, text string) geometry.Rectangle {
	width := float64(len([]rune(text)))*LabelWidthPerCharM + LabelWidthPadM
	half := LabelHeightM / 2
	return geometry.Rectangle{MinX: pos.X, MaxX: pos.X + width, MinY: pos.Y - half, MaxY: pos.Y + half}
}

func pixelsPerMeter(toleranceMM float64) float64 {
	if toleranceMM <= 0 {
		return 0
	}
	return 1000.0 / toleranceMM
}

func distance(a, b geometry.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
