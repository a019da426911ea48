// Package pipeline orchestrates C4 (snapclean) -> C5 (split) -> C6
// (opderive), and split -> C7 (labeling), into the single synchronous,
// single-goroutine invocation described by spec.md §5: a pure function
// of its inputs plus an injected *rand.Rand and adapters.StatusSink.
// No package in this repo's core (geometry, boolops, snapclean, split,
// opderive, catalog, labeling) imports pipeline — it is purely a
// caller of them, matching the teacher's separation between
// cmd/engine wiring and its internal business packages.
package pipeline

import (
	"math"
	"math/rand"

	"github.com/rawblock/cadastral-engine/internal/adapters"
	"github.com/rawblock/cadastral-engine/internal/catalog"
	"github.com/rawblock/cadastral-engine/internal/geometry"
	"github.com/rawblock/cadastral-engine/internal/labeling"
	"github.com/rawblock/cadastral-engine/internal/opderive"
	"github.com/rawblock/cadastral-engine/internal/pipelineerr"
	"github.com/rawblock/cadastral-engine/internal/snapclean"
	"github.com/rawblock/cadastral-engine/internal/split"
	"github.com/rawblock/cadastral-engine/pkg/models"
)

// Input is everything a single reconciliation run needs.
type Input struct {
	Base       []geometry.TaggedPolygon
	Changes    models.Aenderungen
	Catalog    *catalog.Catalog
	Ranking    *catalog.Ranking
	Params     snapclean.Params
	Drawing    labeling.DrawingConfig
	MustAvoid  []geometry.Polygon
	Rand       *rand.Rand
	StatusSink adapters.StatusSink
}

// Result is the (result, diagnostics) pair required by spec.md §7:
// either a complete operation list plus placements, or Err set and
// the other fields empty — Numeric and Adapter failures abort the
// whole invocation rather than emit a partial list.
type Result struct {
	Operations  []models.Operation
	SplitTuples []models.SplitTuple
	Placements  []models.TextPlacement
	Diagnostics []string
	Err         error
}

// Run executes one full reconciliation: clean, split, derive
// operations, then place labels for every split tuple.
func Run(in Input) Result {
	sink := in.StatusSink
	if sink == nil {
		sink = adapters.NewMemorySink()
	}
	emit := func(msg string) { sink.Emit(msg) }

	if err := checkFinite(in.Base, in.Changes); err != nil {
		emit(err.Error())
		return Result{Diagnostics: sink.Entries(), Err: err}
	}

	ranking := in.Ranking
	if ranking == nil {
		ranking = catalog.DefaultRanking()
	}
	params := in.Params
	if params == (snapclean.Params{}) {
		params = snapclean.DefaultParams()
	}

	emit("reconciliation: starting")
	base := snapclean.NewBaseIndex(in.Base)

	cleaned := snapclean.Clean(in.Changes, base, ranking, params, emit)
	emit("reconciliation: clean stages complete")

	tuples := split.Split(cleaned, base)
	emit("reconciliation: split engine complete")

	ops := opderive.Derive(cleaned, base, in.Catalog)
	emit("reconciliation: operations derived")

	placements := placeLabels(in, base, cleaned, tuples, emit)
	emit("reconciliation: labels placed")

	return Result{
		Operations:  ops,
		SplitTuples: tuples,
		Placements:  placements,
		Diagnostics: sink.Entries(),
	}
}

func placeLabels(in Input, base *snapclean.BaseIndex, cleaned map[string]geometry.Polygon, tuples []models.SplitTuple, emit func(string)) []models.TextPlacement {
	rect := in.Drawing.Rect()
	if rect.Width() <= 0 || rect.Height() <= 0 {
		rect = overallRect(base, cleaned)
	}

	background := make([]geometry.Polygon, 0, len(base.Parts))
	for _, part := range base.Parts {
		background = append(background, part.Poly)
	}

	candidates := make([]labeling.Candidate, 0, len(tuples))
	for _, t := range tuples {
		if t.CutPolygon.IsZeroArea() {
			continue
		}
		status := models.TextStatusStaysAsIs
		if !t.StaysAsIs() {
			status = models.TextStatusNew
		}
		key := t.NeuKey
		if key == "" {
			key = t.AltKey
		}
		candidates = append(candidates, labeling.Candidate{
			Kuerzel:   key,
			Status:    status,
			Text:      key,
			Anchor:    t.CutPolygon.GetLabelPos(0.5),
			OwnerPoly: t.CutPolygon,
		})
	}

	tolerance := in.Drawing.ToleranceMM()
	placements := labeling.Optimize(rect, background, in.MustAvoid, candidates, tolerance, in.Rand)
	if tolerance <= 0 {
		emit("labeling: drawing config missing or degenerate, placements left at anchors")
	}
	return placements
}

func overallRect(base *snapclean.BaseIndex, cleaned map[string]geometry.Polygon) geometry.Rectangle {
	var rect geometry.Rectangle
	first := true
	grow := func(r geometry.Rectangle) {
		if first {
			rect = r
			first = false
			return
		}
		rect = rect.Union(r)
	}
	for _, part := range base.Parts {
		grow(part.Poly.Rect())
	}
	for _, poly := range cleaned {
		grow(poly.Rect())
	}
	return rect
}

func checkFinite(base []geometry.TaggedPolygon, changes models.Aenderungen) error {
	for _, t := range base {
		if !polygonFinite(t.Poly) {
			return pipelineerr.Numeric("base polygon " + t.ObjectID())
		}
	}
	for _, n := range changes.NaPolygonNeu {
		if !polygonFinite(n.Poly) {
			return pipelineerr.Numeric("change polygon " + n.ID)
		}
	}
	return nil
}

func polygonFinite(p geometry.Polygon) bool {
	check := func(r geometry.Line) bool {
		for _, pt := range r.Points {
			if math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0) {
				return false
			}
		}
		return true
	}
	for _, r := range p.OuterRings {
		if !check(r) {
			return false
		}
	}
	for _, r := range p.InnerRings {
		if !check(r) {
			return false
		}
	}
	return true
}
