// Package catalog implements the fixed land-use priority ranking and
// the embedded land-use display catalog (spec §4.8), plus parcel
// identifier parse/format (spec §6). Grounded on
// original_source/src/ui.rs get_ranking/get_higher_ranked_polys and
// original_source/src/xlsx.rs's parcel-id field layout.
package catalog

import "sort"

// Ranking is an ordered land-use priority table: higher Priority wins
// on overlap (spec §4.4 stage 6). Ties are broken lexically by Key,
// per the Open Question resolution in SPEC_FULL.md.
type Ranking struct {
	priority map[string]int
}

// DefaultRanking reproduces the source's hard-coded order: WAS == WAF
// (4) > WALD (2) > A (1) > everything else (0).
func DefaultRanking() *Ranking {
	return &Ranking{priority: map[string]int{
		"A":    1,
		"WALD": 2,
		"WAS":  4,
		"WAF":  4,
	}}
}

// NewRanking builds a Ranking from an explicit key→priority table,
// letting callers extend or override the default order via
// configuration.
func NewRanking(priority map[string]int) *Ranking {
	cp := make(map[string]int, len(priority))
	for k, v := range priority {
		cp[k] = v
	}
	return &Ranking{priority: cp}
}

// PriorityOf returns the rank of a land-use key; unknown keys rank 0.
func (r *Ranking) PriorityOf(key string) int {
	return r.priority[key]
}

// Higher reports whether a outranks b — by priority, then lexically by
// key when priorities tie.
func (r *Ranking) Higher(a, b string) bool {
	pa, pb := r.PriorityOf(a), r.PriorityOf(b)
	if pa != pb {
		return pa > pb
	}
	return a > b
}

// HigherRankedKeys returns every key in candidates that outranks key,
// sorted for determinism — the grounding for get_higher_ranked_polys.
func (r *Ranking) HigherRankedKeys(key string, candidates []string) []string {
	rank := r.PriorityOf(key)
	var out []string
	for _, c := range candidates {
		if r.PriorityOf(c) > rank || (r.PriorityOf(c) == rank && c > key) {
			if c != key {
				out = append(out, c)
			}
		}
	}
	sort.Strings(out)
	return out
}
