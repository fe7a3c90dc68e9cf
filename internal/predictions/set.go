package predictions

import (
	"sort"

	"github.com/pable/go-mlb-hits/internal/dataset"
	"github.com/pable/go-mlb-hits/internal/model"
)

// Set is a loaded prediction file.
type Set struct {
	Frame *dataset.Frame
}

// Len returns the number of rows.
func (s *Set) Len() int { return s.Frame.Len() }

// Get returns the cell at row i, column col.
func (s *Set) Get(i int, col string) string { return s.Frame.Get(i, col) }

// Label returns the predicted label of row i.
func (s *Set) Label(i int) model.Label {
	if v, ok := s.Frame.Float(i, model.ColPrediction); ok && v == 1 {
		return model.Hit
	}
	return model.NoHit
}

// LabelCounts counts rows per predicted label.
func (s *Set) LabelCounts() map[model.Label]int {
	out := make(map[model.Label]int, 2)
	for i := range s.Frame.Rows {
		out[s.Label(i)]++
	}
	return out
}

// Hits returns the rows predicted as hits.
func (s *Set) Hits() *Set {
	return &Set{Frame: s.Frame.Filter(func(i int) bool { return s.Label(i) == model.Hit })}
}

// Filter narrows a set the way the predictions board does.
type Filter struct {
	Teams          []string // empty means every team
	Players        []string // empty means every player
	MinLaunchSpeed float64
	MinWRCPlus     float64
}

// Filter returns the rows passing f. Rows whose launch speed or wRC+ is not
// numeric never pass a threshold.
func (s *Set) Filter(f Filter) *Set {
	teams := toSet(f.Teams)
	players := toSet(f.Players)
	return &Set{Frame: s.Frame.Filter(func(i int) bool {
		if len(teams) > 0 {
			if _, ok := teams[s.Get(i, model.ColTeam)]; !ok {
				return false
			}
		}
		if len(players) > 0 {
			if _, ok := players[s.Get(i, model.ColName)]; !ok {
				return false
			}
		}
		speed, ok := s.Frame.Float(i, model.ColLaunchSpeed)
		if !ok || speed < f.MinLaunchSpeed {
			return false
		}
		wrc, ok := s.Frame.Float(i, model.ColWRCPlus)
		return ok && wrc >= f.MinWRCPlus
	})}
}

// TopBy returns at most n rows ordered by column descending. Rows whose
// value is not numeric sort last. Ties keep file order.
func (s *Set) TopBy(column string, n int) *Set {
	idx := make([]int, s.Len())
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		va, oka := s.Frame.Float(idx[a], column)
		vb, okb := s.Frame.Float(idx[b], column)
		if oka != okb {
			return oka
		}
		return va > vb
	})
	if n >= 0 && len(idx) > n {
		idx = idx[:n]
	}
	out := dataset.New(s.Frame.Columns...)
	for _, i := range idx {
		out.Append(s.Frame.Rows[i]...)
	}
	return &Set{Frame: out}
}

// TeamCount is the number of rows for one team.
type TeamCount struct {
	Team  string
	Count int
}

// CountByTeam counts rows per team, largest first, ties by team name.
// Rows without a team are not counted.
func (s *Set) CountByTeam() []TeamCount {
	counts := make(map[string]int)
	for i := range s.Frame.Rows {
		team := s.Get(i, model.ColTeam)
		if model.IsNull(team) {
			continue
		}
		counts[team]++
	}
	out := make([]TeamCount, 0, len(counts))
	for t, c := range counts {
		out = append(out, TeamCount{Team: t, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Team < out[j].Team
	})
	return out
}

// Teams returns the distinct non-null teams, sorted.
func (s *Set) Teams() []string { return s.distinct(model.ColTeam) }

// Players returns the distinct non-null player names, sorted.
func (s *Set) Players() []string { return s.distinct(model.ColName) }

func (s *Set) distinct(col string) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range s.Frame.Rows {
		v := s.Get(i, col)
		if model.IsNull(v) {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func toSet(vals []string) map[string]struct{} {
	out := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		out[v] = struct{}{}
	}
	return out
}
