// Package idmap reconciles Statcast (MLBAM) batter identifiers with the
// FanGraphs identifiers used by season aggregates.
package idmap

import (
	"context"
	"fmt"
	"sort"

	"github.com/pable/go-mlb-hits/internal/model"
)

// Resolver translates source identifiers to target identifiers. IDs it cannot
// resolve are left out of the result; that is a partial result, not an error.
type Resolver interface {
	Resolve(ctx context.Context, ids []model.SourceID) (map[model.SourceID]model.TargetID, error)
}

// Mapping is a bidirectional SourceID <-> TargetID association built for one run.
type Mapping struct {
	toTarget map[model.SourceID]model.TargetID
	toSource map[model.TargetID]model.SourceID
}

// Pair is one resolved association.
type Pair struct {
	Source model.SourceID
	Target model.TargetID
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{
		toTarget: make(map[model.SourceID]model.TargetID),
		toSource: make(map[model.TargetID]model.SourceID),
	}
}

// Add records src <-> tgt. Zero IDs are ignored.
func (m *Mapping) Add(src model.SourceID, tgt model.TargetID) {
	if src.IsZero() || tgt.IsZero() {
		return
	}
	m.toTarget[src] = tgt
	m.toSource[tgt] = src
}

// Target returns the FanGraphs ID for src.
func (m *Mapping) Target(src model.SourceID) (model.TargetID, bool) {
	t, ok := m.toTarget[src]
	return t, ok
}

// Source returns the MLBAM ID for tgt.
func (m *Mapping) Source(tgt model.TargetID) (model.SourceID, bool) {
	s, ok := m.toSource[tgt]
	return s, ok
}

// Len returns the number of resolved identifiers.
func (m *Mapping) Len() int { return len(m.toTarget) }

// Pairs returns every association ordered by source ID.
func (m *Mapping) Pairs() []Pair {
	out := make([]Pair, 0, len(m.toTarget))
	for s, t := range m.toTarget {
		out = append(out, Pair{Source: s, Target: t})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}

// Reconcile resolves the distinct batter IDs of batch with a single call to r.
// Duplicates are collapsed before the lookup. An empty batch resolves to an
// empty mapping without contacting r.
func Reconcile(ctx context.Context, r Resolver, batch model.PitchBatch) (*Mapping, error) {
	m := NewMapping()
	ids := batch.BatterIDs()
	if len(ids) == 0 {
		return m, nil
	}

	resolved, err := r.Resolve(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("reconcile %d ids: %w", len(ids), err)
	}

	want := make(map[model.SourceID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	for src, tgt := range resolved {
		if _, ok := want[src]; ok {
			m.Add(src, tgt)
		}
	}
	return m, nil
}

// StaticResolver resolves from a fixed table.
type StaticResolver map[model.SourceID]model.TargetID

// Resolve implements Resolver.
func (s StaticResolver) Resolve(_ context.Context, ids []model.SourceID) (map[model.SourceID]model.TargetID, error) {
	out := make(map[model.SourceID]model.TargetID, len(ids))
	for _, id := range ids {
		if t, ok := s[id]; ok {
			out[id] = t
		}
	}
	return out, nil
}
