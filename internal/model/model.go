// Package model holds the batting data types shared by every pipeline stage,
// along with the fixed feature schema and hit-outcome set that training and
// inference must agree on.
package model

// Column names used across the pipeline.
const (
	ColBatter     = "batter"
	ColPitcher    = "pitcher"
	ColOutcome    = "events"
	ColTargetID   = "IDfg"
	ColName       = "Name"
	ColTeam       = "Team"
	ColLabel      = "is_hit"
	ColPrediction = "predicted_hit"

	ColLaunchSpeed = "launch_speed"
	ColWRCPlus     = "wRC+"
)

// FeatureColumns is the ordered feature vector fed to the classifier. Training
// and inference both read it from here; the fitted model records it and
// rejects a matrix built from any other list.
var FeatureColumns = []string{
	"launch_speed", "launch_angle", "release_speed", "effective_speed",
	"PA", "BB%", "K%", "AVG", "OBP", "SLG", "wOBA", "wRC+",
}

// HitOutcomes are the Statcast event categories counted as a hit.
var HitOutcomes = map[string]struct{}{
	"single":   {},
	"double":   {},
	"triple":   {},
	"home_run": {},
}

// Label is the binary classifier target.
type Label int

const (
	NoHit Label = 0
	Hit   Label = 1
)

// LabelOf maps a Statcast outcome category to a Label. Anything outside
// HitOutcomes, including the empty (null) outcome, is NoHit.
func LabelOf(outcome string) Label {
	if _, ok := HitOutcomes[outcome]; ok {
		return Hit
	}
	return NoHit
}

// FeatureNames returns a copy of FeatureColumns.
func FeatureNames() []string {
	out := make([]string, len(FeatureColumns))
	copy(out, FeatureColumns)
	return out
}

// ---- Raw inputs ----

// PitchEvent is one Statcast row. Fields holds every retained source column
// by name; the typed fields are parsed from it once at ingestion.
type PitchEvent struct {
	Batter  SourceID
	Pitcher SourceID
	Outcome string // "" when the source value is null
	Fields  map[string]string
}

// PitchBatch is the set of events loaded for one run together with the
// column order of the source file.
type PitchBatch struct {
	Columns []string
	Events  []PitchEvent
}

// WithBatter returns the number of events that carry a batter identifier.
func (b PitchBatch) WithBatter() int {
	n := 0
	for _, e := range b.Events {
		if !e.Batter.IsZero() {
			n++
		}
	}
	return n
}

// BatterIDs returns the distinct non-empty batter identifiers in first-seen order.
func (b PitchBatch) BatterIDs() []SourceID {
	seen := make(map[SourceID]struct{}, len(b.Events))
	var out []SourceID
	for _, e := range b.Events {
		if e.Batter.IsZero() {
			continue
		}
		if _, ok := seen[e.Batter]; ok {
			continue
		}
		seen[e.Batter] = struct{}{}
		out = append(out, e.Batter)
	}
	return out
}

// SeasonStats is one player-season row from the aggregate batting source.
type SeasonStats struct {
	Player TargetID
	Fields map[string]string
}

// StatsBatch is the set of season rows loaded for one run.
type StatsBatch struct {
	Columns []string
	Rows    []SeasonStats
}

// ---- Assembled outputs ----

// FeatureRecord is a joined event/stats row. Values follows FeatureColumns
// order; Row holds the full joined row for passthrough to the prediction file.
type FeatureRecord struct {
	Batter SourceID
	Player TargetID
	Label  Label
	Values []float64
	Row    map[string]string
}
