package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pable/go-mlb-hits/internal/model"
	"github.com/pable/go-mlb-hits/internal/predictions"
)

// InsertRun records a finished run. An empty ID is filled with a new UUID,
// which is returned. Uses INSERT OR REPLACE for idempotency.
func (db *DB) InsertRun(r model.RunRecord) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	var acc sql.NullFloat64
	if r.Accuracy != nil {
		acc = sql.NullFloat64{Float64: *r.Accuracy, Valid: true}
	}
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO runs(id, command, started_at, finished_at, status,
			events, with_batter, resolved, joined, usable, predicted_hits, accuracy, message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Command, r.StartedAt.UTC().Format(time.RFC3339Nano), r.FinishedAt.UTC().Format(time.RFC3339Nano),
		string(r.Status), r.Events, r.WithBatter, r.Resolved, r.Joined, r.Usable, r.PredictedHits,
		acc, r.Message,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return r.ID, nil
}

// ListRuns returns the most recent runs first. limit <= 0 returns all.
func (db *DB) ListRuns(limit int) ([]model.RunRecord, error) {
	q := `SELECT id, command, started_at, finished_at, status,
		events, with_batter, resolved, joined, usable, predicted_hits, accuracy, message
		FROM runs ORDER BY started_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RunRecord
	for rows.Next() {
		var r model.RunRecord
		var started, finished, status string
		var acc sql.NullFloat64
		if err := rows.Scan(&r.ID, &r.Command, &started, &finished, &status,
			&r.Events, &r.WithBatter, &r.Resolved, &r.Joined, &r.Usable, &r.PredictedHits,
			&acc, &r.Message); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		r.Status = model.RunStatus(status)
		if acc.Valid {
			v := acc.Float64
			r.Accuracy = &v
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReplacePredictions swaps the stored snapshot for the rows of set, in one
// transaction. Returns the number of rows stored.
func (db *DB) ReplacePredictions(runID string, set *predictions.Set) (int, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM predictions"); err != nil {
		return 0, fmt.Errorf("clear predictions: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO predictions(run_id, row_num, game_date, batter, idfg, name, team, events,
			launch_speed, launch_angle, wrc_plus, avg, obp, predicted_hit)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i := 0; i < set.Len(); i++ {
		_, err = stmt.Exec(
			runID, i,
			nullText(set.Get(i, "game_date")), nullText(set.Get(i, model.ColBatter)),
			nullText(set.Get(i, model.ColTargetID)), nullText(set.Get(i, model.ColName)),
			nullText(set.Get(i, model.ColTeam)), nullText(set.Get(i, model.ColOutcome)),
			nullReal(set, i, model.ColLaunchSpeed), nullReal(set, i, "launch_angle"),
			nullReal(set, i, model.ColWRCPlus), nullReal(set, i, "AVG"), nullReal(set, i, "OBP"),
			int(set.Label(i)),
		)
		if err != nil {
			return 0, fmt.Errorf("insert prediction row %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return set.Len(), nil
}

// CountPredictions returns the stored snapshot size and its predicted hits.
func (db *DB) CountPredictions() (total, hits int, err error) {
	err = db.conn.QueryRow(
		"SELECT COUNT(1), COALESCE(SUM(predicted_hit), 0) FROM predictions").Scan(&total, &hits)
	return total, hits, err
}

// QueryRaw runs an arbitrary query and returns every value rendered as text.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = rawString(v)
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func rawString(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case float64:
		return fmt.Sprintf("%.4g", x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

func nullText(s string) sql.NullString {
	if model.IsNull(s) {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullReal(set *predictions.Set, i int, col string) sql.NullFloat64 {
	v, ok := set.Frame.Float(i, col)
	return sql.NullFloat64{Float64: v, Valid: ok}
}
