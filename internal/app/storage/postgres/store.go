// Package postgres implements the storage interfaces backed by PostgreSQL.
//
// Availability semantics: every method asks the shared handle for a ready
// connection first. Reads degrade to empty results when the store is
// unreachable so dashboards keep rendering; writes surface the error so no
// user data is silently dropped.
package postgres

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/storage"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/platform/database"
)

// Store implements the storage interfaces backed by PostgreSQL.
type Store struct {
	h *database.Handle
}

var _ storage.TimeAuditStore = (*Store)(nil)
var _ storage.GoalStore = (*Store)(nil)
var _ storage.PomodoroStore = (*Store)(nil)
var _ storage.MetricStore = (*Store)(nil)
var _ storage.AccountabilityStore = (*Store)(nil)
var _ storage.RelationshipStore = (*Store)(nil)
var _ storage.PlanningStore = (*Store)(nil)
var _ storage.InsightStore = (*Store)(nil)
var _ storage.VoiceStore = (*Store)(nil)

// New creates a Store over the provided database handle.
func New(h *database.Handle) *Store {
	return &Store{h: h}
}

// --- Patch assembly ---------------------------------------------------------

// setBuilder accumulates SET clauses with positional arguments for partial
// updates. Absent patch fields never appear in the statement.
type setBuilder struct {
	cols []string
	args []any
}

func (b *setBuilder) set(col string, v any) {
	b.args = append(b.args, v)
	b.cols = append(b.cols, fmt.Sprintf("%s = $%d", col, len(b.args)))
}

func (b *setBuilder) empty() bool { return len(b.cols) == 0 }

// where appends the trailing arguments and renders the final statement.
func (b *setBuilder) where(table, cond string, args ...any) (string, []any) {
	placeholders := make([]any, 0, len(args))
	for _, a := range args {
		b.args = append(b.args, a)
		placeholders = append(placeholders, len(b.args))
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s", table, strings.Join(b.cols, ", "), fmt.Sprintf(cond, placeholders...)), b.args
}

// --- Null conversions -------------------------------------------------------

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}

func nullIntPtr(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func nullFloatPtr(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func nullTimePtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func intPtr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
