package habits

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/habitflow/backend/internal/telemetry/tracing"
)

const habitColumns = `id::text, owner_id, name, category, icon, scheduled_days, scheduled_time, color, streak, completions, created_at, updated_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanHabit(row pgx.Row) (*Habit, error) {
	var (
		h           Habit
		category    string
		days        []string
		completions []byte
	)
	if err := row.Scan(
		&h.ID,
		&h.OwnerID,
		&h.Name,
		&category,
		&h.Icon,
		&days,
		&h.ScheduledTime,
		&h.Color,
		&h.Streak,
		&completions,
		&h.CreatedAt,
		&h.UpdatedAt,
	); err != nil {
		return nil, err
	}

	h.Category = Category(category)
	h.ScheduledDays = make([]Weekday, 0, len(days))
	for _, d := range days {
		h.ScheduledDays = append(h.ScheduledDays, Weekday(d))
	}
	h.Completions = Completions{}
	if len(completions) > 0 {
		if err := json.Unmarshal(completions, &h.Completions); err != nil {
			return nil, fmt.Errorf("decode completions of habit %s: %w", h.ID, err)
		}
	}
	return &h, nil
}

func daysToStrings(days []Weekday) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, string(d))
	}
	return out
}

func (r *Repo) Find(ctx context.Context, id string) (_ *Habit, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.habits.find")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id))

	h, err := scanHabit(r.db.QueryRow(ctx, `
		SELECT `+habitColumns+`
		FROM habit
		WHERE id = $1::uuid
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrHabitNotFound
		}
		return nil, err
	}
	return h, nil
}

func (r *Repo) FindAllByOwner(ctx context.Context, ownerID int) (_ []*Habit, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.habits.findallbyowner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner", ownerID))

	rows, err := r.db.Query(ctx, `
		SELECT `+habitColumns+`
		FROM habit
		WHERE owner_id = $1
		ORDER BY created_at DESC, id
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := make([]*Habit, 0)
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return habits, nil
}

func (r *Repo) Save(ctx context.Context, h *Habit) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.habits.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	completions, err := json.Marshal(h.Completions)
	if err != nil {
		return fmt.Errorf("encode completions: %w", err)
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO habit (id, owner_id, name, category, icon, scheduled_days, scheduled_time, color, streak, completions)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb)
		RETURNING created_at, updated_at
	`,
		h.ID,
		h.OwnerID,
		h.Name,
		string(h.Category),
		h.Icon,
		daysToStrings(h.ScheduledDays),
		h.ScheduledTime,
		h.Color,
		h.Streak,
		string(completions),
	).Scan(&h.CreatedAt, &h.UpdatedAt)
}

// Update locks the habit row, lets mutate change the loaded habit and writes
// the whole record back in the same transaction. Any error from mutate
// rolls the transaction back and is returned unchanged.
func (r *Repo) Update(ctx context.Context, id string, mutate func(h *Habit) error) (_ *Habit, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.habits.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	h, err := scanHabit(tx.QueryRow(ctx, `
		SELECT `+habitColumns+`
		FROM habit
		WHERE id = $1::uuid
		FOR UPDATE
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrHabitNotFound
		}
		return nil, err
	}

	if err := mutate(h); err != nil {
		return nil, err
	}

	completions, err := json.Marshal(h.Completions)
	if err != nil {
		return nil, fmt.Errorf("encode completions: %w", err)
	}

	err = tx.QueryRow(ctx, `
		UPDATE habit
		SET name = $1, category = $2, icon = $3, scheduled_days = $4, scheduled_time = $5,
			color = $6, streak = $7, completions = $8::jsonb, updated_at = now()
		WHERE id = $9::uuid
		RETURNING updated_at
	`,
		h.Name,
		string(h.Category),
		h.Icon,
		daysToStrings(h.ScheduledDays),
		h.ScheduledTime,
		h.Color,
		h.Streak,
		string(completions),
		id,
	).Scan(&h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (r *Repo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.habits.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM habit WHERE id = $1::uuid`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrHabitNotFound
	}
	return nil
}

// ListIDs returns the ids of every habit, oldest first.
func (r *Repo) ListIDs(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.habits.listids")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id::text FROM habit ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
