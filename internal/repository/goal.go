package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/checkhealth/goals/internal/model"
	"github.com/jmoiron/sqlx"
)

// DateLayout is how calendar dates are stored and exchanged.
const DateLayout = "2006-01-02"

var (
	ErrGoalNotFound = errors.New("goal not found")
)

// GoalRepository is the persistence port for goals.
// It adds no locking: concurrent writes to the same goal are last-write-wins.
type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	Update(ctx context.Context, goal *model.Goal) error
	ByID(ctx context.Context, goalID int64) (*model.Goal, error)
	Exists(ctx context.Context, goalID int64) (bool, error)
	Goals(ctx context.Context) ([]*model.Goal, error)
	Delete(ctx context.Context, goalID int64) error

	ByUserID(ctx context.Context, userID string) ([]*model.Goal, error)
	ByStatus(ctx context.Context, status model.GoalStatus) ([]*model.Goal, error)
	ByCategory(ctx context.Context, category model.Category) ([]*model.Goal, error)
	ByUserIDAndStatus(ctx context.Context, userID string, status model.GoalStatus) ([]*model.Goal, error)
	ByStartDateBetween(ctx context.Context, from, to time.Time) ([]*model.Goal, error)
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

// goalRow is the flattened table layout of a goal.
type goalRow struct {
	ID                      int64          `db:"id"`
	UserID                  string         `db:"user_id"`
	Title                   string         `db:"title"`
	Description             string         `db:"description"`
	Category                string         `db:"category"`
	Type                    string         `db:"type"`
	StartDate               sql.NullString `db:"start_date"`
	EndDate                 sql.NullString `db:"end_date"`
	FrequencyPeriodicity    sql.NullString `db:"frequency_periodicity"`
	FrequencyTimesPerPeriod sql.NullInt64  `db:"frequency_times_per_period"`
	Difficulty              string         `db:"difficulty"`
	RewardPoints            sql.NullInt64  `db:"reward_points"`
	RewardBadge             sql.NullString `db:"reward_badge"`
	Status                  string         `db:"status"`
	Notifications           sql.NullBool   `db:"notifications"`
	ProgressCompleted       sql.NullInt64  `db:"progress_completed"`
	ProgressTotal           sql.NullInt64  `db:"progress_total"`
	ProgressUnit            sql.NullString `db:"progress_unit"`
	CreatedAt               time.Time      `db:"created_at"`
	UpdatedAt               time.Time      `db:"updated_at"`
}

const goalColumns = `id, user_id, title, description, category, type, start_date, end_date,
	frequency_periodicity, frequency_times_per_period, difficulty, reward_points, reward_badge,
	status, notifications, progress_completed, progress_total, progress_unit, created_at, updated_at`

func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) error {
	row := toRow(goal)
	query := `INSERT INTO goals (user_id, title, description, category, type, start_date, end_date,
	              frequency_periodicity, frequency_times_per_period, difficulty, reward_points, reward_badge,
	              status, notifications, progress_completed, progress_total, progress_unit, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	          RETURNING id`

	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		row.UserID,
		row.Title,
		row.Description,
		row.Category,
		row.Type,
		row.StartDate,
		row.EndDate,
		row.FrequencyPeriodicity,
		row.FrequencyTimesPerPeriod,
		row.Difficulty,
		row.RewardPoints,
		row.RewardBadge,
		row.Status,
		row.Notifications,
		row.ProgressCompleted,
		row.ProgressTotal,
		row.ProgressUnit,
		row.CreatedAt,
		row.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}

	goal.ID = id
	return nil
}

// Update rewrites every mutable column. id and created_at are never written.
func (r *goalRepository) Update(ctx context.Context, goal *model.Goal) error {
	goal.UpdatedAt = time.Now()
	row := toRow(goal)
	query := `UPDATE goals
	          SET title = $1, description = $2, category = $3, type = $4, start_date = $5, end_date = $6,
	              frequency_periodicity = $7, frequency_times_per_period = $8, difficulty = $9,
	              reward_points = $10, reward_badge = $11, status = $12, notifications = $13,
	              progress_completed = $14, progress_total = $15, progress_unit = $16, updated_at = $17
	          WHERE id = $18`

	result, err := r.db.ExecContext(ctx, query,
		row.Title,
		row.Description,
		row.Category,
		row.Type,
		row.StartDate,
		row.EndDate,
		row.FrequencyPeriodicity,
		row.FrequencyTimesPerPeriod,
		row.Difficulty,
		row.RewardPoints,
		row.RewardBadge,
		row.Status,
		row.Notifications,
		row.ProgressCompleted,
		row.ProgressTotal,
		row.ProgressUnit,
		row.UpdatedAt,
		row.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) ByID(ctx context.Context, goalID int64) (*model.Goal, error) {
	var row goalRow
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, goalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return row.toModel(), nil
}

func (r *goalRepository) Exists(ctx context.Context, goalID int64) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM goals WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, goalID).Scan(&count)
	return count > 0, err
}

func (r *goalRepository) Goals(ctx context.Context) ([]*model.Goal, error) {
	return r.selectGoals(ctx, `ORDER BY id`)
}

func (r *goalRepository) Delete(ctx context.Context, goalID int64) error {
	query := `DELETE FROM goals WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, goalID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) ByUserID(ctx context.Context, userID string) ([]*model.Goal, error) {
	return r.selectGoals(ctx, `WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *goalRepository) ByStatus(ctx context.Context, status model.GoalStatus) ([]*model.Goal, error) {
	return r.selectGoals(ctx, `WHERE status = $1 ORDER BY id`, string(status))
}

func (r *goalRepository) ByCategory(ctx context.Context, category model.Category) ([]*model.Goal, error) {
	return r.selectGoals(ctx, `WHERE category = $1 ORDER BY id`, string(category))
}

func (r *goalRepository) ByUserIDAndStatus(ctx context.Context, userID string, status model.GoalStatus) ([]*model.Goal, error) {
	return r.selectGoals(ctx, `WHERE user_id = $1 AND status = $2 ORDER BY id`, userID, string(status))
}

// ByStartDateBetween returns goals starting within [from, to], both inclusive.
func (r *goalRepository) ByStartDateBetween(ctx context.Context, from, to time.Time) ([]*model.Goal, error) {
	return r.selectGoals(ctx, `WHERE start_date >= $1 AND start_date <= $2 ORDER BY start_date, id`,
		from.Format(DateLayout), to.Format(DateLayout))
}

func (r *goalRepository) selectGoals(ctx context.Context, clause string, args ...any) ([]*model.Goal, error) {
	var rows []goalRow
	query := `SELECT ` + goalColumns + ` FROM goals ` + clause

	err := r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, err
	}

	goals := make([]*model.Goal, 0, len(rows))
	for i := range rows {
		goals = append(goals, rows[i].toModel())
	}
	return goals, nil
}

func toRow(g *model.Goal) goalRow {
	row := goalRow{
		ID:          g.ID,
		UserID:      g.UserID,
		Title:       g.Title,
		Description: g.Description,
		Category:    string(g.Category),
		Type:        string(g.Type),
		StartDate:   nullDate(g.StartDate),
		EndDate:     nullDate(g.EndDate),
		Difficulty:  string(g.Difficulty),
		Status:      string(g.Status),
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
	if g.Frequency != nil {
		row.FrequencyPeriodicity = sql.NullString{String: g.Frequency.Periodicity, Valid: true}
		row.FrequencyTimesPerPeriod = sql.NullInt64{Int64: int64(g.Frequency.TimesPerPeriod), Valid: true}
	}
	if g.Reward != nil {
		row.RewardBadge = sql.NullString{String: g.Reward.Badge, Valid: true}
		if g.Reward.Points != nil {
			row.RewardPoints = sql.NullInt64{Int64: int64(*g.Reward.Points), Valid: true}
		}
	}
	if g.Notifications != nil {
		row.Notifications = sql.NullBool{Bool: *g.Notifications, Valid: true}
	}
	if g.Progress != nil {
		row.ProgressCompleted = sql.NullInt64{Int64: int64(g.Progress.Completed), Valid: true}
		row.ProgressTotal = sql.NullInt64{Int64: int64(g.Progress.Total), Valid: true}
		row.ProgressUnit = sql.NullString{String: g.Progress.Unit, Valid: true}
	}
	return row
}

func (row *goalRow) toModel() *model.Goal {
	g := &model.Goal{
		ID:          row.ID,
		UserID:      row.UserID,
		Title:       row.Title,
		Description: row.Description,
		Category:    model.Category(row.Category),
		Type:        model.GoalType(row.Type),
		StartDate:   parseDate(row.StartDate),
		EndDate:     parseDate(row.EndDate),
		Difficulty:  model.Difficulty(row.Difficulty),
		Status:      model.GoalStatus(row.Status),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.FrequencyPeriodicity.Valid || row.FrequencyTimesPerPeriod.Valid {
		g.Frequency = &model.Frequency{
			Periodicity:    row.FrequencyPeriodicity.String,
			TimesPerPeriod: int(row.FrequencyTimesPerPeriod.Int64),
		}
	}
	// The badge column marks reward presence; points are optional inside it.
	if row.RewardBadge.Valid || row.RewardPoints.Valid {
		g.Reward = &model.Reward{Badge: row.RewardBadge.String}
		if row.RewardPoints.Valid {
			points := int(row.RewardPoints.Int64)
			g.Reward.Points = &points
		}
	}
	if row.Notifications.Valid {
		notifications := row.Notifications.Bool
		g.Notifications = &notifications
	}
	if row.ProgressCompleted.Valid {
		g.Progress = &model.Progress{
			Completed: int(row.ProgressCompleted.Int64),
			Total:     int(row.ProgressTotal.Int64),
			Unit:      row.ProgressUnit.String,
		}
	}
	return g
}

func nullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(DateLayout), Valid: true}
}

func parseDate(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	t, err := time.Parse(DateLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}
