package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/CtIaMbaCK/betterus-server/internal/constants"
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
)

// StatsRepository runs the dashboard aggregates over raw SQL. It keeps its
// own sqlx handle so the queries stay independent of the ORM layer.
type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

type roleCount struct {
	Role  string `db:"role"`
	Count int64  `db:"count"`
}

type statusCount struct {
	Status string `db:"status"`
	Count  int64  `db:"count"`
}

func (r *StatsRepository) UserStats(ctx context.Context, since time.Time) (*dtos.UserStats, error) {
	stats := &dtos.UserStats{
		ByRole:   map[string]int64{},
		ByStatus: map[string]int64{},
	}

	var roles []roleCount
	if err := r.db.SelectContext(ctx, &roles, constants.CountUsersByRole); err != nil {
		return nil, fmt.Errorf("failed to count users by role: %w", err)
	}
	for _, rc := range roles {
		stats.ByRole[rc.Role] = rc.Count
		stats.Total += rc.Count
	}

	var statuses []statusCount
	if err := r.db.SelectContext(ctx, &statuses, constants.CountUsersByStatus); err != nil {
		return nil, fmt.Errorf("failed to count users by status: %w", err)
	}
	for _, sc := range statuses {
		stats.ByStatus[sc.Status] = sc.Count
	}

	if err := r.db.GetContext(ctx, &stats.NewInRange, constants.CountUsersSince, since); err != nil {
		return nil, fmt.Errorf("failed to count new users: %w", err)
	}

	return stats, nil
}

func (r *StatsRepository) CampaignStats(ctx context.Context) (*dtos.CampaignStats, error) {
	var row struct {
		Total      int64 `db:"total"`
		Ongoing    int64 `db:"ongoing"`
		Completed  int64 `db:"completed"`
		Volunteers int64 `db:"volunteers"`
	}
	if err := r.db.GetContext(ctx, &row, constants.CountCampaignTotals); err != nil {
		return nil, fmt.Errorf("failed to aggregate campaigns: %w", err)
	}
	return &dtos.CampaignStats{
		Total:      row.Total,
		Ongoing:    row.Ongoing,
		Completed:  row.Completed,
		Volunteers: row.Volunteers,
	}, nil
}

func (r *StatsRepository) HelpRequestStats(ctx context.Context) (*dtos.HelpRequestStats, error) {
	stats := &dtos.HelpRequestStats{ByStatus: map[string]int64{}}

	var statuses []statusCount
	if err := r.db.SelectContext(ctx, &statuses, constants.CountHelpRequestsByStatus); err != nil {
		return nil, fmt.Errorf("failed to count help requests: %w", err)
	}
	for _, sc := range statuses {
		stats.ByStatus[sc.Status] = sc.Count
		stats.Total += sc.Count
	}
	return stats, nil
}

func (r *StatsRepository) RegistrationStats(ctx context.Context, since time.Time) (*dtos.RegistrationStats, error) {
	var row struct {
		InRange  int64 `db:"in_range"`
		Attended int64 `db:"attended"`
	}
	if err := r.db.GetContext(ctx, &row, constants.CountRegistrationsSince, since); err != nil {
		return nil, fmt.Errorf("failed to aggregate registrations: %w", err)
	}
	return &dtos.RegistrationStats{InRange: row.InRange, Attended: row.Attended}, nil
}

func (r *StatsRepository) TopDistricts(ctx context.Context, limit int) ([]dtos.DistrictActivity, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []dtos.DistrictActivity
	if err := r.db.SelectContext(ctx, &rows, constants.TopDistricts, limit); err != nil {
		return nil, fmt.Errorf("failed to rank districts: %w", err)
	}
	return rows, nil
}

func (r *StatsRepository) MessageVolume(ctx context.Context, since time.Time) (*dtos.MessageVolumeStats, error) {
	var row struct {
		Total   int64 `db:"total"`
		InRange int64 `db:"in_range"`
	}
	if err := r.db.GetContext(ctx, &row, constants.CountMessages, since); err != nil {
		return nil, fmt.Errorf("failed to aggregate messages: %w", err)
	}
	return &dtos.MessageVolumeStats{Total: row.Total, InRange: row.InRange}, nil
}
