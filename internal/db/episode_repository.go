package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/hordesim/internal/game/episode"
)

// EpisodeRepository stores finished episodes.
type EpisodeRepository struct {
	pool *pgxpool.Pool
}

// NewEpisodeRepository creates a new episode repository
func NewEpisodeRepository(pool *pgxpool.Pool) *EpisodeRepository {
	return &EpisodeRepository{pool: pool}
}

// Save inserts episode result. Saving the same ID twice is a no-op.
func (r *EpisodeRepository) Save(ctx context.Context, res episode.Result) error {
	query := `
		INSERT INTO episodes (id, scenario, reward, opponent_reward, shots, hits, kills, steps,
		                      end_reason, started_at, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query,
		res.ID, res.Scenario, res.Reward, res.OpponentReward,
		res.Shots, res.Hits, res.Kills, res.Steps,
		string(res.EndReason), res.StartedAt, res.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("saving episode %s: %w", res.ID, err)
	}
	return nil
}

// Recent returns up to limit latest episodes of scenario, newest first.
// Empty scenario matches all.
func (r *EpisodeRepository) Recent(ctx context.Context, scenario string, limit int) ([]episode.Result, error) {
	query := `
		SELECT id, scenario, reward, opponent_reward, shots, hits, kills, steps,
		       end_reason, started_at, duration_ms
		FROM episodes
		WHERE $1::text = '' OR scenario = $1
		ORDER BY started_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, scenario, limit)
	if err != nil {
		return nil, fmt.Errorf("loading recent episodes: %w", err)
	}
	defer rows.Close()

	results := make([]episode.Result, 0, limit)
	for rows.Next() {
		var (
			res        episode.Result
			id         uuid.UUID
			reason     string
			durationMs int64
		)

		if err := rows.Scan(
			&id, &res.Scenario, &res.Reward, &res.OpponentReward,
			&res.Shots, &res.Hits, &res.Kills, &res.Steps,
			&reason, &res.StartedAt, &durationMs,
		); err != nil {
			return nil, fmt.Errorf("scanning episode row: %w", err)
		}

		res.ID = id
		res.EndReason = episode.EndReason(reason)
		res.Duration = time.Duration(durationMs) * time.Millisecond
		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating episode rows: %w", err)
	}

	return results, nil
}

// ReasonCount is the number of episodes that ended for one reason.
type ReasonCount struct {
	Reason    episode.EndReason
	Count     int
	AvgReward float64
}

// CountByReason groups episodes of scenario by end reason.
func (r *EpisodeRepository) CountByReason(ctx context.Context, scenario string) ([]ReasonCount, error) {
	query := `
		SELECT end_reason, COUNT(*), AVG(reward)
		FROM episodes
		WHERE scenario = $1
		GROUP BY end_reason
		ORDER BY end_reason
	`

	rows, err := r.pool.Query(ctx, query, scenario)
	if err != nil {
		return nil, fmt.Errorf("counting episodes by reason: %w", err)
	}
	defer rows.Close()

	var out []ReasonCount
	for rows.Next() {
		var (
			rc     ReasonCount
			reason string
		)
		if err := rows.Scan(&reason, &rc.Count, &rc.AvgReward); err != nil {
			return nil, fmt.Errorf("scanning reason row: %w", err)
		}
		rc.Reason = episode.EndReason(reason)
		out = append(out, rc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reason rows: %w", err)
	}

	return out, nil
}
