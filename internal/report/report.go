// Package report aggregates the session journal into billing and time
// summaries with DuckDB SQL over the JSONL files.
package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tas-github/ogeemo-timekeeper/internal/db"
)

const queryTimeout = 30 * time.Second

// TaskTotal is the aggregate tracked time for one task.
type TaskTotal struct {
	TaskID         string
	Label          string
	SessionCount   int
	TotalSeconds   int64
	BillableAmount float64
	LastLogged     time.Time
}

// WeekTotal is the aggregate tracked time for one ISO week.
type WeekTotal struct {
	WeekStart      time.Time
	SessionCount   int
	TotalSeconds   int64
	BillableAmount float64
}

// TaskTotals sums the journal per task, most recently logged first.
func TaskTotals(ctx context.Context, glob string) ([]TaskTotal, error) {
	database, err := db.Analytics()
	if err != nil {
		return nil, err
	}
	// Don't close the singleton connection

	query := fmt.Sprintf(`
		SELECT
			CAST(taskId AS VARCHAR) as task_id,
			MAX(label) as label,
			COUNT(*) as session_count,
			SUM(durationSeconds) as total_seconds,
			SUM(CASE WHEN isBillable THEN durationSeconds / 3600.0 * billableRate ELSE 0 END) as billable_amount,
			MAX(loggedAt) as last_logged
		FROM read_json('%s',
			format = 'newline_delimited',
			union_by_name = true,
			filename = true
		)
		WHERE taskId IS NOT NULL
		GROUP BY taskId
		ORDER BY MAX(loggedAt) DESC
	`, glob)

	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := database.QueryContext(queryCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute task totals query: %w", err)
	}
	defer rows.Close()

	var totals []TaskTotal
	for rows.Next() {
		var total TaskTotal
		var lastLogged sql.NullString
		if err := rows.Scan(&total.TaskID, &total.Label, &total.SessionCount,
			&total.TotalSeconds, &total.BillableAmount, &lastLogged); err != nil {
			continue
		}
		if lastLogged.Valid {
			if t, err := time.Parse(time.RFC3339, lastLogged.String); err == nil {
				total.LastLogged = t.Local()
			}
		}
		totals = append(totals, total)
	}
	return totals, rows.Err()
}

// WeeklyTotals rolls the journal up by week. taskID narrows the rollup
// to one task; empty covers everything.
func WeeklyTotals(ctx context.Context, glob, taskID string) ([]WeekTotal, error) {
	database, err := db.Analytics()
	if err != nil {
		return nil, err
	}
	// Don't close the singleton connection

	filter := ""
	var args []interface{}
	if taskID != "" {
		filter = "AND CAST(taskId AS VARCHAR) = ?"
		args = append(args, taskID)
	}

	query := fmt.Sprintf(`
		SELECT
			date_trunc('week', to_timestamp(endTime / 1000)) as week_start,
			COUNT(*) as session_count,
			SUM(durationSeconds) as total_seconds,
			SUM(CASE WHEN isBillable THEN durationSeconds / 3600.0 * billableRate ELSE 0 END) as billable_amount
		FROM read_json('%s',
			format = 'newline_delimited',
			union_by_name = true,
			filename = true
		)
		WHERE taskId IS NOT NULL
		%s
		GROUP BY 1
		ORDER BY 1 DESC
	`, glob, filter)

	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := database.QueryContext(queryCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute weekly totals query: %w", err)
	}
	defer rows.Close()

	var totals []WeekTotal
	for rows.Next() {
		var total WeekTotal
		if err := rows.Scan(&total.WeekStart, &total.SessionCount,
			&total.TotalSeconds, &total.BillableAmount); err != nil {
			continue
		}
		totals = append(totals, total)
	}
	return totals, rows.Err()
}
