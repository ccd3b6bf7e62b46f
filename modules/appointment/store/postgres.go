package store

import (
	"context"
	"fmt"

	"appointment-sync/core/database"
	"appointment-sync/core/logger"
)

// PostgresScheduleAccessor backs the schedule store with a Postgres table
// instead of a JSON file. It honors the same Accessor contract: an
// unreachable database reads as an empty collection, never as an error.
type PostgresScheduleAccessor struct {
	db database.IDatabase
}

type scheduleRow struct {
	ID          int    `db:"id"`
	Date        string `db:"date"`
	Time        string `db:"time"`
	Description string `db:"description"`
	Timestamp   string `db:"timestamp"`
}

func NewPostgresScheduleAccessor(db database.IDatabase) *PostgresScheduleAccessor {
	return &PostgresScheduleAccessor{db: db}
}

// EnsureSchema creates the backing table when absent, mirroring how the file
// accessor creates its backing file on first write.
func (p *PostgresScheduleAccessor) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS schedule_records (
			id INTEGER NOT NULL,
			date TEXT NOT NULL,
			"time" TEXT NOT NULL,
			description TEXT NOT NULL,
			"timestamp" TEXT NOT NULL
		)
	`
	return p.db.ExecContext(ctx, query)
}

func (p *PostgresScheduleAccessor) List() []RawRecord {
	var rows []scheduleRow
	query := `SELECT id, date, "time", description, "timestamp" FROM schedule_records`
	if err := p.db.SelectContext(context.Background(), &rows, query); err != nil {
		logger.Warn("PostgresScheduleAccessor:List:Error:", err)
		return []RawRecord{}
	}

	records := make([]RawRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, RawRecord{
			"id":          row.ID,
			"date":        row.Date,
			"time":        row.Time,
			"description": row.Description,
			"timestamp":   row.Timestamp,
		})
	}
	return records
}

func (p *PostgresScheduleAccessor) Append(record RawRecord) error {
	row, err := rowFromRecord(record)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO schedule_records (id, date, "time", description, "timestamp")
		VALUES (:id, :date, :time, :description, :timestamp)
	`
	if _, err := p.db.NamedExecContext(context.Background(), query, row); err != nil {
		logger.Error("PostgresScheduleAccessor:Append:Error:", err)
		return err
	}
	return nil
}

func (p *PostgresScheduleAccessor) ReplaceAll(records []RawRecord) error {
	rows := make([]scheduleRow, 0, len(records))
	for _, record := range records {
		row, err := rowFromRecord(record)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	tx, err := p.db.SQLx().Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM schedule_records`); err != nil {
		return fmt.Errorf("failed to clear schedule records: %w", err)
	}
	for _, row := range rows {
		_, err := tx.NamedExec(`
			INSERT INTO schedule_records (id, date, "time", description, "timestamp")
			VALUES (:id, :date, :time, :description, :timestamp)
		`, row)
		if err != nil {
			return fmt.Errorf("failed to insert schedule record: %w", err)
		}
	}
	return tx.Commit()
}

func rowFromRecord(record RawRecord) (scheduleRow, error) {
	id, ok := asInt(record["id"])
	if !ok {
		return scheduleRow{}, fmt.Errorf("schedule record has non-integer id: %v", record["id"])
	}
	return scheduleRow{
		ID:          id,
		Date:        asString(record["date"]),
		Time:        asString(record["time"]),
		Description: asString(record["description"]),
		Timestamp:   asString(record["timestamp"]),
	}, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
