package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"hotel_admin/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// Journal records every registration attempt that reached the hotel API.
type Journal struct{ db *sql.DB }

func New(db *sql.DB) *Journal { return &Journal{db: db} }

// Open connects and pings. The DSN needs parseTime=true.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	return db, nil
}

func (j *Journal) Record(ctx context.Context, s domain.Submission) error {
	ids := s.AmenityIDs
	if ids == nil {
		ids = []string{}
	}
	amen, _ := json.Marshal(ids)
	_, err := j.db.ExecContext(ctx, insertSubmissionSQL,
		valStr(s.HotelID),
		s.HotelName,
		string(amen),
		string(s.Status),
		valStr(s.Error),
	)
	return err
}

// ListUnassigned returns hotels that were created but never got their amenities.
func (j *Journal) ListUnassigned(ctx context.Context, limit int) ([]domain.Submission, error) {
	rows, err := j.db.QueryContext(ctx, listUnassignedSQL, string(domain.SubmissionAssignFailed), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Submission
	for rows.Next() {
		var (
			s         domain.Submission
			hotelID   sql.NullString
			amenities []byte
			status    string
			msg       sql.NullString
		)
		if err := rows.Scan(&s.ID, &hotelID, &s.HotelName, &amenities, &status, &msg, &s.CreatedAt); err != nil {
			return nil, err
		}
		if hotelID.Valid {
			id := hotelID.String
			s.HotelID = &id
		}
		if msg.Valid {
			m := msg.String
			s.Error = &m
		}
		_ = json.Unmarshal(amenities, &s.AmenityIDs)
		s.Status = domain.SubmissionStatus(status)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ domain.SubmissionJournal = (*Journal)(nil)
