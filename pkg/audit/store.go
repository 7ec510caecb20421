package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq"
)

// Record is a persisted audit event
type Record struct {
	ID        int64                        `json:"id"`
	Facility  int                          `json:"facility"`
	Severity  Severity                     `json:"severity"`
	Timestamp time.Time                    `json:"timestamp"`
	Hostname  string                       `json:"hostname"`
	Procid    string                       `json:"procid"`
	Msgid     string                       `json:"msgid"`
	Sdata     map[string]map[string]string `json:"sdata"`
	Message   string                       `json:"message"`
}

// Store reads and writes the audit_messages table
type Store struct {
	db       *sql.DB
	hostname string
	procid   string
	now      func() time.Time
}

// NewStore opens the store at IDREPO_AUDIT_DATABASE_URL, or returns nil when
// it is unset.
func NewStore() (*Store, error) {
	dbURL := os.Getenv("IDREPO_AUDIT_DATABASE_URL")
	if dbURL == "" {
		return nil, nil
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}
	return NewStoreWithDB(db), nil
}

// NewStoreWithDB creates a store over an existing connection
func NewStoreWithDB(db *sql.DB) *Store {
	hostname, _ := os.Hostname()
	return &Store{
		db:       db,
		hostname: hostname,
		procid:   strconv.Itoa(os.Getpid()),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save inserts one event
func (s *Store) Save(ctx context.Context, event Event) error {
	if s.db == nil {
		return nil
	}

	sdata, err := json.Marshal(event.StructuredData())
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO audit_messages (facility, severity, timestamp, hostname, appname, procid, msgid, sdata, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		event.Facility(),
		int(event.Severity()),
		s.now(),
		s.hostname,
		"idrepo",
		s.procid,
		event.MessageID(),
		sdata,
		event.Message(),
	)
	return err
}

// List returns up to limit records, newest first. An empty msgid matches
// every message type.
func (s *Store) List(ctx context.Context, msgid string, limit int) ([]Record, error) {
	if s.db == nil {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, facility, severity, timestamp, hostname, procid, msgid, sdata, message
		FROM audit_messages
		WHERE $1 = '' OR msgid = $1
		ORDER BY id DESC
		LIMIT $2
	`, msgid, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec   Record
			sdata []byte
		)
		if err := rows.Scan(&rec.ID, &rec.Facility, &rec.Severity, &rec.Timestamp,
			&rec.Hostname, &rec.Procid, &rec.Msgid, &sdata, &rec.Message); err != nil {
			return nil, err
		}
		if len(sdata) > 0 {
			if err := json.Unmarshal(sdata, &rec.Sdata); err != nil {
				return nil, err
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
