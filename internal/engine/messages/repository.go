package messages

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

type InsertOutcome int

const (
	OutcomeCreated InsertOutcome = iota
	OutcomeDuplicate
)

// Filter holds the optional, conjunctive query filters. Zero values mean
// "not set".
type Filter struct {
	From     string // exact sender match
	Since    string // ts >= Since, lexicographic on the fixed-width format
	Contains string // case-sensitive substring of text
}

type SenderCount struct {
	From  string `json:"from"`
	Count int    `json:"count"`
}

type Stats struct {
	TotalMessages int
	SendersCount  int
	PerSender     []SenderCount
	FirstTS       *string
	LastTS        *string
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// InitSchema creates the messages table. Safe to call on every startup.
func (r *Repository) InitSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS messages (
			message_id TEXT PRIMARY KEY,
			from_msisdn TEXT NOT NULL,
			to_msisdn TEXT NOT NULL,
			ts TEXT NOT NULL,
			text TEXT,
			created_at TEXT NOT NULL
		)
	`
	_, err := r.db.Exec(query)
	return err
}

// Insert persists a new message. A primary-key collision is reported as
// OutcomeDuplicate, not an error; duplicate detection is left to the
// engine's constraint so two concurrent inserts of the same id cannot
// both come back as created.
func (r *Repository) Insert(msg *Message) (InsertOutcome, error) {
	createdAt := time.Now().UTC().Format(TimeLayout)

	query := `
		INSERT INTO messages (message_id, from_msisdn, to_msisdn, ts, text, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		msg.MessageID,
		msg.From,
		msg.To,
		msg.TS,
		textValue(msg.Text),
		createdAt,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return OutcomeDuplicate, nil
		}
		return 0, err
	}
	return OutcomeCreated, nil
}

// Query returns one page of messages matching the filters plus the total
// size of the filtered set. Rows are ordered (ts, message_id) so paging is
// deterministic even with ties on ts. The caller validates limit/offset.
func (r *Repository) Query(f Filter, limit, offset int) ([]Message, int, error) {
	var clauses []string
	var args []interface{}

	if f.From != "" {
		clauses = append(clauses, "from_msisdn = ?")
		args = append(args, f.From)
	}
	if f.Since != "" {
		clauses = append(clauses, "ts >= ?")
		args = append(args, f.Since)
	}
	if f.Contains != "" {
		// instr is byte-wise, so the match stays case-sensitive
		// (sqlite LIKE folds ASCII case).
		clauses = append(clauses, "instr(text, ?) > 0")
		args = append(args, f.Contains)
	}

	whereSQL := "1=1"
	if len(clauses) > 0 {
		whereSQL = strings.Join(clauses, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM messages WHERE " + whereSQL
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageQuery := `
		SELECT message_id, from_msisdn, to_msisdn, ts, text
		FROM messages
		WHERE ` + whereSQL + `
		ORDER BY ts ASC, message_id ASC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.Query(pageQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var m Message
		var text sql.NullString
		if err := rows.Scan(&m.MessageID, &m.From, &m.To, &m.TS, &text); err != nil {
			return nil, 0, err
		}
		if text.Valid {
			m.Text = &text.String
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return msgs, total, nil
}

// Stats aggregates over the whole table. FirstTS/LastTS are nil when no
// messages exist. Ties among top senders break on sender ascending, so
// the ranking is stable across queries.
func (r *Repository) Stats() (*Stats, error) {
	stats := &Stats{PerSender: []SenderCount{}}

	if err := r.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&stats.TotalMessages); err != nil {
		return nil, err
	}

	if err := r.db.QueryRow("SELECT COUNT(DISTINCT from_msisdn) FROM messages").Scan(&stats.SendersCount); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(`
		SELECT from_msisdn, COUNT(*) as count
		FROM messages
		GROUP BY from_msisdn
		ORDER BY count DESC, from_msisdn ASC
		LIMIT 10
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sc SenderCount
		if err := rows.Scan(&sc.From, &sc.Count); err != nil {
			return nil, err
		}
		stats.PerSender = append(stats.PerSender, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var firstTS, lastTS sql.NullString
	if err := r.db.QueryRow("SELECT MIN(ts), MAX(ts) FROM messages").Scan(&firstTS, &lastTS); err != nil {
		return nil, err
	}
	if firstTS.Valid {
		stats.FirstTS = &firstTS.String
	}
	if lastTS.Valid {
		stats.LastTS = &lastTS.String
	}

	return stats, nil
}

// IsReady reports whether the store is reachable and the schema exists.
// Every error is downgraded to false.
func (r *Repository) IsReady() bool {
	var name string
	err := r.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='messages'",
	).Scan(&name)
	return err == nil
}

func textValue(text *string) interface{} {
	if text == nil {
		return nil
	}
	return *text
}
