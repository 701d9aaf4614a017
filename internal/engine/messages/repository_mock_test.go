package messages

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mattn/go-sqlite3"
)

// Infrastructure failures must stay distinct from duplicates: only a
// constraint violation maps to OutcomeDuplicate, anything else surfaces
// as an error.

func TestRepository_InsertInfraError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	infraErr := errors.New("disk I/O error")
	mock.ExpectExec("INSERT INTO messages").WillReturnError(infraErr)

	repo := NewRepository(db)
	_, err = repo.Insert(&Message{MessageID: "m1", From: "+1", To: "+2", TS: "2025-01-15T10:00:00Z"})
	if !errors.Is(err, infraErr) {
		t.Errorf("Insert() error = %v, want the infra error", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepository_InsertConstraintIsDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO messages").WillReturnError(sqlite3.Error{
		Code:         sqlite3.ErrConstraint,
		ExtendedCode: sqlite3.ErrConstraintPrimaryKey,
	})

	repo := NewRepository(db)
	outcome, err := repo.Insert(&Message{MessageID: "m1", From: "+1", To: "+2", TS: "2025-01-15T10:00:00Z"})
	if err != nil {
		t.Fatalf("Insert() error = %v, want nil for a constraint violation", err)
	}
	if outcome != OutcomeDuplicate {
		t.Errorf("Insert() outcome = %v, want duplicate", outcome)
	}
}

func TestRepository_QueryInfraError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	infraErr := errors.New("database is locked")
	mock.ExpectQuery("SELECT COUNT").WillReturnError(infraErr)

	repo := NewRepository(db)
	_, _, err = repo.Query(Filter{}, 10, 0)
	if !errors.Is(err, infraErr) {
		t.Errorf("Query() error = %v, want the infra error", err)
	}
}

func TestRepository_IsReadyDowngradesErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT name FROM sqlite_master").WillReturnError(errors.New("connection lost"))

	repo := NewRepository(db)
	if repo.IsReady() {
		t.Error("IsReady() = true despite a connectivity error")
	}
}
