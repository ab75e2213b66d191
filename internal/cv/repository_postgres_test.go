package cv

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func cvRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "title", "full_name", "professional_title",
		"email", "phone", "location", "professional_summary", "skills",
		"experiences", "education", "created_at", "updated_at",
	})
}

func TestPostgresGetByIDFiltersByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := cvRows().AddRow(
		5, 1, "Jane Doe - Engineer", "Jane Doe", "Engineer",
		"j@example.com", "123", "Berlin", "summary", "Go, SQL",
		`[{"title":"Dev","employer":"Acme","duration":"2020-2022","description":"Built things"}]`,
		`[]`, "2025-01-01T00:00:00Z", "2025-01-01T00:00:00Z",
	)
	mock.ExpectQuery("FROM cvs").WithArgs(1, 5).WillReturnRows(rows)

	c, err := repo.GetByID(1, 5)
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if len(c.Experiences) != 1 || c.Experiences[0].Employer != "Acme" {
		t.Fatalf("experiences column not decoded: %+v", c.Experiences)
	}
	if len(c.Education) != 0 {
		t.Fatalf("expected empty education, got %+v", c.Education)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByIDCorruptListColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := cvRows().AddRow(
		5, 1, "t", "f", "p", "e", "ph", "l", "s", "sk",
		"not json at all", "", "2025-01-01T00:00:00Z", "2025-01-01T00:00:00Z",
	)
	mock.ExpectQuery("FROM cvs").WithArgs(1, 5).WillReturnRows(rows)

	c, err := repo.GetByID(1, 5)
	if err != nil {
		t.Fatalf("corrupt list column must not fail the read: %v", err)
	}
	if len(c.Experiences) != 0 || len(c.Education) != 0 {
		t.Fatalf("expected empty lists, got %+v / %+v", c.Experiences, c.Education)
	}
}

// Zero rows affected means the id is missing or belongs to someone else;
// both come back as ErrNotFound.
func TestPostgresUpdateZeroRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE cvs").WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = repo.Update(2, 5, CV{FullName: "Mallory", ProfessionalTitle: "Intruder"})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresUpdateReloadsFreshRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE cvs").WillReturnResult(sqlmock.NewResult(0, 1))
	rows := cvRows().AddRow(
		5, 1, "Jane Doe - Staff Engineer", "Jane Doe", "Staff Engineer",
		"", "", "", "", "", "[]", "[]",
		"2025-01-01T00:00:00Z", "2025-06-01T00:00:00Z",
	)
	mock.ExpectQuery("FROM cvs").WithArgs(1, 5).WillReturnRows(rows)

	updated, err := repo.Update(1, 5, CV{FullName: "Jane Doe", ProfessionalTitle: "Staff Engineer"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "Jane Doe - Staff Engineer" {
		t.Fatalf("unexpected reloaded record: %+v", updated)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresDeleteZeroRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("DELETE FROM cvs").WithArgs(2, 5).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(2, 5); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := cvRows().
		AddRow(7, 1, "new", "n", "p", "", "", "", "", "", "[]", "[]", "2025-06-01T00:00:00Z", "2025-06-01T00:00:00Z").
		AddRow(3, 1, "old", "o", "p", "", "", "", "", "", "[]", "[]", "2025-01-01T00:00:00Z", "2025-01-01T00:00:00Z")
	mock.ExpectQuery("FROM cvs").WithArgs(1).WillReturnRows(rows)

	list, err := repo.ListByUser(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 2 || list[0].Title != "new" {
		t.Fatalf("unexpected list: %+v", list)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
