package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"solar_planner/internal/models"
	"solar_planner/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

func newRoomRepo(t *testing.T) (*repository.RoomSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	return repository.NewRoomSQLite(db), mock, func() { _ = db.Close() }
}

func TestRoomSQLite_Create(t *testing.T) {
	repo, mock, closeFn := newRoomRepo(t)
	defer closeFn()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rooms")).
		WithArgs("r1", 7, "Lab A", "Lab").
		WillReturnResult(sqlmock.NewResult(1, 1))

	room := models.Room{ID: "r1", Name: "Lab A", Purpose: models.PurposeLab}
	if err := repo.Create(context.Background(), 7, room); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRoomSQLite_List_ScopedByUser(t *testing.T) {
	repo, mock, closeFn := newRoomRepo(t)
	defer closeFn()

	rows := sqlmock.NewRows([]string{"id", "name", "purpose"}).
		AddRow("r1", "Lab A", "Lab").
		AddRow("r2", "Office B", "Office")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, purpose FROM rooms WHERE user_id = ?")).
		WithArgs(7).
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), 7)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 rooms, got %d", len(got))
	}
	if got[0].Purpose != models.PurposeLab {
		t.Errorf("purpose: want %q, got %q", models.PurposeLab, got[0].Purpose)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// Deleting a room must delete its devices in the same transaction.
func TestRoomSQLite_Delete_CascadesToDevices(t *testing.T) {
	repo, mock, closeFn := newRoomRepo(t)
	defer closeFn()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM devices WHERE user_id = ? AND room_id = ?")).
		WithArgs(7, "r1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM rooms WHERE user_id = ? AND id = ?")).
		WithArgs(7, "r1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Delete(context.Background(), 7, "r1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRoomSQLite_Delete_MissingRoom(t *testing.T) {
	repo, mock, closeFn := newRoomRepo(t)
	defer closeFn()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM devices")).
		WithArgs(7, "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM rooms")).
		WithArgs(7, "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 7, "ghost")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRoomSQLite_GetByID_NotFound(t *testing.T) {
	repo, mock, closeFn := newRoomRepo(t)
	defer closeFn()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, purpose FROM rooms")).
		WithArgs(7, "ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 7, "ghost")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
