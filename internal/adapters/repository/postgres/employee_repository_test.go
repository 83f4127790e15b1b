package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/employee-registry/internal/core/employee"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

type stubEmployeeRow struct {
	scanFn func(dest ...interface{}) error
}

func (s stubEmployeeRow) Scan(dest ...interface{}) error {
	return s.scanFn(dest...)
}

var employeeColumns = []string{"id", "name", "position", "salary", "created_at", "updated_at"}

func TestScanEmployee_Success(t *testing.T) {
	t.Parallel()

	createdAt := time.Now().UTC()
	updatedAt := createdAt.Add(time.Minute)

	row := stubEmployeeRow{scanFn: func(dest ...interface{}) error {
		if len(dest) != 6 {
			return errors.New("unexpected dest length")
		}
		*(dest[0].(*string)) = "emp-1"
		*(dest[1].(*string)) = "John Doe"
		*(dest[2].(*string)) = "Senior Developer"
		*(dest[3].(*int64)) = 5000000
		*(dest[4].(*time.Time)) = createdAt
		*(dest[5].(*time.Time)) = updatedAt
		return nil
	}}

	emp, err := scanEmployee(row)
	if err != nil {
		t.Fatalf("scanEmployee returned error: %v", err)
	}

	if emp.ID != "emp-1" || emp.Name != "John Doe" || emp.Position != "Senior Developer" {
		t.Fatalf("unexpected employee %+v", emp)
	}
	if emp.Salary != 5000000 {
		t.Fatalf("expected salary 5000000, got %d", emp.Salary)
	}
	if !emp.UpdatedAt.Equal(updatedAt) {
		t.Fatalf("expected updated_at %v, got %v", updatedAt, emp.UpdatedAt)
	}
}

func TestScanEmployee_NoRows(t *testing.T) {
	t.Parallel()

	row := stubEmployeeRow{scanFn: func(dest ...interface{}) error {
		return pgx.ErrNoRows
	}}

	_, err := scanEmployee(row)
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestTranslateEmployeePgError(t *testing.T) {
	t.Parallel()

	salaryErr := &pgconn.PgError{Code: employeeCheckViolationCode, ConstraintName: employeeSalaryCheckConstraint}
	var failure *employee.ValidationFailure
	if !errors.As(translateEmployeePgError(salaryErr), &failure) || failure.Get(employee.FieldSalary) == nil {
		t.Fatalf("expected salary check violation to map to a salary validation failure")
	}

	nameErr := &pgconn.PgError{Code: employeeCheckViolationCode, ConstraintName: employeeNameCheckConstraint}
	if !errors.As(translateEmployeePgError(nameErr), &failure) || failure.Get(employee.FieldName) == nil {
		t.Fatalf("expected name check violation to map to a name validation failure")
	}

	invalidUUID := &pgconn.PgError{Code: employeeInvalidTextCode}
	if !errors.Is(translateEmployeePgError(invalidUUID), employee.ErrEmployeeNotFound) {
		t.Fatalf("expected invalid uuid to map to ErrEmployeeNotFound")
	}

	other := errors.New("other")
	if translateEmployeePgError(other) != other {
		t.Fatalf("unexpected translation for generic error")
	}
}

func TestEmployeeRepository_Create(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO employees`).
		WithArgs("emp-1", "John Doe", "Senior Developer", int64(5000000), now, now).
		WillReturnRows(pgxmock.NewRows(employeeColumns).
			AddRow("emp-1", "John Doe", "Senior Developer", int64(5000000), now, now))

	created, err := repo.Create(context.Background(), &employee.Employee{
		ID:        "emp-1",
		Name:      "John Doe",
		Position:  "Senior Developer",
		Salary:    5000000,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != "emp-1" {
		t.Fatalf("expected id emp-1, got %s", created.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_Update_NotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(`UPDATE employees`).
		WithArgs("Juan Perez", "Senior Developer", int64(6000000), now, "missing").
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.Update(context.Background(), &employee.Employee{
		ID:        "missing",
		Name:      "Juan Perez",
		Position:  "Senior Developer",
		Salary:    6000000,
		UpdatedAt: now,
	})
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_Delete(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)

	mock.ExpectExec(`DELETE FROM employees`).
		WithArgs("emp-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM employees`).
		WithArgs("emp-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.Delete(context.Background(), "emp-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := repo.Delete(context.Background(), "emp-1"); !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_List(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)

	now := time.Now().UTC()
	rows := pgxmock.NewRows(employeeColumns).
		AddRow("emp-1", "John Doe", "Senior Developer", int64(5000000), now, now).
		AddRow("emp-2", "Jane Roe", "Manager", int64(7000000), now.Add(time.Second), now.Add(time.Second))

	mock.ExpectQuery(`ORDER BY created_at ASC, id ASC`).WillReturnRows(rows)

	employees, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(employees))
	}
	if employees[0].ID != "emp-1" || employees[1].ID != "emp-2" {
		t.Fatalf("unexpected order: %s, %s", employees[0].ID, employees[1].ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_List_Empty(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)
	mock.ExpectQuery(`FROM employees`).WillReturnRows(pgxmock.NewRows(employeeColumns))

	employees, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if employees == nil || len(employees) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", employees)
	}
}
