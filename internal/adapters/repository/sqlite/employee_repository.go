package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ogurasousui/employee-registry/internal/core/employee"
	sqlitedb "github.com/ogurasousui/employee-registry/internal/platform/db/sqlite"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const schema = `
CREATE TABLE IF NOT EXISTS employees (
    seq        INTEGER PRIMARY KEY AUTOINCREMENT,
    id         TEXT    NOT NULL UNIQUE,
    name       TEXT    NOT NULL CONSTRAINT employees_name_check CHECK (trim(name) <> ''),
    position   TEXT    NOT NULL DEFAULT '',
    salary     INTEGER NOT NULL CONSTRAINT employees_salary_check CHECK (salary >= 0),
    created_at TEXT    NOT NULL,
    updated_at TEXT    NOT NULL
)`

const selectColumns = `id, name, position, salary, created_at, updated_at`

// EmployeeRepository は SQLite を利用した社員永続化の実装です。
type EmployeeRepository struct {
	db sqlitedb.Execer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(db sqlitedb.Execer) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

var _ employee.Repository = (*EmployeeRepository)(nil)

// Migrate は employees テーブルが存在しなければ作成します。
func Migrate(ctx context.Context, db sqlitedb.Execer) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlite: migrate employees: %w", err)
	}
	return nil
}

// Create は社員を新規作成します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := sqlitedb.ExecerFromContext(ctx, r.db)
	row := exec.QueryRowContext(ctx, `
        INSERT INTO employees (id, name, position, salary, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
        RETURNING `+selectColumns,
		e.ID, e.Name, e.Position, e.Salary, formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
	)

	created, err := scanEmployee(row)
	if err != nil {
		return nil, translateSQLiteError(err)
	}
	return created, nil
}

// Update は社員情報を更新します。
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := sqlitedb.ExecerFromContext(ctx, r.db)
	row := exec.QueryRowContext(ctx, `
        UPDATE employees
           SET name = ?, position = ?, salary = ?, updated_at = ?
         WHERE id = ?
        RETURNING `+selectColumns,
		e.Name, e.Position, e.Salary, formatTime(e.UpdatedAt), e.ID,
	)

	updated, err := scanEmployee(row)
	if err != nil {
		return nil, translateSQLiteError(err)
	}
	return updated, nil
}

// Delete は社員を削除します。
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	exec := sqlitedb.ExecerFromContext(ctx, r.db)
	res, err := exec.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return translateSQLiteError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// FindByID は ID で社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	exec := sqlitedb.ExecerFromContext(ctx, r.db)
	row := exec.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM employees WHERE id = ?`, id)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateSQLiteError(err)
	}
	return found, nil
}

// List は社員を作成順で取得します。
func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	exec := sqlitedb.ExecerFromContext(ctx, r.db)
	rows, err := exec.QueryContext(ctx, `SELECT `+selectColumns+` FROM employees ORDER BY seq ASC`)
	if err != nil {
		return nil, translateSQLiteError(err)
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, translateSQLiteError(err)
	}
	return employees, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*employee.Employee, error) {
	var (
		emp                  employee.Employee
		createdAt, updatedAt string
	)

	if err := row.Scan(&emp.ID, &emp.Name, &emp.Position, &emp.Salary, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	var err error
	if emp.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if emp.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &emp, nil
}

func translateSQLiteError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) && isCheckViolation(sqliteErr.Code()) {
		msg := sqliteErr.Error()
		switch {
		case strings.Contains(msg, "employees_name_check"):
			return employee.NewValidationFailure(employee.ValidateName(""))
		case strings.Contains(msg, "employees_salary_check"):
			return employee.NewValidationFailure(employee.ValidateSalary(-1))
		}
	}
	return err
}

// 拡張エラーコードが無効な接続では基本コードのみが返ります。
func isCheckViolation(code int) bool {
	return code == sqlite3.SQLITE_CONSTRAINT_CHECK || code&0xff == sqlite3.SQLITE_CONSTRAINT
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse timestamp %q: %w", raw, err)
	}
	return t, nil
}
