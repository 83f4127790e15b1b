package employee

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// IDGenerator は社員 ID を採番します。採番済みの ID は再利用されません。
type IDGenerator interface {
	NewID() (string, error)
}

// uuidGenerator は時刻順に並ぶ UUIDv7 を払い出します。
type uuidGenerator struct{}

func (uuidGenerator) NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("employee: generate id: %w", err)
	}
	return id.String(), nil
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Service は社員レコードの作成・一覧・更新・削除を担うレコードストアです。
// 書き込みは常に検証を通過した値のみをコミットします。
type Service struct {
	repo  Repository
	clock Clock
	tx    TransactionManager
	ids   IDGenerator
}

// UseCase はレコードストアの公開インターフェースです。
type UseCase interface {
	CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error)
	GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error)
	ListEmployees(ctx context.Context) ([]*Employee, error)
	UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error)
	DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) error
}

// NewService は Service を生成します。nil の依存はデフォルト実装で補われます。
func NewService(repo Repository, clock Clock, tx TransactionManager, ids IDGenerator) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if ids == nil {
		ids = uuidGenerator{}
	}
	return &Service{repo: repo, clock: clock, tx: tx, ids: ids}
}

// CreateEmployeeInput は社員作成時の入力です。
type CreateEmployeeInput struct {
	Name     string
	Position string
	Salary   int64
}

// UpdateEmployeeInput は社員更新時の入力です。nil のフィールドは変更されません。
type UpdateEmployeeInput struct {
	ID       string
	Name     *string
	Position *string
	Salary   *int64
}

// DeleteEmployeeInput は社員削除時の入力です。
type DeleteEmployeeInput struct {
	ID string
}

// GetEmployeeInput は社員取得時の入力です。
type GetEmployeeInput struct {
	ID string
}

// CreateEmployee は入力を検証し、新しい社員レコードを作成します。
func (s *Service) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error) {
	failure := NewValidationFailure(ValidateName(in.Name), ValidateSalary(in.Salary))
	if err := failure.Err(); err != nil {
		return nil, err
	}

	id, err := s.ids.NewID()
	if err != nil {
		return nil, err
	}

	var created *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		result, err := s.repo.Create(txCtx, &Employee{
			ID:        id,
			Name:      strings.TrimSpace(in.Name),
			Position:  in.Position,
			Salary:    in.Salary,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}
		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateEmployee は指定されたフィールドのみを既存レコードへマージします。
func (s *Service) UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error) {
	if isBlankID(in.ID) {
		return nil, ErrEmployeeNotFound
	}

	var updated *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		failure := NewValidationFailure()
		if in.Name != nil {
			failure.Add(ValidateName(*in.Name))
		}
		if in.Salary != nil {
			failure.Add(ValidateSalary(*in.Salary))
		}
		if err := failure.Err(); err != nil {
			return err
		}

		if in.Name != nil {
			existing.Name = strings.TrimSpace(*in.Name)
		}
		if in.Position != nil {
			existing.Position = *in.Position
		}
		if in.Salary != nil {
			existing.Salary = *in.Salary
		}
		existing.UpdatedAt = s.clock.Now()

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}
		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteEmployee は社員レコードを削除します。
func (s *Service) DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) error {
	if isBlankID(in.ID) {
		return ErrEmployeeNotFound
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, in.ID)
	})
}

// GetEmployee は社員レコードを取得します。
func (s *Service) GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error) {
	if isBlankID(in.ID) {
		return nil, ErrEmployeeNotFound
	}

	var result *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ListEmployees は全社員を作成順で返します。0 件の場合は空スライスです。
func (s *Service) ListEmployees(ctx context.Context) ([]*Employee, error) {
	var employees []*Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.List(txCtx)
		if err != nil {
			return err
		}
		employees = found
		return nil
	}); err != nil {
		return nil, err
	}

	if employees == nil {
		employees = []*Employee{}
	}
	return employees, nil
}

// 空の ID はどのレコードにも一致しないため未検出として扱います。
func isBlankID(id string) bool {
	return strings.TrimSpace(id) == ""
}
