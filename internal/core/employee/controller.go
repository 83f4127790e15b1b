package employee

import (
	"context"

	"github.com/ogurasousui/employee-registry/internal/core/money"
)

// Lifecycle は表示層から呼び出される社員ライフサイクルの操作群です。
type Lifecycle interface {
	RegisterEmployee(ctx context.Context, name, position, salaryText string) (*Employee, error)
	ListEmployees(ctx context.Context) ([]*Employee, error)
	GetEmployee(ctx context.Context, id string) (*Employee, error)
	UpdateEmployee(ctx context.Context, id string, fields UpdateFields) (*Employee, error)
	RemoveEmployee(ctx context.Context, id string, confirmed bool) error
	FormatCurrency(amount int64) string
	ValidateFieldOnBlur(field Field, value string) (*ValidationError, error)
}

// UpdateFields は更新要求の生入力です。nil のフィールドは変更されません。
type UpdateFields struct {
	Name       *string
	Position   *string
	SalaryText *string
}

// Controller は生入力を解析・検証し、レコードストアへ委譲します。
type Controller struct {
	store UseCase
}

var _ Lifecycle = (*Controller)(nil)

// NewController は Controller を生成します。
func NewController(store UseCase) *Controller {
	return &Controller{store: store}
}

// RegisterEmployee は給与文字列を解析したうえで社員を登録します。
func (c *Controller) RegisterEmployee(ctx context.Context, name, position, salaryText string) (*Employee, error) {
	salary, salaryErr := ParseSalary(salaryText)
	failure := NewValidationFailure(ValidateName(name), salaryErr)
	if err := failure.Err(); err != nil {
		return nil, err
	}

	return c.store.CreateEmployee(ctx, CreateEmployeeInput{
		Name:     name,
		Position: position,
		Salary:   salary,
	})
}

// ListEmployees は全社員を作成順で返します。空スライスは「社員なし」の表示状態を表します。
func (c *Controller) ListEmployees(ctx context.Context) ([]*Employee, error) {
	return c.store.ListEmployees(ctx)
}

// GetEmployee は社員を取得します。
func (c *Controller) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	return c.store.GetEmployee(ctx, GetEmployeeInput{ID: id})
}

// UpdateEmployee は指定されたフィールドのみを更新します。
func (c *Controller) UpdateEmployee(ctx context.Context, id string, fields UpdateFields) (*Employee, error) {
	in := UpdateEmployeeInput{
		ID:       id,
		Name:     fields.Name,
		Position: fields.Position,
	}

	failure := NewValidationFailure()
	if fields.Name != nil {
		failure.Add(ValidateName(*fields.Name))
	}
	if fields.SalaryText != nil {
		salary, verr := ParseSalary(*fields.SalaryText)
		failure.Add(verr)
		in.Salary = &salary
	}
	if err := failure.Err(); err != nil {
		return nil, err
	}

	return c.store.UpdateEmployee(ctx, in)
}

// RemoveEmployee は confirmed が true の場合のみ社員を削除します。
// false の場合は何もせず nil を返します。
func (c *Controller) RemoveEmployee(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return nil
	}
	return c.store.DeleteEmployee(ctx, DeleteEmployeeInput{ID: id})
}

// FormatCurrency は給与を表示用の通貨文字列に変換します。
func (c *Controller) FormatCurrency(amount int64) string {
	return money.FormatCurrency(amount)
}

// ValidateFieldOnBlur は単一フィールドを他フィールドと独立に検証します。
func (c *Controller) ValidateFieldOnBlur(field Field, value string) (*ValidationError, error) {
	return ValidateField(field, value)
}
