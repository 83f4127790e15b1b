package employee

import (
	"errors"
	"strings"
)

var (
	ErrInvalidID        = errors.New("employee: invalid id")
	ErrEmployeeNotFound = errors.New("employee: not found")
	ErrUnknownField     = errors.New("employee: unknown field")
	// ErrValidation は ValidationFailure と errors.Is で一致します。
	ErrValidation = errors.New("employee: validation failed")
)

// ValidationError は単一フィールドの検証エラーです。
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidationFailure は書き込み操作を拒否した検証エラーの集合です。
// エラーはフィールドごとに高々 1 件保持されます。
type ValidationFailure struct {
	errs map[Field]*ValidationError
}

// NewValidationFailure は与えられたフィールドエラーから ValidationFailure を生成します。
// nil のエラーは無視されます。
func NewValidationFailure(errs ...*ValidationError) *ValidationFailure {
	f := &ValidationFailure{errs: make(map[Field]*ValidationError, len(errs))}
	for _, err := range errs {
		f.Add(err)
	}
	return f
}

// Add はフィールドエラーを登録します。同じフィールドのエラーは置き換えられます。
func (f *ValidationFailure) Add(err *ValidationError) {
	if err == nil {
		return
	}
	if f.errs == nil {
		f.errs = make(map[Field]*ValidationError)
	}
	f.errs[err.Field] = err
}

// Get は指定フィールドのエラーを返します。存在しなければ nil です。
func (f *ValidationFailure) Get(field Field) *ValidationError {
	if f == nil {
		return nil
	}
	return f.errs[field]
}

// Errors はフィールドエラーをフィールド定義順で返します。
func (f *ValidationFailure) Errors() []*ValidationError {
	if f == nil {
		return nil
	}
	out := make([]*ValidationError, 0, len(f.errs))
	for _, field := range Fields() {
		if err, ok := f.errs[field]; ok {
			out = append(out, err)
		}
	}
	return out
}

// Empty はエラーが 1 件も登録されていなければ true を返します。
func (f *ValidationFailure) Empty() bool {
	return f == nil || len(f.errs) == 0
}

// Err はエラーが登録されていれば自身を、そうでなければ nil を返します。
func (f *ValidationFailure) Err() error {
	if f.Empty() {
		return nil
	}
	return f
}

func (f *ValidationFailure) Error() string {
	errs := f.Errors()
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(messages, "; ")
}

func (f *ValidationFailure) Is(target error) bool {
	return target == ErrValidation
}
