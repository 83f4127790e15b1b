package employee

import (
	"fmt"
	"strconv"
	"strings"
)

// Field は検証対象の入力フィールドです。
type Field string

const (
	FieldName   Field = "name"
	FieldSalary Field = "salary"
)

// Fields は検証対象フィールドを表示順で返します。
func Fields() []Field {
	return []Field{FieldName, FieldSalary}
}

// ParseField はフィールド名を Field に変換します。
func ParseField(raw string) (Field, error) {
	switch Field(strings.ToLower(strings.TrimSpace(raw))) {
	case FieldName:
		return FieldName, nil
	case FieldSalary:
		return FieldSalary, nil
	default:
		return "", fmt.Errorf("%q: %w", raw, ErrUnknownField)
	}
}

func requiredError(field Field) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("%s es requerido", field)}
}

func nonNegativeError(field Field) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("%s debe ser mayor o igual a 0", field)}
}

// ValidateName は名前が空白のみでないことを検証します。
func ValidateName(value string) *ValidationError {
	if strings.TrimSpace(value) == "" {
		return requiredError(FieldName)
	}
	return nil
}

// ValidateSalary は給与が 0 以上であることを検証します。
func ValidateSalary(value int64) *ValidationError {
	if value < 0 {
		return nonNegativeError(FieldSalary)
	}
	return nil
}

// ParseSalary は給与の入力文字列を整数に変換し検証します。
// 数値として解釈できない入力は負数と同じエラーになります。
func ParseSalary(raw string) (int64, *ValidationError) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, nonNegativeError(FieldSalary)
	}
	if verr := ValidateSalary(value); verr != nil {
		return 0, verr
	}
	return value, nil
}

// ValidateField は単一フィールドの生入力を検証します。
// 呼び出しタイミング (blur, submit など) は呼び出し側が決めます。
func ValidateField(field Field, raw string) (*ValidationError, error) {
	switch field {
	case FieldName:
		return ValidateName(raw), nil
	case FieldSalary:
		_, verr := ParseSalary(raw)
		return verr, nil
	default:
		return nil, fmt.Errorf("%q: %w", field, ErrUnknownField)
	}
}
