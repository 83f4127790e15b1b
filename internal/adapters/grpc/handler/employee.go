package handler

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ogurasousui/employee-registry/internal/core/employee"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// EmployeeGrpcHandler は EmployeeService の gRPC 実装です。
type EmployeeGrpcHandler struct {
	lifecycle employee.Lifecycle
}

var _ EmployeeServiceServer = (*EmployeeGrpcHandler)(nil)

// NewEmployeeGrpcHandler は EmployeeGrpcHandler を生成します。
func NewEmployeeGrpcHandler(lifecycle employee.Lifecycle) *EmployeeGrpcHandler {
	return &EmployeeGrpcHandler{lifecycle: lifecycle}
}

// RegisterEmployee は社員を登録します。
func (h *EmployeeGrpcHandler) RegisterEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	name, _ := textField(req, "name")
	position, _ := textField(req, "position")
	salary, _ := textField(req, "salary")

	created, err := h.lifecycle.RegisterEmployee(ctx, name, position, salary)
	if err != nil {
		return nil, toStatusError(err)
	}

	return h.employeeResponse(created)
}

// ListEmployees は社員の一覧を作成順で返します。
func (h *EmployeeGrpcHandler) ListEmployees(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	employees, err := h.lifecycle.ListEmployees(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}

	items := make([]any, 0, len(employees))
	for _, emp := range employees {
		items = append(items, h.toEmployeeMap(emp))
	}

	return newStruct(map[string]any{
		"employees": items,
		"empty":     len(employees) == 0,
	})
}

// GetEmployee は社員を取得します。
func (h *EmployeeGrpcHandler) GetEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	id, _ := textField(req, "id")
	found, err := h.lifecycle.GetEmployee(ctx, id)
	if err != nil {
		return nil, toStatusError(err)
	}

	return h.employeeResponse(found)
}

// UpdateEmployee は指定されたキーのみを更新します。存在しないキーは変更されません。
func (h *EmployeeGrpcHandler) UpdateEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	id, _ := textField(req, "id")

	var fields employee.UpdateFields
	if v, ok := textField(req, "name"); ok {
		fields.Name = &v
	}
	if v, ok := textField(req, "position"); ok {
		fields.Position = &v
	}
	if v, ok := textField(req, "salary"); ok {
		fields.SalaryText = &v
	}

	updated, err := h.lifecycle.UpdateEmployee(ctx, id, fields)
	if err != nil {
		return nil, toStatusError(err)
	}

	return h.employeeResponse(updated)
}

// RemoveEmployee は confirmed が true の場合のみ社員を削除します。
func (h *EmployeeGrpcHandler) RemoveEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	id, _ := textField(req, "id")
	confirmed := req.GetFields()["confirmed"].GetBoolValue()

	if err := h.lifecycle.RemoveEmployee(ctx, id, confirmed); err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"removed": confirmed})
}

// ValidateField は単一フィールドを検証します。
func (h *EmployeeGrpcHandler) ValidateField(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	rawField, _ := textField(req, "field")
	field, err := employee.ParseField(rawField)
	if err != nil {
		return nil, toStatusError(err)
	}

	value, _ := textField(req, "value")
	verr, err := h.lifecycle.ValidateFieldOnBlur(field, value)
	if err != nil {
		return nil, toStatusError(err)
	}
	if verr == nil {
		return newStruct(map[string]any{"valid": true})
	}

	return newStruct(map[string]any{
		"valid":   false,
		"field":   string(verr.Field),
		"message": verr.Message,
	})
}

// FormatCurrency は金額を表示用の通貨文字列に変換します。
func (h *EmployeeGrpcHandler) FormatCurrency(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	amount, err := int64Field(req, "amount")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("amount: %v", err))
	}

	return newStruct(map[string]any{"formatted": h.lifecycle.FormatCurrency(amount)})
}

func (h *EmployeeGrpcHandler) employeeResponse(emp *employee.Employee) (*structpb.Struct, error) {
	return newStruct(map[string]any{"employee": h.toEmployeeMap(emp)})
}

// toEmployeeMap は社員を Struct 用の map に変換します。
// salary は 2^53 を超える値でも桁落ちしないよう文字列で返します。
func (h *EmployeeGrpcHandler) toEmployeeMap(emp *employee.Employee) map[string]any {
	if emp == nil {
		return nil
	}

	return map[string]any{
		"id":             emp.ID,
		"name":           emp.Name,
		"position":       emp.Position,
		"salary":         strconv.FormatInt(emp.Salary, 10),
		"salary_display": h.lifecycle.FormatCurrency(emp.Salary),
		"created_at":     emp.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at":     emp.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func newStruct(m map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return s, nil
}

// textField は文字列または数値のフィールドを生の入力文字列として取り出します。
// キーが存在しない、もしくは null の場合 ok は false です。
func textField(s *structpb.Struct, key string) (string, bool) {
	v, ok := s.GetFields()[key]
	if !ok {
		return "", false
	}

	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return kind.StringValue, true
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(kind.NumberValue, 'f', -1, 64), true
	case *structpb.Value_BoolValue:
		return strconv.FormatBool(kind.BoolValue), true
	case *structpb.Value_NullValue:
		return "", false
	default:
		return "", true
	}
}

func int64Field(s *structpb.Struct, key string) (int64, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return 0, fmt.Errorf("is required")
	}

	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		n := kind.NumberValue
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, fmt.Errorf("must be an integer")
		}
		return int64(n), nil
	case *structpb.Value_StringValue:
		n, err := strconv.ParseInt(strings.TrimSpace(kind.StringValue), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("must be an integer")
		}
		return n, nil
	default:
		return 0, fmt.Errorf("must be an integer")
	}
}
