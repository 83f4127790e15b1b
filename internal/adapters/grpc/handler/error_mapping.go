package handler

import (
	"errors"

	"github.com/ogurasousui/employee-registry/internal/core/employee"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatusError(err error) error {
	var failure *employee.ValidationFailure
	switch {
	case err == nil:
		return nil
	case errors.As(err, &failure):
		return validationStatus(failure)
	case errors.Is(err, employee.ErrUnknownField):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, employee.ErrEmployeeNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func validationStatus(failure *employee.ValidationFailure) error {
	st := status.New(codes.InvalidArgument, failure.Error())

	violations := make([]*errdetails.BadRequest_FieldViolation, 0, len(failure.Errors()))
	for _, verr := range failure.Errors() {
		violations = append(violations, &errdetails.BadRequest_FieldViolation{
			Field:       string(verr.Field),
			Description: verr.Message,
		})
	}

	detailed, err := st.WithDetails(&errdetails.BadRequest{FieldViolations: violations})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

// FieldViolations は InvalidArgument ステータスからフィールド単位のエラーを取り出します。
func FieldViolations(err error) map[string]string {
	st, ok := status.FromError(err)
	if !ok {
		return nil
	}

	out := make(map[string]string)
	for _, detail := range st.Details() {
		br, ok := detail.(*errdetails.BadRequest)
		if !ok {
			continue
		}
		for _, v := range br.GetFieldViolations() {
			out[v.GetField()] = v.GetDescription()
		}
	}
	return out
}
