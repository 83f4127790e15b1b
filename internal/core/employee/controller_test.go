package employee

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestController() (*Controller, *fakeEmployeeRepo) {
	repo := newFakeEmployeeRepo()
	svc := NewService(repo, &stubClock{now: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}, nil, &sequenceIDs{})
	return NewController(svc), repo
}

func strPtr(s string) *string {
	return &s
}

func mustRegister(t *testing.T, ctrl *Controller, name, position, salary string) *Employee {
	t.Helper()

	created, err := ctrl.RegisterEmployee(context.Background(), name, position, salary)
	if err != nil {
		t.Fatalf("RegisterEmployee returned error: %v", err)
	}
	return created
}

func validationFailure(t *testing.T, err error) *ValidationFailure {
	t.Helper()

	var failure *ValidationFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected ValidationFailure, got %v", err)
	}
	return failure
}

func TestController_RegisterEmployee(t *testing.T) {
	t.Parallel()

	ctrl, _ := newTestController()

	created := mustRegister(t, ctrl, "John Doe", "Senior Developer", "5000000")
	if created.Salary != 5000000 {
		t.Fatalf("expected salary 5000000, got %d", created.Salary)
	}

	employees, err := ctrl.ListEmployees(context.Background())
	if err != nil {
		t.Fatalf("ListEmployees returned error: %v", err)
	}
	if len(employees) != 1 {
		t.Fatalf("expected 1 employee, got %d", len(employees))
	}
}

func TestController_RegisterEmployee_EmptyName(t *testing.T) {
	t.Parallel()

	ctrl, repo := newTestController()

	_, err := ctrl.RegisterEmployee(context.Background(), "", "x", "5000000")
	failure := validationFailure(t, err)

	if got := failure.Get(FieldName); got == nil || got.Message != nameRequiredMessage {
		t.Fatalf("unexpected name error %v", got)
	}
	if got := failure.Get(FieldSalary); got != nil {
		t.Fatalf("expected no salary error, got %v", got)
	}
	if len(repo.employees) != 0 {
		t.Fatalf("expected no records, got %d", len(repo.employees))
	}
}

func TestController_RegisterEmployee_NegativeAndMalformedSalary(t *testing.T) {
	t.Parallel()

	ctrl, repo := newTestController()

	for _, salary := range []string{"-5000000", "five million"} {
		_, err := ctrl.RegisterEmployee(context.Background(), "John Doe", "x", salary)
		failure := validationFailure(t, err)

		if got := failure.Get(FieldSalary); got == nil || got.Message != salaryNegativeMessage {
			t.Fatalf("salary %q: unexpected salary error %v", salary, got)
		}
	}
	if len(repo.employees) != 0 {
		t.Fatalf("expected no records, got %d", len(repo.employees))
	}
}

func TestController_RegisterEmployee_ReportsAllFields(t *testing.T) {
	t.Parallel()

	ctrl, _ := newTestController()

	_, err := ctrl.RegisterEmployee(context.Background(), " ", "x", "-1")
	if n := len(validationFailure(t, err).Errors()); n != 2 {
		t.Fatalf("expected 2 field errors, got %d", n)
	}
}

func TestController_UpdateEmployee_RoundTrip(t *testing.T) {
	t.Parallel()

	ctrl, _ := newTestController()
	ctx := context.Background()

	created := mustRegister(t, ctrl, "John Doe", "Senior Developer", "5000000")

	updated, err := ctrl.UpdateEmployee(ctx, created.ID, UpdateFields{
		Name:       strPtr("Juan Perez"),
		SalaryText: strPtr("6000000"),
	})
	if err != nil {
		t.Fatalf("UpdateEmployee returned error: %v", err)
	}
	if updated.Name != "Juan Perez" || updated.Salary != 6000000 || updated.Position != "Senior Developer" {
		t.Fatalf("unexpected update result %+v", updated)
	}
	if got := ctrl.FormatCurrency(updated.Salary); got != "$6,000,000" {
		t.Fatalf("unexpected formatted salary %s", got)
	}

	employees, err := ctrl.ListEmployees(ctx)
	if err != nil {
		t.Fatalf("ListEmployees returned error: %v", err)
	}
	if len(employees) != 1 || employees[0].Name != "Juan Perez" {
		t.Fatalf("unexpected list %+v", employees)
	}
}

func TestController_UpdateEmployee_NotFound(t *testing.T) {
	t.Parallel()

	ctrl, _ := newTestController()

	for _, id := range []string{"unknown", "", "  "} {
		_, err := ctrl.UpdateEmployee(context.Background(), id, UpdateFields{Name: strPtr("X")})
		if !errors.Is(err, ErrEmployeeNotFound) {
			t.Fatalf("UpdateEmployee(%q): expected ErrEmployeeNotFound, got %v", id, err)
		}
	}
}

func TestController_UpdateEmployee_InvalidSalaryText(t *testing.T) {
	t.Parallel()

	ctrl, repo := newTestController()

	created := mustRegister(t, ctrl, "John Doe", "Dev", "100")

	_, err := ctrl.UpdateEmployee(context.Background(), created.ID, UpdateFields{SalaryText: strPtr("-1")})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if got := repo.employees[created.ID].Salary; got != 100 {
		t.Fatalf("expected salary unchanged at 100, got %d", got)
	}
}

func TestController_RemoveEmployee(t *testing.T) {
	t.Parallel()

	ctrl, _ := newTestController()
	ctx := context.Background()

	created := mustRegister(t, ctrl, "John Doe", "Senior Developer", "5000000")

	if err := ctrl.RemoveEmployee(ctx, created.ID, false); err != nil {
		t.Fatalf("unconfirmed RemoveEmployee returned error: %v", err)
	}
	employees, err := ctrl.ListEmployees(ctx)
	if err != nil {
		t.Fatalf("ListEmployees returned error: %v", err)
	}
	if len(employees) != 1 {
		t.Fatalf("expected cancelled removal to keep the record, got %d", len(employees))
	}

	if err := ctrl.RemoveEmployee(ctx, created.ID, true); err != nil {
		t.Fatalf("RemoveEmployee returned error: %v", err)
	}
	employees, err = ctrl.ListEmployees(ctx)
	if err != nil {
		t.Fatalf("ListEmployees returned error: %v", err)
	}
	if len(employees) != 0 {
		t.Fatalf("expected empty list, got %d", len(employees))
	}

	if err := ctrl.RemoveEmployee(ctx, created.ID, true); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestController_RemoveEmployee_BlankIDIsNotFound(t *testing.T) {
	t.Parallel()

	ctrl, _ := newTestController()

	for _, id := range []string{"", "  "} {
		if err := ctrl.RemoveEmployee(context.Background(), id, true); !errors.Is(err, ErrEmployeeNotFound) {
			t.Fatalf("RemoveEmployee(%q): expected ErrEmployeeNotFound, got %v", id, err)
		}
	}
}

func TestController_ValidateFieldOnBlur(t *testing.T) {
	t.Parallel()

	ctrl, _ := newTestController()

	verr, err := ctrl.ValidateFieldOnBlur(FieldName, "")
	if err != nil || verr == nil {
		t.Fatalf("expected name error, got %v / %v", verr, err)
	}

	verr, err = ctrl.ValidateFieldOnBlur(FieldName, "John Doe")
	if err != nil || verr != nil {
		t.Fatalf("expected valid name, got %v / %v", verr, err)
	}
}
