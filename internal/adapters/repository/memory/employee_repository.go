package memory

import (
	"context"
	"sync"

	"github.com/ogurasousui/employee-registry/internal/core/employee"
)

// EmployeeRepository はプロセス内メモリで社員を保持する実装です。
// 並行リクエストに備えてストア単位でロックします。
type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]*employee.Employee
	order     []string
}

// NewEmployeeRepository は空の EmployeeRepository を生成します。
func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{employees: make(map[string]*employee.Employee)}
}

var _ employee.Repository = (*EmployeeRepository)(nil)

// Create は社員を追加します。
func (r *EmployeeRepository) Create(_ context.Context, e *employee.Employee) (*employee.Employee, error) {
	if e == nil || e.ID == "" {
		return nil, employee.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.employees[e.ID]; exists {
		return nil, employee.ErrInvalidID
	}
	r.employees[e.ID] = e.Clone()
	r.order = append(r.order, e.ID)
	return e.Clone(), nil
}

// Update は既存の社員を置き換えます。
func (r *EmployeeRepository) Update(_ context.Context, e *employee.Employee) (*employee.Employee, error) {
	if e == nil {
		return nil, employee.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[e.ID]; !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	r.employees[e.ID] = e.Clone()
	return e.Clone(), nil
}

// Delete は社員を削除します。
func (r *EmployeeRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.employees, id)
	for idx, existingID := range r.order {
		if existingID == id {
			r.order = append(r.order[:idx], r.order[idx+1:]...)
			break
		}
	}
	return nil
}

// FindByID は ID で社員を取得します。
func (r *EmployeeRepository) FindByID(_ context.Context, id string) (*employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emp, ok := r.employees[id]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	return emp.Clone(), nil
}

// List は作成順で全社員を返します。
func (r *EmployeeRepository) List(_ context.Context) ([]*employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*employee.Employee, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.employees[id].Clone())
	}
	return out, nil
}
