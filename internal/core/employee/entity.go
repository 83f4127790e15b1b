package employee

import "time"

// Employee は社員レコードです。ID は作成時に採番され、以後変更されません。
type Employee struct {
	ID        string
	Name      string
	Position  string
	Salary    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone は社員レコードのコピーを返します。
func (e *Employee) Clone() *Employee {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}
