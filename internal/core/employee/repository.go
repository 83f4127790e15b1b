package employee

import "context"

// Repository は社員永続化の抽象です。
// List は作成順 (古い順) で全件を返し、0 件なら空スライスを返します。
type Repository interface {
	Create(ctx context.Context, employee *Employee) (*Employee, error)
	Update(ctx context.Context, employee *Employee) (*Employee, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	List(ctx context.Context) ([]*Employee, error)
}
