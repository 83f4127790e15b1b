package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// EmployeeServiceName は gRPC のサービス名です。
const EmployeeServiceName = "employee.v1.EmployeeService"

// EmployeeServiceServer は EmployeeService のサーバー実装が満たすインターフェースです。
// リクエスト・レスポンスはいずれも google.protobuf.Struct です。
type EmployeeServiceServer interface {
	RegisterEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListEmployees(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ValidateField(context.Context, *structpb.Struct) (*structpb.Struct, error)
	FormatCurrency(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(EmployeeServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(name string, call unaryMethod) grpc.MethodDesc {
	fullMethod := "/" + EmployeeServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(EmployeeServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(EmployeeServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// EmployeeServiceDesc は EmployeeService の grpc.ServiceDesc です。
var EmployeeServiceDesc = grpc.ServiceDesc{
	ServiceName: EmployeeServiceName,
	HandlerType: (*EmployeeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("RegisterEmployee", EmployeeServiceServer.RegisterEmployee),
		unaryHandler("ListEmployees", EmployeeServiceServer.ListEmployees),
		unaryHandler("GetEmployee", EmployeeServiceServer.GetEmployee),
		unaryHandler("UpdateEmployee", EmployeeServiceServer.UpdateEmployee),
		unaryHandler("RemoveEmployee", EmployeeServiceServer.RemoveEmployee),
		unaryHandler("ValidateField", EmployeeServiceServer.ValidateField),
		unaryHandler("FormatCurrency", EmployeeServiceServer.FormatCurrency),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "employee/v1/employee.proto",
}

// RegisterEmployeeServiceServer は EmployeeService を登録します。
func RegisterEmployeeServiceServer(s grpc.ServiceRegistrar, srv EmployeeServiceServer) {
	s.RegisterService(&EmployeeServiceDesc, srv)
}

// EmployeeServiceClient は EmployeeService を呼び出す薄いクライアントです。
type EmployeeServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewEmployeeServiceClient は EmployeeServiceClient を生成します。
func NewEmployeeServiceClient(cc grpc.ClientConnInterface) *EmployeeServiceClient {
	return &EmployeeServiceClient{cc: cc}
}

// Call は指定メソッドを呼び出します。
func (c *EmployeeServiceClient) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+EmployeeServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
