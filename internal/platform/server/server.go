package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/ogurasousui/employee-registry/internal/adapters/grpc/handler"
	"github.com/ogurasousui/employee-registry/internal/core/employee"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
	logger     *slog.Logger
}

// New は指定されたアドレスで待ち受ける gRPC サーバーを構築し、EmployeeService を登録します。
func New(listenAddr string, lifecycle employee.Lifecycle, logger *slog.Logger, opts ...grpc.ServerOption) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(LoggingUnaryInterceptor(logger))}, opts...)
	srv := grpc.NewServer(opts...)
	handler.RegisterEmployeeServiceServer(srv, handler.NewEmployeeGrpcHandler(lifecycle))

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
		logger:     logger,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は与えられたリスナーで待ち受けます。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.GracefulStop()
	}()

	s.logger.Info("gRPC server listening", slog.String("addr", lis.Addr().String()))
	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	return nil
}

// GracefulStop は処理中のリクエストの完了を待ってサーバーを停止します。
func (s *Server) GracefulStop() {
	s.logger.Info("shutting down gRPC server")
	s.grpcServer.GracefulStop()
}

// LoggingUnaryInterceptor はメソッド名・gRPC コード・処理時間を記録します。
func LoggingUnaryInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)

		code := status.Code(err)
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelWarn
		}
		logger.LogAttrs(ctx, level, "grpc request",
			slog.String("method", info.FullMethod),
			slog.String("code", code.String()),
			slog.Duration("duration", time.Since(start)),
		)
		return resp, err
	}
}
