//go:build !grpc

package grpcmw

import (
	"context"
	"testing"
)

func TestUnaryServerInterceptorStub(t *testing.T) {
	interceptor := UnaryServerInterceptor(nil)

	_, err := interceptor(context.Background(), nil, nil, nil)
	if err != ErrGRPCNotEnabled {
		t.Fatalf("expected ErrGRPCNotEnabled, received %v", err)
	}
}

func TestStreamServerInterceptorStub(t *testing.T) {
	interceptor := StreamServerInterceptor(nil)

	err := interceptor(nil, nil, nil, nil)
	if err != ErrGRPCNotEnabled {
		t.Fatalf("expected ErrGRPCNotEnabled, received %v", err)
	}
}
