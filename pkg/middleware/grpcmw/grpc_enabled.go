//go:build grpc

package grpcmw

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/hyp3rd/ringlog"
)

// UnaryServerInterceptor publishes one line per unary RPC through the given
// core: method, outcome, duration and, when present, the trace id from the
// incoming metadata. Publication is a slot claim plus a copy; delivery
// happens whenever the application flushes the core.
func UnaryServerInterceptor(core *ringlog.Core, opts ...Option) grpc.UnaryServerInterceptor {
	cfg := actualOptions(opts...)

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		resp, err := handler(ctx, req)

		logCall(ctx, core, cfg, info.FullMethod, time.Since(start), err)

		return resp, err
	}
}

// StreamServerInterceptor publishes one line per streaming RPC through the
// given core, after the stream handler returns.
func StreamServerInterceptor(core *ringlog.Core, opts ...Option) grpc.StreamServerInterceptor {
	cfg := actualOptions(opts...)

	return func(srv any, stream grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()

		err := handler(srv, stream)

		logCall(stream.Context(), core, cfg, info.FullMethod, time.Since(start), err)

		return err
	}
}

func logCall(ctx context.Context, core *ringlog.Core, cfg options, method string, elapsed time.Duration, err error) {
	if core == nil {
		return
	}

	traceID := ""

	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(cfg.traceKey); len(values) > 0 {
			traceID = values[0]
		}
	}

	level := cfg.level
	outcome := "ok"

	if err != nil {
		level = ringlog.ErrorLevel
		outcome = err.Error()
	}

	if traceID != "" {
		_ = core.Logf(level, "rpc %s %s %s trace=%s", method, outcome, elapsed, traceID)

		return
	}

	_ = core.Logf(level, "rpc %s %s %s", method, outcome, elapsed)
}
