package server

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/joseph-ayodele/bizledger/internal/common"
)

// Metadata keys read from incoming requests.
const (
	UserIDKey    = "x-user-id"
	RequestIDKey = "x-request-id"
)

// IdentityInterceptor copies the caller's user id and request id from the
// request metadata into the context. A missing user id means an anonymous
// caller; a malformed one is rejected.
func IdentityInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		if raw := first(md, UserIDKey); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil || id == uuid.Nil {
				return nil, common.UnauthenticatedError("x-user-id must be a UUID")
			}
			ctx = common.WithUserID(ctx, id)
		}
		requestID := first(md, RequestIDKey)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = common.WithRequestID(ctx, requestID)
		return handler(ctx, req)
	}
}

// LoggingInterceptor logs one line per call. Chain it after
// IdentityInterceptor so the request id is known.
func LoggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		_, signedIn := common.UserIDFromContext(ctx)
		logger.Info("grpc.request",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"signed_in", signedIn,
			"request_id", common.RequestIDFromContext(ctx),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return resp, err
	}
}

func first(md metadata.MD, key string) string {
	if vals := md.Get(key); len(vals) > 0 {
		return strings.TrimSpace(vals[0])
	}
	return ""
}
