// Package health serves and queries the gRPC health protocol.
package health

import (
	"context"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/encoding/protojson"
)

// Pinger is a dependency whose liveness decides the reported status.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Server reports SERVING for the overall service ("") and for each named
// dependency while its last probe succeeded.
type Server struct {
	grpc *grpc.Server
	hs   *health.Server
	log  *zap.Logger

	mu     sync.Mutex
	checks map[string]Pinger
}

// NewServer builds a gRPC server exposing only the health service.
func NewServer(log *zap.Logger, checks map[string]Pinger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		grpc: grpc.NewServer(grpc.ChainUnaryInterceptor(
			RecoverUnary(log),
			LoggingUnary(log),
		)),
		hs:     health.NewServer(),
		log:    log,
		checks: checks,
	}
	healthpb.RegisterHealthServer(s.grpc, s.hs)
	return s
}

// Probe pings every dependency once and publishes the statuses.
// The overall status is SERVING only when all dependencies answer.
func (s *Server) Probe(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	overall := healthpb.HealthCheckResponse_SERVING
	for name, p := range s.checks {
		st := healthpb.HealthCheckResponse_SERVING
		if err := p.Ping(ctx); err != nil {
			s.log.Warn("health probe failed", zap.String("dep", name), zap.Error(err))
			st = healthpb.HealthCheckResponse_NOT_SERVING
			overall = st
		}
		s.hs.SetServingStatus(name, st)
	}
	s.hs.SetServingStatus("", overall)
}

// Watch probes every interval until ctx is done.
func (s *Server) Watch(ctx context.Context, interval time.Duration) {
	s.Probe(ctx)
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Probe(ctx)
		}
	}
}

// Serve accepts connections on lis until Stop.
func (s *Server) Serve(lis net.Listener) error { return s.grpc.Serve(lis) }

// Stop marks everything NOT_SERVING and stops gracefully, forcing after timeout.
func (s *Server) Stop(timeout time.Duration) {
	s.hs.Shutdown()
	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		s.grpc.Stop()
	}
}

// Check queries the health service at addr.
func Check(ctx context.Context, addr, service string, opts ...grpc.DialOption) (*healthpb.HealthCheckResponse, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	cc, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, err
	}
	defer cc.Close()
	return healthpb.NewHealthClient(cc).Check(ctx, &healthpb.HealthCheckRequest{Service: service})
}

// Format renders a health response as compact JSON.
func Format(resp *healthpb.HealthCheckResponse) (string, error) {
	b, err := protojson.MarshalOptions{UseProtoNames: true}.Marshal(resp)
	return string(b), err
}
