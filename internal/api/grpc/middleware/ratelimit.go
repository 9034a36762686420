package middleware

import (
	"context"
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/dtroode/authkeeper/internal/logger"
)

const limiterIdleTTL = 10 * time.Minute

type peerLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit throttles selected methods per peer address.
type RateLimit struct {
	methods map[string]struct{}
	limit   rate.Limit
	burst   int
	logger  *logger.Logger
	now     func() time.Time

	mu        sync.Mutex
	peers     map[string]*peerLimiter
	lastSweep time.Time
}

// NewRateLimit allows perMinute calls per peer with the given burst on each of methods.
func NewRateLimit(perMinute, burst int, methods []string, logger *logger.Logger) *RateLimit {
	set := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		set[m] = struct{}{}
	}
	return &RateLimit{
		methods: set,
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   burst,
		logger:  logger,
		now:     time.Now,
		peers:   make(map[string]*peerLimiter),
	}
}

// HandleGRPC rejects the call with ResourceExhausted once the peer's budget is spent.
func (r *RateLimit) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if _, limited := r.methods[info.FullMethod]; !limited {
		return handler(ctx, req)
	}

	addr := peerAddress(ctx)
	if !r.allow(addr) {
		r.logger.Warn("RateLimit: request throttled",
			"method", info.FullMethod,
			"peer", addr)
		return nil, status.Error(codes.ResourceExhausted, "Too many requests, try again later")
	}

	return handler(ctx, req)
}

func (r *RateLimit) allow(addr string) bool {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	if now.Sub(r.lastSweep) > limiterIdleTTL {
		for key, pl := range r.peers {
			if now.Sub(pl.lastSeen) > limiterIdleTTL {
				delete(r.peers, key)
			}
		}
		r.lastSweep = now
	}

	pl, ok := r.peers[addr]
	if !ok {
		pl = &peerLimiter{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.peers[addr] = pl
	}
	pl.lastSeen = now

	return pl.limiter.AllowN(now, 1)
}

func peerAddress(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(p.Addr.String())
	if err != nil {
		return p.Addr.String()
	}
	return host
}
