// Package controller runs precompiled programs on the quorum of computation
// servers. A Controller owns one connection per server for its whole
// lifetime and dispatches every program to all of them at once; the call
// only succeeds when every server succeeded and they all returned the same
// results.
package controller

import (
	"context"
	"crypto/tls"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	clock "github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/sealedbid/sealedbid/common/log"
	"github.com/sealedbid/sealedbid/common/value"
	"github.com/sealedbid/sealedbid/internal/config"
	"github.com/sealedbid/sealedbid/internal/metrics"
	"github.com/sealedbid/sealedbid/internal/net"
	"github.com/sealedbid/sealedbid/internal/quorum"
	pb "github.com/sealedbid/sealedbid/protobuf/controller"
)

var (
	// ErrClosed is returned when running a program on a closed controller.
	ErrClosed = errors.New("controller is closed")
	// ErrNilArguments is returned when RunCode is given no argument map.
	ErrNilArguments = errors.New("nil argument map")
	// ErrAbandoned wraps the failures of a dispatch interrupted by its context.
	ErrAbandoned = errors.New("dispatch abandoned")
	// ErrNoResponse is a member failure for a call that returned neither a
	// response nor an error.
	ErrNoResponse = errors.New("empty response")
)

// Controller is an execution session with the quorum.
type Controller struct {
	mu        sync.Mutex
	log       log.Logger
	conf      *config.Config
	client    net.Client
	tlsConfig *tls.Config
	peers     []net.Peer
	clock     clock.Clock
	closed    bool
}

// Option customises a Controller.
type Option func(*Controller)

// WithClient replaces the gRPC transport.
func WithClient(c net.Client) Option {
	return func(ctrl *Controller) {
		ctrl.client = c
	}
}

// WithTLSConfig sets the TLS configuration used to reach the servers
// flagged as TLS. It is ignored when WithClient is given.
func WithTLSConfig(conf *tls.Config) Option {
	return func(ctrl *Controller) {
		ctrl.tlsConfig = conf
	}
}

// WithClock sets the clock used to time dispatches.
func WithClock(c clock.Clock) Option {
	return func(ctrl *Controller) {
		ctrl.clock = c
	}
}

// New opens a session with every server of conf. It returns once all the
// servers are reachable, or fails if one of them is not within the
// configured connect timeout.
func New(ctx context.Context, l log.Logger, conf *config.Config, opts ...Option) (*Controller, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		log:   l,
		conf:  conf,
		clock: clock.NewRealClock(),
	}
	for _, opt := range opts {
		opt(c)
	}
	for _, s := range conf.Servers {
		c.peers = append(c.peers, net.CreatePeer(s.Address, s.TLS))
	}
	if c.client == nil {
		c.client = net.NewGrpcClient(l.Named("net"), c.tlsConfig, conf.Controller.Timeout.Duration)
	}

	metrics.Bind(l)
	metrics.QuorumSize.Set(float64(len(c.peers)))

	if err := c.connect(ctx); err != nil {
		_ = c.client.Close()
		return nil, err
	}
	l.Infow("controller connected", "servers", c.Servers())
	return c, nil
}

func (c *Controller) connect(ctx context.Context) error {
	if d := c.conf.Controller.ConnectTimeout.Duration; d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range c.peers {
		i, p := i, p
		g.Go(func() error {
			if err := c.client.Connect(ctx, p); err != nil {
				return &quorum.MemberError{Index: i, Address: p.Address(), Err: err}
			}
			return nil
		})
	}
	return g.Wait()
}

// NumWorkers returns the quorum size.
func (c *Controller) NumWorkers() int {
	return len(c.peers)
}

// Servers returns the addresses of the quorum members, in member order.
func (c *Controller) Servers() []string {
	out := make([]string, len(c.peers))
	for i, p := range c.peers {
		out[i] = p.Address()
	}
	return out
}

// RunCode executes program on every server with args and returns the
// results they agree on. On failure it returns a *quorum.WorkerError holding
// one slot per server, and never any result. Only one RunCode runs at a
// time. When ctx is done before every server answered, the in-flight calls
// are abandoned and the controller closes itself.
func (c *Controller) RunCode(ctx context.Context, program string, args *value.Map) (*value.Map, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}
	if args == nil {
		return nil, ErrNilArguments
	}

	id := uuid.New().String()
	l := c.log.With("program", program, "request", id)
	l.Infow("dispatching program", "arguments", args.Names(), "servers", len(c.peers))

	req := &pb.RunCodeRequest{
		RequestId: id,
		Program:   program,
		Arguments: args.ToProto(),
	}
	outcomes := quorum.NewOutcomes(len(c.peers))

	start := c.clock.Now()
	var wg sync.WaitGroup
	for i, p := range c.peers {
		wg.Add(1)
		go func(i int, p net.Peer) {
			defer wg.Done()
			results, err := c.runOn(ctx, p, req)
			if err != nil {
				if ctx.Err() != nil {
					err = fmt.Errorf("%w: %w (%v)", ErrAbandoned, ctx.Err(), err)
				}
				l.Debugw("server failed", "server", i, "addr", p.Address(), "err", err)
				outcomes.Failure(i, &quorum.MemberError{Index: i, Address: p.Address(), Err: err})
				return
			}
			l.Debugw("server answered", "server", i, "addr", p.Address(),
				"digest", hex.EncodeToString(results.Digest()))
			outcomes.Success(i, results)
		}(i, p)
	}
	wg.Wait()
	metrics.RunCodeLatency.WithLabelValues(program).Observe(c.clock.Since(start).Seconds())

	results, err := outcomes.Result()
	if ctx.Err() != nil {
		l.Warnw("dispatch interrupted, closing controller", "err", ctx.Err())
		_ = c.closeLocked()
	}
	if err != nil {
		metrics.RunCodeCounter.WithLabelValues(program, "failure").Inc()
		werr := c.label(err)
		for _, i := range werr.Failed() {
			metrics.ServerFailures.WithLabelValues(c.peers[i].Address()).Inc()
		}
		l.Errorw("program failed", "failed_servers", werr.Failed())
		return nil, werr
	}

	metrics.RunCodeCounter.WithLabelValues(program, "success").Inc()
	l.Infow("program finished", "results", results.Names(), "took", c.clock.Since(start))
	return results, nil
}

// runOn runs req on one server and decodes its results.
func (c *Controller) runOn(ctx context.Context, p net.Peer, req *pb.RunCodeRequest) (*value.Map, error) {
	resp, err := c.client.RunCode(ctx, p, req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, ErrNoResponse
	}
	results, err := value.ProtoToMap(resp.GetResults())
	if err != nil {
		return nil, fmt.Errorf("decoding results: %w", err)
	}
	return results, nil
}

// label makes sure every populated slot of the aggregate failure names the
// server it belongs to.
func (c *Controller) label(err error) *quorum.WorkerError {
	werr, ok := quorum.AsWorkerError(err)
	if !ok {
		slots := make([]error, len(c.peers))
		for i := range slots {
			slots[i] = err
		}
		werr = quorum.NewWorkerError(slots)
	}
	slots := werr.Errors()
	for i, e := range slots {
		var merr *quorum.MemberError
		if e != nil && !errors.As(e, &merr) {
			slots[i] = &quorum.MemberError{Index: i, Address: c.peers[i].Address(), Err: e}
		}
	}
	return quorum.NewWorkerError(slots)
}

// Close releases every server connection. It is safe to call several times.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked()
}

func (c *Controller) closeLocked() error {
	if c.closed {
		return nil
	}
	c.closed = true
	metrics.QuorumSize.Set(0)
	c.log.Debugw("closing controller")
	return c.client.Close()
}
