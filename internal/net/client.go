package net

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"sync"
	"time"

	grpcmiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcprometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/net/proxy"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/sealedbid/sealedbid/common/log"
	"github.com/sealedbid/sealedbid/internal/metrics"
	pb "github.com/sealedbid/sealedbid/protobuf/controller"
)

// Client is the transport the controller uses to reach the computation
// servers. It owns one connection per server.
type Client interface {
	// Connect dials p and waits until the connection is ready or ctx is done.
	Connect(ctx context.Context, p Peer) error
	// RunCode executes a program on p.
	RunCode(ctx context.Context, p Peer, in *pb.RunCodeRequest) (*pb.RunCodeResponse, error)
	// Close releases every connection.
	Close() error
}

// ensure we implement all required interfaces
var _ Client = (*grpcClient)(nil)

// grpcClient implements Client using gRPC connections
type grpcClient struct {
	sync.RWMutex
	conns     map[string]*grpc.ClientConn
	opts      []grpc.DialOption
	tlsConfig *tls.Config
	timeout   time.Duration
	log       log.Logger
}

var defaultCallTimeout = 1 * time.Minute

// NewGrpcClient returns a Client using gRPC connections. tlsConfig is used
// for every peer reporting IsTLS and may be nil to rely on the system roots.
// A zero timeout selects the default per call timeout.
func NewGrpcClient(l log.Logger, tlsConfig *tls.Config, timeout time.Duration, opts ...grpc.DialOption) Client {
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	client := grpcClient{
		conns:     make(map[string]*grpc.ClientConn),
		tlsConfig: tlsConfig,
		timeout:   timeout,
		log:       l,
	}
	client.opts = append([]grpc.DialOption{
		grpc.WithContextDialer(func(ctx context.Context, addr string) (net.Conn, error) {
			return proxy.Dial(ctx, "tcp", addr)
		}),
		grpc.WithUnaryInterceptor(grpcmiddleware.ChainUnaryClient(
			grpcprometheus.UnaryClientInterceptor,
			client.logCalls,
		)),
	}, opts...)
	return &client
}

func (g *grpcClient) logCalls(ctx context.Context, method string, req, reply interface{},
	cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
	start := time.Now()
	err := invoker(ctx, method, req, reply, cc, opts...)
	g.log.Debugw("grpc call", "method", method, "to", cc.Target(), "took", time.Since(start), "err", err)
	return err
}

func (g *grpcClient) getTimeoutContext(ctx context.Context) (context.Context, context.CancelFunc) {
	g.RLock()
	defer g.RUnlock()
	return context.WithTimeout(ctx, g.timeout)
}

func (g *grpcClient) Connect(ctx context.Context, p Peer) error {
	c, err := g.conn(ctx, p)
	if err != nil {
		return err
	}
	c.Connect()
	for {
		state := c.GetState()
		metrics.OutgoingConnectionState.WithLabelValues(p.Address()).Set(float64(state))
		if state == connectivity.Ready {
			return nil
		}
		if !c.WaitForStateChange(ctx, state) {
			metrics.DialFailures.WithLabelValues(p.Address()).Inc()
			return fmt.Errorf("connecting to %s (last state %s): %w", p.Address(), state, ctx.Err())
		}
	}
}

func (g *grpcClient) RunCode(ctx context.Context, p Peer, in *pb.RunCodeRequest) (*pb.RunCodeResponse, error) {
	c, err := g.conn(ctx, p)
	if err != nil {
		return nil, err
	}
	client := pb.NewControllerClient(c)
	ctx, cancel := g.getTimeoutContext(ctx)
	defer cancel()
	return client.RunCode(ctx, in)
}

// conn retrieves an already existing conn to the given peer or creates a new one
func (g *grpcClient) conn(ctx context.Context, p Peer) (*grpc.ClientConn, error) {
	g.Lock()
	defer g.Unlock()
	var err error

	c, ok := g.conns[p.Address()]
	if ok && c.GetState() == connectivity.Shutdown {
		ok = false
		// close async to avoid goroutine leaks
		go c.Close()
		delete(g.conns, p.Address())
		g.log.Warnw("grpc conn in Shutdown state", "to", p.Address())
		metrics.OutgoingConnectionState.WithLabelValues(p.Address()).Set(float64(connectivity.Shutdown))
	}

	if !ok {
		g.log.Debugw("initiating new grpc conn", "to", p.Address(), "tls", p.IsTLS())

		creds := insecure.NewCredentials()
		if p.IsTLS() {
			config := &tls.Config{MinVersion: tls.VersionTLS12}
			if g.tlsConfig != nil {
				config = g.tlsConfig.Clone()
			}
			creds = credentials.NewTLS(config)
		}
		opts := append([]grpc.DialOption{grpc.WithTransportCredentials(creds)}, g.opts...)

		c, err = grpc.DialContext(ctx, p.Address(), opts...)
		if err != nil {
			g.log.Errorw("error initiating a new grpc conn", "to", p.Address(), "err", err)
			metrics.DialFailures.WithLabelValues(p.Address()).Inc()
			return nil, err
		}
		g.log.Debugw("new grpc conn established", "state", c.GetState(), "to", p.Address())
		g.conns[p.Address()] = c
		metrics.OutgoingConnections.Set(float64(len(g.conns)))
	}

	metrics.OutgoingConnectionState.WithLabelValues(p.Address()).Set(float64(c.GetState()))
	return c, nil
}

func (g *grpcClient) Close() error {
	g.Lock()
	defer g.Unlock()
	var merr *multierror.Error
	for addr, c := range g.conns {
		if err := c.Close(); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("closing connection to %s: %w", addr, err))
		}
		delete(g.conns, addr)
	}
	metrics.OutgoingConnections.Set(0)
	return merr.ErrorOrNil()
}
