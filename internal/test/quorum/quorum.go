// Package quorum runs a simulated quorum of computation servers in process,
// each behind a real gRPC listener, with per member fault injection.
package quorum

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/kabukky/httpscerts"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/status"

	"github.com/sealedbid/sealedbid/common/value"
	"github.com/sealedbid/sealedbid/internal/config"
	"github.com/sealedbid/sealedbid/internal/net"
	"github.com/sealedbid/sealedbid/internal/test/testlogger"
	pb "github.com/sealedbid/sealedbid/protobuf/controller"
)

// Member is one simulated computation server.
type Member struct {
	Index int

	mu      sync.Mutex
	state   State
	fail    error
	corrupt bool
	stall   chan struct{}
	calls   []string
}

var _ pb.ControllerServer = (*Member)(nil)

// RunCode implements pb.ControllerServer.
func (m *Member) RunCode(ctx context.Context, in *pb.RunCodeRequest) (*pb.RunCodeResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, in.GetProgram())
	fail, corrupt, stall := m.fail, m.corrupt, m.stall
	m.mu.Unlock()

	if stall != nil {
		select {
		case <-stall:
		case <-ctx.Done():
			return nil, status.Error(codes.Canceled, ctx.Err().Error())
		}
	}
	if fail != nil {
		return nil, status.Error(codes.Internal, fail.Error())
	}
	prog, ok := Programs[in.GetProgram()]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "program %q not found", in.GetProgram())
	}
	args, err := value.ProtoToMap(in.GetArguments())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	m.mu.Lock()
	results, err := prog(&m.state, args)
	m.mu.Unlock()
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if corrupt {
		if err := results.Insert(value.NewUint8("tampered", value.SharedDomain, uint8(m.Index))); err != nil {
			return nil, status.Error(codes.Internal, err.Error())
		}
	}
	return &pb.RunCodeResponse{Results: results.ToProto()}, nil
}

// FailWith makes every following run fail with err, or succeed again when
// err is nil.
func (m *Member) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

// Corrupt makes the member return results differing from its peers.
func (m *Member) Corrupt(corrupt bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.corrupt = corrupt
}

// Stall blocks every following run until the returned function is called or
// the caller gives up.
func (m *Member) Stall() (release func()) {
	ch := make(chan struct{})
	m.mu.Lock()
	m.stall = ch
	m.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			m.stall = nil
			m.mu.Unlock()
			close(ch)
		})
	}
}

// Calls returns the programs run on the member so far.
func (m *Member) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Quorum is a set of simulated members.
type Quorum struct {
	Members   []*Member
	listeners []*net.Listener
	servers   []config.Server
	group     errgroup.Group
	stopOnce  sync.Once
}

type options struct {
	tlsDir string
}

// Option customises a simulated quorum.
type Option func(*options)

// WithTLS serves every member over TLS with a self signed certificate
// generated in dir.
func WithTLS(dir string) Option {
	return func(o *options) {
		o.tlsDir = dir
	}
}

// New starts n members on loopback listeners. They are stopped when the test
// ends.
func New(t testing.TB, n int, opts ...Option) *Quorum {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	l := testlogger.New(t)
	q := &Quorum{}
	for i := 0; i < n; i++ {
		m := &Member{Index: i}
		srv := config.Server{Name: fmt.Sprintf("server%d", i+1)}

		var sopts []grpc.ServerOption
		if o.tlsDir != "" {
			certPath := filepath.Join(o.tlsDir, srv.Name+".pem")
			keyPath := filepath.Join(o.tlsDir, srv.Name+".key")
			require.NoError(t, httpscerts.Generate(certPath, keyPath, "127.0.0.1"))
			creds, err := credentials.NewServerTLSFromFile(certPath, keyPath)
			require.NoError(t, err)
			sopts = append(sopts, grpc.Creds(creds))
			srv.TLS = true
			srv.CertPath = certPath
		}

		lis, err := net.NewGRPCListener(l.Named(srv.Name), "127.0.0.1:0", m, sopts...)
		require.NoError(t, err)
		srv.Address = lis.Addr()

		q.Members = append(q.Members, m)
		q.listeners = append(q.listeners, lis)
		q.servers = append(q.servers, srv)
		q.group.Go(lis.Start)
	}
	t.Cleanup(func() {
		require.NoError(t, q.Stop())
	})
	return q
}

// Stop stops every member and waits for the listeners to return.
func (q *Quorum) Stop() error {
	q.stopOnce.Do(func() {
		for _, lis := range q.listeners {
			lis.Stop()
		}
	})
	return q.group.Wait()
}

// Config returns a client configuration pointing at the quorum.
func (q *Quorum) Config(t testing.TB) *config.Config {
	c, err := config.New(q.servers...)
	require.NoError(t, err)
	return c
}

// WriteConfig writes the client configuration in dir and returns its path.
func (q *Quorum) WriteConfig(t testing.TB, dir string) string {
	p := filepath.Join(dir, config.DefaultFileName)
	require.NoError(t, q.Config(t).Write(p))
	return p
}
