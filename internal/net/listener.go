package net

import (
	"errors"
	"net"

	grpcmiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcrecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcprometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"google.golang.org/grpc"

	"github.com/sealedbid/sealedbid/common/log"
	pb "github.com/sealedbid/sealedbid/protobuf/controller"
)

// Listener serves the controller protocol on a gRPC server.
type Listener struct {
	grpcServer *grpc.Server
	lis        net.Listener
	log        log.Logger
}

// NewGRPCListener binds bindingAddr and registers s. Passing ":0" or
// "127.0.0.1:0" picks a free port, see Addr.
func NewGRPCListener(l log.Logger, bindingAddr string, s pb.ControllerServer, opts ...grpc.ServerOption) (*Listener, error) {
	lis, err := net.Listen("tcp", bindingAddr)
	if err != nil {
		return nil, err
	}

	opts = append(opts,
		grpc.UnaryInterceptor(
			grpcmiddleware.ChainUnaryServer(
				grpcprometheus.UnaryServerInterceptor,
				grpcrecovery.UnaryServerInterceptor(),
			),
		),
	)

	grpcServer := grpc.NewServer(opts...)
	pb.RegisterControllerServer(grpcServer, s)

	return &Listener{
		grpcServer: grpcServer,
		lis:        lis,
		log:        l,
	}, nil
}

// Addr returns the address the listener is bound to.
func (g *Listener) Addr() string {
	return g.lis.Addr().String()
}

// Start serves until Stop is called.
func (g *Listener) Start() error {
	g.log.Infow("serving controller protocol", "addr", g.Addr())
	if err := g.grpcServer.Serve(g.lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Stop closes the listener and every open connection.
func (g *Listener) Stop() {
	g.grpcServer.Stop()
}
