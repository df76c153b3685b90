package metrics

import (
	"sync"

	grpcprometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/sealedbid/sealedbid/common/log"
)

var (
	// ClientMetrics about the controller requests to the computation servers
	ClientMetrics = prometheus.NewRegistry()

	// RunCodeCounter counts program runs by program and outcome (success or failure)
	RunCodeCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "run_code_total",
		Help: "Number of programs dispatched to the quorum",
	}, []string{"program", "outcome"})

	// RunCodeLatency measures how long a dispatch takes until every server answered
	RunCodeLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "run_code_duration_seconds",
		Help:    "Duration of a program run across the whole quorum",
		Buckets: prometheus.DefBuckets,
	}, []string{"program"})

	// ServerFailures counts per server failures, including results that disagree with the quorum
	ServerFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "server_failures",
		Help: "Number of program runs a server failed",
	}, []string{"server_address"})

	// DialFailures counts failures connecting to a server
	DialFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dial_failures",
		Help: "Number of times there have been network connection issues",
	}, []string{"peer_address"})

	// OutgoingConnections is the number of open server connections
	OutgoingConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "outgoing_server_connections",
		Help: "Number of servers with an open gRPC connection",
	})

	// OutgoingConnectionState tracks the state of an outgoing connection, using the
	// connectivity states of grpc-go. It is only updated when the connection is used.
	OutgoingConnectionState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "outgoing_connection_state",
		Help: "State of an outgoing connection. 0=Idle, 1=Connecting, 2=Ready, 3=Transient Failure, 4=Shutdown",
	}, []string{"remote_host"})

	// QuorumSize is the number of servers of the current session
	QuorumSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "quorum_size",
		Help: "Number of computation servers in the session",
	})
)

var bindOnce sync.Once

// Bind registers the client metrics, the gRPC client metrics and the process
// collectors with ClientMetrics. It is safe to call several times.
func Bind(l log.Logger) {
	bindOnce.Do(func() {
		if err := RegisterClientMetrics(ClientMetrics); err != nil {
			l.Errorw("error in setting up client metrics", "err", err)
		}
		extra := []prometheus.Collector{
			grpcprometheus.DefaultClientMetrics,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		}
		for _, c := range extra {
			if err := ClientMetrics.Register(c); err != nil {
				l.Errorw("error in setting up client metrics", "err", err)
			}
		}
	})
}

// RegisterClientMetrics registers the controller metrics with the given registry
func RegisterClientMetrics(r prometheus.Registerer) error {
	c := []prometheus.Collector{
		RunCodeCounter,
		RunCodeLatency,
		ServerFailures,
		DialFailures,
		OutgoingConnections,
		OutgoingConnectionState,
		QuorumSize,
	}
	for _, c := range c {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Push sends the content of ClientMetrics to a Prometheus push gateway. The
// command line tools are short lived, so they push once before exiting
// rather than serving a scrape endpoint.
func Push(gateway, job string, labels map[string]string) error {
	p := push.New(gateway, job).Gatherer(ClientMetrics)
	for k, v := range labels {
		p = p.Grouping(k, v)
	}
	return p.Push()
}
