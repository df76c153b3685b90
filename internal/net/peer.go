package net

// Peer is a computation server the client can dispatch programs to.
type Peer interface {
	Address() string
	IsTLS() bool
}

type sPeer struct {
	addr string
	tls  bool
}

func (s *sPeer) Address() string {
	return s.addr
}

func (s *sPeer) IsTLS() bool {
	return s.tls
}

// CreatePeer returns a Peer reachable at addr.
func CreatePeer(addr string, tls bool) Peer {
	return &sPeer{
		addr: addr,
		tls:  tls,
	}
}
