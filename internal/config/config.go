// Package config loads the client configuration: the quorum of computation
// servers, the credentials used to reach them and the controller timeouts.
package config

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/sealedbid/sealedbid/internal/fs"
)

const (
	// DefaultFileName is the name of the configuration file looked up in the
	// default folders.
	DefaultFileName = "client.toml"
	// DefaultFolderName is the folder holding the configuration in the user
	// configuration folder.
	DefaultFolderName = "sealedbid"
	// DefaultTimeout bounds one program run on one server.
	DefaultTimeout = 60 * time.Second
	// DefaultConnectTimeout bounds opening the connections to the quorum.
	DefaultConnectTimeout = 10 * time.Second
)

var (
	// ErrNoServers is returned for a configuration without any server.
	ErrNoServers = errors.New("no computation server configured")
	// ErrNotFound is returned when no default configuration file exists.
	ErrNotFound = errors.New("no configuration file found")
)

// Duration is a time.Duration read from a TOML string such as "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Server is one member of the quorum.
type Server struct {
	Name    string
	Address string
	// TLS enables transport security towards this server.
	TLS bool
	// CertPath is the PEM certificate used to authenticate the server. When
	// empty the system roots are used.
	CertPath string
}

// Controller holds the dispatch settings.
type Controller struct {
	// Timeout bounds a single program run on one server.
	Timeout Duration
	// ConnectTimeout bounds the wait for every server to be reachable.
	ConnectTimeout Duration
}

// Credentials is the optional client certificate presented to the servers.
type Credentials struct {
	Cert string
	Key  string
}

// Config is the client configuration.
type Config struct {
	Controller  Controller
	Credentials Credentials
	Servers     []Server `toml:"Server"`

	// folder is where the configuration was read from, relative paths are
	// resolved against it.
	folder string
}

// Load reads and validates the TOML configuration at path.
func Load(path string) (*Config, error) {
	c := new(Config)
	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, fmt.Errorf("reading configuration %s: %w", path, err)
	}
	c.folder = filepath.Dir(path)
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}
	return c, nil
}

// DefaultPaths returns the locations searched by LoadDefault, in order.
func DefaultPaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, DefaultFolderName, DefaultFileName))
	}
	paths = append(paths,
		filepath.Join(fs.HomeFolder(), "."+DefaultFolderName, DefaultFileName),
		filepath.Join("/etc", DefaultFolderName, DefaultFileName),
	)
	return paths
}

// LoadDefault loads the first configuration found in DefaultPaths.
func LoadDefault() (*Config, error) {
	for _, p := range DefaultPaths() {
		if exists, _ := fs.Exists(p); exists {
			return Load(p)
		}
	}
	return nil, fmt.Errorf("%w in %v", ErrNotFound, DefaultPaths())
}

func (c *Config) applyDefaults() {
	if c.Controller.Timeout.Duration == 0 {
		c.Controller.Timeout.Duration = DefaultTimeout
	}
	if c.Controller.ConnectTimeout.Duration == 0 {
		c.Controller.ConnectTimeout.Duration = DefaultConnectTimeout
	}
}

// Validate checks the quorum is usable.
func (c *Config) Validate() error {
	if len(c.Servers) == 0 {
		return ErrNoServers
	}
	seen := make(map[string]int, len(c.Servers))
	for i, s := range c.Servers {
		if s.Address == "" {
			return fmt.Errorf("server %d has no address", i)
		}
		if j, ok := seen[s.Address]; ok {
			return fmt.Errorf("servers %d and %d share address %s", j, i, s.Address)
		}
		seen[s.Address] = i
	}
	if c.Controller.Timeout.Duration < 0 || c.Controller.ConnectTimeout.Duration < 0 {
		return errors.New("negative timeout")
	}
	if (c.Credentials.Cert == "") != (c.Credentials.Key == "") {
		return errors.New("client certificate and key must be set together")
	}
	return nil
}

// New returns a validated configuration for the given servers, with default
// timeouts. It is the programmatic counterpart of Load.
func New(servers ...Server) (*Config, error) {
	c := &Config{Servers: servers}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.folder == "" {
		return p
	}
	return filepath.Join(c.folder, p)
}

// TLSConfig builds the client TLS configuration: the certificates of all
// servers as roots, and the client key pair when configured. It returns nil
// when no server uses TLS.
func (c *Config) TLSConfig() (*tls.Config, error) {
	conf := &tls.Config{MinVersion: tls.VersionTLS12}
	useTLS := false
	var pool *x509.CertPool
	for _, s := range c.Servers {
		if !s.TLS {
			continue
		}
		useTLS = true
		if s.CertPath == "" {
			continue
		}
		pem, err := os.ReadFile(c.resolve(s.CertPath))
		if err != nil {
			return nil, fmt.Errorf("reading certificate of %s: %w", s.Address, err)
		}
		if pool == nil {
			pool = x509.NewCertPool()
		}
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificate found in %s", s.CertPath)
		}
	}
	if !useTLS {
		return nil, nil
	}
	conf.RootCAs = pool
	if c.Credentials.Cert != "" {
		pair, err := tls.LoadX509KeyPair(c.resolve(c.Credentials.Cert), c.resolve(c.Credentials.Key))
		if err != nil {
			return nil, fmt.Errorf("loading client credentials: %w", err)
		}
		conf.Certificates = []tls.Certificate{pair}
	}
	return conf, nil
}

// Write encodes the configuration as TOML at path, creating its folder if
// needed.
func (c *Config) Write(path string) error {
	if err := fs.CreateSecureFolder(filepath.Dir(path)); err != nil {
		return fmt.Errorf("creating configuration folder: %w", err)
	}
	fd, err := fs.CreateSecureFile(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(fd).Encode(c); err != nil {
		fd.Close()
		return fmt.Errorf("encoding configuration %s: %w", path, err)
	}
	return fd.Close()
}
