package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kabukky/httpscerts"
	"github.com/stretchr/testify/require"
)

const sample = `
[Controller]
Timeout = "30s"

[[Server]]
Name = "server1"
Address = "127.0.0.1:30001"

[[Server]]
Name = "server2"
Address = "127.0.0.1:30002"

[[Server]]
Name = "server3"
Address = "127.0.0.1:30003"
`

func writeFile(t *testing.T, dir, name, content string) string {
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0600))
	return p
}

func TestLoad(t *testing.T) {
	p := writeFile(t, t.TempDir(), DefaultFileName, sample)
	c, err := Load(p)
	require.NoError(t, err)

	require.Len(t, c.Servers, 3)
	require.Equal(t, "server2", c.Servers[1].Name)
	require.Equal(t, "127.0.0.1:30003", c.Servers[2].Address)
	require.Equal(t, 30*time.Second, c.Controller.Timeout.Duration)
	require.Equal(t, DefaultConnectTimeout, c.Controller.ConnectTimeout.Duration)

	tlsConf, err := c.TLSConfig()
	require.NoError(t, err)
	require.Nil(t, tlsConf)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"empty":     ``,
		"noaddress": "[[Server]]\nName = \"a\"\n",
		"duplicate": "[[Server]]\nAddress = \"a:1\"\n[[Server]]\nAddress = \"a:1\"\n",
		"duration":  "[Controller]\nTimeout = \"soon\"\n[[Server]]\nAddress = \"a:1\"\n",
		"halfcreds": "[Credentials]\nCert = \"c.pem\"\n[[Server]]\nAddress = \"a:1\"\n",
		"syntax":    "[[Server]\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, dir, name+".toml", content))
			require.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
}

func TestNewAndWrite(t *testing.T) {
	_, err := New()
	require.ErrorIs(t, err, ErrNoServers)

	c, err := New(Server{Name: "a", Address: "127.0.0.1:1"}, Server{Name: "b", Address: "127.0.0.1:2"})
	require.NoError(t, err)
	require.Equal(t, DefaultTimeout, c.Controller.Timeout.Duration)

	p := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, c.Write(p))
	loaded, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, c.Servers, loaded.Servers)
	require.Equal(t, c.Controller, loaded.Controller)
}

func TestWriteNestedFolder(t *testing.T) {
	c, err := New(Server{Address: "127.0.0.1:1"})
	require.NoError(t, err)

	dir := t.TempDir()
	p := filepath.Join(dir, DefaultFolderName, "nested", DefaultFileName)
	require.NoError(t, c.Write(p))

	info, err := os.Stat(p)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
	loaded, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, c.Servers, loaded.Servers)

	// a regular file where the folder should be
	blocker := writeFile(t, dir, "blocker", "")
	require.Error(t, c.Write(filepath.Join(blocker, DefaultFileName)))
}

func TestTLSConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, httpscerts.Generate(filepath.Join(dir, "server.pem"), filepath.Join(dir, "server.key"), "127.0.0.1"))
	require.NoError(t, httpscerts.Generate(filepath.Join(dir, "client.pem"), filepath.Join(dir, "client.key"), "127.0.0.1"))

	// relative paths resolve against the configuration folder
	p := writeFile(t, dir, DefaultFileName, `
[Credentials]
Cert = "client.pem"
Key = "client.key"

[[Server]]
Address = "127.0.0.1:30001"
TLS = true
CertPath = "server.pem"
`)
	c, err := Load(p)
	require.NoError(t, err)
	conf, err := c.TLSConfig()
	require.NoError(t, err)
	require.NotNil(t, conf)
	require.NotNil(t, conf.RootCAs)
	require.Len(t, conf.Certificates, 1)

	c.Servers[0].CertPath = "missing.pem"
	_, err = c.TLSConfig()
	require.Error(t, err)
}

func TestLoadDefaultMissing(t *testing.T) {
	require.NotEmpty(t, DefaultPaths())
}
