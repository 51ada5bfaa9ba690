package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osg-htc/kojicron/internal/errors"
)

// validConfig returns a config that passes validation; tests mutate it.
func validConfig() *Config {
	return &Config{
		Server:         "https://koji.example.edu/kojihub",
		AuthType:       AuthSSL,
		Cert:           "/etc/pki/tls/kojicron.pem",
		IncludedTags:   []string{"osg-*"},
		sectionPresent: true,
		rawBools:       map[string]string{},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errContains string
	}{
		{
			name:    "valid ssl config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "valid gssapi config",
			mutate: func(c *Config) {
				c.AuthType = AuthGSSAPI
				c.Cert = ""
				c.Principal = "kojicron/host@EXAMPLE.EDU"
			},
			wantErr: false,
		},
		{
			name:        "section missing",
			mutate:      func(c *Config) { c.sectionPresent = false },
			wantErr:     true,
			errContains: "[kojicron] section missing",
		},
		{
			name:        "server missing",
			mutate:      func(c *Config) { c.Server = "" },
			wantErr:     true,
			errContains: "server not provided",
		},
		{
			name:        "authtype missing",
			mutate:      func(c *Config) { c.AuthType = "" },
			wantErr:     true,
			errContains: "authtype not provided",
		},
		{
			name:        "included_tags missing",
			mutate:      func(c *Config) { c.IncludedTags = nil },
			wantErr:     true,
			errContains: "included_tags not provided",
		},
		{
			name:        "server not https",
			mutate:      func(c *Config) { c.Server = "http://koji.example.edu/kojihub" },
			wantErr:     true,
			errContains: "not an HTTPS URL",
		},
		{
			name:        "server wrong endpoint path",
			mutate:      func(c *Config) { c.Server = "https://koji.example.edu/xmlrpc" },
			wantErr:     true,
			errContains: "koji-hub XMLRPC endpoint",
		},
		{
			name:        "ssl without cert",
			mutate:      func(c *Config) { c.Cert = "" },
			wantErr:     true,
			errContains: "cert not provided for ssl authtype",
		},
		{
			name: "gssapi without principal",
			mutate: func(c *Config) {
				c.AuthType = AuthGSSAPI
				c.Principal = ""
			},
			wantErr:     true,
			errContains: "principal not provided for gssapi authtype",
		},
		{
			name:        "unrecognized authtype",
			mutate:      func(c *Config) { c.AuthType = "password" },
			wantErr:     true,
			errContains: "authtype is not 'ssl' or 'gssapi'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.True(t, errors.IsKind(err, errors.KindConfig))
			assert.Equal(t, errors.ExitConfig, errors.ExitCode(err))
		})
	}
}

func TestValidate_NilConfig(t *testing.T) {
	err := Validate(nil)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConfig))
}
