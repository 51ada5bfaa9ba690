package config

import (
	"fmt"
	"strings"

	"github.com/osg-htc/kojicron/internal/errors"
)

// Validate checks the loaded configuration, stopping at the first problem.
// It must run before anything touches the network: a bad config should
// never cause partial remote activity.
func Validate(cfg *Config) error {
	if cfg == nil || !cfg.sectionPresent {
		return configErr("[%s] section missing", Section)
	}

	if cfg.Server == "" {
		return configErr("server not provided")
	}
	if cfg.AuthType == "" {
		return configErr("authtype not provided")
	}
	if len(cfg.IncludedTags) == 0 {
		return configErr("included_tags not provided")
	}

	if !strings.HasPrefix(cfg.Server, "https://") {
		return configErr("server is not an HTTPS URL")
	}
	if !strings.HasSuffix(cfg.Server, "/kojihub") {
		return configErr("server is not a koji-hub XMLRPC endpoint (/kojihub)")
	}

	switch cfg.AuthType {
	case AuthSSL:
		if cfg.Cert == "" {
			return configErr("cert not provided for ssl authtype")
		}
	case AuthGSSAPI:
		if cfg.Principal == "" {
			return configErr("principal not provided for gssapi authtype")
		}
	default:
		return configErr("authtype is not '%s' or '%s'", AuthSSL, AuthGSSAPI)
	}

	return nil
}

func configErr(format string, args ...interface{}) error {
	return errors.New(errors.KindConfig,
		"config error: "+fmt.Sprintf(format, args...))
}
