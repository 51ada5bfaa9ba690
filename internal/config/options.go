package config

import (
	"strings"

	"github.com/osg-htc/kojicron/internal/errors"
)

// Bool resolves the effective value of a boolean option. An explicitly
// given command-line flag wins; otherwise the config file value is used;
// an absent option defaults to false. Pass explicit == nil when the flag
// was not given on the command line.
func (c *Config) Bool(name string, explicit *bool) (bool, error) {
	if explicit != nil {
		return *explicit, nil
	}
	raw := c.rawBools[name]
	if raw == "" {
		return false, nil
	}
	v, ok := parseBool(raw)
	if !ok {
		return false, errors.Newf(errors.KindConfig,
			"config error: '%s' must be a boolean", name)
	}
	return v, nil
}

// parseBool accepts the same spellings the reference config format does.
func parseBool(s string) (value, ok bool) {
	switch strings.ToLower(s) {
	case "1", "yes", "true", "on":
		return true, true
	case "0", "no", "false", "off":
		return false, true
	}
	return false, false
}
