package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/osg-htc/kojicron/internal/errors"
)

// Boolean option names recognized in the [kojicron] section. Each can be
// overridden by a command-line flag of the same name.
var boolOptions = []string{"debug", "wait", "continue_on_failure"}

// Load reads the ini config file at path and returns the parsed [kojicron]
// section. A missing section is not an error here; Validate reports it.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, errors.KindConfig,
			"config error: cannot read "+path)
	}

	cfg := &Config{rawBools: make(map[string]string)}

	sec := v.Sub(Section)
	if sec == nil {
		return cfg, nil
	}
	cfg.sectionPresent = true

	cfg.Server = sec.GetString("server")
	cfg.AuthType = sec.GetString("authtype")
	cfg.Cert = sec.GetString("cert")
	cfg.Principal = sec.GetString("principal")
	cfg.IncludedTags = strings.Fields(sec.GetString("included_tags"))
	cfg.LogFile = sec.GetString("logfile")

	for _, name := range boolOptions {
		cfg.rawBools[name] = sec.GetString(name)
	}

	return cfg, nil
}
