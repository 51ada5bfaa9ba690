package config

// Section is the config file section (and koji profile name) kojicron
// reads its settings from.
const Section = "kojicron"

// DefaultPath is where the config file lives unless --config says otherwise.
const DefaultPath = "/etc/kojicron/kojicron.conf"

// Recognized authtype values.
const (
	AuthSSL    = "ssl"    // certificate-based
	AuthGSSAPI = "gssapi" // ticket-based
)

// Config is the parsed [kojicron] section of the config file. It is built
// once at startup and immutable afterwards.
type Config struct {
	// Server is the koji-hub XMLRPC endpoint URL.
	Server string

	// AuthType selects how the koji client authenticates: "ssl" or "gssapi".
	AuthType string

	// Cert is the client certificate path, required for ssl authtype.
	Cert string

	// Principal is the Kerberos principal, required for gssapi authtype.
	Principal string

	// IncludedTags are the glob patterns selecting which tags to regenerate,
	// whitespace-separated in the config file.
	IncludedTags []string

	// LogFile is where to write logs, empty for no log file.
	LogFile string

	// sectionPresent records whether the [kojicron] section existed at all.
	sectionPresent bool

	// rawBools holds the unparsed boolean option values (debug, wait,
	// continue_on_failure) so that bad values can be reported as config
	// errors when the option is resolved.
	rawBools map[string]string
}
