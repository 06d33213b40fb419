package aprov

import "github.com/soitun/aistore/envvar"

// EnvToken is the environment variable holding an AuthN token, matching the one used by the cluster's own tooling.
const EnvToken = "AIS_AUTHN_TOKEN"

// Static implements the 'Provider' interface and always returns static credentials/information.
type Static struct {
	Token, UserAgent string
}

var _ Provider = (*Static)(nil)

// NewStaticFromEnv returns a static provider using the token from the environment (if any).
func NewStaticFromEnv(userAgent string) *Static {
	token, _ := envvar.GetString(EnvToken)
	return &Static{Token: token, UserAgent: userAgent}
}

func (s *Static) GetToken(_ string) string {
	return s.Token
}

func (s *Static) GetUserAgent() string {
	return s.UserAgent
}
