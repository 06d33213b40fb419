// Package config loads the options used to build a cluster client from the environment and an optional '.env' file.
//
// Keys map to environment variables by upper casing them and replacing '.' with '_' e.g. 'ais.endpoint' is read from
// 'AIS_ENDPOINT' and 'ais.client.num_retries' from 'AIS_CLIENT_NUM_RETRIES'.
package config

import (
	"crypto/tls"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/soitun/aistore/aiscli/aishttp"
	"github.com/soitun/aistore/aprov"
	"github.com/soitun/aistore/log"
	"github.com/soitun/aistore/log/logruslog"
	"github.com/soitun/aistore/log/zaplog"
	"github.com/soitun/aistore/tlsutil"
)

// Config is the root of the configuration.
type Config struct {
	AIS AISConfig `mapstructure:"ais"`
}

// AISConfig configures the connection to the cluster.
type AISConfig struct {
	// Endpoint lists the gateways of the cluster.
	Endpoint string `mapstructure:"endpoint" default:"http://localhost:8080"`

	// AuthnToken is sent as a bearer token, empty when authentication is disabled.
	AuthnToken string `mapstructure:"authn_token"`

	UserAgent string `mapstructure:"user_agent" default:"aistore-go-client"`

	Client ClientConfig `mapstructure:"client"`
	TLS    TLSConfig    `mapstructure:"tls"`
	Log    LogConfig    `mapstructure:"log"`
}

// TLSConfig configures HTTPS gateways, the certificates/keys are paths to PEM files. A client certificate without a
// key is expected to be a PKCS#12 bundle.
type TLSConfig struct {
	CACert     string `mapstructure:"ca_cert"`
	ClientCert string `mapstructure:"client_cert"`
	ClientKey  string `mapstructure:"client_key"`
	Password   string `mapstructure:"password"`
	SkipVerify bool   `mapstructure:"skip_verify" default:"false"`
}

// ClientConfig configures request timeouts/retries.
type ClientConfig struct {
	Timeout        time.Duration `mapstructure:"timeout" default:"0s"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" default:"2m"`
	NumRetries     int           `mapstructure:"num_retries" default:"3"`
}

// LogConfig configures the logger handed to the client.
type LogConfig struct {
	// Backend is either 'zap' or 'logrus'.
	Backend string `mapstructure:"backend" default:"zap"`
	Level   string `mapstructure:"level" default:"info"`
	Format  string `mapstructure:"format" default:"json"`
}

// Load reads the configuration from the environment, values from the '.env' file in the given directory (if any)
// override those already in the environment.
func Load(path string) (*Config, error) {
	// A missing file isn't an error, the environment may be populated by other means.
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()

	setDefaults(v, Config{}, "")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// setDefaults registers every key with its 'default' tag, keys must be registered for 'AutomaticEnv' to find them.
func setDefaults(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			setDefaults(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
	}
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() (log.Level, error) {
	return log.ParseLevel(c.AIS.Log.Level)
}

// Logger returns a logger using the configured backend/level/format.
func (c *Config) Logger() (log.Logger, error) {
	level, err := c.LogLevel()
	if err != nil {
		return nil, err
	}

	switch c.AIS.Log.Backend {
	case "", "zap":
		logger, err := zaplog.NewFromConfig(level, c.AIS.Log.Format)
		if err != nil {
			return nil, err
		}

		return logger, nil
	case "logrus":
		return newLogrusLogger(level, c.AIS.Log.Format)
	default:
		return nil, fmt.Errorf("unknown log backend '%s'", c.AIS.Log.Backend)
	}
}

// newLogrusLogger returns a logrus backed logger writing to stderr.
func newLogrusLogger(level log.Level, format string) (log.Logger, error) {
	logger := logrus.New()
	logger.SetLevel(logruslog.ToLogrusLevel(level))

	switch format {
	case "", "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "console":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format '%s'", format)
	}

	return logruslog.New(logger), nil
}

// ClientOptions returns the options for creating a cluster client, using the given logger.
func (c *Config) ClientOptions(logger log.Logger) (aishttp.ClientOptions, error) {
	tlsConfig, err := c.AIS.TLS.load()
	if err != nil {
		return aishttp.ClientOptions{}, fmt.Errorf("failed to load TLS config: %w", err)
	}

	return aishttp.ClientOptions{
		Endpoint:       c.AIS.Endpoint,
		Provider:       &aprov.Static{Token: c.AIS.AuthnToken, UserAgent: c.AIS.UserAgent},
		Logger:         logger,
		TLSConfig:      tlsConfig,
		RequestRetries: c.AIS.Client.NumRetries,
		RequestTimeout: c.AIS.Client.RequestTimeout,
		ClientTimeout:  c.AIS.Client.Timeout,
	}, nil
}

// load reads the configured files, returning <nil> when TLS isn't configured.
func (t TLSConfig) load() (*tls.Config, error) {
	if t == (TLSConfig{}) {
		return nil, nil
	}

	options := tlsutil.TLSConfigOptions{NoSSLVerify: t.SkipVerify}

	if t.Password != "" {
		options.Password = []byte(t.Password)
	}

	files := []struct {
		path string
		data *[]byte
	}{
		{path: t.CACert, data: &options.RootCAs},
		{path: t.ClientCert, data: &options.ClientCert},
		{path: t.ClientKey, data: &options.ClientKey},
	}

	for _, file := range files {
		if file.path == "" {
			continue
		}

		contents, err := os.ReadFile(file.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read '%s': %w", file.path, err)
		}

		*file.data = contents
	}

	return tlsutil.NewTLSConfig(options)
}
