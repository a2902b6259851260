// Package config loads engine settings and named cipher profiles from HCL
// or JSON.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/armon/go-metrics"
	"github.com/go-viper/mapstructure/v2"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/go-secure-stdlib/parseutil"
	"github.com/hashicorp/hcl"
	"github.com/hashicorp/hcl/hcl/ast"
	hclParser "github.com/hashicorp/hcl/hcl/parser"
	jsonParser "github.com/hashicorp/hcl/json/parser"
	homedir "github.com/mitchellh/go-homedir"

	"github.com/vomar3/blockcipher/modes"
)

const (
	// DefaultConfigPath is used by LoadFile when no path is given.
	DefaultConfigPath = "~/.blockcipher.hcl"

	// ConfigPathEnv overrides the path passed to LoadFile.
	ConfigPathEnv = "BLOCKCIPHER_CONFIG_PATH"

	maxCounterBits = 128
)

var (
	validKeys        = []string{"log_level", "log_format", "counter_bits", "metrics", "profile"}
	validProfileKeys = []string{"cipher", "key", "iv", "nonce"}
)

type Config struct {
	LogLevel    hclog.Level
	LogFormat   string
	CounterBits int
	Metrics     bool

	Profiles map[string]*Profile
}

// Profile is a named cipher with its key material. Binary values are written
// as hex in the file.
type Profile struct {
	Name   string `mapstructure:"-"`
	Cipher string `mapstructure:"cipher"`
	Key    []byte `mapstructure:"key"`
	IV     []byte `mapstructure:"iv"`
	Nonce  []byte `mapstructure:"nonce"`
}

// LoadFile reads the configuration at path. An empty path means
// DefaultConfigPath, which may be absent. ConfigPathEnv, when set, wins over
// both.
func LoadFile(path string) (*Config, error) {
	optional := path == ""
	if optional {
		path = DefaultConfigPath
	}
	if v := os.Getenv(ConfigPathEnv); v != "" {
		path = v
		optional = false
	}

	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("error expanding config path %q: %w", path, err)
	}

	contents, err := os.ReadFile(path)
	if err != nil && !(optional && os.IsNotExist(err)) {
		return nil, err
	}

	conf, err := Parse(contents)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file at %q: %w", path, err)
	}
	return conf, nil
}

// Parse parses HCL, or JSON when the input starts with '{'.
func Parse(data []byte) (*Config, error) {
	var (
		root *ast.File
		err  error
	)
	if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		root, err = jsonParser.Parse(data)
	} else {
		root, err = hclParser.ParseDontErrorOnDuplicateKeys(data)
	}
	if err != nil {
		return nil, err
	}

	list, ok := root.Node.(*ast.ObjectList)
	if !ok {
		return nil, errors.New("failed to parse config; does not contain a root object")
	}
	if err := checkKeys(list, validKeys); err != nil {
		return nil, err
	}

	c := &Config{
		LogLevel:  hclog.Info,
		LogFormat: "standard",
		Profiles:  make(map[string]*Profile),
	}

	if v, err := scalar(list, "log_level"); err != nil {
		return nil, err
	} else if v != nil {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("log_level: expected a string, got %T", v)
		}
		level := hclog.LevelFromString(s)
		if level == hclog.NoLevel {
			return nil, fmt.Errorf("log_level: unknown level %q", s)
		}
		c.LogLevel = level
	}

	if v, err := scalar(list, "log_format"); err != nil {
		return nil, err
	} else if v != nil {
		s, _ := v.(string)
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "standard":
		case "json":
			c.LogFormat = "json"
		default:
			return nil, fmt.Errorf("log_format: must be \"standard\" or \"json\", got %v", v)
		}
	}

	if v, err := scalar(list, "counter_bits"); err != nil {
		return nil, err
	} else if v != nil {
		n, err := parseutil.ParseInt(v)
		if err != nil {
			return nil, fmt.Errorf("counter_bits: %w", err)
		}
		if n < 0 || n > maxCounterBits {
			return nil, fmt.Errorf("counter_bits: %d is outside 0..%d", n, maxCounterBits)
		}
		c.CounterBits = int(n)
	}

	if v, err := scalar(list, "metrics"); err != nil {
		return nil, err
	} else if v != nil {
		b, err := parseutil.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("metrics: %w", err)
		}
		c.Metrics = b
	}

	if o := list.Filter("profile"); len(o.Items) > 0 {
		if err := parseProfiles(c, o); err != nil {
			return nil, fmt.Errorf("error parsing 'profile': %w", err)
		}
	}

	return c, nil
}

func parseProfiles(c *Config, list *ast.ObjectList) error {
	for _, item := range list.Items {
		if len(item.Keys) != 1 {
			return errors.New("profile must have exactly one name")
		}
		name := item.Keys[0].Token.Value().(string)
		if _, ok := c.Profiles[name]; ok {
			return fmt.Errorf("profile %q is defined more than once", name)
		}

		obj, ok := item.Val.(*ast.ObjectType)
		if !ok {
			return fmt.Errorf("profile %q: expected a block", name)
		}
		if err := checkKeys(obj.List, validProfileKeys); err != nil {
			return multierror.Prefix(err, fmt.Sprintf("profile %q:", name))
		}

		var m map[string]interface{}
		if err := hcl.DecodeObject(&m, item.Val); err != nil {
			return fmt.Errorf("profile %q: %w", name, err)
		}

		p := &Profile{Name: name}
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      p,
			DecodeHook:  mapstructure.DecodeHookFuncType(hexToBytes),
			ErrorUnused: true,
		})
		if err != nil {
			return err
		}
		if err := decoder.Decode(m); err != nil {
			return fmt.Errorf("profile %q: %w", name, err)
		}
		if p.Cipher == "" {
			return fmt.Errorf("profile %q: cipher is required", name)
		}

		c.Profiles[name] = p
	}
	return nil
}

var bytesType = reflect.TypeOf([]byte(nil))

func hexToBytes(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != bytesType {
		return data, nil
	}
	b, err := hex.DecodeString(strings.TrimSpace(data.(string)))
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return b, nil
}

// checkKeys reports every key in list that is not in valid.
func checkKeys(list *ast.ObjectList, valid []string) error {
	validMap := make(map[string]struct{}, len(valid))
	for _, v := range valid {
		validMap[v] = struct{}{}
	}

	var result error
	for _, item := range list.Items {
		key := item.Keys[0].Token.Value().(string)
		if _, ok := validMap[key]; !ok {
			result = multierror.Append(result, fmt.Errorf("invalid key %q on line %d", key, item.Keys[0].Pos().Line))
		}
	}
	return result
}

// scalar decodes the single value set for key, or returns nil when the key
// is absent.
func scalar(list *ast.ObjectList, key string) (interface{}, error) {
	items := list.Filter(key).Items
	switch len(items) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, fmt.Errorf("%s: set more than once", key)
	}

	if _, ok := items[0].Val.(*ast.LiteralType); !ok {
		return nil, fmt.Errorf("%s: expected a single value", key)
	}
	var v interface{}
	if err := hcl.DecodeObject(&v, items[0].Val); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

// Logger builds the logger described by the configuration.
func (c *Config) Logger(output io.Writer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Level:      c.LogLevel,
		JSONFormat: c.LogFormat == "json",
		Output:     output,
	})
}

// NewEngine returns an engine logging to output with the configured counter
// width, reporting to the global metrics instance when metrics are enabled.
// opts are applied last.
func (c *Config) NewEngine(output io.Writer, opts ...modes.Option) *modes.Engine {
	all := []modes.Option{
		modes.WithLogger(c.Logger(output)),
		modes.WithCounterBits(c.CounterBits),
	}
	if c.Metrics {
		all = append(all, modes.WithMetrics(metrics.Default()))
	}
	return modes.NewEngine(append(all, opts...)...)
}

// Profile returns the named profile.
func (c *Config) Profile(name string) (*Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("no profile named %q", name)
	}
	return p, nil
}

// Context returns a fresh cipher context for the profile. CTR profiles take
// their counter block from nonce, falling back to iv.
func (p *Profile) Context() (*modes.CipherContext, error) {
	id, err := modes.ParseIdentifier(p.Cipher)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", p.Name, err)
	}

	iv := p.IV
	if id.Mode == modes.CTR && len(p.Nonce) > 0 {
		iv = p.Nonce
	}
	return modes.NewContext(id, p.Key, iv), nil
}
