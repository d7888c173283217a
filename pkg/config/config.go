package config

import (
	"io/fs"
	"os"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

type Config struct {
	// Environment selects the per-environment defaults. It only comes from
	// $ENVIRONMENT.
	Environment  string `koanf:"-" default:"development" validate:"oneof=development test production"`
	LogLevel     string `koanf:"log_level" validate:"oneof=debug info warn error"`
	RenamePages  bool   `koanf:"rename_pages" default:"true"`
	MaxEntrySize int64  `koanf:"max_entry_size" default:"268435456" validate:"min=1"`
	WriteSidecar bool   `koanf:"write_sidecar"`
	CacheDir     string `koanf:"cache_dir" validate:"required"`
	OutputDir    string `koanf:"output_dir" default:"." validate:"required"`
}

const (
	environmentENV = "ENVIRONMENT"
	configFileENV  = "CONFIG_FILE"
	defaultFile    = "./comicinfo.yaml"
	envPrefix      = "COMICINFO_"
)

// New loads the config from, in increasing priority: defaults for the
// environment, the YAML file at $CONFIG_FILE (./comicinfo.yaml by default,
// ignored when missing), and COMICINFO_* environment variables.
func New() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.WithStack(err)
	}
	if environment := os.Getenv(environmentENV); environment != "" {
		cfg.Environment = environment
	}

	switch cfg.Environment {
	case "development":
		loadDevelopmentConfig(cfg)
	case "test":
		loadTestConfig(cfg)
	case "production":
		loadProductionConfig(cfg)
	}

	k := koanf.New(".")

	path := os.Getenv(configFileENV)
	if path == "" {
		path = defaultFile
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(err, "failed to load config file %s", path)
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

var validate = validator.New()

// validateConfig reports the first invalid field by both its YAML key and
// its environment variable.
func validateConfig(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return errors.WithStack(err)
	}

	fe := errs[0]
	field, _ := fieldTag(fe.StructField())
	if field == "-" {
		return errors.Errorf("invalid %s %q: must be one of %s", environmentENV, cfg.Environment, fe.Param())
	}
	envVar := envPrefix + strings.ToUpper(field)
	if fe.Tag() == "required" {
		return errors.Errorf("missing required config: set %s or %s in the config file", envVar, field)
	}
	return errors.Errorf("invalid config %s (%s): %v does not satisfy %s", field, envVar, fe.Value(), fieldRule(fe))
}

func fieldTag(name string) (string, bool) {
	f, ok := reflect.TypeOf(Config{}).FieldByName(name)
	if !ok {
		return name, false
	}
	return f.Tag.Get("koanf"), true
}

func fieldRule(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
