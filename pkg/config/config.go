// Package config maps the encgen configuration (file, environment and flags) into component options.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Manu343726/encgen/pkg/codegen"
	"github.com/Manu343726/encgen/pkg/encoder"
	"github.com/Manu343726/encgen/pkg/isa/loader"
	"github.com/Manu343726/encgen/pkg/logging"
	"github.com/Manu343726/encgen/pkg/report"
)

const EnvPrefix = "ENCGEN"

type Filter struct {
	Exclude    []string `mapstructure:"exclude"`
	Namespaces []string `mapstructure:"namespaces"`
}

// Operand type token mapped to a non register kind
type KindRule struct {
	Token string `mapstructure:"token"`
	Kind  string `mapstructure:"kind"`
}

type Operands struct {
	Unsupported []string `mapstructure:"unsupported"`
	CCOut       string   `mapstructure:"cc_out"`
	SingleBit   []string `mapstructure:"single_bit"`
	// A list instead of a map since configuration keys are case insensitive and type tokens are not
	Kinds []KindRule `mapstructure:"kinds"`
}

type Layout struct {
	Widths string `mapstructure:"widths"`
}

type Emit struct {
	Backend   string `mapstructure:"backend"`
	Package   string `mapstructure:"package"`
	AsmImport string `mapstructure:"asm_import"`
	Annotate  bool   `mapstructure:"annotate"`
}

type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type Config struct {
	// Descriptor file
	Input string `mapstructure:"input"`
	// Descriptor file format, empty to detect it from the file extension
	Format string `mapstructure:"format"`
	// Generated code destination, empty for stdout
	Output   string   `mapstructure:"output"`
	Report   string   `mapstructure:"report"`
	Jobs     int      `mapstructure:"jobs"`
	Filter   Filter   `mapstructure:"filter"`
	Operands Operands `mapstructure:"operands"`
	Layout   Layout   `mapstructure:"layout"`
	Emit     Emit     `mapstructure:"emit"`
	Log      Log      `mapstructure:"log"`
}

// Registers the default value of every configuration key
func SetDefaults(v *viper.Viper) {
	filter := encoder.DefaultFilterOptions()
	operands := encoder.DefaultClassifierOptions()
	emit := codegen.DefaultOptions()

	kinds := make([]map[string]string, 0, len(operands.Kinds))
	for token, kind := range operands.Kinds {
		kinds = append(kinds, map[string]string{"token": token, "kind": kind.String()})
	}

	v.SetDefault("format", "")
	v.SetDefault("output", "")
	v.SetDefault("report", string(report.Format_Text))
	v.SetDefault("jobs", 1)
	v.SetDefault("filter.exclude", filter.Exclude)
	v.SetDefault("filter.namespaces", filter.Namespaces)
	v.SetDefault("operands.unsupported", operands.Unsupported)
	v.SetDefault("operands.cc_out", operands.CCOut)
	v.SetDefault("operands.single_bit", operands.SingleBit)
	v.SetDefault("operands.kinds", kinds)
	v.SetDefault("layout.widths", encoder.LayoutMode_Strict.String())
	v.SetDefault("emit.backend", string(emit.Backend))
	v.SetDefault("emit.package", emit.Package)
	v.SetDefault("emit.asm_import", emit.AsmImport)
	v.SetDefault("emit.annotate", emit.Annotate)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
}

// Makes ENCGEN_* environment variables override configuration keys (ENCGEN_EMIT_BACKEND for emit.backend)
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Binds command line flags to configuration keys, given as key -> flag name
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		flag := flags.Lookup(name)
		if flag == nil {
			return fmt.Errorf("unknown flag '%v' bound to configuration key '%v'", name, key)
		}

		if err := v.BindPFlag(key, flag); err != nil {
			return err
		}
	}

	return nil
}

func Load(v *viper.Viper) (*Config, error) {
	var c Config

	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &c, nil
}

func (c *Config) EncoderOptions() (encoder.Options, error) {
	mode, err := encoder.ParseLayoutMode(c.Layout.Widths)
	if err != nil {
		return encoder.Options{}, err
	}

	kinds := make(map[string]encoder.OperandKind, len(c.Operands.Kinds))
	for _, rule := range c.Operands.Kinds {
		kind, err := encoder.ParseOperandKind(rule.Kind)
		if err != nil {
			return encoder.Options{}, fmt.Errorf("operands.kinds, token '%v': %w", rule.Token, err)
		}

		kinds[rule.Token] = kind
	}

	return encoder.Options{
		Filter: encoder.FilterOptions{
			Exclude:    c.Filter.Exclude,
			Namespaces: c.Filter.Namespaces,
		},
		Classifier: encoder.ClassifierOptions{
			Kinds:       kinds,
			Unsupported: c.Operands.Unsupported,
			CCOut:       c.Operands.CCOut,
			SingleBit:   c.Operands.SingleBit,
		},
		Layout: mode,
	}, nil
}

func (c *Config) CodegenOptions() (codegen.Options, error) {
	backend, err := codegen.ParseBackend(c.Emit.Backend)
	if err != nil {
		return codegen.Options{}, err
	}

	return codegen.Options{
		Backend:   backend,
		Package:   c.Emit.Package,
		AsmImport: c.Emit.AsmImport,
		Annotate:  c.Emit.Annotate,
		Source:    c.Input,
	}, nil
}

func (c *Config) LoaderFormat() (loader.Format, error) {
	return loader.ParseFormat(c.Format)
}

func (c *Config) ReportFormat() (report.Format, error) {
	return report.ParseFormat(c.Report)
}

func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{
		Level: c.Log.Level,
		File:  c.Log.File,
	}
}
