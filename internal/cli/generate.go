package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Vuzi/sealedgen/internal/generator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func newGenerateCommand() *cobra.Command {
	var config GenerateConfig

	cmd := &cobra.Command{
		Use:   "generate [packages]",
		Short: "Generate JSON codecs for sealed interface families",
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Patterns = args
			return Generate(cmd.OutOrStdout(), &config)
		},
	}

	cmd.Flags().StringArrayVar(&config.Types, "type", nil, "Family interface to derive, repeatable. Defaults to interfaces marked //sealedgen:family")
	cmd.Flags().StringVar(&config.Tag, "tag", "", "Tag field carrying the variant name for families named with --type (default \"__type\")")
	cmd.Flags().StringVar(&config.Ops, "ops", "", "Operations to generate for families named with --type: codec, decode or encode (default codec)")
	cmd.Flags().StringVar(&config.Dir, "dir", ".", "Directory to resolve package patterns against")
	cmd.Flags().StringVar(&config.Output, "output", "", "Write all generated code to one file, or '-' for stdout")
	cmd.Flags().StringVar(&config.Suffix, "suffix", "", "Suffix for colocated generated files (default \"_sealedgen.go\")")
	cmd.Flags().StringVar(&config.ConfigPath, "config", "", "Path to .sealedgen.yml config file")
	cmd.Flags().BoolVar(&config.DryRun, "dry-run", false, "Render everything without writing files")
	cmd.Flags().BoolVar(&config.Verbose, "verbose", false, "Enable debug logging")

	return cmd
}

// GenerateConfig holds configuration for codec generation.
type GenerateConfig struct {
	Types      []string `validate:"dive,required"`
	Tag        string
	Ops        string `validate:"omitempty,oneof=codec decode encode"`
	Dir        string
	Patterns   []string
	Output     string
	Suffix     string `validate:"omitempty,endswith=.go"`
	ConfigPath string
	DryRun     bool
	Verbose    bool

	// Families carries per-family settings from the config file. Ignored
	// when --type flags are given.
	Families []FamilyConfig `validate:"dive"`
}

// FamilyConfig is one family entry in the config file.
type FamilyConfig struct {
	Type string `yaml:"type" validate:"required"`
	Tag  string `yaml:"tag"`
	Ops  string `yaml:"ops" validate:"omitempty,oneof=codec decode encode"`
}

// Generate derives codecs based on the provided configuration.
func Generate(stdout io.Writer, config *GenerateConfig) error {
	if err := loadConfigFile(config); err != nil {
		return err
	}
	if err := validateConfig(config); err != nil {
		return err
	}

	log, err := newLogger(config.Verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	gen := generator.New(generatorConfig(config), log)

	if config.Output == "-" {
		return renderToWriter(stdout, gen)
	}

	rep, err := gen.Run()
	if err != nil {
		return err
	}
	for _, file := range rep.Files {
		if config.DryRun {
			fmt.Fprintf(stdout, "would write %s\n", file)
		} else {
			fmt.Fprintf(stdout, "wrote %s\n", file)
		}
	}
	return nil
}

func loadConfigFile(config *GenerateConfig) error {
	if config.ConfigPath == "" {
		return nil
	}

	data, err := os.ReadFile(filepath.Clean(config.ConfigPath))
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var cfg struct {
		Sealedgen struct {
			Dir      string         `yaml:"dir"`
			Patterns []string       `yaml:"patterns"`
			Tag      string         `yaml:"tag"`
			Ops      string         `yaml:"ops"`
			Output   string         `yaml:"output"`
			Suffix   string         `yaml:"suffix"`
			Families []FamilyConfig `yaml:"families"`
		} `yaml:"sealedgen"`
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	// Apply config values if flags weren't set
	if config.Dir == "." && cfg.Sealedgen.Dir != "" {
		config.Dir = cfg.Sealedgen.Dir
	}
	if len(config.Patterns) == 0 {
		config.Patterns = cfg.Sealedgen.Patterns
	}
	if config.Tag == "" {
		config.Tag = cfg.Sealedgen.Tag
	}
	if config.Ops == "" {
		config.Ops = cfg.Sealedgen.Ops
	}
	if config.Output == "" {
		config.Output = cfg.Sealedgen.Output
	}
	if config.Suffix == "" {
		config.Suffix = cfg.Sealedgen.Suffix
	}
	config.Families = cfg.Sealedgen.Families

	return nil
}

func validateConfig(config *GenerateConfig) error {
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// newLogger builds the CLI logger. Warnings always surface; verbose mode adds
// the generator's debug trail.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

// generatorConfig maps the CLI configuration onto a generator run. Explicit
// --type flags take precedence over the config file's family list.
func generatorConfig(config *GenerateConfig) generator.Config {
	cfg := generator.Config{
		Dir:      config.Dir,
		Patterns: config.Patterns,
		Suffix:   config.Suffix,
		DryRun:   config.DryRun,
	}
	if config.Output != "-" {
		cfg.Output = config.Output
	}

	for _, name := range config.Types {
		cfg.Requests = append(cfg.Requests, generator.Request{
			Type: name,
			Tag:  config.Tag,
			Ops:  generator.Ops(config.Ops),
		})
	}
	if len(cfg.Requests) == 0 {
		for _, fam := range config.Families {
			req := generator.Request{Type: fam.Type, Tag: fam.Tag, Ops: generator.Ops(fam.Ops)}
			if req.Tag == "" {
				req.Tag = config.Tag
			}
			if req.Ops == "" {
				req.Ops = generator.Ops(config.Ops)
			}
			cfg.Requests = append(cfg.Requests, req)
		}
	}
	return cfg
}

func renderToWriter(w io.Writer, gen *generator.Generator) error {
	fams, err := gen.Resolve()
	if err != nil {
		return err
	}
	content, err := generator.RenderSingle(fams)
	if err != nil {
		return err
	}
	_, err = w.Write(content)
	return err
}
