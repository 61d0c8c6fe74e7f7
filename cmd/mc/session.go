// Package mc holds the machine code commands: generation, inspection, drift checks and browsing
package mc

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Manu343726/encgen/pkg/codegen"
	"github.com/Manu343726/encgen/pkg/config"
	"github.com/Manu343726/encgen/pkg/encoder"
	"github.com/Manu343726/encgen/pkg/isa"
	"github.com/Manu343726/encgen/pkg/isa/loader"
	"github.com/Manu343726/encgen/pkg/logging"
)

// Configuration keys bound to the flags shared by every command
var commonFlags = map[string]string{
	"input":         "input",
	"format":        "format",
	"jobs":          "jobs",
	"layout.widths": "widths",
	"log.level":     "log-level",
	"log.file":      "log-file",
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "Instruction descriptor file (TableGen JSON or YAML)")
	cmd.Flags().StringP("format", "f", "", "Descriptor file format (tblgen, yaml). Detected from the file extension if omitted")
	cmd.Flags().IntP("jobs", "j", 1, "Number of instructions processed in parallel")
	cmd.Flags().String("widths", "", "Operand width checking (strict, relaxed)")
}

// State shared by a command run: configuration and logger
type session struct {
	cmd    *cobra.Command
	config *config.Config
	logger *slog.Logger
	closer io.Closer
}

// Loads the configuration of a command, binding its flags to the given keys on top of the common ones.
// Exits the process on failure.
func openSession(cmd *cobra.Command, keys map[string]string) *session {
	v := viper.GetViper()

	if err := config.BindFlags(v, cmd.Flags(), commonFlags); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding flags: %v\n", err)
		os.Exit(1)
	}

	if err := config.BindFlags(v, cmd.Flags(), keys); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding flags: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Log.Level = "debug"
	}

	logger, closer, err := logging.New(os.Stderr, cfg.LoggingOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}

	if file := v.ConfigFileUsed(); file != "" {
		logger.Debug("using config file", "file", file)
	}

	return &session{cmd: cmd, config: cfg, logger: logger, closer: closer}
}

func (s *session) Close() {
	if err := s.closer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing log file: %v\n", err)
	}
}

// Prints an error and exits with the given code
func (s *session) fail(code int, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	s.logger.Debug("command failed", "command", s.cmd.Name(), "error", message)
	fmt.Fprintln(os.Stderr, message)
	s.Close()
	os.Exit(code)
}

func (s *session) load() []*isa.Descriptor {
	if s.config.Input == "" {
		s.fail(1, "Error: no input file, use --input or the input configuration key")
	}

	format, err := s.config.LoaderFormat()
	if err != nil {
		s.fail(1, "Error: %v", err)
	}

	descriptors, err := loader.Load(s.config.Input, format)
	if err != nil {
		s.fail(1, "Error loading instruction descriptors: %v", err)
	}

	s.logger.Info("loaded instruction descriptors", "file", s.config.Input, "count", len(descriptors))
	return descriptors
}

// Runs the descriptors through the encoder pipeline, logging every rejection
func (s *session) process(descriptors []*isa.Descriptor) []encoder.Result {
	opts, err := s.config.EncoderOptions()
	if err != nil {
		s.fail(1, "Error: %v", err)
	}

	pipeline, err := encoder.NewPipeline(opts)
	if err != nil {
		s.fail(1, "Error initializing encoder pipeline: %v", err)
	}

	results, err := pipeline.Run(s.cmd.Context(), descriptors, s.config.Jobs)
	if err != nil {
		s.fail(2, "Error processing instruction descriptors: %v", err)
	}

	for i := range results {
		if r := results[i].Rejection; r != nil {
			s.logger.Debug("instruction rejected", "instruction", r.Instruction, "reason", r.Reason, "error", r)
		}
	}

	rep := encoder.NewReport(results)
	s.logger.Info("processed instruction descriptors",
		"total", rep.Total,
		"synthesized", rep.Synthesized,
		"excluded", rep.Excluded(),
		"broken_encodings", rep.BrokenEncodings(),
		"digest", codegen.Digest(results))

	return results
}

func (s *session) generator() *codegen.Generator {
	opts, err := s.config.CodegenOptions()
	if err != nil {
		s.fail(1, "Error: %v", err)
	}

	g, err := codegen.NewGenerator(opts)
	if err != nil {
		s.fail(1, "Error initializing code generator: %v", err)
	}

	return g
}
