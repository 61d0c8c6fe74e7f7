package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Manu343726/encgen/cmd/mc"
	"github.com/Manu343726/encgen/cmd/tools"
	"github.com/Manu343726/encgen/pkg/config"
)

var cfgFile string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "encgen",
	Short: "Generate instruction encoders from TableGen descriptors",
	Long: `encgen turns TableGen instruction records of a 32 bit ISA into encoder methods.

Each instruction record is classified, its operand bitfields are located in the instruction
template and an encoder packing operand values into the instruction word is generated.
Records that cannot be encoded are rejected with a reason and reported.

Configuration is read from --config, .encgen.yaml in the working directory or home, and
ENCGEN_* environment variables. Command line flags take precedence.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	RootCmd.AddCommand(mc.GenerateCmd, mc.InspectCmd, mc.CheckCmd, mc.BrowseCmd, tools.ToolsCmd)
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .encgen.yaml in the working directory or $HOME)")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log at debug level")
	RootCmd.PersistentFlags().String("log-level", "", "Console log level (debug, info, warn, error)")
	RootCmd.PersistentFlags().String("log-file", "", "Also write JSON logs to this file")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	v := viper.GetViper()
	config.SetDefaults(v)
	config.BindEnv(v)

	if cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")

		// Search config in home directory too with name ".encgen" (without extension).
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}

		v.SetConfigType("yaml")
		v.SetConfigName(".encgen")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}

		fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		os.Exit(1)
	}
}
