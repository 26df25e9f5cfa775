// Package main provides the proteoformdb command-line tool.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "proteoformdb",
		Short:        "Generate sample-specific proteoform databases from variant calls",
		Version:      fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage: true,
	}

	cobra.OnInitialize(initConfig)

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newConfigCmd())

	return root
}

// initConfig loads ~/.proteoformdb.yaml and PROTEOFORMDB_* environment
// variables into viper.
func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".proteoformdb")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PROTEOFORMDB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// A missing config file is fine; defaults apply.
	_ = viper.ReadInConfig()
}
