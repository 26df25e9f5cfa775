package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/genemodel"
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/haplotype"
)

// configKey is a persistable pipeline setting. Each key mirrors a generate
// flag; a set value becomes the default for runs that omit the flag.
type configKey struct {
	name  string
	usage string
	def   any
}

var configKeys = []configKey{
	{"organism", "organism recorded on proteoform entries", ""},
	{"workers", "worker count for haplotype expansion (0 = number of CPUs)", 0},
	{"flank-length", "upstream/downstream flank size in bases", int64(genemodel.DefaultFlankLength)},
	{"max-heterozygous", "heterozygous variant cap per transcript", haplotype.DefaultMaxHeterozygous},
}

func lookupConfigKey(name string) (configKey, bool) {
	for _, k := range configKeys {
		if k.name == name {
			return k, true
		}
	}
	return configKey{}, false
}

func configKeyNames() string {
	names := make([]string, len(configKeys))
	for i, k := range configKeys {
		names[i] = k.name
	}
	return strings.Join(names, ", ")
}

// parseConfigValue validates a key and converts its value to the key's
// type. Integer keys must be non-negative.
func parseConfigValue(key, value string) (any, error) {
	k, ok := lookupConfigKey(key)
	if !ok {
		return nil, fmt.Errorf("unknown config key %q (known keys: %s)", key, configKeyNames())
	}
	switch k.def.(type) {
	case int, int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s requires an integer value, got %q", key, value)
		}
		if n < 0 {
			return nil, fmt.Errorf("%s must be non-negative, got %d", key, n)
		}
		return n, nil
	default:
		return value, nil
	}
}

func newConfigCmd() *cobra.Command {
	long := &strings.Builder{}
	long.WriteString("Show, get, or set pipeline defaults. Config is stored in ~/.proteoformdb.yaml\nand applies to generate runs that omit the matching flag.\n\nKeys:\n")
	for _, k := range configKeys {
		fmt.Fprintf(long, "  %-17s %s (default %v)\n", k.name, k.usage, k.def)
	}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage proteoformdb configuration",
		Long:  long.String(),
		Example: `  proteoformdb config                       # show effective settings
  proteoformdb config set organism "Homo sapiens"
  proteoformdb config set max-heterozygous 8
  proteoformdb config get flank-length`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a pipeline default",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get the effective value of a pipeline setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(args[0])
		},
	}
}

// runConfigShow prints every known key with its effective value, marking
// which ones still carry the built-in default.
func runConfigShow() error {
	settings := make(map[string]any, len(configKeys))
	var unset []string
	for _, k := range configKeys {
		if viper.IsSet(k.name) {
			settings[k.name] = viper.Get(k.name)
		} else {
			settings[k.name] = k.def
			unset = append(unset, k.name)
		}
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Print(string(out))
	if len(unset) > 0 {
		fmt.Printf("# built-in defaults: %s\n", strings.Join(unset, ", "))
	}
	return nil
}

func runConfigSet(key, value string) error {
	parsed, err := parseConfigValue(key, value)
	if err != nil {
		return err
	}
	viper.Set(key, parsed)

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, ".proteoformdb.yaml")
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Set %s = %v in %s\n", key, parsed, cfgFile)
	return nil
}

func runConfigGet(key string) error {
	k, ok := lookupConfigKey(key)
	if !ok {
		return fmt.Errorf("unknown config key %q (known keys: %s)", key, configKeyNames())
	}
	if viper.IsSet(key) {
		fmt.Println(viper.Get(key))
		return nil
	}
	fmt.Printf("%v (default)\n", k.def)
	return nil
}
