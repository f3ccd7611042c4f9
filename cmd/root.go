package cmd

import (
	"context"
	"fmt"
	"runtime"

	"github.com/projecteru2/core/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/projecteru2/nsuuid/config"
)

var conf *config.Config

var rootCmd = newRootCmd()

// newRootCmd builds the command tree with its own viper instance, so every
// tree resolves flags, env and config file independently.
func newRootCmd() *cobra.Command {
	var cfgFile string
	v := viper.New()
	defaults := config.DefaultConfig()
	cmd := &cobra.Command{
		Use:          "nsuuid",
		Short:        "nsuuid - deterministic name-based (version 5) UUIDs",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(commandContext(cmd), v, cfgFile)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file path")
	flags.StringP("context", "c", defaults.Namespace, "namespace: dns, url, oid, x500, a UUID, or raw bytes as hex:<32 digits> or base64:<data>")
	flags.String("context-layout", defaults.NamespaceLayout, "byte layout of raw hex:/base64: --context values: rfc4122 or microsoft")
	flags.String("layout", defaults.Layout, "native byte layout for hex/base64/json output: rfc4122 or microsoft")
	flags.StringP("format", "o", defaults.Format, "output format: string, urn, hex, base64 or json")
	flags.Bool("decode-text", defaults.DecodeText, "decode file/stdin input as text and re-encode as UTF-8 before hashing")
	flags.String("max-name-size", defaults.MaxNameSize, "largest accepted file/stdin input (0 for no limit)")
	flags.Int("pool-size", defaults.PoolSize, "concurrent derivations for multi-file input")
	flags.String("root-dir", defaults.RootDir, "directory holding the ledger")
	flags.String("log-level", defaults.Log.Level, "log level")

	_ = v.BindPFlag("namespace", flags.Lookup("context"))
	_ = v.BindPFlag("namespace_layout", flags.Lookup("context-layout"))
	_ = v.BindPFlag("layout", flags.Lookup("layout"))
	_ = v.BindPFlag("format", flags.Lookup("format"))
	_ = v.BindPFlag("decode_text", flags.Lookup("decode-text"))
	_ = v.BindPFlag("max_name_size", flags.Lookup("max-name-size"))
	_ = v.BindPFlag("pool_size", flags.Lookup("pool-size"))
	_ = v.BindPFlag("root_dir", flags.Lookup("root-dir"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))

	v.SetEnvPrefix("NSUUID")
	v.AutomaticEnv()

	cmd.AddCommand(
		newDeriveCmd(),
		newWatchCmd(),
		newListCmd(),
		newInspectCmd(),
		newRmCmd(),
		newNamespacesCmd(),
		newVersionCmd(),
	)

	return cmd
}

func initConfig(ctx context.Context, v *viper.Viper, cfgFile string) error {
	conf = config.DefaultConfig()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	if err := v.Unmarshal(conf); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if conf.PoolSize <= 0 {
		conf.PoolSize = runtime.NumCPU()
	}

	return log.SetupLog(ctx, conf.Log, "")
}

// Execute is the main entry point called from main.go.
func Execute() error {
	ctx, cancel := newCommandContext()
	defer cancel()
	return rootCmd.ExecuteContext(ctx)
}
