package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/arcivia/arcivia-explore/pkg/client"
	"github.com/arcivia/arcivia-explore/pkg/logging"
	"github.com/arcivia/arcivia-explore/pkg/recognition"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "arcivia",
	Short: "Browse cultural-heritage collections from the command line.",
	Long: `arcivia explores the Metropolitan Museum of Art collection: paginated
category and search listings, item details with related items, live
recognition of still images and the theme preference shared with the app.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(viper.GetString("log.level"))
		if err != nil {
			return err
		}
		cfg := logging.DefaultConfig()
		cfg.Level = level
		cfg.Pretty = viper.GetBool("log.pretty")
		logging.Setup(cfg)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.arcivia.yaml)")
	flags.StringP("log-level", "l", "warn", "Set log level. Available: debug, info, warn, error")
	flags.Bool("pretty", false, "Human-readable log output")
	flags.String("redis", "localhost:6379", "Redis address for the response cache and rate-limit state")
	flags.String("base-url", client.DefaultBaseURL, "Collection API base URL")
	flags.String("user-agent", "arcivia-explore/0.1.0", "User-Agent sent to the collection API")
	flags.Bool("offline", false, "Use the built-in sample catalog instead of the collection API")

	bindFlag(rootCmd, "log.level", "log-level")
	bindFlag(rootCmd, "log.pretty", "pretty")
	bindFlag(rootCmd, "redis.addr", "redis")
	bindFlag(rootCmd, "met.base_url", "base-url")
	bindFlag(rootCmd, "met.user_agent", "user-agent")
	bindFlag(rootCmd, "offline", "offline")

	viper.SetDefault("gemini.model", recognition.DefaultModel)
	viper.SetDefault("serve.addr", ":8080")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".arcivia")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("ARCIVIA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
		}
	}

	viper.SetDefault("theme.db", defaultThemeDB())
}

func defaultThemeDB() string {
	path, err := homedir.Expand("~/.arcivia-prefs.db")
	if err != nil {
		return ".arcivia-prefs.db"
	}
	return path
}

// bindFlag binds a viper key to one of cmd's flags.
func bindFlag(cmd *cobra.Command, key, name string) {
	f := cmd.Flags().Lookup(name)
	if f == nil {
		f = cmd.PersistentFlags().Lookup(name)
	}
	if err := viper.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("bind %s: %v", key, err))
	}
}
