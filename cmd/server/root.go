package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rai/myapp-backend/internal/platform/config"
)

// options is shared by every command. Each command tree gets its own viper
// instance so tests can build several without sharing state.
type options struct {
	v          *viper.Viper
	configFile string
}

func (o *options) load() (config.Config, error) {
	return config.Load(o.v, o.configFile)
}

func newRootCmd() *cobra.Command {
	opts := &options{v: viper.New()}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "myapp",
		Short: "myapp backend: users, feedback and health HTTP API",
		Long: `myapp serves a JSON HTTP API for managing user records and collecting
visitor feedback. Configuration comes from defaults, an optional YAML file,
MYAPP_* environment variables and flags, in increasing order of precedence.`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		// Running the bare binary starts the server.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (YAML)")
	flags.String("log-level", defaults.Log.Level, "log level: debug, info, warn, error")
	flags.String("log-format", defaults.Log.Format, "log format: json or text")
	bindFlag(opts.v, "log.level", flags, "log-level")
	bindFlag(opts.v, "log.format", flags, "log-format")

	// Server flags are persistent so "myapp --port 9000" and
	// "myapp serve --port 9000" both work. viper binds a key to one flag only.
	addServerFlags(opts.v, flags)

	cmd.AddCommand(newServeCmd(opts), newOpenAPICmd(opts))
	return cmd
}

func addServerFlags(v *viper.Viper, flags *pflag.FlagSet) {
	defaults := config.Default()
	flags.String("host", defaults.Server.Host, "interface to listen on (empty for all)")
	flags.Int("port", defaults.Server.Port, "port to listen on")
	flags.Bool("validate-requests", defaults.Server.ValidateRequests, "reject requests that do not match the API document")
	bindFlag(v, "server.host", flags, "host")
	bindFlag(v, "server.port", flags, "port")
	bindFlag(v, "server.validate_requests", flags, "validate-requests")
}

func bindFlag(v *viper.Viper, key string, flags *pflag.FlagSet, name string) {
	// BindPFlag only fails for a nil flag, which would be a typo here.
	cobra.CheckErr(v.BindPFlag(key, flags.Lookup(name)))
}
