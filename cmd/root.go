/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/allbin/serialecho"
	"github.com/allbin/serialecho/internal/console"
)

var (
	cfgFile string
	v       = newViper()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "serialecho <port> <baudrate>",
	Short: "Echo everything received on a serial port",
	Long: `Echo every byte received on a serial port back to the sender.

Every 2 seconds a burst of 1 to 25 random bytes, wrapped in a random ANSI
color, is injected into the stream. Disable it with --no-inject.

With --socat-port, socat links two pseudo-terminals first: the echo runs on
<port> and <socat-port> is the end you talk to. Both links are removed on exit.

Stop with Ctrl+C.

Every flag can also be set through a SERIALECHO_<FLAG> environment variable
(e.g. SERIALECHO_INJECT_INTERVAL=500ms) or a key in the --config file.

Example usage:
  serialecho /dev/ttyUSB0 115200
  serialecho /dev/ttyUSB0 9600 --debug --no-inject
  serialecho /tmp/ttyV1 9600 -d -s /tmp/ttyV0`,
	Args:              cobra.ExactArgs(2),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return readConfig(v, cfgFile) },
	RunE:              runEcho,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		console.New(os.Stdout, os.Stderr, false).Errorf("Error: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (yaml, toml or json)")
	addFlags(rootCmd.Flags())
	if err := v.BindPFlags(rootCmd.Flags()); err != nil {
		panic(err)
	}
}

// addFlags registers the session flags. Defaults mirror serialecho.DefaultConfig.
func addFlags(fs *pflag.FlagSet) {
	def := serialecho.DefaultConfig()

	fs.BoolP("debug", "d", false, "Print lifecycle and traffic details")
	fs.StringP("socat-port", "s", "", "Link this path to <port> through socat before echoing")
	fs.Bool("no-inject", false, "Do not inject random colored bursts")
	fs.Duration("inject-interval", def.InjectInterval, "Time between injected bursts")
	fs.Duration("read-timeout", def.ReadTimeout, "Read window per poll (multiple of 100ms, max 25.5s)")
	fs.Duration("link-timeout", def.LinkTimeout, "How long to wait for socat to create both links")
	fs.String("helper", def.Helper, "Path of the socat binary")
	fs.Bool("sync-writes", false, "Open the port with O_SYNC so writes wait for the driver")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("SERIALECHO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func readConfig(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("cannot read config file %s: %w", path, err)
	}
	return nil
}

// loadConfig builds the session from the positional arguments and the
// merged flag, environment and file settings.
func loadConfig(v *viper.Viper, args []string) (serialecho.Config, error) {
	cfg := serialecho.DefaultConfig()
	cfg.Port = args[0]

	baud, err := strconv.Atoi(args[1])
	if err != nil {
		return cfg, fmt.Errorf("invalid baudrate %q: %w", args[1], serialecho.ErrInvalidBaudRate)
	}
	cfg.BaudRate = baud

	cfg.Debug = v.GetBool("debug")
	cfg.SourcePort = v.GetString("socat-port")
	cfg.Inject = !v.GetBool("no-inject")
	cfg.InjectInterval = v.GetDuration("inject-interval")
	cfg.ReadTimeout = v.GetDuration("read-timeout")
	cfg.LinkTimeout = v.GetDuration("link-timeout")
	cfg.Helper = v.GetString("helper")
	cfg.SyncWrites = v.GetBool("sync-writes")
	return cfg, nil
}

func runEcho(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(v, args)
	if err != nil {
		return err
	}
	return serialecho.Run(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
