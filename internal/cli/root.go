// Package cli implements the assocrows command-line interface.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/assocrows/internal/logging"
	"github.com/mesh-intelligence/assocrows/internal/paths"
	"github.com/mesh-intelligence/assocrows/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	logLevel  string
	jsonMode  bool
}

// app carries the state shared by the subcommands of one invocation.
type app struct {
	flags    rootFlags
	cfg      *viper.Viper
	logger   *slog.Logger
	closeLog func()
}

// NewRootCmd creates the top-level "assocrows" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{closeLog: func() {}}

	root := &cobra.Command{
		Use:   "assocrows",
		Short: "Store and inspect association rows in a document store",
		Long: "assocrows keeps the rows of many-valued associations as nested documents\n" +
			"and reads them back by their flat, dotted column names.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.closeLog()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $(CWD)/.assocrows)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.assocrows-db)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(a.newPutCmd())
	root.AddCommand(a.newGetCmd())
	root.AddCommand(a.newListCmd())
	root.AddCommand(a.newRemoveCmd())
	root.AddCommand(a.newColumnsCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// exitCode maps caller mistakes to exitUserError and everything else to
// exitSysError.
func exitCode(err error) int {
	for _, target := range []error{
		types.ErrNotFound,
		types.ErrInvalidKey,
		types.ErrInvalidData,
		types.ErrInvalidTable,
		types.ErrBackendEmpty,
		types.ErrBackendUnknown,
		types.ErrSyncStrategyUnknown,
		types.ErrBatchSizeInvalid,
		errUsage,
	} {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	return exitSysError
}

// errUsage marks malformed command input.
var errUsage = errors.New("invalid input")

// setup loads config.yaml and builds the logger. Commands that never touch
// the store skip it.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	switch cmd.Name() {
	case "version", "columns", "help":
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	a.cfg = cfg

	levelName := a.flags.logLevel
	if levelName == "" {
		levelName = cfg.GetString(cfgKeyLogLevel)
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	a.logger, a.closeLog = logging.Setup(cmd.ErrOrStderr(), level, cfg.GetString(cfgKeySeqURL))
	a.logger.Debug("config loaded", slog.String("config_dir", configDir))
	return nil
}
