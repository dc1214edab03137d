// Package cli implements the wbedit command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/wbedit/internal/paths"
	"github.com/mesh-intelligence/wbedit/pkg/sqlite"
	"github.com/mesh-intelligence/wbedit/pkg/store"
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
	jsonMode  bool
	verbose   bool
	noColor   bool
}

// app is the state shared by the commands of one invocation.
type app struct {
	flags  rootFlags
	config *viper.Viper
	logger *zap.Logger
	// undoLogger restores the global logger replaced at startup.
	undoLogger func()
}

// NewRootCmd creates the top-level "wbedit" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root, _ := newRootCmd()
	return root
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:   "wbedit",
		Short: "Build and merge knowledge-base entity updates",
		Long: "wbedit turns YAML edit scripts into validated entity updates.\n" +
			"Updates are built blind or against a stored base revision, merged,\n" +
			"and recorded in a local journal.",
		Version: Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.wbedit-db)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "log at debug level")
	root.PersistentFlags().BoolVar(&a.flags.noColor, "no-color", false, "disable colored output")

	root.AddCommand(newVersionCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(a.newRevisionCmd())
	root.AddCommand(a.newBuildCmd())
	root.AddCommand(a.newMergeCmd())
	root.AddCommand(a.newJournalCmd())

	return root, a
}

// setup loads the config file and installs the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	// version needs neither config nor logging.
	if cmd.Name() == "version" {
		return nil
	}
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError("resolve config dir: %w", err)
	}
	if a.config, err = loadConfig(configDir); err != nil {
		return sysError("%w", err)
	}
	if a.logger, err = newLogger(a.config.GetString(cfgKeyLogLevel), a.flags.verbose); err != nil {
		return userError("%w", err)
	}
	a.undoLogger = zap.ReplaceGlobals(a.logger)
	zap.S().Debugw("config loaded", "config_dir", configDir, "command", cmd.Name())
	return nil
}

// teardown flushes and uninstalls the logger.
func (a *app) teardown() {
	if a.logger == nil {
		return
	}
	_ = a.logger.Sync()
	a.undoLogger()
}

// dataDir returns the data directory: --data-dir flag > config.yaml
// data_dir > WBEDIT_DATA_DIR env > $(CWD)/.wbedit-db.
func (a *app) dataDir() (string, error) {
	return paths.ResolveDataDir(a.flags.dataDir, a.config.GetString(cfgKeyDataDir))
}

// attachStore opens the revision store. The caller must defer Detach.
func (a *app) attachStore() (store.Store, error) {
	dataDir, err := a.dataDir()
	if err != nil {
		return nil, sysError("resolve data dir: %w", err)
	}
	s := sqlite.NewStore()
	if err := s.Attach(store.Config{DataDir: dataDir}); err != nil {
		return nil, sysError("attach store: %w", err)
	}
	return s, nil
}

// Run executes the CLI with args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	root, a := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	a.teardown()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "wbedit:", err)
	return exitCode(err)
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// codedError carries the exit code for an error.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func userError(format string, args ...any) error {
	return &codedError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

func sysError(format string, args ...any) error {
	return &codedError{code: exitSysError, err: fmt.Errorf(format, args...)}
}

// exitCode maps err to a process exit code. Errors without a code are
// usage errors reported by cobra.
func exitCode(err error) int {
	var coded *codedError
	if errors.As(err, &coded) {
		return coded.code
	}
	return exitUserError
}
