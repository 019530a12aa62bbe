package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/contactpick/internal/a11y"
	"github.com/oakwood-commons/contactpick/internal/cel"
	"github.com/oakwood-commons/contactpick/internal/config"
	"github.com/oakwood-commons/contactpick/internal/formatter"
	"github.com/oakwood-commons/contactpick/internal/limiter"
	"github.com/oakwood-commons/contactpick/pkg/contact"
	"github.com/oakwood-commons/contactpick/pkg/logger"
	"github.com/oakwood-commons/contactpick/pkg/picker"
	"github.com/oakwood-commons/contactpick/pkg/settings"
)

const (
	a11yHTML = "html"
	a11yTree = "tree"

	defaultTotalCount = 150
)

var (
	output         = formatter.FormatTable
	whereExpr      string
	themeName      string
	configFile     string
	debug          bool
	noColor        bool
	logFile        string
	renderSnapshot bool
	a11yMode       string
	startKeys      []string
	snapshotWidth  int
	snapshotHeight int
	limitRecords   int
	offsetRecords  int
	tailRecords    int
	defaultID      string
	placeholder    string
	debounce       time.Duration
	maxRows        int
	initialCount   int
)

var (
	rootCtx      = context.Background()
	loadedConfig config.File

	// logHandle is the log file opened for this invocation, if any.
	logHandle io.Closer
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [file]",
	Short: settings.CliBinaryName + " - searchable contact selector",
	Long: `Search a contact list as you type and pick one.

Contacts are read from a JSON, NDJSON, YAML or TOML file, from stdin
("-" or a pipe), or generated when no input is given. The accepted
contact is printed in the --output format.`,
	Example: "\n  contactpick\n  contactpick contacts.yaml -o json\n  contactpick contacts.json --where '_.email.endsWith(\"acme.co\")'\n  contactpick --snapshot --press young --press '<Down><Down><CR>'\n",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadMergedConfig(resolveConfigPath(configFile))
		if err != nil {
			return err
		}
		loadedConfig = cfg

		run := runSettings(cfg)
		sink, err := logSink(run)
		if err != nil {
			return err
		}
		lgr := logger.Get(run.MinLogLevel, sink)
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
		rootCtx = settings.IntoContext(logger.WithLogger(context.Background(), lgr), run)
		return nil
	},
	RunE: runRoot,
}

func runSettings(cfg config.File) *settings.Run {
	run := settings.NewCliParams()
	run.Debug = debug
	run.NoColor = noColor
	run.Snapshot = renderSnapshot || a11yMode != ""
	run.LogFile = logFile
	if run.LogFile == "" {
		run.LogFile = cfg.App.Log.File
	}
	if cfg.App.Log.Level != nil {
		run.MinLogLevel = int8(*cfg.App.Log.Level)
	}
	if debug {
		run.MinLogLevel = -1
	}
	return run
}

// logSink picks where logs go. The picker owns the terminal, so logs only
// reach stderr in snapshot mode.
func logSink(run *settings.Run) (io.Writer, error) {
	switch {
	case run.LogFile != "":
		f, err := logger.OpenFile(run.LogFile)
		if err != nil {
			return nil, err
		}
		logHandle = f
		return f, nil
	case !run.Debug:
		return nil, nil
	case run.Snapshot:
		return os.Stderr, nil
	}
	path, err := logger.DefaultFilePath()
	if err != nil {
		return nil, err
	}
	f, err := logger.OpenFile(path)
	if err != nil {
		return nil, err
	}
	logHandle = f
	return f, nil
}

// closeLogSink flushes pending entries and closes the log file opened by
// logSink.
func closeLogSink() {
	if logHandle == nil {
		return
	}
	logger.Sync()
	_ = logHandle.Close()
	logHandle = nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	lim := limiter.Config{Limit: limitRecords, Offset: offsetRecords, Tail: tailRecords}
	if err := lim.Validate(); err != nil {
		return fmt.Errorf("record limiting error: %w", err)
	}
	switch a11yMode {
	case "", a11yHTML, a11yTree:
	default:
		return fmt.Errorf("invalid --a11y value %q (expected %s or %s)", a11yMode, a11yHTML, a11yTree)
	}

	lgr := logger.FromContext(rootCtx)
	contacts, err := loadContacts(cmd, args)
	if err != nil {
		return err
	}
	if whereExpr != "" {
		contacts, err = cel.Where(contacts, whereExpr)
		if err != nil {
			return fmt.Errorf("--where: %w", err)
		}
	}
	contacts = limiter.Apply(lim, contacts)
	lgr.V(1).Info("contacts loaded", "count", len(contacts))

	pc, err := pickerConfig(cmd, contacts)
	if err != nil {
		return err
	}
	if run, ok := settings.FromContext(rootCtx); ok && run.Snapshot {
		return runSnapshot(cmd, contacts, pc)
	}
	return runInteractive(cmd, contacts, pc)
}

// loadContacts reads the file argument, stdin ("-" or a pipe), or falls
// back to generated contacts.
func loadContacts(cmd *cobra.Command, args []string) ([]contact.Contact, error) {
	switch {
	case len(args) == 1 && args[0] != "-":
		return contact.LoadFile(args[0])
	case len(args) == 1 || stdinIsPiped():
		list, err := contact.LoadReader(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return list, nil
	}
	count, seed := demoDefaults(loadedConfig)
	return generateContacts(count, seed), nil
}

func demoDefaults(cfg config.File) (int, uint64) {
	count := config.IntOr(cfg.Demo.TotalCount, defaultTotalCount)
	seed := contact.DefaultSeed
	if cfg.Demo.Seed != nil {
		seed = *cfg.Demo.Seed
	}
	return count, seed
}

func generateContacts(count int, seed uint64) []contact.Contact {
	return contact.GenerateSeeded(count, seed)
}

// pickerConfig maps the merged config onto picker settings, then applies
// any flags the user set explicitly.
func pickerConfig(cmd *cobra.Command, contacts []contact.Contact) (picker.Config, error) {
	pc := picker.FromFile(loadedConfig)
	pc.NoColor = noColor
	pc.Logger = *logger.FromContext(rootCtx)

	flags := cmd.Flags()
	if flags.Changed("theme") {
		pc.ThemeName = themeName
	}
	if flags.Changed("placeholder") {
		pc.Placeholder = placeholder
	}
	if flags.Changed("debounce") {
		d := debounce
		pc.Debounce = &d
	}
	if flags.Changed("max-rows") {
		pc.MaxRows = maxRows
	}
	if flags.Changed("initial-count") {
		pc.InitialCount = initialCount
	}
	if defaultID != "" {
		c, ok := contact.FindByID(contacts, defaultID)
		if !ok {
			return pc, fmt.Errorf("--default: no contact with id %q", defaultID)
		}
		pc.Default = &c
	}
	return pc, nil
}

func runSnapshot(cmd *cobra.Command, contacts []contact.Contact, pc picker.Config) error {
	size := resolveSnapshotSize(snapshotWidth, snapshotHeight)
	pc.ScreenWidth, pc.ScreenHeight = size.Width, size.Height
	pc.StartKeys = startKeys

	out, m, err := picker.Snapshot(contacts, pc)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if a11yMode == "" {
		_, err = fmt.Fprintln(w, out)
		return err
	}

	sel := m.Selector()
	tree := a11y.Build(sel.State(), a11y.Options{
		Placeholder: sel.Options().Placeholder,
		EmptyText:   sel.Options().EmptyText,
	})
	if a11yMode == a11yHTML {
		_, err = fmt.Fprintln(w, tree.HTML())
		return err
	}
	_, err = fmt.Fprint(w, tree.Text())
	return err
}

func runInteractive(cmd *cobra.Command, contacts []contact.Contact, pc picker.Config) error {
	if cmd.Flags().Changed("width") {
		pc.ScreenWidth = snapshotWidth
	}
	if cmd.Flags().Changed("height") {
		pc.ScreenHeight = snapshotHeight
	}
	opts, cleanup := getProgramOptions()
	defer cleanup()

	selected, err := picker.Run(rootCtx, contacts, pc, opts...)
	if err != nil {
		return err
	}
	if selected == nil {
		return nil
	}
	logger.FromContext(rootCtx).V(1).Info("contact accepted", "id", selected.ID)
	return formatter.Write(cmd.OutOrStdout(), []contact.Contact{*selected}, formatter.Options{
		Format:  output,
		NoColor: noColor || stdoutIsPiped(),
		Width:   snapshotWidth,
	})
}

type snapshotSize struct {
	Width  int
	Height int
}

func resolveSnapshotSize(flagWidth, flagHeight int) snapshotSize {
	width, height := flagWidth, flagHeight
	if width <= 0 || height <= 0 {
		w, h := picker.DetectTerminalSize()
		if width <= 0 {
			width = w
		}
		if height <= 0 {
			height = h
		}
	}
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return snapshotSize{Width: width, Height: height}
}

func init() { //nolint:gochecknoinits
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config-file", "", "path to a YAML config file (themes, settings)")
	pf.BoolVar(&debug, "debug", false, "enable debug logging (to --log-file, or the state dir)")
	pf.StringVar(&logFile, "log-file", "", "write JSON logs to this file")
	pf.BoolVar(&noColor, "no-color", false, "disable color output")

	f := rootCmd.Flags()
	f.VarP(&output, "output", "o", "output format for the accepted contact: table|list|tree|json|ndjson|yaml|toml|csv")
	f.StringVar(&whereExpr, "where", "", "CEL predicate over each contact as '_' (e.g. '_.email.endsWith(\"acme.co\")')")
	f.IntVar(&limitRecords, "limit", 0, "offer at most N contacts")
	f.IntVar(&offsetRecords, "offset", 0, "skip the first N contacts")
	f.IntVar(&tailRecords, "tail", 0, "offer the last N contacts (mutually exclusive with --limit; ignores --offset)")
	f.StringVar(&defaultID, "default", "", "id of the contact selected at startup")
	f.StringVar(&placeholder, "placeholder", "", "input placeholder (default from config)")
	f.DurationVar(&debounce, "debounce", 0, "delay between typing and filtering, e.g. 300ms (default from config)")
	f.IntVar(&maxRows, "max-rows", 0, "visible dropdown rows (default from config)")
	f.IntVar(&initialCount, "initial-count", 0, "contacts offered before 'show all' (0 = all; default from config)")
	f.StringVar(&themeName, "theme", "", "theme name (default from config; see 'contactpick config themes')")
	f.BoolVar(&renderSnapshot, "snapshot", false, "render a single frame after --press keys and exit")
	f.StringVar(&a11yMode, "a11y", "", "print the accessibility tree after --press keys instead of the frame: html|tree")
	f.StringArrayVar(&startKeys, "press", nil, "keys replayed in --snapshot mode. Use <Key> for special keys (<Down>, <CR>, <Esc>, <Tab>, <C-x>, <F4>) and <Click:x,y> for mouse clicks. Literal text types normally")
	f.IntVar(&snapshotWidth, "width", 0, "screen width in columns (default: terminal)")
	f.IntVar(&snapshotHeight, "height", 0, "screen height in rows (default: terminal)")

	rootCmd.Version = cliVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command.
func Execute() error {
	defer closeLogSink()
	return rootCmd.Execute()
}
