package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/iudanet/edukeeper/internal/client/iocli"
	"github.com/iudanet/edukeeper/internal/config"
	"github.com/iudanet/edukeeper/internal/models"
)

// app состояние одного запуска: конфигурация читается до команды,
// соединения открываются только командами, которым они нужны
type app struct {
	io         iocli.IO
	logOutput  io.Writer
	connect    Connector
	cfg        *config.ClientConfig
	logger     *slog.Logger
	backend    *Backend
	cli        *Cli
	configFile string
	kindName   string
}

// NewRootCommand собирает дерево команд edukeeper
func NewRootCommand(stdio iocli.IO, connect Connector, version string, logOutput io.Writer) *cobra.Command {
	a := &app{
		io:        stdio,
		logOutput: logOutput,
		connect:   connect,
	}

	root := &cobra.Command{
		Use:   "edukeeper",
		Short: "Edukeeper - tests and mini-games with ordered questions, cached locally",
		Long: `Edukeeper manages tests and mini-games stored on a document server.

Questions of a test and options of a question are kept in dense order 1..N.
Aggregates are cached locally (bbolt file or redis) and refreshed on demand.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (EDUKEEPER_*)
3. Config file (--config, ./edukeeper.yaml or ~/.edukeeper/edukeeper.yaml)
4. Defaults`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Config file path")
	flags.StringVarP(&a.kindName, "kind", "k", models.KindTest.Name, "Aggregate kind (test|minigame)")
	flags.String("server", "", "Server URL")
	flags.String("token", "", "Bearer token for the server")
	flags.String("cache", "", "Path to local cache database")
	flags.String("redis", "", "Redis URL, replaces the bbolt cache")
	flags.String("log-level", "", "Log level (debug|info|warn|error)")
	flags.String("log-format", "", "Log format (text|json)")
	flags.Bool("preconditions", false, "Reject ordered writes if a sibling changed since it was read")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.loadConfig(root)
	}

	root.AddCommand(
		a.rootCommand(),
		a.siblingCommand(levelQuestion),
		a.siblingCommand(levelOption),
		a.syncCommand(),
		a.statusCommand(),
		a.clearCommand(),
		a.showCommand(),
		a.pingCommand(),
	)

	return root
}

func (a *app) loadConfig(root *cobra.Command) error {
	v := config.NewViper("edukeeper", a.configFile)

	flags := root.PersistentFlags()
	for key, flag := range map[string]string{
		"server_url":            "server",
		"token":                 "token",
		"cache_path":            "cache",
		"redis_url":             "redis",
		"log.level":             "log-level",
		"log.format":            "log-format",
		"version_preconditions": "preconditions",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return err
		}
	}

	cfg, err := config.LoadClient(v)
	if err != nil {
		return err
	}

	logger, err := cfg.Log.NewLogger(a.logOutput)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// session открывает соединения при первом обращении
func (a *app) session(ctx context.Context) (*Cli, models.AggregateKind, error) {
	kind, err := resolveKind(a.kindName)
	if err != nil {
		return nil, kind, err
	}

	if a.cli == nil {
		backend, err := a.connect(ctx, a.cfg, a.logger)
		if err != nil {
			return nil, kind, err
		}
		a.backend = backend
		a.cli = New(a.io, a.logger, backend.Remote, backend.Cache, Settings{
			FanOut:               a.cfg.FanOut,
			VersionPreconditions: a.cfg.VersionPreconditions,
		})
	}

	return a.cli, kind, nil
}

func (a *app) close() error {
	if a.backend == nil || a.backend.Close == nil {
		return nil
	}
	err := a.backend.Close()
	a.backend = nil
	a.cli = nil
	return err
}

// run оборачивает команду, которой нужна сессия
func (a *app) run(fn func(ctx context.Context, c *Cli, kind models.AggregateKind, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		c, kind, err := a.session(cmd.Context())
		if err != nil {
			return err
		}
		defer func() {
			if cerr := a.close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		return fn(cmd.Context(), c, kind, args)
	}
}

func (a *app) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "root",
		Short: "Create and read aggregate roots (tests, mini-games)",
	}

	var in rootInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a test or mini-game on the server",
		Args:  cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, c *Cli, kind models.AggregateKind, args []string) error {
			return c.runRootCreate(ctx, kind, in)
		}),
	}
	create.Flags().StringVar(&in.ID, "id", "", "Root id (generated when empty)")
	create.Flags().StringVar(&in.Title, "title", "", "Title")
	create.Flags().StringVar(&in.Ref, "ref", "", "Class id of a test or lesson id of a mini-game")
	create.Flags().StringVar(&in.Description, "description", "", "Test description")
	create.Flags().IntVar(&in.TimeLimit, "time-limit", 0, "Test time limit in minutes")
	create.Flags().StringVar(&in.GameType, "game-type", "", "Mini-game type")

	var format string
	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a root document from the server",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, c *Cli, kind models.AggregateKind, args []string) error {
			return c.runRootGet(ctx, kind, args[0], format)
		}),
	}
	get.Flags().StringVarP(&format, "format", "f", "", "Output format (yaml|json), text when empty")

	cmd.AddCommand(create, get)
	return cmd
}

func (a *app) siblingCommand(l level) *cobra.Command {
	parentName := "root"
	if l == levelOption {
		parentName = "question"
	}

	cmd := &cobra.Command{
		Use:   l.String(),
		Short: "Manage ordered " + l.String() + "s of a " + parentName,
	}

	inputFlags := func(c *cobra.Command, in *siblingInput) {
		c.Flags().StringVar(&in.Text, "text", "", "Text")
		c.Flags().IntVar(&in.Order, "order", 0, "Position, out-of-range values are clamped (update: 0 keeps the current position)")
		if l == levelOption {
			c.Flags().BoolVar(&in.Correct, "correct", false, "Mark as a correct answer")
		} else {
			c.Flags().IntVar(&in.Points, "points", 0, "Points for the question")
		}
	}

	var addIn siblingInput
	add := &cobra.Command{
		Use:   "add <" + parentName + "-id>",
		Short: "Insert a " + l.String() + " at --order, shifting the following ones",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, c *Cli, kind models.AggregateKind, args []string) error {
			return c.runSiblingAdd(ctx, kind, l, args[0], addIn)
		}),
	}
	inputFlags(add, &addIn)

	var updateIn siblingInput
	var parentKey string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a " + l.String() + " and swap it to --order",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, c *Cli, kind models.AggregateKind, args []string) error {
			return c.runSiblingUpdate(ctx, kind, l, args[0], parentKey, updateIn)
		}),
	}
	inputFlags(update, &updateIn)
	update.Flags().StringVar(&parentKey, parentName, "", "Id of the owning "+parentName)
	_ = update.MarkFlagRequired(parentName)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + l.String() + " (positions of the rest are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, c *Cli, kind models.AggregateKind, args []string) error {
			return c.runSiblingDelete(ctx, kind, l, args[0])
		}),
	}

	var format string
	list := &cobra.Command{
		Use:   "list <" + parentName + "-id>",
		Short: "List " + l.String() + "s from the server in order",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, c *Cli, kind models.AggregateKind, args []string) error {
			return c.runSiblingList(ctx, kind, l, args[0], format)
		}),
	}
	list.Flags().StringVarP(&format, "format", "f", "", "Output format (yaml|json), text when empty")

	cmd.AddCommand(add, update, del, list)
	return cmd
}

func (a *app) syncCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "sync <root-id>",
		Short: "Refresh the cached aggregate unless the cache looks complete",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, c *Cli, kind models.AggregateKind, args []string) error {
			return c.runSync(ctx, kind, args[0], force)
		}),
	}
	cmd.Flags().BoolVar(&force, "force", false, "Always fetch from the server")
	return cmd
}

func (a *app) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <root-id>",
		Short: "Show what is cached for an aggregate",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, c *Cli, kind models.AggregateKind, args []string) error {
			return c.runStatus(ctx, kind, args[0])
		}),
	}
}

func (a *app) clearCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear <root-id>",
		Short: "Remove a cached aggregate",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, c *Cli, kind models.AggregateKind, args []string) error {
			return c.runClear(ctx, kind, args[0], yes)
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func (a *app) showCommand() *cobra.Command {
	var format string
	var force bool
	cmd := &cobra.Command{
		Use:   "show <root-id>",
		Short: "Print the whole aggregate from the cache, syncing first if needed",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, c *Cli, kind models.AggregateKind, args []string) error {
			return c.runShow(ctx, kind, args[0], format, force)
		}),
	}
	cmd.Flags().StringVarP(&format, "format", "f", FormatYAML, "Output format (yaml|json)")
	cmd.Flags().BoolVar(&force, "force", false, "Always fetch from the server")
	return cmd
}

func (a *app) pingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the document server is reachable",
		Args:  cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, c *Cli, kind models.AggregateKind, args []string) error {
			return c.runPing(ctx)
		}),
	}
}
