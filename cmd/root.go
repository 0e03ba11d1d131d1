package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/plexroulette/config"
	"github.com/s0up4200/plexroulette/filter"
	"github.com/s0up4200/plexroulette/plex"
	"github.com/s0up4200/plexroulette/roulette"
)

// skipInitAnnotation marks commands that run without config or a Plex client
const skipInitAnnotation = "skip-init"

var (
	cfgFile    string
	tokenFlag  string
	cfg        *config.Config
	logger     zerolog.Logger
	plexClient *plex.Client
	operations *roulette.Operations
	presets    *filter.Manager

	// Shared command flags
	filterExpr string
	preset     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "plexroulette",
	Short: "Pick something to watch from your Plex libraries",
	Long: `plexroulette signs in to plex.tv, reads your Plex Media Server libraries
and picks a random title, optionally narrowed down by a filter expression.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "Plex token to use instead of signing in")
}

// initializeApp loads the configuration and builds the Plex client
func initializeApp(cmd *cobra.Command, args []string) error {
	if _, skip := cmd.Annotations[skipInitAnnotation]; skip {
		return nil
	}
	// Built-in help and shell completion need no server
	if cmd.Name() == "help" || (cmd.HasParent() && cmd.Parent().Name() == "completion") {
		return nil
	}

	// --token satisfies validation the same way the environment does
	if tokenFlag != "" {
		if err := os.Setenv(config.EnvPrefix+"_PLEX_TOKEN", tokenFlag); err != nil {
			return fmt.Errorf("failed to apply --token: %w", err)
		}
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	plexClient, err = plex.NewClient(cfg.Plex.Host, logger,
		plex.WithTimeout(cfg.Plex.Timeout),
		plex.WithClientIdentifier(cfg.Plex.ClientIdentifier),
		plex.WithProduct(cfg.Plex.Product),
		plex.WithVersion(cfg.Plex.Version),
	)
	if err != nil {
		return fmt.Errorf("failed to create Plex client: %w", err)
	}

	operations = roulette.NewOperations(plexClient, logger)

	presets = filter.NewManager()
	if err := presets.RegisterFilters(cfg.Roulette.Presets); err != nil {
		return fmt.Errorf("invalid preset: %w", err)
	}

	logger.Debug().
		Str("host", plexClient.Host()).
		Str("client_identifier", plexClient.ClientIdentifier()).
		Int("presets", len(cfg.Roulette.Presets)).
		Msg("Initialized")

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// authToken returns the token to use for server calls.
// Priority: --token flag > plex.token > sign-in with credentials.
func authToken(ctx context.Context) (string, error) {
	if tokenFlag != "" {
		return tokenFlag, nil
	}
	if cfg.Plex.Token != "" {
		return cfg.Plex.Token, nil
	}
	return signIn(ctx, plexClient, cfg.Plex)
}

// signIn exchanges credentials for a token
func signIn(ctx context.Context, api plex.API, pc config.PlexConfig) (string, error) {
	if !pc.HasCredentials() {
		return "", fmt.Errorf("no token configured and no credentials to sign in with")
	}

	auth, err := api.SignIn(ctx, plex.Credentials{Login: pc.Login, Password: pc.Password})
	if err != nil {
		return "", err
	}

	token := auth.Token()
	if token == "" {
		return "", fmt.Errorf("sign-in succeeded but no token was returned")
	}

	if auth.User != nil {
		logger.Debug().Str("user", auth.User.GetDisplayName()).Msg("Signed in")
	}
	return token, nil
}

// buildFilter combines the preset and the expression into one match function.
// Without either the configured default expression is used.
func buildFilter(manager *filter.Manager, expression, presetName, defaultExpression string) (func(roulette.Item) bool, string, error) {
	var (
		funcs       []func(roulette.Item) bool
		descriptors []string
	)

	if presetName != "" {
		compiled, ok := manager.GetFilter(presetName)
		if !ok {
			return nil, "", fmt.Errorf("preset '%s' not found in config", presetName)
		}
		funcs = append(funcs, compiled.Evaluate)
		descriptors = append(descriptors, compiled.Expression())
	}

	if expression == "" && presetName == "" {
		expression = defaultExpression
	}

	if expression != "" {
		match, err := filter.CreateFilter(expression)
		if err != nil {
			return nil, "", fmt.Errorf("invalid filter expression: %w", err)
		}
		funcs = append(funcs, match)
		descriptors = append(descriptors, expression)
	}

	return filter.All(funcs...), strings.Join(descriptors, " and "), nil
}
