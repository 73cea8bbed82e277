// Package cli holds the cobra command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tactics_server/config"
	"tactics_server/core/domain"
	"tactics_server/internal/bootstrap"
	"tactics_server/internal/demo"
	"tactics_server/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

type options struct {
	configPath string
	seed       int64
	logLevel   string
}

// NewRootCommand builds the tactics command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "tactics",
		Short:         "Gift strategy scoring, ranking and budget planning",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (yaml, json or toml)")
	root.PersistentFlags().Int64Var(&opts.seed, "seed", 0, "Fixed random seed for reproducible scores")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override LOG_LEVEL")

	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newAnalyzeCommand(opts))
	root.AddCommand(newPlanCommand(opts))
	return root
}

// setup loads config, applies flag overrides and builds dependencies.
func setup(cmd *cobra.Command, opts *options) (*bootstrap.Dependencies, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("seed") {
		seed := opts.seed
		cfg.RandomSeed = &seed
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Output:  cmd.ErrOrStderr(),
		Service: "tactics",
		Pretty:  cfg.IsDevelopment(),
	})
	return bootstrap.NewDependencies(cfg, log)
}

func newServeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			log := deps.Logger
			app := bootstrap.NewAPI(deps)

			go func() {
				sigChan := make(chan os.Signal, 1)
				signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
				<-sigChan

				log.Info().Dur("timeout", shutdownTimeout).Msg("shutting down API server")
				if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
					log.Error().Err(err).Msg("error shutting down")
				}
			}()

			addr := ":" + deps.Config.Port
			log.Info().Str("addr", addr).Msg("starting API server")
			return app.Listen(addr)
		},
	}
}

func newAnalyzeCommand(opts *options) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "analyze -f target.yaml",
		Short: "Analyze one target and print the result as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var target domain.TargetProfile
			if err := decodeFile(cmd.InOrStdin(), file, &target); err != nil {
				return err
			}

			deps, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			if err := deps.Validator.Profile(&target); err != nil {
				return err
			}

			res, err := deps.Service.Analyze(cmd.Context(), &target)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Target profile file (json or yaml), - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newPlanCommand(opts *options) *cobra.Command {
	var (
		file    string
		useDemo bool
	)
	cmd := &cobra.Command{
		Use:   "plan -f plan.yaml",
		Short: "Build a batch plan and print it as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req *domain.PlanRequest
			switch {
			case useDemo:
				r, err := demo.PlanRequest()
				if err != nil {
					return err
				}
				req = r
			case file != "":
				req = &domain.PlanRequest{}
				if err := decodeFile(cmd.InOrStdin(), file, req); err != nil {
					return err
				}
			default:
				return fmt.Errorf("either --file or --demo is required")
			}

			deps, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			if err := deps.Validator.Struct(req); err != nil {
				return err
			}

			plan, err := deps.Service.Plan(cmd.Context(), req.Targets, req.TotalBudget)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), plan)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Plan request file (json or yaml), - for stdin")
	cmd.Flags().BoolVar(&useDemo, "demo", false, "Use the bundled sample request")
	return cmd
}

// decodeFile reads JSON or YAML, chosen by extension. Stdin and unknown
// extensions try JSON first.
func decodeFile(stdin io.Reader, path string, v any) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, v)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		if err = json.Unmarshal(data, v); err != nil {
			err = yaml.Unmarshal(data, v)
		}
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// Run executes the command tree with ctx, for main.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}
