// Command biomcp is the CLI entrypoint: one subcommand tree for entity
// get/search operations, the MCP server, the benchmark harness, and a
// health check (spec §5 "cobra subcommands ... delegating to
// internal/orchestrators and internal/render").
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/biomcp-go/biomcp/internal/benchmark"
	"github.com/biomcp-go/biomcp/internal/config"
	"github.com/biomcp-go/biomcp/internal/mcp"
	"github.com/biomcp-go/biomcp/internal/orchestrators"
	"github.com/biomcp-go/biomcp/internal/render"
	"github.com/biomcp-go/biomcp/internal/substrate"
)

var (
	jsonOutput bool
	geneFlag   string
	diseaseOrConditionFlag string
	sinceFlag  string
	limitFlag  int
	drugFlag   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "biomcp",
		Short: "Biomedical-data aggregation CLI and MCP server",
	}
	root.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "render output as JSON instead of text")

	root.AddCommand(newGetCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newMCPCmd())
	root.AddCommand(newBenchmarkCmd())
	root.AddCommand(newHealthCmd())

	return root
}

func buildFleet() (*orchestrators.Fleet, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	client, err := substrate.Get(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize substrate client: %w", err)
	}
	return orchestrators.NewFleet(client, logger), nil
}

func renderResult(v interface{}) error {
	if jsonOutput {
		return render.JSON(os.Stdout, v)
	}
	return render.Text(os.Stdout, v)
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Resolve a single entity by id",
	}

	sectionFlags := func(c *cobra.Command) *[]string {
		sections := c.Flags().StringSlice("section", nil, "sections to include (repeatable); omit for the default section set")
		return sections
	}

	geneCmd := &cobra.Command{
		Use:  "gene <symbol>",
		Args: cobra.ExactArgs(1),
	}
	geneSections := sectionFlags(geneCmd)
	geneCmd.RunE = func(cmd *cobra.Command, args []string) error {
		fleet, err := buildFleet()
		if err != nil {
			return err
		}
		result, err := fleet.Gene.Get(context.Background(), args[0], *geneSections)
		if err != nil {
			return err
		}
		return renderResult(result)
	}
	cmd.AddCommand(geneCmd)

	variantCmd := &cobra.Command{
		Use:  "variant <genomic-id>",
		Args: cobra.ExactArgs(1),
	}
	variantSections := sectionFlags(variantCmd)
	variantCmd.RunE = func(cmd *cobra.Command, args []string) error {
		fleet, err := buildFleet()
		if err != nil {
			return err
		}
		result, err := fleet.Variant.Get(context.Background(), args[0], *variantSections)
		if err != nil {
			return err
		}
		return renderResult(result)
	}
	cmd.AddCommand(variantCmd)

	diseaseCmd := &cobra.Command{
		Use:  "disease <query>",
		Args: cobra.ExactArgs(1),
	}
	diseaseSections := sectionFlags(diseaseCmd)
	diseaseCmd.RunE = func(cmd *cobra.Command, args []string) error {
		fleet, err := buildFleet()
		if err != nil {
			return err
		}
		result, err := fleet.Disease.Get(context.Background(), args[0], *diseaseSections)
		if err != nil {
			return err
		}
		return renderResult(result)
	}
	cmd.AddCommand(diseaseCmd)

	drugCmd := &cobra.Command{
		Use:  "drug <name-or-id>",
		Args: cobra.ExactArgs(1),
	}
	drugSections := sectionFlags(drugCmd)
	drugCmd.RunE = func(cmd *cobra.Command, args []string) error {
		fleet, err := buildFleet()
		if err != nil {
			return err
		}
		result, err := fleet.Drug.Get(context.Background(), args[0], *drugSections)
		if err != nil {
			return err
		}
		return renderResult(result)
	}
	cmd.AddCommand(drugCmd)

	articleCmd := &cobra.Command{
		Use:  "article <id>",
		Args: cobra.ExactArgs(1),
	}
	articleSections := sectionFlags(articleCmd)
	articleCmd.RunE = func(cmd *cobra.Command, args []string) error {
		fleet, err := buildFleet()
		if err != nil {
			return err
		}
		result, err := fleet.Article.Get(context.Background(), args[0], *articleSections)
		if err != nil {
			return err
		}
		return renderResult(result)
	}
	cmd.AddCommand(articleCmd)

	trialCmd := &cobra.Command{
		Use:  "trial <id>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fleet, err := buildFleet()
			if err != nil {
				return err
			}
			trial, err := fleet.Trial.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			return renderResult(trial)
		},
	}
	cmd.AddCommand(trialCmd)

	pgxCmd := &cobra.Command{
		Use:  "pgx <gene> [drug]",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fleet, err := buildFleet()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				annotations, err := fleet.PGx.GetByGene(context.Background(), args[0])
				if err != nil {
					return err
				}
				return renderResult(annotations)
			}
			result, err := fleet.PGx.Get(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			return renderResult(result)
		},
	}
	cmd.AddCommand(pgxCmd)

	return cmd
}

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search an entity collection",
	}
	cmd.PersistentFlags().StringVarP(&geneFlag, "gene", "g", "", "gene symbol filter")
	cmd.PersistentFlags().StringVarP(&diseaseOrConditionFlag, "condition", "c", "", "disease/condition filter")
	cmd.PersistentFlags().StringVar(&sinceFlag, "since", "", "publication date floor, RFC 3339 date (YYYY-MM-DD)")
	cmd.PersistentFlags().IntVar(&limitFlag, "limit", 10, "maximum results to return, 1-50")

	queryFrom := func(args []string) string {
		if geneFlag != "" {
			return geneFlag
		}
		if diseaseOrConditionFlag != "" {
			return diseaseOrConditionFlag
		}
		if len(args) > 0 {
			return args[0]
		}
		return ""
	}

	geneCmd := &cobra.Command{
		Use:  "gene [query]",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fleet, err := buildFleet()
			if err != nil {
				return err
			}
			page, err := fleet.Gene.Search(context.Background(), queryFrom(args), limitFlag)
			if err != nil {
				return err
			}
			return renderResult(page)
		},
	}
	cmd.AddCommand(geneCmd)

	variantCmd := &cobra.Command{
		Use:  "variant [query]",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fleet, err := buildFleet()
			if err != nil {
				return err
			}
			page, err := fleet.Variant.Search(context.Background(), queryFrom(args), limitFlag)
			if err != nil {
				return err
			}
			return renderResult(page)
		},
	}
	cmd.AddCommand(variantCmd)

	diseaseCmd := &cobra.Command{
		Use:  "disease [query]",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fleet, err := buildFleet()
			if err != nil {
				return err
			}
			page, err := fleet.Disease.Search(context.Background(), queryFrom(args), limitFlag)
			if err != nil {
				return err
			}
			return renderResult(page)
		},
	}
	cmd.AddCommand(diseaseCmd)

	drugCmd := &cobra.Command{
		Use:  "drug [query]",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fleet, err := buildFleet()
			if err != nil {
				return err
			}
			page, err := fleet.Drug.Search(context.Background(), queryFrom(args), limitFlag)
			if err != nil {
				return err
			}
			return renderResult(page)
		},
	}
	cmd.AddCommand(drugCmd)

	articleCmd := &cobra.Command{
		Use:  "article",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fleet, err := buildFleet()
			if err != nil {
				return err
			}
			page, err := fleet.Article.Search(context.Background(), orchestrators.ArticleSearchParams{
				Gene:    geneFlag,
				Disease: diseaseOrConditionFlag,
				Since:   sinceFlag,
				Limit:   limitFlag,
			})
			if err != nil {
				return err
			}
			return renderResult(page)
		},
	}
	cmd.AddCommand(articleCmd)

	trialCmd := &cobra.Command{
		Use:  "trial [query]",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if sinceFlag != "" {
				if _, err := time.Parse("2006-01-02", sinceFlag); err != nil {
					return fmt.Errorf("since must be an RFC 3339 date (YYYY-MM-DD), got %q", sinceFlag)
				}
			}
			fleet, err := buildFleet()
			if err != nil {
				return err
			}
			trials, err := fleet.Trial.Search(context.Background(), queryFrom(args), limitFlag)
			if err != nil {
				return err
			}
			return renderResult(trials)
		},
	}
	cmd.AddCommand(trialCmd)

	drugEventsCmd := &cobra.Command{
		Use:  "adverse-events [query]",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fleet, err := buildFleet()
			if err != nil {
				return err
			}
			events, err := fleet.AdverseEvent.SearchDrugEvents(context.Background(), queryFrom(args), limitFlag)
			if err != nil {
				return err
			}
			return renderResult(events)
		},
	}
	cmd.AddCommand(drugEventsCmd)

	return cmd
}

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server",
	}
	serveCmd := &cobra.Command{
		Use:  "serve",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configManager, err := config.NewManager()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if err := configManager.Validate(); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}

			server, err := mcp.NewServer(configManager)
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				cancel()
			}()

			defer server.Close()
			return server.Start(ctx)
		},
	}
	cmd.AddCommand(serveCmd)
	return cmd
}

func newBenchmarkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Run the fixed benchmark suite against this binary",
	}
	var quick bool
	var baselinePath string
	runCmd := &cobra.Command{
		Use:  "run",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exePath, err := os.Executable()
			if err != nil {
				return fmt.Errorf("failed to resolve executable path: %w", err)
			}

			opts := benchmark.DefaultRunOptions()
			opts.Quick = quick
			if baselinePath != "" {
				opts.BaselinePath = baselinePath
			}

			report, err := benchmark.Run(context.Background(), exePath, opts)
			if err != nil {
				return fmt.Errorf("benchmark run failed: %w", err)
			}

			if baselinePath == "" {
				baselinePath = benchmark.DiscoverLatestBaseline()
			}
			if baselinePath != "" {
				if baseline, err := benchmark.LoadBaseline(baselinePath); err == nil {
					benchmark.CompareAgainstBaseline(&report, baseline, opts.LatencyThresholdPct, opts.SizeThresholdPct, opts.MaxFailFastMs)
				}
			}

			return renderResult(report)
		},
	}
	runCmd.Flags().BoolVar(&quick, "quick", false, "run the quick (core) subset instead of the full suite")
	runCmd.Flags().StringVar(&baselinePath, "baseline", "", "baseline report path to compare against; defaults to the latest discovered baseline")
	cmd.AddCommand(runCmd)
	return cmd
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "health",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := buildFleet(); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
}
