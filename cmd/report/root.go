package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/netconsulting/balancesheet/internal/reports"
	"github.com/netconsulting/balancesheet/pkg/config"
	"github.com/netconsulting/balancesheet/pkg/db"
	"github.com/netconsulting/balancesheet/pkg/logger"
)

var outDir string

var rootCmd = &cobra.Command{
	Use:   "report",
	Short: "Household ledger report generator",
	Long:  "Renders XLSX reports from the incomeexpense ledger: yearly overview, rental and parking statements, and the tax return worksheet.",
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", "", "output directory for the workbook (default: working directory)")

	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(hollgasseCmd)
	rootCmd.AddCommand(stipcakgasseCmd)
	rootCmd.AddCommand(taxReturnCmd)
}

var overviewCmd = &cobra.Command{
	Use:   "einnahmen-ausgaben [year]",
	Short: "Yearly overview workbook, one sheet per month",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := yearArg(args, 0)
		if err != nil {
			return err
		}
		return runReport(cmd.Context(), func(ctx context.Context, gen *reports.Generator) (string, error) {
			return gen.Overview(ctx, year)
		})
	},
}

var hollgasseCmd = &cobra.Command{
	Use:   "hollgasse <location> [year]",
	Short: "Rental statement for one apartment",
	Long:  "Renders the rental statement for one apartment location token, for example Hollgasse_1_54 or Hollgasse_1_54:taxable.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := yearArg(args, 1)
		if err != nil {
			return err
		}
		location := args[0]
		return runReport(cmd.Context(), func(ctx context.Context, gen *reports.Generator) (string, error) {
			return gen.Rental(ctx, location, year)
		})
	},
}

var stipcakgasseCmd = &cobra.Command{
	Use:   "stipcakgasse [year]",
	Short: "Parking lot statement",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := yearArg(args, 0)
		if err != nil {
			return err
		}
		return runReport(cmd.Context(), func(ctx context.Context, gen *reports.Generator) (string, error) {
			return gen.Parking(ctx, year)
		})
	},
}

var taxReturnCmd = &cobra.Command{
	Use:   "arbeitnehmerveranlagung <person> [year]",
	Short: "Tax return worksheet for one person",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := yearArg(args, 1)
		if err != nil {
			return err
		}
		person := args[0]
		return runReport(cmd.Context(), func(ctx context.Context, gen *reports.Generator) (string, error) {
			return gen.TaxReturn(ctx, person, year)
		})
	},
}

// yearArg reads the optional year argument at idx; zero means the
// current year.
func yearArg(args []string, idx int) (int, error) {
	if len(args) <= idx {
		return 0, nil
	}
	year, err := strconv.Atoi(args[idx])
	if err != nil || year < 1970 || year > 9999 {
		return 0, fmt.Errorf("invalid year %q", args[idx])
	}
	return year, nil
}

func runReport(ctx context.Context, fn func(ctx context.Context, gen *reports.Generator) (string, error)) error {
	logg := logger.New(logger.Options{ServiceName: "report"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		return err
	}

	logg = logger.New(logger.Options{
		ServiceName: "report",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		return err
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	gen, err := reports.NewGenerator(reports.NewRepository(dbClient.DB()), logg, cfg.Report, outDir)
	if err != nil {
		logg.Error(ctx, "failed to create report generator", err)
		return err
	}

	path, err := fn(ctx, gen)
	if err != nil {
		logg.Error(ctx, "report failed", err)
		return err
	}

	fmt.Println("report written:", path)
	return nil
}
