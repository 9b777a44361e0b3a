package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/Trujillofa/depotru-database-sub000/pkg/runtime/terminal/export"
	"github.com/Trujillofa/depotru-database-sub000/pkg/services/config"
	"github.com/Trujillofa/depotru-database-sub000/pkg/services/reporting"
	"github.com/Trujillofa/depotru-database-sub000/pkg/store/sales"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

type AnalyzeCmd struct {
	dsn        string
	configPath string
	startDate  string
	endDate    string
	limit      int
	output     string
	reporter   *export.Reporter
}

func NewAnalyzeCmd(reporter *export.Reporter) *cobra.Command {
	ac := &AnalyzeCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze the sales extract and print a business report",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.dsn, "dsn", "",
		"Database connection string (defaults to DATABASE_URL)")
	cmd.Flags().StringVar(&ac.configPath, "config", "",
		"Path to a thresholds config file (defaults are used when empty)")
	cmd.Flags().StringVar(&ac.startDate, "start-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ac.endDate, "end-date", "", "End date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&ac.limit, "limit", 0, "Maximum rows to fetch (0 = no limit)")
	cmd.Flags().StringVar(&ac.output, "output", "", "Write the full report as JSON to this file")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()
	logger := zerolog.Ctx(ctx)

	query, err := ac.buildQuery()
	if err != nil {
		return err
	}

	thresholds := config.Default()
	excluded := config.DefaultExclusions()
	if ac.configPath != "" {
		thresholds, excluded, err = config.Load(ac.configPath)
		if err != nil {
			return err
		}
	}
	query.ExcludedDocumentCodes = excluded.Codes()

	dsn := ac.dsn
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		return fmt.Errorf("no database connection string: set --dsn or DATABASE_URL")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close database")
		}
	}()

	records, err := sales.NewStore(db).FetchRecords(ctx, query)
	if err != nil {
		return err
	}

	svc := reporting.NewService(thresholds, excluded)
	report, err := svc.AnalyzeRecords(ctx, records)
	if err != nil {
		return err
	}

	if ac.output != "" {
		if err := ac.reporter.WriteJSON(report, ac.output); err != nil {
			return err
		}
		logger.Info().Str("path", ac.output).Msg("report exported")
	}

	return ac.reporter.Handle(report)
}

func (ac *AnalyzeCmd) buildQuery() (sales.Query, error) {
	var q sales.Query
	if ac.limit < 0 {
		return q, fmt.Errorf("limit must not be negative, got %d", ac.limit)
	}
	q.Limit = ac.limit

	var err error
	if ac.startDate != "" {
		if q.Start, err = time.Parse(dateLayout, ac.startDate); err != nil {
			return q, fmt.Errorf("invalid start date %q, use YYYY-MM-DD", ac.startDate)
		}
	}
	if ac.endDate != "" {
		if q.End, err = time.Parse(dateLayout, ac.endDate); err != nil {
			return q, fmt.Errorf("invalid end date %q, use YYYY-MM-DD", ac.endDate)
		}
	}
	if !q.Start.IsZero() && !q.End.IsZero() && q.Start.After(q.End) {
		return q, fmt.Errorf("start date %s is after end date %s", ac.startDate, ac.endDate)
	}
	return q, nil
}
