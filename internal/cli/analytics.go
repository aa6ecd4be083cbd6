package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/mindwell/backend/internal/config"
	"github.com/zhouzirui/mindwell/backend/internal/service/analytics"
	"github.com/zhouzirui/mindwell/backend/internal/store"
	"github.com/zhouzirui/mindwell/backend/internal/store/pgstore"
	"github.com/zhouzirui/mindwell/backend/internal/store/sqlitestore"
)

func newAnalyticsCmd(opts *options) *cobra.Command {
	var (
		months int
		dbPath string
	)
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Print the admin dashboard from a persistent store",
		Long:  "Reads STORE_DRIVER, DATABASE_URL and SQLITE_PATH from the environment. --db overrides the store with a SQLite file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validateFormat(); err != nil {
				return err
			}

			st, err := openAnalyticsStore(cmd, dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			dash, err := analytics.NewService(st).Dashboard(cmd.Context(), months)
			if err != nil {
				return err
			}
			if opts.format == "json" {
				return writeJSON(cmd.OutOrStdout(), dash)
			}

			out := cmd.OutOrStdout()
			s := dash.Summary
			fmt.Fprintf(out, "sessions=%d escalated=%d satisfaction=%.2f appointments=%d completion=%.1f%%\n",
				s.TotalSessions, s.EscalatedSessions, s.AverageSatisfaction, s.TotalAppointments, s.CompletionRate)
			for _, row := range dash.Sessions {
				fmt.Fprintf(out, "%s sessions=%d escalated=%d avg=%.2f\n", row.Month, row.TotalSessions, row.EscalatedSessions, row.AvgSatisfaction)
			}
			for _, p := range dash.PopularPurposes {
				fmt.Fprintf(out, "  %-28s %d\n", p.Purpose, p.TotalAppointments)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&months, "months", "m", store.DefaultAnalyticsLimit, "Number of months to include")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path")
	return cmd
}

func openAnalyticsStore(cmd *cobra.Command, dbPath string) (store.Store, error) {
	if dbPath != "" {
		return sqlitestore.New(dbPath)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		return sqlitestore.New(cfg.Store.SQLitePath)
	case config.DriverPostgres:
		return pgstore.New(cmd.Context(), cfg.Store.DatabaseURL)
	default:
		return nil, fmt.Errorf("store driver %q keeps no history, set STORE_DRIVER or pass --db", cfg.Store.Driver)
	}
}
