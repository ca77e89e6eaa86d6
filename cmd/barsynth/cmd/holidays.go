package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/barsynth/calendar"
)

var holidaysCmd = &cobra.Command{
	Use:   "holidays",
	Short: "Manage the SQLite holiday store",
	Long: `Load and list market holidays kept in a SQLite database.

Point schedule.holidays_db (or BARSYNTH_HOLIDAYS_DB) at the database to
use it when generating scheduled bars.

Subcommands:
  import - Load the built-in US equity table or a date,name CSV file
  list   - Print the holidays stored for a market

Examples:
  barsynth holidays import --db holidays.sqlite
  barsynth holidays import --db holidays.sqlite --market xetra --file xetra.csv
  barsynth holidays list --db holidays.sqlite`,
}

var holidaysImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Load holidays into the store",
	Args:  cobra.NoArgs,
	RunE:  runHolidaysImport,
}

var holidaysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored holidays",
	Args:  cobra.NoArgs,
	RunE:  runHolidaysList,
}

var (
	holidaysDBPath string
	holidaysMarket string
	holidaysFile   string
)

func init() {
	rootCmd.AddCommand(holidaysCmd)
	holidaysCmd.AddCommand(holidaysImportCmd)
	holidaysCmd.AddCommand(holidaysListCmd)

	holidaysCmd.PersistentFlags().StringVarP(&holidaysDBPath, "db", "d", "./holidays.sqlite", "path to SQLite holiday DB")
	holidaysCmd.PersistentFlags().StringVar(&holidaysMarket, "market", calendar.USEquity, "market key")
	holidaysImportCmd.Flags().StringVar(&holidaysFile, "file", "", "CSV file with date,name columns (built-in table when empty)")
}

func runHolidaysImport(cmd *cobra.Command, args []string) error {
	var recs []calendar.HolidayRecord
	if holidaysFile == "" {
		if holidaysMarket != calendar.USEquity {
			return fmt.Errorf("no built-in table for market %q, use --file", holidaysMarket)
		}
		recs = calendar.USEquityHolidayRecords()
	} else {
		f, err := os.Open(holidaysFile)
		if err != nil {
			return fmt.Errorf("open holiday file: %w", err)
		}
		defer f.Close()

		if recs, err = calendar.ReadHolidayCSV(f, holidaysMarket); err != nil {
			return err
		}
	}

	store, err := calendar.OpenSQLite(holidaysDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	if err := store.PutAll(cmd.Context(), recs); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"run_id": runID,
		"market": holidaysMarket,
		"count":  len(recs),
		"db":     holidaysDBPath,
	}).Info("imported holidays")
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d holidays for %s into %s\n", len(recs), holidaysMarket, holidaysDBPath)
	return nil
}

func runHolidaysList(cmd *cobra.Command, args []string) error {
	store, err := calendar.OpenSQLite(holidaysDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	recs, err := store.List(cmd.Context(), holidaysMarket)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No holidays stored for %s\n", holidaysMarket)
		return nil
	}
	return calendar.WriteHolidayCSV(cmd.OutOrStdout(), recs)
}
