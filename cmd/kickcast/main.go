package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/richard-senior/kickcast/internal/logger"
	"github.com/richard-senior/kickcast/pkg/datasource"
	"github.com/richard-senior/kickcast/pkg/forecast"
)

var (
	configPath  string
	dbPath      string
	competition string
	seasonArg   string
	verbose     bool
)

func main() {
	root := &cobra.Command{
		Use:   "kickcast",
		Short: "Elo and Poisson based football match forecasting",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logger.SetLevel(logger.DEBUG)
			}
			if configPath != "" {
				if _, err := forecast.LoadConfig(configPath); err != nil {
					return err
				}
			}
			if dbPath != "" {
				forecast.Config.DbPath = dbPath
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to yaml config file")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "path to the sqlite match database")
	root.PersistentFlags().StringVarP(&competition, "competition", "c", "", "competition code filter, e.g. PL")
	root.PersistentFlags().StringVarP(&seasonArg, "season", "s", "", "season filter, e.g. 2023 or 2023/2024")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(fetchCmd(), loadCmd(), predictCmd(), ratingsCmd())

	if err := root.Execute(); err != nil {
		logger.Fatal("command failed", err)
	}
}

// parseSeasonFlag turns the --season flag into a starting year, 0 meaning
// no filter
func parseSeasonFlag() (int, error) {
	if seasonArg == "" {
		return 0, nil
	}
	return forecast.ParseSeason(seasonArg)
}

func openStore() (*forecast.MatchStore, error) {
	return forecast.OpenMatchStore(forecast.Config.DbPath)
}

func fetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch matches for a competition from football-data.org",
		RunE: func(cmd *cobra.Command, args []string) error {
			if competition == "" {
				return fmt.Errorf("--competition is required for fetch")
			}
			season, err := parseSeasonFlag()
			if err != nil {
				return err
			}

			token := os.Getenv("FOOTBALL_DATA_API_KEY")
			if token == "" {
				logger.Warn("FOOTBALL_DATA_API_KEY is not set; requests may be rejected")
			}

			client := datasource.NewFootballDataClient(token)
			matches, err := client.CompetitionMatches(context.Background(), competition, season)
			if err != nil {
				return err
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SaveMatches(matches); err != nil {
				return err
			}
			logger.Info("Stored matches", len(matches))
			return nil
		},
	}
	return cmd
}

func loadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <folder>",
		Short: "Load openfootball newline-delimited JSON files from a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matches, err := datasource.LoadOpenfootballFolder(args[0])
			if err != nil {
				return err
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SaveMatches(matches); err != nil {
				return err
			}
			logger.Info("Stored matches", len(matches))
			return nil
		},
	}
	return cmd
}

func predictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Forecast all pending fixtures from the stored history",
		RunE: func(cmd *cobra.Command, args []string) error {
			season, err := parseSeasonFlag()
			if err != nil {
				return err
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			models, err := forecast.BuildModels(store, competition, season)
			if err != nil {
				return err
			}

			forecasts, err := forecast.PredictUpcoming(store, models, competition, season)
			if err != nil {
				return err
			}
			if len(forecasts) == 0 {
				fmt.Println("no pending fixtures; import some first")
				return nil
			}

			fmt.Printf("%-12s %-6s %-22s %-22s %6s %6s %6s  %s\n",
				"date", "comp", "home", "away", "win", "draw", "loss", "top score")
			for _, fc := range forecasts {
				top := fc.Prediction.TopScoreline()
				fmt.Printf("%-12s %-6s %-22s %-22s %5.2f %6.2f %6.2f  %d-%d\n",
					fc.Match.Date.Format("2006-01-02"), fc.Match.Competition,
					fc.Match.HomeTeam, fc.Match.AwayTeam,
					fc.Prediction.HomeWin, fc.Prediction.Draw, fc.Prediction.AwayWin,
					top.HomeGoals, top.AwayGoals)
			}
			return nil
		},
	}
	return cmd
}

func ratingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ratings",
		Short: "Replay the stored history and print the Elo rating table",
		RunE: func(cmd *cobra.Command, args []string) error {
			season, err := parseSeasonFlag()
			if err != nil {
				return err
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			completed, err := store.ListCompleted(competition, season)
			if err != nil {
				return err
			}

			ratings := forecast.ReplayRatings(completed)
			table := ratings.Snapshot()

			teams := make([]string, 0, len(table))
			for team := range table {
				teams = append(teams, team)
			}
			sort.Slice(teams, func(i, j int) bool {
				return table[teams[i]] > table[teams[j]]
			})

			for _, team := range teams {
				fmt.Printf("%-30s %8.1f\n", team, table[team])
			}
			return nil
		},
	}
	return cmd
}
