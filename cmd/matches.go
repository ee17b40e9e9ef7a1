package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spigell/hh-matcher/internal/store"
	"go.uber.org/zap"
)

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List stored match results of a resume or a vacancy, newest first",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatches(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchesCmd)

	matchesCmd.Flags().String("resume-id", "", "list results of this resume")
	matchesCmd.Flags().String("vacancy-id", "", "list results of this vacancy")
	matchesCmd.MarkFlagsMutuallyExclusive("resume-id", "vacancy-id")
	matchesCmd.MarkFlagsOneRequired("resume-id", "vacancy-id")
}

func runMatches(cmd *cobra.Command) {
	rt := newSession()
	defer rt.finish()

	resumeID, _ := cmd.Flags().GetString("resume-id")
	vacancyID, _ := cmd.Flags().GetString("vacancy-id")

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	st, err := rt.openStore(ctx)
	if err != nil {
		rt.logger.Fatal("opening the store", zap.Error(err))
	}
	defer st.Close()

	var results []*store.MatchResult
	if resumeID != "" {
		results, err = st.ListMatchesByResume(ctx, resumeID)
	} else {
		results, err = st.ListMatchesByVacancy(ctx, vacancyID)
	}
	if err != nil {
		rt.logger.Fatal("listing matches", zap.Error(err))
	}

	rt.logger.Debug("matches found", zap.Int("count", len(results)))
	if err := printJSON(results); err != nil {
		rt.logger.Fatal("printing matches", zap.Error(err))
	}
}
