package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spigell/hh-matcher/internal/matching"
	"go.uber.org/zap"
)

const defaultMatchTimeout = 2 * time.Minute

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match a vacancy text against a resume text and print the analysis",
	Long: `Match runs keyword extraction on both texts, asks the language model for a
fit analysis and prints it as JSON. When both --resume-id and --vacancy-id are
given the result is stored and reused on the next call for the same pair.`,
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

var matchStoredCmd = &cobra.Command{
	Use:   "match-stored",
	Short: "Match an imported resume against an imported vacancy",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatchStored(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(matchStoredCmd)

	matchCmd.Flags().String("vacancy-file", "", "file with the vacancy text ('-' for stdin)")
	matchCmd.Flags().String("resume-file", "", "file with the resume text ('-' for stdin)")
	matchCmd.Flags().String("resume-id", "", "resume id to store the result under")
	matchCmd.Flags().String("vacancy-id", "", "vacancy id to store the result under")
	matchCmd.Flags().Bool("force", false, "recompute even if a stored result exists")
	matchCmd.Flags().Duration("timeout", defaultMatchTimeout, "overall time limit for the match")

	matchStoredCmd.Flags().String("resume-id", "", "stored resume id")
	matchStoredCmd.Flags().String("vacancy-id", "", "stored vacancy id")
	matchStoredCmd.Flags().Bool("force", false, "recompute even if a stored result exists")
	matchStoredCmd.Flags().Duration("timeout", defaultMatchTimeout, "overall time limit for the match")

	for _, c := range []*cobra.Command{matchCmd, matchStoredCmd} {
		c.MarkFlagsRequiredTogether("resume-id", "vacancy-id")
	}
	matchCmd.MarkFlagRequired("vacancy-file")
	matchCmd.MarkFlagRequired("resume-file")
	matchStoredCmd.MarkFlagRequired("resume-id")
}

func runMatch(cmd *cobra.Command) {
	rt := newSession()
	defer rt.finish()

	vacancyFile, _ := cmd.Flags().GetString("vacancy-file")
	resumeFile, _ := cmd.Flags().GetString("resume-file")
	resumeID, _ := cmd.Flags().GetString("resume-id")
	vacancyID, _ := cmd.Flags().GetString("vacancy-id")
	force, _ := cmd.Flags().GetBool("force")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	vacancyText, err := readInput(vacancyFile)
	if err != nil {
		rt.logger.Fatal("reading vacancy", zap.Error(err))
	}
	resumeText, err := readInput(resumeFile)
	if err != nil {
		rt.logger.Fatal("reading resume", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	matcher, err := rt.matcher(ctx)
	if err != nil {
		rt.logger.Fatal("creating a matcher", zap.Error(err))
	}

	// Without ids nothing is persisted.
	if resumeID == "" {
		analysis, err := matcher.Match(ctx, vacancyText, resumeText)
		if err != nil {
			rt.logger.Fatal("matching", zap.Error(err))
		}
		if err := printJSON(analysis); err != nil {
			rt.logger.Fatal("printing analysis", zap.Error(err))
		}
		return
	}

	st, err := rt.openStore(ctx)
	if err != nil {
		rt.logger.Fatal("opening the store", zap.Error(err))
	}
	defer st.Close()

	svc := matching.NewService(matcher, st, rt.metrics, rt.logger)
	result, err := svc.MatchPair(ctx, matching.PairRequest{
		ResumeID:    resumeID,
		VacancyID:   vacancyID,
		ResumeText:  resumeText,
		VacancyText: vacancyText,
		Force:       force,
	})
	if err != nil {
		rt.logger.Fatal("matching", zap.Error(err))
	}

	if err := printJSON(result); err != nil {
		rt.logger.Fatal("printing result", zap.Error(err))
	}
}

func runMatchStored(cmd *cobra.Command) {
	rt := newSession()
	defer rt.finish()

	resumeID, _ := cmd.Flags().GetString("resume-id")
	vacancyID, _ := cmd.Flags().GetString("vacancy-id")
	force, _ := cmd.Flags().GetBool("force")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	matcher, err := rt.matcher(ctx)
	if err != nil {
		rt.logger.Fatal("creating a matcher", zap.Error(err))
	}

	st, err := rt.openStore(ctx)
	if err != nil {
		rt.logger.Fatal("opening the store", zap.Error(err))
	}
	defer st.Close()

	result, err := matching.NewService(matcher, st, rt.metrics, rt.logger).MatchStored(ctx, resumeID, vacancyID, force)
	if err != nil {
		rt.logger.Fatal("matching stored pair", zap.Error(err), zap.String("resume_id", resumeID), zap.String("vacancy_id", vacancyID))
	}

	if err := printJSON(result); err != nil {
		rt.logger.Fatal("printing result", zap.Error(err))
	}
}
