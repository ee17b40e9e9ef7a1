package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spigell/hh-matcher/internal/models"
	"github.com/spigell/hh-matcher/internal/resume"
	"github.com/spigell/hh-matcher/internal/store"
	"go.uber.org/zap"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Manage stored resumes",
}

var resumeImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Store a resume text, optionally normalizing it with the language model",
	Run: func(cmd *cobra.Command, _ []string) {
		runResumeImport(cmd)
	},
}

var resumeNormalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Print the structured form of a resume text without storing it",
	Run: func(cmd *cobra.Command, _ []string) {
		runResumeNormalize(cmd)
	},
}

var vacancyCmd = &cobra.Command{
	Use:   "vacancy",
	Short: "Manage stored vacancies",
}

var vacancyImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Store a vacancy description",
	Run: func(cmd *cobra.Command, _ []string) {
		runVacancyImport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(vacancyCmd)
	resumeCmd.AddCommand(resumeImportCmd, resumeNormalizeCmd)
	vacancyCmd.AddCommand(vacancyImportCmd)

	resumeImportCmd.Flags().String("id", "", "resume id (generated when empty)")
	resumeImportCmd.Flags().String("email", "", "owner email")
	resumeImportCmd.Flags().String("file", "", "file with the resume text ('-' for stdin)")
	resumeImportCmd.Flags().Bool("normalize", false, "also store the structured form produced by the language model")
	resumeImportCmd.MarkFlagRequired("file")

	resumeNormalizeCmd.Flags().String("email", "", "owner email used when the resume has none")
	resumeNormalizeCmd.Flags().String("file", "", "file with the resume text ('-' for stdin)")
	resumeNormalizeCmd.MarkFlagRequired("file")

	vacancyImportCmd.Flags().String("id", "", "vacancy id (generated when empty)")
	vacancyImportCmd.Flags().String("title", "", "vacancy title")
	vacancyImportCmd.Flags().String("company", "", "company name")
	vacancyImportCmd.Flags().String("url", "", "link to the posting")
	vacancyImportCmd.Flags().String("file", "", "file with the vacancy description ('-' for stdin)")
	vacancyImportCmd.MarkFlagRequired("file")

	for _, c := range []*cobra.Command{resumeImportCmd, resumeNormalizeCmd} {
		c.Flags().Duration("timeout", defaultMatchTimeout, "time limit for the language model call")
	}
}

func runResumeImport(cmd *cobra.Command) {
	rt := newSession()
	defer rt.finish()

	id, _ := cmd.Flags().GetString("id")
	email, _ := cmd.Flags().GetString("email")
	file, _ := cmd.Flags().GetString("file")
	normalize, _ := cmd.Flags().GetBool("normalize")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	text, err := readInput(file)
	if err != nil {
		rt.logger.Fatal("reading resume", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	record := &store.ResumeRecord{ID: id, Email: email, RawText: text}
	if normalize {
		normalized, err := rt.normalize(ctx, text, email)
		if err != nil {
			rt.logger.Fatal("normalizing resume", zap.Error(err))
		}
		record.Normalized = normalized
	}

	st, err := rt.openStore(ctx)
	if err != nil {
		rt.logger.Fatal("opening the store", zap.Error(err))
	}
	defer st.Close()

	if err := st.SaveResume(ctx, record); err != nil {
		rt.logger.Fatal("saving resume", zap.Error(err))
	}

	rt.logger.Info("resume stored", zap.String("resume_id", record.ID), zap.Bool("normalized", record.Normalized != nil))
	if err := printJSON(record); err != nil {
		rt.logger.Fatal("printing resume", zap.Error(err))
	}
}

func runResumeNormalize(cmd *cobra.Command) {
	rt := newSession()
	defer rt.finish()

	email, _ := cmd.Flags().GetString("email")
	file, _ := cmd.Flags().GetString("file")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	text, err := readInput(file)
	if err != nil {
		rt.logger.Fatal("reading resume", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	normalized, err := rt.normalize(ctx, text, email)
	if err != nil {
		rt.logger.Fatal("normalizing resume", zap.Error(err))
	}

	if err := printJSON(normalized); err != nil {
		rt.logger.Fatal("printing resume", zap.Error(err))
	}
}

func runVacancyImport(cmd *cobra.Command) {
	rt := newSession()
	defer rt.finish()

	id, _ := cmd.Flags().GetString("id")
	title, _ := cmd.Flags().GetString("title")
	company, _ := cmd.Flags().GetString("company")
	url, _ := cmd.Flags().GetString("url")
	file, _ := cmd.Flags().GetString("file")

	text, err := readInput(file)
	if err != nil {
		rt.logger.Fatal("reading vacancy", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	st, err := rt.openStore(ctx)
	if err != nil {
		rt.logger.Fatal("opening the store", zap.Error(err))
	}
	defer st.Close()

	record := &store.VacancyRecord{ID: id, Title: title, Company: company, URL: url, Description: text}
	if err := st.SaveVacancy(ctx, record); err != nil {
		rt.logger.Fatal("saving vacancy", zap.Error(err))
	}

	rt.logger.Info("vacancy stored", zap.String("vacancy_id", record.ID))
	if err := printJSON(record); err != nil {
		rt.logger.Fatal("printing vacancy", zap.Error(err))
	}
}

func (r *session) normalize(ctx context.Context, text, email string) (*models.NormalizedResume, error) {
	completer, err := r.completer(ctx)
	if err != nil {
		return nil, err
	}
	return resume.NewNormalizer(completer, r.logger, r.config.LLM.MaxLogLength).Normalize(ctx, text, email)
}
