package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spigell/hh-matcher/internal/skills"
	"go.uber.org/zap"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Print the known skills found in a text (no language model call)",
	Run: func(cmd *cobra.Command, _ []string) {
		runSkills(cmd)
	},
}

func init() {
	rootCmd.AddCommand(skillsCmd)

	skillsCmd.Flags().String("file", "", "file with the text ('-' for stdin)")
	skillsCmd.Flags().String("compare-with", "", "second file; print the comparison of the first (vacancy) against it (resume)")
	skillsCmd.MarkFlagRequired("file")
}

func runSkills(cmd *cobra.Command) {
	rt := newSession()
	defer rt.finish()

	file, _ := cmd.Flags().GetString("file")
	other, _ := cmd.Flags().GetString("compare-with")

	table, err := rt.table()
	if err != nil {
		rt.logger.Fatal("loading terms", zap.Error(err))
	}
	extractor := skills.NewExtractor(table)

	text, err := readInput(file)
	if err != nil {
		rt.logger.Fatal("reading input", zap.Error(err))
	}
	found := extractor.Extract(text)

	if other == "" {
		if err := printJSON(found); err != nil {
			rt.logger.Fatal("printing skills", zap.Error(err))
		}
		return
	}

	otherText, err := readInput(other)
	if err != nil {
		rt.logger.Fatal("reading input", zap.Error(err))
	}

	cmp := skills.Compare(found, extractor.Extract(otherText))
	out := map[string][]string{
		"matched":   skills.SurfaceForms(found, cmp.Matched),
		"unmatched": skills.SurfaceForms(found, cmp.Unmatched),
	}
	if err := printJSON(out); err != nil {
		rt.logger.Fatal("printing comparison", zap.Error(err))
	}
}
