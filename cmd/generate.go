package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathsheet/internal/export"
	"github.com/abhisek/mathsheet/internal/llm"
	"github.com/abhisek/mathsheet/internal/problemgen"
	"github.com/abhisek/mathsheet/internal/session"
	"github.com/abhisek/mathsheet/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate worksheets without the interactive UI",
	Example: `  mathsheet generate --min 1 --max 50 --count 30 --ops add,subtract
  mathsheet generate --ops mul,div --num-ops 2 --parens --copies 3 --out ./worksheets
  mathsheet generate --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		form, err := formFromFlags(cmd)
		if err != nil {
			return err
		}
		locale := settings.SessionLocale()

		cfg, err := problemgen.ParseConfig(form)
		if err != nil {
			return fmt.Errorf("%s: %w", session.ErrorMessage(err, locale), err)
		}

		opts := settings.GeneratorOptions()
		if strict, _ := cmd.Flags().GetBool("strict"); strict {
			opts.Validators = problemgen.StrictValidators()
		}

		if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
			p := problemgen.BuildPrompt(cfg, problemgen.PromptOptions{GradeLevel: opts.GradeLevel})
			sep := strings.Repeat("─", 60)
			fmt.Println(sep)
			fmt.Println("SYSTEM")
			fmt.Println(sep)
			fmt.Println(p.System)
			fmt.Println(sep)
			fmt.Println("USER")
			fmt.Println(sep)
			fmt.Println(p.User)
			return nil
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		svc, err := newService(ctx, st, opts)
		if err != nil {
			return err
		}

		copies, _ := cmd.Flags().GetInt("copies")
		if copies < 1 {
			return fmt.Errorf("--copies must be at least 1")
		}
		worksheets, err := svc.CreateCopies(llm.WithPurpose(ctx, llm.PurposeBatch), cfg, copies)
		if err != nil {
			if msg := session.ErrorMessage(err, locale); msg != "" {
				return fmt.Errorf("%s: %w", msg, err)
			}
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		dir := outputDir(out)
		quiet, _ := cmd.Flags().GetBool("quiet")
		for i, ws := range worksheets {
			if !quiet {
				printWorksheet(i+1, ws)
			}
			path, err := export.Save(dir, ws.Problems, export.Options{Locale: string(locale)})
			if err != nil {
				return fmt.Errorf("export worksheet %s: %w", ws.ID, err)
			}
			logger.Info("worksheet exported", zap.String("id", ws.ID), zap.String("path", path))
			fmt.Println(path)
		}
		return nil
	},
}

// formFromFlags starts from the settings defaults and overrides the
// fields whose flags were given.
func formFromFlags(cmd *cobra.Command) (problemgen.FormInput, error) {
	form := settings.Form()
	flags := cmd.Flags()

	if flags.Changed("min") {
		form.Min, _ = flags.GetString("min")
	}
	if flags.Changed("max") {
		form.Max, _ = flags.GetString("max")
	}
	if flags.Changed("count") {
		form.Count, _ = flags.GetString("count")
	}
	if flags.Changed("ops") {
		keys, _ := flags.GetStringSlice("ops")
		ops, unknown := problemgen.OperationsFromKeys(keys)
		if len(unknown) > 0 {
			return form, fmt.Errorf("unknown operations: %s", strings.Join(unknown, ", "))
		}
		form.Operations = ops
	}
	if flags.Changed("num-ops") {
		form.NumOperations, _ = flags.GetInt("num-ops")
	}
	if flags.Changed("parens") {
		form.UseParentheses, _ = flags.GetBool("parens")
	}
	return form, nil
}

func printWorksheet(n int, ws *store.Worksheet) {
	fmt.Printf("# Worksheet %d (%s)\n", n, ws.ID)
	for _, row := range export.Pair(ws.Problems) {
		left := fmt.Sprintf("%3d. %s", row.Left.Index, row.Left.Text)
		if row.Right == nil {
			fmt.Println(left)
			continue
		}
		fmt.Printf("%-36s%3d. %s\n", left, row.Right.Index, row.Right.Text)
	}
	fmt.Println()
}

func init() {
	f := generateCmd.Flags()
	f.String("min", "", "Smallest number in a problem (default from settings)")
	f.String("max", "", "Largest number in a problem (default from settings)")
	f.String("count", "", "Number of problems (default from settings)")
	f.StringSlice("ops", nil, "Operations: add, subtract, multiply, divide (or + - * /)")
	f.Int("num-ops", 1, "Operations per problem (1 or 2)")
	f.Bool("parens", false, "Allow parentheses in two-operation problems")
	f.Bool("strict", false, "Re-check every problem locally and reject the batch on any violation")
	f.StringP("out", "o", "", "Output directory for .docx files (default from settings, then the working directory)")
	f.IntP("copies", "n", 1, "Number of independent worksheets to generate")
	f.Bool("dry-run", false, "Print the prompt without calling the model")
	f.BoolP("quiet", "q", false, "Only print the exported file paths")
}
