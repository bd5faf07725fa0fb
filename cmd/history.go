package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathsheet/internal/export"
	"github.com/abhisek/mathsheet/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, export and prune saved worksheets",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved worksheets",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		list, err := st.WorksheetRepo().ListWorksheets(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("list worksheets: %w", err)
		}
		if len(list) == 0 {
			fmt.Println("No saved worksheets.")
			return nil
		}

		fmt.Printf("%-5s  %-36s  %-16s  %-5s  %-9s  %-24s  %s\n",
			"Seq", "ID", "Created", "Count", "Range", "Operations", "Model")
		fmt.Println(strings.Repeat("─", 120))
		for _, ws := range list {
			ops := strings.Join(ws.Params.Operations, ",")
			if ws.Params.NumOperations == 2 {
				ops += " x2"
				if ws.Params.UseParentheses {
					ops += " ()"
				}
			}
			fmt.Printf("%-5d  %-36s  %-16s  %-5d  %-9s  %-24s  %s\n",
				ws.Sequence,
				ws.ID,
				ws.CreatedAt.Local().Format("2006-01-02 15:04"),
				len(ws.Problems),
				fmt.Sprintf("%d-%d", ws.Params.Min, ws.Params.Max),
				truncate(ops, 24),
				ws.Model,
			)
		}
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a saved worksheet as .docx",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ws, err := st.WorksheetRepo().GetWorksheet(cmd.Context(), args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("worksheet %s not found", args[0])
		}
		if err != nil {
			return fmt.Errorf("get worksheet: %w", err)
		}

		out, _ := cmd.Flags().GetString("out")
		path, err := export.Save(outputDir(out), ws.Problems, export.Options{Locale: settings.Locale})
		if err != nil {
			return fmt.Errorf("export worksheet: %w", err)
		}
		fmt.Println(path)
		return nil
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the most recent worksheets",
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetInt("keep")
		if keep < 0 {
			return fmt.Errorf("--keep must not be negative")
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.WorksheetRepo().PruneWorksheets(cmd.Context(), keep)
		if err != nil {
			return fmt.Errorf("prune worksheets: %w", err)
		}
		fmt.Printf("Removed %d worksheet(s).\n", n)
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Number of worksheets to show")
	historyExportCmd.Flags().StringP("out", "o", "", "Output directory")
	historyPruneCmd.Flags().Int("keep", 50, "Number of recent worksheets to keep")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyPruneCmd)
}
