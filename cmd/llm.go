package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathsheet/internal/llm"
	"github.com/abhisek/mathsheet/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded model calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		failed, _ := cmd.Flags().GetBool("failed")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		shown := 0
		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			if failed && e.Success {
				continue
			}
			if shown == 0 {
				fmt.Printf("%-5s  %-19s  %-10s  %-10s  %-26s  %6s  %6s  %7s  %s\n",
					"ID", "Time", "Purpose", "Provider", "Model", "In", "Out", "Ms", "OK")
				fmt.Println(strings.Repeat("─", 106))
			}
			shown++

			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			fmt.Printf("%-5d  %-19s  %-10s  %-10s  %-26s  %6d  %6d  %7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				e.Provider,
				truncate(e.Model, 26),
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		if shown == 0 {
			fmt.Println("No model calls recorded.")
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response of one call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		e, err := st.EventRepo().GetLLMEvent(cmd.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("call %d not found", id)
		}
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}

		fmt.Printf("ID:        %d\n", e.ID)
		fmt.Printf("Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Provider:  %s\n", e.Provider)
		fmt.Printf("Model:     %s\n", e.Model)
		fmt.Printf("Purpose:   %s\n", e.Purpose)
		fmt.Printf("Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
		fmt.Printf("Latency:   %dms\n", e.LatencyMs)
		if cost := llm.LookupCost(e.Model); cost != nil {
			fmt.Printf("Cost:      %s\n", formatCost(cost.Cost(e.InputTokens, e.OutputTokens)))
		}
		if !e.Success {
			fmt.Printf("Error:     %s\n", e.ErrorMessage)
		}

		printSection("REQUEST", e.RequestBody)
		printSection("RESPONSE", e.ResponseBody)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		byPurpose, err := st.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("usage by purpose: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Println("No model calls recorded.")
			return nil
		}
		byModel, err := st.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("usage by model: %w", err)
		}

		fmt.Println("By purpose")
		printUsage("Purpose", byPurpose, false)
		fmt.Println()
		fmt.Println("By model (estimated USD)")
		printUsage("Model", byModel, true)
		return nil
	},
}

// printUsage renders one aggregate table. With withCost set, rows whose
// model has no known price show "?" and the total is marked partial.
func printUsage(keyHeader string, rows []store.LLMUsage, withCost bool) {
	rule := strings.Repeat("─", 84)
	fmt.Println(rule)
	fmt.Printf("%-28s  %6s  %10s  %10s  %8s  %10s\n", keyHeader, "Calls", "Input", "Output", "Avg Ms", "Cost")
	fmt.Println(rule)

	var calls, in, out int
	var total float64
	var unpriced []string
	for _, u := range rows {
		calls += u.Calls
		in += u.InputTokens
		out += u.OutputTokens

		cost := ""
		if withCost {
			if mc := llm.LookupCost(u.Key); mc != nil {
				c := mc.Cost(u.InputTokens, u.OutputTokens)
				total += c
				cost = formatCost(c)
			} else {
				cost = "?"
				unpriced = append(unpriced, u.Key)
			}
		}
		fmt.Printf("%-28s  %6d  %10d  %10d  %8d  %10s\n",
			truncate(u.Key, 28), u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs, cost)
	}

	fmt.Println(rule)
	label, cost := "TOTAL", ""
	if withCost {
		cost = formatCost(total)
		if len(unpriced) > 0 {
			label = "TOTAL (partial)"
		}
	}
	fmt.Printf("%-28s  %6d  %10d  %10d  %8s  %10s\n", label, calls, in, out, "", cost)
	if len(unpriced) > 0 {
		fmt.Printf("No pricing for: %s\n", strings.Join(unpriced, ", "))
	}
}

func printSection(title, body string) {
	sep := strings.Repeat("─", 60)
	fmt.Println()
	fmt.Println(sep)
	fmt.Println(title)
	fmt.Println(sep)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Println(body)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (worksheet, batch, api)")
	llmListCmd.Flags().Bool("failed", false, "Only show failed calls")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
