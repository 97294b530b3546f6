package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackcanvas/stackcanvas/internal/config"
	"github.com/stackcanvas/stackcanvas/pkg/flow"
	"github.com/stackcanvas/stackcanvas/pkg/history"
)

// historyCommand creates the history command group.
func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse past stack generations",
		Long: `Browse past stack generations.

Without a subcommand an interactive browser opens: pick an entry to restore
its graph to a file. History is shared between runs only with the redis
backend; the default in-memory backend is per-process.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runHistoryBrowse(cmd.Context())
		},
	}

	cmd.AddCommand(c.historyListCommand())
	cmd.AddCommand(c.historyClearCommand())

	return cmd
}

// historyListCommand creates the "history list" subcommand.
func (c *CLI) historyListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List past stack generations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(ctx, limit)
			if err != nil {
				return fmt.Errorf("list history: %w", err)
			}
			if len(entries) == 0 {
				printInfo("History is empty")
				return nil
			}

			for _, e := range entries {
				status := ""
				if e.Mocked {
					status = " " + StyleWarning.Render("(mocked)")
				}
				fmt.Println(StyleValue.Render(e.Label) + status)
				printDetail("%s · %d nodes · %s", e.ID, e.Graph.NodeCount(), e.CreatedAt.Local().Format("Jan 2 15:04"))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultListLimit, "maximum entries to show")

	return cmd
}

// historyClearCommand creates the "history clear" subcommand.
func (c *CLI) historyClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(ctx); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			printSuccess("History cleared")
			return nil
		},
	}
}

// runHistoryBrowse opens the interactive history browser.
func (c *CLI) runHistoryBrowse(ctx context.Context) error {
	store, err := c.openHistory(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(ctx, 0)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	if len(entries) == 0 {
		printInfo("History is empty")
		return nil
	}

	selected, err := selectHistoryEntry(entries)
	if err != nil {
		return err
	}
	if selected == nil {
		return nil
	}

	output := fmt.Sprintf("stack-%.8s.json", selected.ID)
	if err := flow.WriteGraphFile(selected.Graph, output); err != nil {
		return fmt.Errorf("write graph %s: %w", output, err)
	}

	printSuccess("Graph restored")
	printFile(output)
	printNewline()
	printNextStep("Export", "stackcanvas export "+output)

	return nil
}

// openHistory connects to the configured history backend, warning when the
// per-process memory backend is in use.
func (c *CLI) openHistory(ctx context.Context) (history.Store, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.History.Backend != config.BackendRedis {
		printWarning("History backend is %q; entries do not survive between runs", cfg.History.Backend)
	}
	return c.newHistoryStore(ctx, cfg)
}
