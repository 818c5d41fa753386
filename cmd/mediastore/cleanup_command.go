package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"mediastore/internal/media"
	"mediastore/internal/reconcile"
)

func newCleanupCommand(ctx *commandContext) *cobra.Command {
	var confirm bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "cleanup <photos|videos> <path>...",
		Short: "Delete specific orphaned files reported by scan",
		Long: "Cleanup deletes only the paths named on the command line. Run " +
			"scan first, review its orphan list, and pass the exact paths to " +
			"remove; the full report is never deleted wholesale.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			class, err := media.ParseClass(args[0])
			if err != nil {
				return err
			}
			paths := args[1:]
			if !confirm {
				return fmt.Errorf("cleanup deletes %d file(s); re-run with --confirm to proceed", len(paths))
			}

			cfg, store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			result := reconcile.New(cfg, store, nil).Cleanup(cmd.Context(), class, paths)
			if jsonOutput {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			for _, removed := range result.Removed {
				fmt.Fprintf(out, "removed %s\n", removed)
			}
			for _, failure := range result.Errors {
				fmt.Fprintf(out, "failed %s: %v\n", failure.Path, failure.Error)
			}
			fmt.Fprintf(out, "Freed %s across %d file(s), %d failure(s)\n",
				humanize.IBytes(uint64(result.BytesFreed)),
				len(result.Removed),
				len(result.Errors),
			)
			if len(result.Errors) > 0 {
				return fmt.Errorf("cleanup finished with %d failure(s)", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "Actually delete the listed paths")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the result as JSON")
	return cmd
}
