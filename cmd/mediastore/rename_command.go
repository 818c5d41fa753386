package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediastore/internal/rename"
)

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "rename <owner-id> <new-display-name>",
		Short: "Migrate an owner's folders after a display-name change",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ownerID, newName := args[0], args[1]

			cfg, store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			report, err := rename.New(cfg, store, nil).Rename(cmd.Context(), ownerID, newName)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, report)
			}

			rows := make([][]string, 0, len(report.Classes))
			for _, class := range report.Classes {
				detail := ""
				switch class.Outcome {
				case rename.OutcomeComplete, rename.OutcomePartial:
					detail = fmt.Sprintf("%d/%d files, %d records",
						class.Migration.Succeeded,
						class.Migration.Succeeded+class.Migration.Failed,
						class.Rewrite.Updated,
					)
				}
				if class.Err != nil {
					detail = class.Err.Error()
				}
				rows = append(rows, []string{
					string(class.Class),
					class.OldToken,
					class.NewToken,
					string(class.Outcome),
					detail,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Class", "Old Folder", "New Folder", "Outcome", "Detail"}, rows, nil))
			fmt.Fprintf(out, "Overall: %s\n", report.Outcome())

			if outcome := report.Outcome(); outcome == rename.OutcomeConflict || outcome == rename.OutcomePartial {
				return fmt.Errorf("rename ended %s; run scan to inspect the affected root", outcome)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON")
	return cmd
}
