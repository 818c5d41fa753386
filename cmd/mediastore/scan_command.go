package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"mediastore/internal/assetstore"
	"mediastore/internal/media"
	"mediastore/internal/reconcile"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "scan <photos|videos>",
		Short: "Reconcile a storage root against the record index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			class, err := media.ParseClass(args[0])
			if err != nil {
				return err
			}
			cfg, store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			report, err := reconcile.New(cfg, store, nil).Scan(cmd.Context(), class)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scanned %d files under the %s root\n", report.FilesScanned, class)

			if len(report.Orphans) > 0 {
				rows := make([][]string, 0, len(report.Orphans))
				for _, orphan := range report.Orphans {
					rows = append(rows, []string{orphan.Path, humanize.IBytes(uint64(orphan.Size)), orphan.Reason})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Orphaned File", "Size", "Reason"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignLeft},
				))
			}

			if len(report.MissingFiles) > 0 {
				rows := make([][]string, 0, len(report.MissingFiles))
				for _, missing := range report.MissingFiles {
					rows = append(rows, []string{missing.RecordID, strings.Join(missing.Paths, "\n")})
				}
				fmt.Fprintln(out, renderTable([]string{"Record", "Missing Paths"}, rows, nil))
			}

			if report.Clean() {
				fmt.Fprintln(out, "No discrepancies found")
			}

			usage, err := assetstore.ForClass(cfg, class, nil).DiskUsage()
			if err == nil {
				fmt.Fprintf(out, "Disk: %s used, %s free of %s\n",
					humanize.IBytes(usage.UsedBytes),
					humanize.IBytes(usage.FreeBytes),
					humanize.IBytes(usage.TotalBytes),
				)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON")
	return cmd
}
