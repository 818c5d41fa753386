package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"mediastore/internal/codec"
	"mediastore/internal/ingest"
	"mediastore/internal/media"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var displayName string
	var declaredMIME string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "ingest <image|video> <owner-id> <file>",
		Short: "Upload one asset through the full pipeline",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := media.ParseKind(args[0])
			if err != nil {
				return err
			}
			ownerID, sourcePath := args[1], args[2]

			cfg, store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			file, err := os.Open(sourcePath)
			if err != nil {
				return fmt.Errorf("open source file: %w", err)
			}
			defer file.Close()

			if declaredMIME == "" {
				declaredMIME = mime.TypeByExtension(filepath.Ext(sourcePath))
			}
			if displayName == "" {
				displayName = ownerID
			}

			showProgress := !jsonOutput && isTerminal(cmd.OutOrStdout())
			pipeline := ingest.New(cfg, store, codec.NewExecImage(cfg), codec.NewExecVideo(cfg), nil)
			record, err := pipeline.Ingest(cmd.Context(), ingest.Request{
				OwnerID:      ownerID,
				DisplayName:  displayName,
				Kind:         kind,
				Filename:     filepath.Base(sourcePath),
				DeclaredMIME: declaredMIME,
				Data:         file,
				Progress: func(bytesRead int64) {
					if showProgress {
						fmt.Fprintf(cmd.OutOrStdout(), "\rread %s", humanize.IBytes(uint64(bytesRead)))
					}
				},
			})
			if showProgress {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			if err != nil {
				if media.UserFacing(err) {
					return err
				}
				return fmt.Errorf("ingest failed: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd, record)
			}

			rows := make([][]string, 0, 8)
			rows = append(rows, []string{"id", record.ID})
			rows = append(rows, []string{"owner", record.OwnerID})
			rows = append(rows, []string{"kind", string(record.Kind)})
			rows = append(rows, []string{"size", humanize.IBytes(uint64(record.SizeBytes))})
			for _, vp := range record.VariantPaths() {
				rows = append(rows, []string{string(vp.Variant), vp.Path})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().StringVar(&displayName, "name", "", "Owner display name used when creating a new folder")
	cmd.Flags().StringVar(&declaredMIME, "mime", "", "Declared MIME type (defaults from the file extension)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the committed record as JSON")
	return cmd
}
