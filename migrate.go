package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	generateOutPath string

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and seed the singleton rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDatabase(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return db.Close()
		},
	}

	backupCmd = &cobra.Command{
		Use:   "backup",
		Short: "Upload a snapshot of the SQLite database to S3",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			uploader, err := services.NewBackupUploader(ctx, cfg.Backup)
			if err != nil {
				return err
			}

			gdb, err := database.Open(cfg.Database)
			if err != nil {
				return err
			}
			db := database.New(gdb)
			defer db.Close()

			dir, err := os.MkdirTemp("", "portfolio-backup-")
			if err != nil {
				return err
			}
			defer os.RemoveAll(dir)

			name := fmt.Sprintf("portfolio-%s.db", time.Now().UTC().Format("20060102T150405Z"))
			snapshot := filepath.Join(dir, name)
			if err := db.Snapshot(ctx, snapshot); err != nil {
				return err
			}

			f, err := os.Open(snapshot)
			if err != nil {
				return err
			}
			defer f.Close()

			key, err := uploader.Upload(ctx, name, f)
			if err != nil {
				return err
			}
			log.Info().Str("key", key).Msg("Backup complete")
			return nil
		},
	}

	generateModelsCmd = &cobra.Command{
		Use:   "generate-models",
		Short: "Migrate the schema and generate typed query helpers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gdb, err := database.Open(cfg.Database)
			if err != nil {
				return err
			}
			defer database.New(gdb).Close()
			return models.GenerateModels(gdb, generateOutPath)
		},
	}

	columnReportCmd = &cobra.Command{
		Use:   "column-report",
		Short: "List database columns that no model field maps to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gdb, err := database.Open(cfg.Database)
			if err != nil {
				return err
			}
			defer database.New(gdb).Close()
			_, err = models.GenerateColumnMismatchReport(gdb.WithContext(cmd.Context()), cmd.OutOrStdout())
			return err
		},
	}
)

func init() {
	generateModelsCmd.Flags().StringVar(&generateOutPath, "out", "./query", "output directory for generated query code")
}
