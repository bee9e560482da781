package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pdf-namer/internal/ingest"
	"github.com/pdiddy/pdf-namer/internal/publish"
	"github.com/pdiddy/pdf-namer/internal/rename"
	"github.com/pdiddy/pdf-namer/internal/report"
	"github.com/pdiddy/pdf-namer/internal/roster"
	"github.com/pdiddy/pdf-namer/internal/secrets"
	"github.com/pdiddy/pdf-namer/pkg/types"
)

var renameCmd = &cobra.Command{
	Use:   "rename [files, directories or .zip uploads...]",
	Short: "Rename numbered PDFs after their client and package them",
	Long: `Rename reads the given PDFs (directly, from directories, or from ZIP
uploads), renames each one to "<client><tag><ext>" using the first number in
its filename as a 1-based roster index, and writes the results to a ZIP
archive. Files that cannot be mapped keep their name and are reported as
warnings; warnings do not fail the run.`,
	Example: `  pdf-namer rename --tag _2025_11_21 uploads/*.pdf
  pdf-namer rename --out-dir dist weekly.zip
  pdf-namer rename --gcs-bucket my-bucket --gcs-prefix weekly/ uploads/`,
	RunE: runRename,
}

func init() {
	f := renameCmd.Flags()
	f.String("tag", "", "text appended after the client name (e.g. _2025_11_21)")
	f.String("roster", "", "YAML roster file (default: built-in client list)")
	f.String("archive-name", types.DefaultArchiveName, "filename of the produced ZIP")
	f.String("out-dir", ".", "directory the archive is written to")
	f.String("gcs-bucket", "", "upload the archive to this Cloud Storage bucket instead")
	f.String("gcs-prefix", "", "object name prefix inside the bucket")
	f.Bool("gcs-overwrite", false, "replace an existing object of the same name")
	f.Int("max-retries", 0, "upload attempts before giving up (default 4)")
	f.StringSlice("extensions", ingest.DefaultExtensions, "extensions accepted from directories and ZIP uploads")
	f.String("format", "text", "result output format: text, json or yaml")
	f.String("manifest", "", "also write a manifest (.json or .yaml) to this path")

	for key, flag := range map[string]string{
		"rename.tag":          "tag",
		"rename.roster_file":  "roster",
		"rename.archive_name": "archive-name",
		"publish.output_dir":  "out-dir",
		"publish.gcs_bucket":  "gcs-bucket",
		"publish.gcs_prefix":  "gcs-prefix",
		"publish.max_retries": "max-retries",
		"ingest.extensions":   "extensions",
	} {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}

	rootCmd.AddCommand(renameCmd)
}

// loadConfig assembles the effective configuration from flags, environment
// and the config file.
func loadConfig() types.Config {
	cfg := types.Config{
		Rename: types.RenameConfig{
			Tag:         viper.GetString("rename.tag"),
			RosterFile:  viper.GetString("rename.roster_file"),
			ArchiveName: viper.GetString("rename.archive_name"),
		},
		Ingest: types.IngestConfig{
			Extensions: viper.GetStringSlice("ingest.extensions"),
		},
		Publish: types.PublishConfig{
			OutputDir:  viper.GetString("publish.output_dir"),
			GCSBucket:  viper.GetString("publish.gcs_bucket"),
			GCSPrefix:  viper.GetString("publish.gcs_prefix"),
			MaxRetries: viper.GetInt("publish.max_retries"),
		},
		Log: types.LogConfig{
			Level: viper.GetString("log.level"),
			JSON:  viper.GetBool("log.json"),
		},
	}
	if cfg.Rename.ArchiveName == "" {
		cfg.Rename.ArchiveName = types.DefaultArchiveName
	}
	return cfg
}

func runRename(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more PDF files, directories or ZIP uploads")
	}

	cfg := loadConfig()
	formatName, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	r, err := roster.Load(cfg.Rename.RosterFile)
	if err != nil {
		return err
	}

	files, err := ingest.Collect(args, cfg.Ingest)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no input files found (accepted extensions: %s)", strings.Join(cfg.Ingest.Extensions, ", "))
	}
	logger.Info("renaming files",
		zap.Int("files", len(files)),
		zap.Int("roster", r.Len()),
		zap.String("tag", cfg.Rename.Tag))

	rn := &rename.Renamer{Roster: r, Tag: cfg.Rename.Tag, Logger: logger}
	res, err := rn.Run(files)
	if err != nil {
		return err
	}

	data, err := res.Archive.Bytes()
	if err != nil {
		return fmt.Errorf("building archive: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	gcsOverwrite, _ := cmd.Flags().GetBool("gcs-overwrite")
	sink, closeSink, err := newSink(ctx, cfg.Publish, gcsOverwrite)
	if err != nil {
		return err
	}
	defer closeSink()

	location, err := sink.Publish(ctx, cfg.Rename.ArchiveName, data)
	if err != nil {
		return err
	}
	logger.Info("archive published", zap.String("location", location), zap.Int("entries", res.Archive.Len()))

	m := report.NewManifest(cfg.Rename.Tag, cfg.Rename.ArchiveName, res.Outcomes, res.Collisions)
	m.Location = location
	if err := report.Write(cmd.OutOrStdout(), format, m); err != nil {
		return err
	}
	if format == report.FormatText {
		fmt.Fprintf(cmd.OutOrStdout(), "Archive: %s\n", location)
	}

	manifestPath, _ := cmd.Flags().GetString("manifest")
	if manifestPath != "" {
		if err := writeManifest(manifestPath, m); err != nil {
			return err
		}
	}
	return nil
}

// newSink picks the archive destination. The returned func releases any
// client the sink holds.
func newSink(ctx context.Context, cfg types.PublishConfig, overwrite bool) (publish.Sink, func(), error) {
	if cfg.GCSBucket == "" {
		return publish.FileSink{Dir: cfg.OutputDir}, func() {}, nil
	}
	gcs, err := publish.NewGCSSink(ctx, publish.GCSOptions{
		Bucket:          cfg.GCSBucket,
		Prefix:          cfg.GCSPrefix,
		MaxRetries:      cfg.MaxRetries,
		Overwrite:       overwrite,
		CredentialsJSON: loadedSecrets.Bytes(secrets.GCSCredentials),
		Logger:          logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return gcs, func() { _ = gcs.Close() }, nil
}

// writeManifest saves m as YAML, or JSON when path ends in .json.
func writeManifest(path string, m report.Manifest) error {
	format := report.FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = report.FormatJSON
	}
	var buf bytes.Buffer
	if err := report.Write(&buf, format, m); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}
