package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gulfstar-ops/vesselkpi/internal/fetcher"
	"github.com/gulfstar-ops/vesselkpi/internal/ingest"
)

var fetchURL string

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the report exports from the drop site",
	Long: `Downloads the five standard export files from the configured drop site
(HTTP share or vendor FTP server) into the data directory. Existing files are
overwritten; a missing remote file is a warning, not a failure.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		base := fetchURL
		if base == "" {
			base = cfg.Fetch.BaseURL
		}
		if base == "" {
			return eris.New("fetch: no drop site configured (set fetch.base_url or --url)")
		}

		if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
			return eris.Wrap(err, "fetch: create data dir")
		}

		files := ingest.Files{
			Events:      cfg.Data.Events,
			Manifests:   cfg.Data.Manifests,
			Allocations: cfg.Data.Allocations,
			Fluids:      cfg.Data.Fluids,
			Voyages:     cfg.Data.Voyages,
		}
		names := []string{files.Events, files.Manifests, files.Allocations, files.Fluids, files.Voyages}

		timeout := time.Duration(cfg.Fetch.TimeoutSecs) * time.Second
		download := downloader(base, timeout)

		var fetched int
		for _, name := range names {
			if name == "" {
				continue
			}
			remote := strings.TrimRight(base, "/") + "/" + name
			local := filepath.Join(cfg.Data.Dir, name)

			n, err := download(ctx, remote, local)
			if err != nil {
				zap.L().Warn("fetch: file unavailable", zap.String("url", remote), zap.Error(err))
				continue
			}
			zap.L().Info("fetch: downloaded", zap.String("file", name), zap.Int64("bytes", n))
			fetched++
		}

		if fetched == 0 {
			return eris.New("fetch: no files downloaded")
		}
		fmt.Printf("Downloaded %d file(s) to %s\n", fetched, cfg.Data.Dir)
		return nil
	},
}

// downloader picks the transport from the base URL scheme.
func downloader(base string, timeout time.Duration) func(ctx context.Context, remote, local string) (int64, error) {
	if strings.HasPrefix(base, "ftp://") {
		f := fetcher.NewFTPFetcher(fetcher.FTPOptions{
			User:     cfg.Fetch.FTPUser,
			Password: cfg.Fetch.FTPPassword,
			Timeout:  timeout,
		})
		return f.DownloadToFile
	}
	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		Timeout:           timeout,
		RequestsPerSecond: cfg.Fetch.RPS,
	})
	return f.DownloadToFile
}

func init() {
	fetchCmd.Flags().StringVar(&fetchURL, "url", "", "drop site base URL (overrides fetch.base_url)")
	rootCmd.AddCommand(fetchCmd)
}
