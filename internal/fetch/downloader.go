package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Downloader retrieves the source workbook over HTTP. There is no retry: a
// failed fetch aborts the run.
type Downloader struct {
	client *http.Client
	logger *slog.Logger
}

// NewDownloader creates a downloader with a fixed request timeout.
func NewDownloader(timeout time.Duration, logger *slog.Logger) *Downloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Downloader{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Download fetches url and replaces dest with the response body. The body is
// written to a temporary file first so a failed transfer never leaves a
// truncated workbook behind.
func (d *Downloader) Download(ctx context.Context, url, dest string) (int64, error) {
	start := time.Now()

	d.logger.InfoContext(ctx, "downloading workbook",
		"url", url,
		"dest", dest,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return 0, fmt.Errorf("create download directory: %w", err)
	}

	tmp := dest + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}

	n, err := io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("write %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("replace %s: %w", dest, err)
	}

	d.logger.InfoContext(ctx, "workbook downloaded",
		"bytes", n,
		"elapsed", time.Since(start).String(),
	)

	return n, nil
}
