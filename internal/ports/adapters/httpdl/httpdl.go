// Package httpdl downloads media files over HTTP with streaming writes.
package httpdl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Stock clips run tens of megabytes; the timeout bounds the whole transfer.
const requestTimeout = 5 * time.Minute

type Downloader struct {
	client *http.Client
}

func New() *Downloader {
	return &Downloader{client: &http.Client{Timeout: requestTimeout}}
}

// Download streams url into dest. A zero-byte result is removed and reported
// as an error so a truncated transfer never reaches the assembly stage.
func (d *Downloader) Download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("download %s: status %d", url, resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	n, copyErr := io.Copy(f, resp.Body)
	closeErr := f.Close()
	if copyErr != nil {
		os.Remove(dest)
		return fmt.Errorf("write %s: %w", dest, copyErr)
	}
	if closeErr != nil {
		os.Remove(dest)
		return fmt.Errorf("close %s: %w", dest, closeErr)
	}
	if n == 0 {
		os.Remove(dest)
		return fmt.Errorf("download %s: empty response body", url)
	}
	return nil
}
