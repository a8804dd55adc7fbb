package fetch

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/srcstash/srcstash/pkg/fsutil"
)

// Download fetches the URL and streams the body into dest, creating the file
// with default permissions. The retry policy of Get applies; a failed write
// removes the partial file.
func (c *Client) Download(ctx context.Context, url, dest string) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	out, err := fsutil.CreateFilePerm(dest, fsutil.FileModeDefault)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return out.Close()
}
