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

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/schollz/progressbar/v3"

	"github.com/dostools/fdget/pkg/domain/model"
	"github.com/dostools/fdget/pkg/domain/types"
	"github.com/dostools/fdget/pkg/utils/fsutil"
)

// chunkSize is the fixed transfer chunk for streamed downloads.
const chunkSize = 1024

// Client downloads remote resources over HTTP(S).
type Client struct {
	http     *http.Client
	progress bool
}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for downloads.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithProgress toggles the transfer progress bar on stderr.
func WithProgress(enabled bool) Option {
	return func(c *Client) {
		c.progress = enabled
	}
}

// New creates a download client.
func New(opts ...Option) *Client {
	c := &Client{
		http:     http.DefaultClient,
		progress: true,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fetch retrieves res into destDir and returns the resulting artifact. A
// file already present under the resource's decoded filename is reused
// as-is; the caller decides whether to re-verify it.
func (c *Client) Fetch(ctx context.Context, res *model.Resource, destDir string) (*model.Artifact, error) {
	logger := ctxlog.From(ctx)

	local := filepath.Join(destDir, res.Filename)
	if fsutil.Exists(local) {
		logger.Info("File already present, skipping download",
			slog.String("file", res.Filename),
		)
		return &model.Artifact{Path: local, Source: res, Reused: true}, nil
	}

	logger.Debug("Fetching resource", slog.Any("url", res.URL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, res.String(), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create download request",
			goerr.V("url", res.String()))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to download resource",
			goerr.V("url", res.String()))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, goerr.New("resource not found",
			goerr.V("url", res.String()),
			goerr.T(types.ErrTagNotFound))
	case resp.StatusCode != http.StatusOK:
		return nil, goerr.New("unexpected response status",
			goerr.V("url", res.String()),
			goerr.V("status", resp.StatusCode))
	}

	f, err := os.Create(local)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create local file", goerr.V("path", local))
	}
	defer f.Close()

	if resp.ContentLength > 0 {
		// Known length: stream in fixed-size chunks with progress.
		if err := c.stream(f, resp.Body, resp.ContentLength, res.Filename); err != nil {
			return nil, goerr.Wrap(err, "failed to stream resource",
				goerr.V("url", res.String()), goerr.V("path", local))
		}
	} else {
		// Unknown length: single bulk read-and-write.
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read resource",
				goerr.V("url", res.String()))
		}
		if _, err := f.Write(data); err != nil {
			return nil, goerr.Wrap(err, "failed to write local file", goerr.V("path", local))
		}
	}

	logger.Info("Downloaded resource",
		slog.String("file", res.Filename),
		slog.Int64("size_bytes", resp.ContentLength),
	)

	return &model.Artifact{Path: local, Source: res}, nil
}

// stream copies body to f in chunkSize pieces, rendering a byte progress bar
// when enabled.
func (c *Client) stream(f *os.File, body io.Reader, total int64, name string) error {
	var w io.Writer = f
	if c.progress {
		bar := progressbar.NewOptions64(
			total,
			progressbar.OptionSetDescription(name),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowBytes(true),
			progressbar.OptionThrottle(200*time.Millisecond),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		)
		w = io.MultiWriter(f, bar)
	}

	_, err := io.CopyBuffer(w, body, make([]byte, chunkSize))
	return err
}
