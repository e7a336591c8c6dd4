package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jusunglee/easyrider-go/internal/models"
)

// Stdin is the source name that reads the batch from standard input
const Stdin = "-"

// Loader reads timetable batches from files, standard input or HTTP(S) URLs
type Loader struct {
	httpClient *http.Client
	stdin      io.Reader
	maxBytes   int64
}

// NewLoader creates a loader. maxBytes caps the size of a batch, 0 means no limit.
func NewLoader(timeout time.Duration, maxBytes int64) *Loader {
	return &Loader{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		stdin:    os.Stdin,
		maxBytes: maxBytes,
	}
}

// Load reads and decodes the batch named by source
func (l *Loader) Load(ctx context.Context, source string) ([]models.RawRecord, error) {
	r, err := l.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var body io.Reader = r
	if l.maxBytes > 0 {
		body = io.LimitReader(r, l.maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	if l.maxBytes > 0 && int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("batch %s exceeds %d bytes", source, l.maxBytes)
	}

	batch, err := models.DecodeBatch(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}
	return batch, nil
}

func (l *Loader) open(ctx context.Context, source string) (io.ReadCloser, error) {
	switch {
	case source == "" || source == Stdin:
		return io.NopCloser(l.stdin), nil
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return l.fetch(ctx, source)
	default:
		return os.Open(source)
	}
}

func (l *Loader) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// SetStdin replaces the reader used for the Stdin source
func (l *Loader) SetStdin(r io.Reader) {
	l.stdin = r
}
