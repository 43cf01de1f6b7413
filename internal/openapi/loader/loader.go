package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formlist/internal/logging"
	pkgopenapi "github.com/goliatone/go-formlist/pkg/openapi"
)

var (
	// ErrHTTPDisabled is returned for URL sources when no client is configured.
	ErrHTTPDisabled = errors.New("openapi loader: http support disabled")
	// ErrNoFileSystem is returned for fs sources when no fs.FS is configured.
	ErrNoFileSystem = errors.New("openapi loader: filesystem is not configured")
	// ErrTooLarge is returned when a document exceeds the configured size.
	ErrTooLarge = errors.New("openapi loader: document too large")
)

// Loader implements pkgopenapi.Loader over files, an fs.FS and HTTP.
type Loader struct {
	files   fs.FS
	client  *http.Client
	timeout time.Duration
	limit   int64
	logger  *zap.Logger
}

var _ pkgopenapi.Loader = (*Loader)(nil)

// New constructs a Loader from resolved options. A supplied client is copied
// so the request timeout does not leak into the caller's client.
func New(options pkgopenapi.LoaderOptions) *Loader {
	l := &Loader{
		files:   options.FileSystem,
		timeout: options.RequestTimeout,
		limit:   options.MaxDocumentBytes,
		logger:  logging.Named("openapi"),
	}
	if l.limit <= 0 {
		l.limit = pkgopenapi.DefaultMaxDocumentBytes
	}
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if l.timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = l.timeout
		}
		l.client = &clone
	case options.AllowHTTPFallback:
		l.client = &http.Client{Timeout: l.timeout}
	}
	return l
}

// Load reads the document src points at.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src == nil {
		return pkgopenapi.Document{}, errors.New("openapi loader: source is nil")
	}
	location := src.Location()
	if location == "" {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: %s source has no location", src.Kind())
	}
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Document{}, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case pkgopenapi.SourceKindFile:
		data, err = l.readFile(location)
	case pkgopenapi.SourceKindFS:
		data, err = l.readFS(location)
	case pkgopenapi.SourceKindURL:
		data, err = l.fetch(ctx, location)
	default:
		err = fmt.Errorf("openapi loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return pkgopenapi.Document{}, err
	}

	l.logger.Debug("openapi loader: loaded document",
		zap.String("kind", string(src.Kind())),
		zap.String("location", location),
		zap.Int("bytes", len(data)),
	)
	return pkgopenapi.NewDocument(src, data)
}

func (l *Loader) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: %w", err)
	}
	defer f.Close()
	return l.readAll(f)
}

func (l *Loader) readFS(name string) ([]byte, error) {
	if l.files == nil {
		return nil, ErrNoFileSystem
	}
	f, err := l.files.Open(name)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: %w", err)
	}
	defer f.Close()
	return l.readAll(f)
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	if l.client == nil {
		return nil, ErrHTTPDisabled
	}
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openapi loader: GET %s: unexpected status %s", url, resp.Status)
	}
	return l.readAll(resp.Body)
}

// readAll reads r up to the configured limit.
func (l *Loader) readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.limit+1))
	if err != nil {
		return nil, fmt.Errorf("openapi loader: %w", err)
	}
	if int64(len(data)) > l.limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, l.limit)
	}
	return data, nil
}
