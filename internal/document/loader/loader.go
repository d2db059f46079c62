package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-xmlform/pkg/document"
)

// Loader implements document.Loader by delegating to file, fs.FS, HTTP, or
// inline strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
	maxBytes  int64
}

var _ document.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options document.LoaderOptions) document.Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
		maxBytes:  options.MaxBytes,
	}
}

// Load fetches a document from the provided source and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src document.Source) (document.Document, error) {
	if src == nil {
		return document.Document{}, errors.New("document loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case document.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case document.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case document.SourceKindURL:
		if !l.allowHTTP {
			return document.Document{}, errors.New("document loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	case document.SourceKindInline:
		data, err = loadInline(ctx, src)
	default:
		err = errors.New("document loader: unsupported source kind")
	}
	if err != nil {
		return document.Document{}, err
	}

	if l.maxBytes > 0 && int64(len(data)) > l.maxBytes {
		return document.Document{}, fmt.Errorf("document loader: %s exceeds %d bytes", src.Location(), l.maxBytes)
	}

	return document.NewDocument(src, data)
}
