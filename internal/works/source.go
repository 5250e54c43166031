package works

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ehsanpg/mazzehabi/pkg/storage"
)

// maxDocumentSize bounds a fetched works document.
const maxDocumentSize = 4 << 20

// Source fetches the raw works document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// FSSource reads a file from a filesystem, typically the embedded default.
type FSSource struct {
	FS   fs.FS
	Path string
}

func (s FSSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(s.FS, s.Path)
}

func (s FSSource) String() string { return "fs:" + s.Path }

// HTTPSource GETs the document. Any non-2xx status is an error.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: unexpected status %d", s.URL, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("GET %s: document exceeds %d bytes", s.URL, maxDocumentSize)
	}
	return data, nil
}

func (s HTTPSource) String() string { return s.URL }

// S3Source reads an object through a storage.Reader.
type S3Source struct {
	Store  storage.Reader
	Bucket string
	Key    string
}

func (s S3Source) Fetch(ctx context.Context) ([]byte, error) {
	return s.Store.Get(ctx, s.Key)
}

func (s S3Source) String() string { return "s3://" + s.Bucket + "/" + s.Key }

// SourceOptions supplies what NewSource may need for a given scheme.
type SourceOptions struct {
	// Embedded backs "embed:" URIs.
	Embedded fs.FS
	// HTTPTimeout applies to http(s) sources; zero means 10s.
	HTTPTimeout time.Duration
	// S3 opens a reader for the named bucket of an s3:// URI.
	S3 func(bucket string) (storage.Reader, error)
}

// NewSource picks a Source by URI scheme:
//
//	embed:works.json            file in opts.Embedded
//	file:///srv/site/works.json file on disk
//	https://cdn.example/works.json
//	s3://bucket/path/works.json
func NewSource(uri string, opts SourceOptions) (Source, error) {
	if name, ok := strings.CutPrefix(uri, "embed:"); ok {
		if opts.Embedded == nil {
			return nil, fmt.Errorf("%w: %s: no embedded filesystem", ErrUnsupportedSource, uri)
		}
		return FSSource{FS: opts.Embedded, Path: name}, nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedSource, err)
	}

	switch u.Scheme {
	case "file":
		dir, name := splitPath(u.Path)
		return FSSource{FS: os.DirFS(dir), Path: name}, nil
	case "http", "https":
		timeout := opts.HTTPTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		return HTTPSource{URL: uri, Client: &http.Client{Timeout: timeout}}, nil
	case "s3":
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return nil, fmt.Errorf("%w: %s: want s3://bucket/key", ErrUnsupportedSource, uri)
		}
		if opts.S3 == nil {
			return nil, fmt.Errorf("%w: %s: s3 is not configured", ErrUnsupportedSource, uri)
		}
		store, err := opts.S3(u.Host)
		if err != nil {
			return nil, err
		}
		return S3Source{Store: store, Bucket: u.Host, Key: key}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, uri)
}

func splitPath(p string) (dir, name string) {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return ".", p
	}
	if i == 0 {
		return "/", p[1:]
	}
	return p[:i], p[i+1:]
}
