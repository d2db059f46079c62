package document

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string {
	return s.raw
}

func (s urlSource) Kind() SourceKind {
	return SourceKindURL
}

// SourceFromURL parses the supplied URL string and returns a Source. It panics
// if the URL is invalid to surface configuration mistakes early.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("document: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("document: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}

// InlineSource carries its payload with it, covering pasted text and stdin.
type InlineSource struct {
	name string
	raw  []byte
}

func (s InlineSource) Location() string {
	return s.name
}

func (s InlineSource) Kind() SourceKind {
	return SourceKindInline
}

// Bytes returns a copy of the inline payload.
func (s InlineSource) Bytes() []byte {
	return append([]byte(nil), s.raw...)
}

// SourceFromBytes wraps an in-memory payload. The name is informational and
// may carry an extension used as a format hint (for example "pasted.xml").
func SourceFromBytes(name string, raw []byte) Source {
	if name == "" {
		name = "inline"
	}
	return InlineSource{name: name, raw: append([]byte(nil), raw...)}
}

// ParseSource interprets a command line style reference: http(s) URLs become
// URL sources, anything else a file path.
func ParseSource(ref string) (Source, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("document: empty source reference")
	}
	lower := strings.ToLower(ref)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		if _, err := url.ParseRequestURI(ref); err != nil {
			return nil, fmt.Errorf("document: invalid URL %q: %w", ref, err)
		}
		return urlSource{raw: ref}, nil
	}
	return SourceFromFile(ref), nil
}
