package res

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Resource represents a loaded resource
type Resource struct {
	URL      string
	Data     []byte
	MimeType string
}

// GetReader returns a reader for the resource data
func (r *Resource) GetReader() *bytes.Reader {
	return bytes.NewReader(r.Data)
}

// IsSVG reports whether the resource looks like an SVG image
func (r *Resource) IsSVG() bool {
	return strings.Contains(r.MimeType, "svg") || strings.HasSuffix(strings.ToLower(r.URL), ".svg")
}

// Loader resolves image references found in content blocks. It supports
// data URLs, remote http(s) URLs and local files resolved against a base
// path and any registered search paths. Loaded resources are cached.
type Loader struct {
	// Base file path for resolving relative references
	BaseDir string

	cache     map[string]*Resource
	cacheLock sync.RWMutex

	searchPaths []string

	client *http.Client
}

// NewLoader creates a new resource loader. base may be a file whose directory
// becomes the base for relative lookups, a directory, or empty.
func NewLoader(base string) *Loader {
	dir := base
	if base != "" {
		if info, err := os.Stat(base); err == nil && !info.IsDir() {
			dir = filepath.Dir(base)
		}
	}
	return &Loader{
		BaseDir:     dir,
		cache:       make(map[string]*Resource),
		searchPaths: []string{},
		client:      &http.Client{},
	}
}

// AddSearchPath adds a directory to search for local resources
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// Load loads a resource from a URL, data URL or file path
func (l *Loader) Load(urlStr string) (*Resource, error) {
	if urlStr == "" {
		return nil, fmt.Errorf("empty resource reference")
	}

	l.cacheLock.RLock()
	if res, ok := l.cache[urlStr]; ok {
		l.cacheLock.RUnlock()
		return res, nil
	}
	l.cacheLock.RUnlock()

	var res *Resource
	var err error
	switch {
	case strings.HasPrefix(urlStr, "data:"):
		res, err = parseDataURL(urlStr)
	case strings.HasPrefix(urlStr, "http://"), strings.HasPrefix(urlStr, "https://"):
		res, err = l.loadRemote(urlStr)
	default:
		res, err = l.loadLocal(urlStr)
	}
	if err != nil {
		return nil, err
	}

	l.cacheLock.Lock()
	l.cache[urlStr] = res
	l.cacheLock.Unlock()

	return res, nil
}

// parseDataURL parses a data URL (RFC 2397) and returns a Resource.
// Example: data:image/png;base64,<base64>
func parseDataURL(u string) (*Resource, error) {
	s := strings.TrimPrefix(u, "data:")
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid data URL")
	}
	meta := parts[0]
	dataPart := parts[1]

	mime := "application/octet-stream"
	isBase64 := false
	comps := strings.Split(meta, ";")
	if len(comps) > 0 && comps[0] != "" {
		mime = comps[0]
	}
	for _, c := range comps[1:] {
		if strings.EqualFold(strings.TrimSpace(c), "base64") {
			isBase64 = true
		}
	}

	var data []byte
	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(dataPart)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 data URL: %w", err)
		}
		data = decoded
	} else {
		data = []byte(dataPart)
	}

	return &Resource{URL: u, Data: data, MimeType: mime}, nil
}

// loadRemote loads a resource from a remote URL
func (l *Loader) loadRemote(urlStr string) (*Resource, error) {
	resp, err := l.client.Get(urlStr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Resource{
		URL:      urlStr,
		Data:     data,
		MimeType: resp.Header.Get("Content-Type"),
	}, nil
}

// loadLocal loads a resource from a local file, falling back to search paths
func (l *Loader) loadLocal(path string) (*Resource, error) {
	candidates := []string{path}
	if !filepath.IsAbs(path) {
		if l.BaseDir != "" {
			candidates = append(candidates, filepath.Join(l.BaseDir, path))
		}
		base := filepath.Base(path)
		for _, sp := range l.searchPaths {
			candidates = append(candidates, filepath.Join(sp, path), filepath.Join(sp, base))
		}
	}

	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		return &Resource{
			URL:      candidate,
			Data:     data,
			MimeType: determineMimeType(candidate),
		}, nil
	}

	return nil, fmt.Errorf("resource not found: %s", path)
}

// determineMimeType determines the MIME type of a file
func determineMimeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".tiff", ".tif":
		return "image/tiff"
	case ".bmp":
		return "image/bmp"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
