// Package resources serves a file tree to tether windows by intercepting
// their network requests.
package resources

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/crgimenes/tether"
	"go.uber.org/zap"
)

const (
	// DefaultHost is the host name pages use to reach the resources.
	DefaultHost = "bridge-host"

	// Prefix is the URL path the resource tree is mounted at.
	Prefix = "/resources/"
)

//go:embed static
var static embed.FS

// Embedded returns the resources built into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Request is the part of a tether.NetRequest the interceptor needs.
type Request interface {
	URI() string
	Respond(res tether.NetResponse) error
}

// Interceptor answers requests for http://<Host>/resources/<name> from a
// file tree and leaves every other request alone.
type Interceptor struct {
	host string
	fsys fs.FS
	log  *zap.Logger
}

// New returns an interceptor serving fsys under host.
func New(host string, fsys fs.FS, log *zap.Logger) *Interceptor {
	if host == "" {
		host = DefaultHost
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Interceptor{
		host: host,
		fsys: fsys,
		log:  log.With(zap.String("component", "resources")),
	}
}

// URL returns the address of the named resource.
func (i *Interceptor) URL(name string) string {
	u := url.URL{Scheme: "http", Host: i.host, Path: Prefix + strings.TrimPrefix(name, "/")}
	return u.String()
}

// HandleRequest implements the request half of tether.Handler.
func (i *Interceptor) HandleRequest(req *tether.NetRequest) error {
	return i.Serve(req)
}

// Serve responds to req when it addresses the resource host.
func (i *Interceptor) Serve(req Request) error {
	res, ok, err := i.Lookup(req.URI())
	if err != nil || !ok {
		return err
	}
	return req.Respond(res)
}

// Lookup resolves uri. ok is false when uri does not address the resource
// host; the request should then go to the network untouched. Missing
// resources yield a 404 response with the body "not found".
func (i *Interceptor) Lookup(uri string) (res tether.NetResponse, ok bool, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return tether.NetResponse{}, false, fmt.Errorf("resources: parse %q: %w", uri, err)
	}
	if u.Host != i.host {
		return tether.NetResponse{}, false, nil
	}

	name, found := strings.CutPrefix(u.Path, Prefix)
	if !found {
		i.log.Debug("outside resource prefix", zap.String("uri", uri))
		return notFound(), true, nil
	}

	content, err := i.read(name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		i.log.Debug("resource not found", zap.String("uri", uri))
		return notFound(), true, nil
	case err != nil:
		return tether.NetResponse{}, false, fmt.Errorf("resources: read %q: %w", name, err)
	}

	i.log.Debug("serving resource", zap.String("uri", uri), zap.Int("bytes", len(content)))
	return tether.NetResponse{StatusCode: http.StatusOK, Content: content}, true, nil
}

// read returns the named file; directories resolve to their index.html.
func (i *Interceptor) read(name string) ([]byte, error) {
	name = strings.TrimSuffix(name, "/")
	if name == "" {
		name = "."
	}
	if !fs.ValidPath(name) {
		return nil, fs.ErrNotExist
	}

	info, err := fs.Stat(i.fsys, name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		name = path.Join(name, "index.html")
	}
	return fs.ReadFile(i.fsys, name)
}

func notFound() tether.NetResponse {
	return tether.NetResponse{StatusCode: http.StatusNotFound, Content: []byte("not found")}
}
