package dto

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	ResourceArtists = "artists"
	ResourceAlbums  = "albums"
	ResourceSongs   = "songs"
)

// Linker builds absolute hyperlinks to catalog resources for the host the
// request was addressed to.
type Linker struct {
	base string
}

func NewLinker(r *http.Request) Linker {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return Linker{base: scheme + "://" + r.Host}
}

// LinkerFor builds links under base, e.g. "http://localhost:8080".
func LinkerFor(base string) Linker {
	return Linker{base: strings.TrimRight(base, "/")}
}

func (l Linker) Collection(resource string) string {
	return fmt.Sprintf("%s/%s/", l.base, resource)
}

func (l Linker) Item(resource string, id uint) string {
	return fmt.Sprintf("%s/%s/%d/", l.base, resource, id)
}

// ParseLink extracts the id from a hyperlink such as
// "http://host/albums/3/" or "/albums/3". Only the path is inspected.
func ParseLink(link, resource string) (uint, error) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return 0, fmt.Errorf("invalid hyperlink %q", link)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[len(parts)-2] != resource {
		return 0, fmt.Errorf("hyperlink %q does not point to %s", link, resource)
	}
	id, err := strconv.ParseUint(parts[len(parts)-1], 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("hyperlink %q has an invalid id", link)
	}
	return uint(id), nil
}

var ErrInvalidID = errors.New("invalid id")

// ParseID parses a path id parameter.
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return uint(id), nil
}
