// Package navigate hands the player over to pages outside the part-1 client.
package navigate

import (
	"net/url"
	"strings"
	"sync"
)

// Level3Route is where level 3 is played.
const Level3Route = "/game/part2"

// Navigator leaves the current page for route.
type Navigator interface {
	Navigate(route string)
}

// Router records navigations and tells the frontend about them.
type Router struct {
	base string

	mu      sync.Mutex
	history []string
	onLeave func(route, target string)
}

// NewRouter creates a router that resolves routes against base.
func NewRouter(base string) *Router {
	return &Router{base: base}
}

// OnNavigate sets the hook called after each navigation with the route and
// its absolute URL.
func (r *Router) OnNavigate(fn func(route, target string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onLeave = fn
}

func (r *Router) Navigate(route string) {
	r.mu.Lock()
	r.history = append(r.history, route)
	fn := r.onLeave
	r.mu.Unlock()

	if fn != nil {
		fn(route, URL(r.base, route))
	}
}

// Last returns the most recent route, "" before any navigation.
func (r *Router) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) == 0 {
		return ""
	}
	return r.history[len(r.history)-1]
}

// History returns every route navigated to, oldest first.
func (r *Router) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.history...)
}

// URL resolves route on the host of base, dropping base's own path.
func URL(base, route string) string {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return strings.TrimRight(base, "/") + route
	}
	ref, err := url.Parse(route)
	if err != nil {
		return strings.TrimRight(base, "/") + route
	}
	if !strings.HasPrefix(ref.Path, "/") {
		ref.Path = "/" + ref.Path
	}
	return u.ResolveReference(ref).String()
}
