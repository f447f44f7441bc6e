package main

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Rok93/jwp-dashboard-http/directory"
)

// Router picks the handler for a method and path. Paths with no dynamic
// route, or a route that does not accept the method, go to the static
// handler. Routes are registered at startup and never change afterwards.
type Router struct {
	mux      *mux.Router
	handlers map[string]Handler
	static   Handler
}

func NewRouter(static Handler) *Router {
	return &Router{
		mux:      mux.NewRouter(),
		handlers: make(map[string]Handler),
		static:   static,
	}
}

// Handle binds an exact path and a set of methods to h.
func (r *Router) Handle(path string, h Handler, methods ...string) {
	name := strconv.Itoa(len(r.handlers))
	r.handlers[name] = h
	r.mux.Path(path).Methods(methods...).Name(name)
}

func (r *Router) Route(method, path string) Handler {
	req := &http.Request{Method: method, URL: &url.URL{Path: path}}
	var match mux.RouteMatch
	if !r.mux.Match(req, &match) {
		return r.static
	}
	return r.handlers[match.Route.GetName()]
}

func NewAppRouter(pages ResourceLoader, users directory.Directory, origin string) *Router {
	r := NewRouter(NewStaticHandler(pages))
	r.Handle("/login", NewLoginHandler(pages, users, origin), MethodGet, MethodPost)
	r.Handle("/register", NewRegisterHandler(pages, users, origin), MethodGet, MethodPost)
	return r
}
