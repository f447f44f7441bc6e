package main

import (
	"context"
	"testing"
)

func namedHandler(name string) Handler {
	return HandlerFunc(func(context.Context, *Request) (*Response, error) {
		return OK([]byte(name)), nil
	})
}

func routeName(t *testing.T, r *Router, method, path string) string {
	t.Helper()
	res, err := r.Route(method, path).Handle(context.Background(), NewRequest(method, path, "HTTP/1.1", nil))
	if err != nil {
		t.Fatal(err)
	}
	return string(res.Body)
}

func TestRouter(t *testing.T) {
	r := NewRouter(namedHandler("static"))
	r.Handle("/login", namedHandler("login"), MethodGet, MethodPost)
	r.Handle("/register", namedHandler("register"), MethodGet, MethodPost)

	cases := []struct {
		method, path, expect string
	}{
		{MethodGet, "/login", "login"},
		{MethodPost, "/login", "login"},
		{MethodGet, "/register", "register"},
		{MethodPost, "/register", "register"},
		{MethodGet, "/index.html", "static"},
		{MethodGet, "/", "static"},
		{MethodGet, "/login.html", "static"},
		{MethodGet, "/login/", "static"},
		{MethodGet, "/loginx", "static"},
		{"PUT", "/login", "static"},
		{"DELETE", "/index.html", "static"},
	}
	for _, c := range cases {
		ExpectEqual(t, c.expect, routeName(t, r, c.method, c.path))
	}
}

func TestAppRouter(t *testing.T) {
	r := NewAppRouter(NewFSLoader(testPages), newTestUsers(), testOrigin)
	if _, ok := r.Route(MethodGet, "/login").(*LoginHandler); !ok {
		t.Error("GET /login is not routed to the login handler")
	}
	if _, ok := r.Route(MethodPost, "/register").(*RegisterHandler); !ok {
		t.Error("POST /register is not routed to the register handler")
	}
	if _, ok := r.Route(MethodGet, "/index.html").(*StaticHandler); !ok {
		t.Error("GET /index.html is not routed to the static handler")
	}
}
