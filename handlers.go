package main

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/Rok93/jwp-dashboard-http/directory"
)

const (
	loginPage           = "login.html"
	registerPage        = "register.html"
	loginSuccessPage    = "index.html"
	loginFailurePage    = "401.html"
	registerSuccessPage = "index.html"
)

// Handler turns one request into one response.
type Handler interface {
	Handle(ctx context.Context, req *Request) (*Response, error)
}

type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)

func (f HandlerFunc) Handle(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

func redirectTo(origin, page string) string {
	return strings.TrimSuffix(origin, "/") + "/" + page
}

// StaticHandler serves the page named by the request path.
type StaticHandler struct {
	pages ResourceLoader
}

func NewStaticHandler(pages ResourceLoader) *StaticHandler {
	return &StaticHandler{pages}
}

func (h *StaticHandler) Handle(_ context.Context, req *Request) (*Response, error) {
	body, err := h.pages.Load(req.Path())
	if err != nil {
		return nil, err
	}
	return OK(body), nil
}

func servePage(pages ResourceLoader, page string) (*Response, error) {
	body, err := pages.Load(page)
	if err != nil {
		return nil, err
	}
	return OK(body), nil
}

// LoginHandler checks account and password and redirects to the index page
// or to the 401 page. It does not tell an unknown account from a wrong
// password, and issues no session.
type LoginHandler struct {
	pages  ResourceLoader
	users  directory.Directory
	origin string
}

func NewLoginHandler(pages ResourceLoader, users directory.Directory, origin string) *LoginHandler {
	return &LoginHandler{pages, users, origin}
}

func (h *LoginHandler) Handle(ctx context.Context, req *Request) (*Response, error) {
	if !req.HasParams() {
		return servePage(h.pages, loginPage)
	}

	account := req.Param("account")
	password := req.Param("password")
	user, err := h.users.FindByAccount(ctx, account)
	if errors.Is(err, directory.ErrUserNotFound) {
		return Found(redirectTo(h.origin, loginFailurePage)), nil
	}
	if err != nil {
		return nil, err
	}
	if !user.CheckPassword(password) {
		return Found(redirectTo(h.origin, loginFailurePage)), nil
	}
	return Found(redirectTo(h.origin, loginSuccessPage)), nil
}

// RegisterHandler saves a new account. A taken account is returned to the
// caller as directory.ErrAlreadyRegistered, not turned into a response.
type RegisterHandler struct {
	pages  ResourceLoader
	users  directory.Directory
	origin string
}

func NewRegisterHandler(pages ResourceLoader, users directory.Directory, origin string) *RegisterHandler {
	return &RegisterHandler{pages, users, origin}
}

func (h *RegisterHandler) Handle(ctx context.Context, req *Request) (*Response, error) {
	if !req.HasParams() {
		return servePage(h.pages, registerPage)
	}

	user := directory.User{
		Account:  req.Param("account"),
		Password: req.Param("password"),
		Email:    req.Param("email"),
	}
	if err := h.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return Found(redirectTo(h.origin, registerSuccessPage)), nil
}
