package main

import "strconv"

// Methods the router knows about. Anything else is passed through as-is.
const (
	MethodGet  = "GET"
	MethodPost = "POST"
)

const (
	StatusOK                  = 200
	StatusFound               = 302
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusNotFound            = 404
	StatusInternalServerError = 500
)

var statusPhrase = map[int]string{
	StatusOK:                  "OK",
	StatusFound:               "FOUND",
	StatusBadRequest:          "BAD REQUEST",
	StatusUnauthorized:        "UNAUTHORIZED",
	StatusNotFound:            "NOT FOUND",
	StatusInternalServerError: "INTERNAL SERVER ERROR",
}

const (
	defaultVersion  = "HTTP/1.1"
	htmlContentType = "text/html;charset=utf-8"
	formContentType = "application/x-www-form-urlencoded"
)

// Not map[string][]string, unlike http.Header. Keys are lower-cased by the reader.
type HTTPHeader map[string]string

// Params holds query string or form body parameters, undecoded.
type Params map[string]string

// Request is a parsed request. It is never modified after ReadRequest returns it.
type Request struct {
	method  string
	path    string
	version string
	params  Params

	// set when a non-empty query string or form body was sent
	hasParams bool
}

func NewRequest(method, path, version string, params Params) *Request {
	cp := make(Params, len(params))
	for k, v := range params {
		cp[k] = v
	}
	return &Request{method, path, version, cp, len(cp) > 0}
}

func (r *Request) Method() string  { return r.method }
func (r *Request) Path() string    { return r.path }
func (r *Request) Version() string { return r.version }

// Param returns the value for key, or "" when it is absent.
func (r *Request) Param(key string) string {
	return r.params[key]
}

// HasParams reports whether the request carried a query string or form
// body, even one that yields no key.
func (r *Request) HasParams() bool {
	return r.hasParams
}

func (r *Request) Params() Params {
	cp := make(Params, len(r.params))
	for k, v := range r.params {
		cp[k] = v
	}
	return cp
}

// HeaderField is a single response header line.
type HeaderField struct {
	Name  string
	Value string
}

// HeaderList keeps headers in the order they are written on the wire.
type HeaderList []HeaderField

func (h HeaderList) Get(name string) (string, bool) {
	for _, f := range h {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

type Response struct {
	Version string
	Status  int
	Phrase  string
	Headers HeaderList
	Body    []byte
}

func NewResponse(status int) *Response {
	return &Response{
		Version: defaultVersion,
		Status:  status,
		Phrase:  statusPhrase[status],
	}
}

// OK wraps an html page.
func OK(body []byte) *Response {
	res := NewResponse(StatusOK)
	res.Headers = HeaderList{
		{"Content-Type", htmlContentType},
		{"Content-Length", strconv.Itoa(len(body))},
	}
	res.Body = body
	return res
}

// Found redirects to location.
func Found(location string) *Response {
	res := NewResponse(StatusFound)
	res.Headers = HeaderList{{"Location", location}}
	return res
}

var ResponseInternalError = NewResponse(StatusInternalServerError)

var ResponseBadRequest = NewResponse(StatusBadRequest)

var ResponseNotFound = NewResponse(StatusNotFound)
