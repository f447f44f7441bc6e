package main

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Form bodies above this size are rejected.
const maxBodySize = 1 << 20

type baseReader struct {
	r *bufio.Reader
}

func newBaseReader(r io.Reader) baseReader {
	if casted, ok := r.(*bufio.Reader); ok {
		return baseReader{casted}
	}
	return baseReader{bufio.NewReader(r)}
}

// similar to readLineSlice() in net/textproto/reader.go
func (r *baseReader) readLine() (string, error) {
	var line []byte
	for {
		l, more, err := r.r.ReadLine()
		if err != nil {
			return "", err
		}
		if line == nil && !more {
			return string(l), nil
		}
		line = append(line, l...)
		if !more {
			break
		}
	}
	return string(line), nil
}

// readHeaders reads up to and including the blank line. A stream that ends
// inside the header block ends the block.
func (r *baseReader) readHeaders() (HTTPHeader, error) {
	headers := make(HTTPHeader)
	for {
		line, err := r.readLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read headers")
		}
		if len(strings.TrimSpace(line)) == 0 {
			break
		}
		fs := strings.SplitN(line, ":", 2)
		if len(fs) != 2 {
			return nil, errors.Wrapf(ErrMalformedRequest, "invalid header %q", line)
		}
		hdr := strings.ToLower(strings.TrimSpace(fs[0]))
		headers[hdr] = strings.TrimSpace(fs[1])
	}
	return headers, nil
}

// RequestReader reads one HTTP/1.1 request: request line, headers and,
// for form posts, the body.
type RequestReader struct {
	baseReader
}

func NewRequestReader(r io.Reader) *RequestReader {
	return &RequestReader{newBaseReader(r)}
}

// ReadRequest is a shorthand for NewRequestReader(r).Read().
func ReadRequest(r io.Reader) (*Request, error) {
	return NewRequestReader(r).Read()
}

func (r *RequestReader) Read() (*Request, error) {
	method, target, version, err := r.readRequestLine()
	if err != nil {
		return nil, err
	}
	headers, err := r.readHeaders()
	if err != nil {
		return nil, err
	}

	path, query := splitTarget(target)
	raw := query
	if method == MethodPost {
		if !isForm(headers) {
			return NewRequest(method, path, version, nil), nil
		}
		body, err := r.readBody(headers)
		if err != nil {
			return nil, err
		}
		raw = body
	}
	// "?&" carries parameters, none of them named
	return &Request{method, path, version, parseParams(raw), raw != ""}, nil
}

func (r *RequestReader) readRequestLine() (method, target, version string, err error) {
	rl, err := r.readLine()
	if err == io.EOF {
		return "", "", "", errors.Wrap(ErrMalformedRequest, "no request line")
	}
	if err != nil {
		return "", "", "", errors.Wrap(err, "failed to read request line")
	}
	// some clients pad the line with a trailing space
	fields := strings.Split(strings.TrimRight(rl, " "), " ")
	if len(fields) != 3 {
		return "", "", "", errors.Wrapf(ErrMalformedRequest, "invalid request line %q", rl)
	}
	for _, f := range fields {
		if f == "" {
			return "", "", "", errors.Wrapf(ErrMalformedRequest, "invalid request line %q", rl)
		}
	}
	return fields[0], fields[1], fields[2], nil
}

// readBody reads Content-Length bytes when the header is present, otherwise
// whatever is already buffered after the header block.
func (r *RequestReader) readBody(h HTTPHeader) (string, error) {
	cl := int64(r.r.Buffered())
	if _, ok := h["content-length"]; ok {
		var err error
		if cl, err = contentLength(h); err != nil {
			return "", errors.Wrap(ErrMalformedRequest, err.Error())
		}
	}
	if cl == 0 {
		return "", nil
	}
	if cl > maxBodySize {
		return "", errors.Wrapf(ErrMalformedRequest, "Content-Length %d too large", cl)
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r.r, cl))
	if err != nil {
		return "", errors.Wrap(err, "failed to read body")
	}
	if n < cl {
		return "", errors.Wrap(io.ErrUnexpectedEOF, "failed to read body")
	}
	return strings.TrimRight(buf.String(), "\r\n"), nil
}

func contentLength(h HTTPHeader) (int64, error) {
	cls, ok := h["content-length"]
	if !ok {
		return 0, errors.New("no Content-Length")
	}
	cl, err := strconv.ParseInt(cls, 10, 64)
	if err != nil || cl < 0 {
		return 0, errors.Errorf("invalid Content-Length %q", cls)
	}
	return cl, nil
}

func isForm(h HTTPHeader) bool {
	return strings.HasPrefix(strings.ToLower(h["content-type"]), formContentType)
}

func splitTarget(target string) (path, query string) {
	if pos := strings.IndexByte(target, '?'); pos >= 0 {
		return target[:pos], target[pos+1:]
	}
	return target, ""
}

// parseParams splits "a=1&b=2". Keys and values are kept as sent, without
// percent-decoding; only the first '=' separates key from value.
func parseParams(s string) Params {
	params := make(Params)
	for _, pair := range strings.Split(s, "&") {
		if pair == "" {
			continue
		}
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) == 2 {
			params[kv[0]] = kv[1]
		} else {
			params[kv[0]] = ""
		}
	}
	return params
}

// ResponseReader reads an HTTP response status line and headers.
type ResponseReader struct {
	baseReader
}

func NewResponseReader(r io.Reader) *ResponseReader {
	return &ResponseReader{newBaseReader(r)}
}

func ReadResponse(r io.Reader) (*Response, error) {
	return NewResponseReader(r).Read()
}

func (r *ResponseReader) Read() (*Response, error) {
	res, err := r.readStatusLine()
	if err != nil {
		return nil, err
	}
	headers, err := r.readHeaderList()
	if err != nil {
		return nil, err
	}
	res.Headers = headers
	return res, nil
}

func parseStatusCode(ss string) (int, error) {
	status, err := strconv.Atoi(ss)
	first := status / 100
	if err != nil || (first < 1 || first > 5) {
		return 0, errors.Errorf("invalid status code: %s", ss)
	}
	return status, nil
}

func (r *ResponseReader) readStatusLine() (*Response, error) {
	sl, err := r.readLine()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read status line")
	}
	// WriteResponse pads the line with one space before CRLF
	fields := strings.Split(strings.TrimSuffix(sl, " "), " ")
	if len(fields) < 3 {
		return nil, errors.Errorf("invalid status line: %s", sl)
	}
	res := &Response{Version: fields[0]}
	res.Status, err = parseStatusCode(fields[1])
	if err != nil {
		return nil, err
	}
	res.Phrase = strings.Join(fields[2:], " ")
	return res, nil
}

// readHeaderList keeps header order and case, unlike readHeaders.
func (r *ResponseReader) readHeaderList() (HeaderList, error) {
	var headers HeaderList
	for {
		line, err := r.readLine()
		if err != nil {
			return nil, errors.Wrap(err, "failed to read headers")
		}
		if len(line) == 0 {
			return headers, nil
		}
		fs := strings.SplitN(line, ":", 2)
		if len(fs) != 2 {
			return nil, errors.Errorf("invalid header format: %s", line)
		}
		headers = append(headers, HeaderField{
			Name:  strings.TrimSpace(fs[0]),
			Value: strings.TrimSpace(fs[1]),
		})
	}
}
