package main

import (
	"bytes"
	"strconv"
	"testing"
)

func TestWriteResponseOK(t *testing.T) {
	body := []byte("<h1>안녕</h1>")
	w := new(bytes.Buffer)
	if err := WriteResponse(w, OK(body)); err != nil {
		t.Fatal(err)
	}
	expect := "HTTP/1.1 200 OK \r\n" +
		"Content-Type: text/html;charset=utf-8 \r\n" +
		"Content-Length: " + strconv.Itoa(len(body)) + " \r\n" +
		"\r\n" +
		string(body)
	ExpectEqual(t, expect, w.String())
}

func TestWriteResponseFound(t *testing.T) {
	w := new(bytes.Buffer)
	if err := WriteResponse(w, Found("http://localhost:8080/index.html")); err != nil {
		t.Fatal(err)
	}
	expect := "HTTP/1.1 302 FOUND \r\nLocation: http://localhost:8080/index.html \r\n\r\n"
	ExpectEqual(t, expect, w.String())
}

func TestWriteResponseHeaderOrder(t *testing.T) {
	res := NewResponse(StatusOK)
	res.Headers = HeaderList{{"x-b", "2"}, {"x-a", "1"}, {"content-length", "0"}}
	w := new(bytes.Buffer)
	WriteResponse(w, res)
	expect := "HTTP/1.1 200 OK \r\nX-B: 2 \r\nX-A: 1 \r\nContent-Length: 0 \r\n\r\n"
	ExpectEqual(t, expect, w.String())
}

func TestResponseRoundTrip(t *testing.T) {
	for status, phrase := range statusPhrase {
		w := new(bytes.Buffer)
		WriteResponse(w, NewResponse(status))
		res, err := ReadResponse(w)
		if err != nil {
			t.Fatalf("%d: %v", status, err)
		}
		ExpectEqual(t, strconv.Itoa(status), strconv.Itoa(res.Status))
		ExpectEqual(t, phrase, res.Phrase)
		ExpectEqual(t, "HTTP/1.1", res.Version)
	}

	w := new(bytes.Buffer)
	WriteResponse(w, Found("http://localhost:8080/401.html"))
	res, err := ReadResponse(w)
	if err != nil {
		t.Fatal(err)
	}
	loc, ok := res.Headers.Get("Location")
	if !ok || len(res.Headers) != 1 {
		t.Errorf("got headers %v", res.Headers)
	}
	ExpectEqual(t, "http://localhost:8080/401.html", loc)
}

func TestCapitalizeHeader(t *testing.T) {
	ExpectEqual(t, "Content-Type", capitalizeHeader("content-type"))
	ExpectEqual(t, "Location", capitalizeHeader("Location"))
	ExpectEqual(t, "X-1A", capitalizeHeader("x-1a"))
}
