package main

import (
	"bufio"
	"fmt"
	"io"
	"unicode"
)

func capitalizeHeader(h string) string {
	ret := make([]rune, 0, len(h))
	cap := true
	for _, r := range h {
		if cap && unicode.IsLetter(r) {
			r = unicode.ToUpper(r)
			cap = false
		}
		ret = append(ret, r)
		if r == '-' {
			cap = true
		}
	}
	return string(ret)
}

// WriteResponse serializes res. Status and header lines end with " \r\n";
// clients of this server expect the trailing space.
func WriteResponse(w io.Writer, res *Response) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s %d %s \r\n", res.Version, res.Status, res.Phrase)
	for _, h := range res.Headers {
		fmt.Fprintf(bw, "%s: %s \r\n", capitalizeHeader(h.Name), h.Value)
	}
	bw.WriteString("\r\n")
	bw.Write(res.Body)
	return bw.Flush()
}
