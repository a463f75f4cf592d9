package main

import (
	"html"
	"strings"
	"syscall/js"
)

// logDiv appends log lines to an HTML element.
type logDiv js.Value

func (d logDiv) Write(b []byte) (int, error) {
	v := js.Value(d)
	if v.IsNull() || v.IsUndefined() {
		return len(b), nil
	}
	line := html.EscapeString(strings.TrimRight(string(b), "\n"))
	v.Call("insertAdjacentHTML", "beforeend", line+"<br/>")
	return len(b), nil
}
