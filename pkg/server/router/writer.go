package router

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
)

// statusWriter implements ResponseWriter on top of a plain http.ResponseWriter.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

// WrapResponseWriter wraps w so the response status can be read back after
// the handler ran. Adapters share this instead of each tracking status
// themselves.
func WrapResponseWriter(w http.ResponseWriter) ResponseWriter {
	if sw, ok := w.(ResponseWriter); ok {
		return sw
	}
	return &statusWriter{ResponseWriter: w}
}

func (w *statusWriter) WriteHeader(code int) {
	if w.written {
		return
	}
	w.status = code
	w.written = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Status returns the written status code, defaulting to 200 when the
// handler wrote a body without an explicit header.
func (w *statusWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func (w *statusWriter) Written() bool {
	return w.written
}

func (w *statusWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hijacker.Hijack()
}
