package router

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// --- ANSI color codes ---
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

type HandlerFunc func(http.ResponseWriter, *http.Request)

// Router is a thin ServeMux wrapper with wildcard path segments ("*") and
// per-request logging.
type Router struct {
	mux    *http.ServeMux
	routes map[string]HandlerFunc // key = METHOD:PATH
	paths  map[string]bool        // registered path patterns
}

func New() *Router {
	r := &Router{
		mux:    http.NewServeMux(),
		routes: make(map[string]HandlerFunc),
		paths:  make(map[string]bool),
	}

	r.mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		r.dispatch(lrw, req)

		duration := time.Since(start)
		log.Printf("%s[%s]%s %s%s%s %s %s%d%s %s(%v)%s",
			colorCyan, start.Format("2006-01-02 15:04:05"), colorReset,
			methodColor(req.Method), req.Method, colorReset,
			req.URL.Path,
			statusColor(lrw.statusCode), lrw.statusCode, colorReset,
			colorBlue, duration, colorReset,
		)
	})

	return r
}

// dispatch finds the handler for a request: exact match first, then
// wildcard patterns, then 404/405.
func (r *Router) dispatch(w http.ResponseWriter, req *http.Request) {
	key := req.Method + ":" + req.URL.Path
	if h, ok := r.routes[key]; ok {
		h(w, req)
		return
	}

	// Most specific wildcard pattern wins, regardless of registration order
	best := ""
	for pattern := range r.paths {
		if !strings.Contains(pattern, "/*") {
			continue
		}
		if !matchWildcard(req.URL.Path, pattern) {
			continue
		}
		if _, ok := r.routes[req.Method+":"+pattern]; !ok {
			continue
		}
		if segments(pattern) > segments(best) {
			best = pattern
		}
	}
	if best != "" {
		r.routes[req.Method+":"+best](w, req)
		return
	}

	if r.paths[req.URL.Path] {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	} else {
		http.Error(w, "Not Found", http.StatusNotFound)
	}
}

func segments(pattern string) int {
	if pattern == "" {
		return 0
	}
	return len(strings.Split(strings.Trim(pattern, "/"), "/"))
}

// matchWildcard checks a request path against a pattern where "*" matches one
// segment, or any number of trailing segments when it is the last segment.
func matchWildcard(requestPath, pattern string) bool {
	reqSegs := strings.Split(strings.Trim(requestPath, "/"), "/")
	patSegs := strings.Split(strings.Trim(pattern, "/"), "/")

	// Trailing wildcard swallows the rest of the path
	if len(patSegs) > 0 && patSegs[len(patSegs)-1] == "*" {
		if len(reqSegs) < len(patSegs)-1 {
			return false
		}
		for i := 0; i < len(patSegs)-1; i++ {
			if patSegs[i] != "*" && reqSegs[i] != patSegs[i] {
				return false
			}
		}
		return true
	}

	if len(reqSegs) != len(patSegs) {
		return false
	}
	for i, seg := range patSegs {
		if seg == "*" {
			continue
		}
		if reqSegs[i] != seg {
			return false
		}
	}
	return true
}

// --- Register paths ---
func (r *Router) register(method, path string, handler HandlerFunc) {
	r.routes[method+":"+path] = handler
	r.paths[path] = true
}

func (r *Router) GET(path string, handler HandlerFunc)   { r.register(http.MethodGet, path, handler) }
func (r *Router) POST(path string, handler HandlerFunc)  { r.register(http.MethodPost, path, handler) }
func (r *Router) PUT(path string, handler HandlerFunc)   { r.register(http.MethodPut, path, handler) }
func (r *Router) PATCH(path string, handler HandlerFunc) { r.register(http.MethodPatch, path, handler) }
func (r *Router) DELETE(path string, handler HandlerFunc) {
	r.register(http.MethodDelete, path, handler)
}

// Handler exposes the underlying mux, mostly for tests
func (r *Router) Handler() http.Handler { return r.mux }

// --- Start server ---
func (r *Router) Start(addr string) {
	log.Printf("🚀 Server started on %shttp://localhost%s%s", colorGreen, addr, colorReset)
	log.Fatal(http.ListenAndServe(addr, r.mux))
}

// --- Logging response writer to capture status codes ---
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// --- Color helpers ---
func statusColor(code int) string {
	switch {
	case code >= 200 && code < 300:
		return colorGreen
	case code >= 300 && code < 400:
		return colorCyan
	case code >= 400 && code < 500:
		return colorYellow
	default:
		return colorRed
	}
}

func methodColor(method string) string {
	switch method {
	case http.MethodGet:
		return colorGreen
	case http.MethodPost:
		return colorBlue
	case http.MethodPut, http.MethodPatch:
		return colorYellow
	case http.MethodDelete:
		return colorRed
	default:
		return colorCyan
	}
}
