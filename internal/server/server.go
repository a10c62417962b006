// Package server serves the flip-board page and a small JSON API over the
// transport codec and the display sanitizer. It keeps no state.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dedene/flipboard-cli/internal/api"
	"github.com/dedene/flipboard-cli/internal/codec"
	"github.com/dedene/flipboard-cli/internal/message"
	"github.com/dedene/flipboard-cli/internal/outfmt"
	"github.com/dedene/flipboard-cli/internal/sanitize"
	"github.com/dedene/flipboard-cli/internal/share"
)

// DefaultAddr is where Serve listens when Options.Addr is empty.
const DefaultAddr = "localhost:8080"

// maxBodyBytes bounds API and form bodies.
const maxBodyBytes = 64 << 10

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	// Addr is the listen address. Defaults to DefaultAddr.
	Addr string
	// Origin is used for share links. Empty means http:// plus the listen
	// address, with "localhost" for an unspecified host. The request Host
	// header is never used.
	Origin string
}

// Server holds the HTTP handler.
type Server struct {
	addr    string
	handler http.Handler

	mu     sync.RWMutex
	origin string
	fixed  bool // origin came from Options
}

// New validates opts and builds the routes.
func New(opts Options) (*Server, error) {
	s := &Server{addr: opts.Addr}
	if s.addr == "" {
		s.addr = DefaultAddr
	}

	if opts.Origin != "" {
		origin, err := share.NormalizeOrigin(opts.Origin)
		if err != nil {
			return nil, err
		}

		s.origin = origin
		s.fixed = true
	} else {
		s.origin = originFromAddr(s.addr)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /compose", s.handleCompose)
	mux.HandleFunc("GET "+api.PathHealth, s.handleHealth)
	mux.HandleFunc("POST "+api.PathEncode, s.handleResult(encodeInput))
	mux.HandleFunc("POST "+api.PathDecode, s.handleResult(codec.Decode))
	mux.HandleFunc("POST "+api.PathSanitize, s.handleResult(sanitize.Sanitize))
	mux.HandleFunc("POST "+api.PathShare, s.handleShare)

	s.handler = withLogging(withSecurityHeaders(mux))

	return s, nil
}

// Handler returns the root handler, middleware included.
func (s *Server) Handler() http.Handler { return s.handler }

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.addr }

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig

	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}

	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	if !s.fixed {
		s.mu.Lock()
		s.origin = originFromAddr(ln.Addr().String())
		s.mu.Unlock()
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.Serve(ln)
	}()

	slog.Info("serving", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	return nil
}

// originFor returns the origin share links point at.
func (s *Server) originFor() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.origin
}

// originFromAddr turns a listen address into an http origin.
func originFromAddr(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return share.DefaultOrigin
	}

	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}

	return "http://" + net.JoinHostPort(host, port)
}

// handlePage renders the board for ?m=, or the composer when there is
// nothing displayable.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	data := composerData("")

	if r.URL.Query().Has(share.Param) {
		if safe, ok := share.Receive(share.TokenFromURL("?"+r.URL.RawQuery)); ok {
			data = boardData(safe)
		}
	}

	s.render(w, http.StatusOK, data)
}

// handleCompose builds a share link from the posted form.
func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	draft := r.PostForm.Get("text")
	data := composerData(draft)

	link, err := share.BuildURL(s.originFor(), draft)
	switch {
	case errors.Is(err, share.ErrBlankMessage):
		data.Hint = "Type a message first."
		s.render(w, http.StatusUnprocessableEntity, data)

		return
	case err != nil:
		slog.Error("building share link", "error", err)
		http.Error(w, "cannot build share link", http.StatusInternalServerError)

		return
	}

	data.ShareURL = link
	s.render(w, http.StatusOK, data)
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := pageTemplate.Execute(w, data); err != nil {
		slog.Error("rendering page", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}

// encodeInput encodes Text input; anything else encodes to "".
func encodeInput(in message.Input) string {
	text, ok := in.Value()
	if !ok {
		return ""
	}

	return codec.Encode(text)
}

// handleResult serves one of the pure text endpoints. A non-string "text"
// is not an error: it is Invalid input and yields the empty result.
func (s *Server) handleResult(fn func(message.Input) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := readInput(w, r)
		if !ok {
			return
		}

		writeJSON(w, http.StatusOK, api.ResultResponse{Result: fn(in)})
	}
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	in, ok := readInput(w, r)
	if !ok {
		return
	}

	text, _ := in.Value()

	link, err := share.BuildURL(s.originFor(), text)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, share.ErrBlankMessage) {
			status = http.StatusUnprocessableEntity
		}

		writeJSON(w, status, api.ErrorResponse{Error: err.Error()})

		return
	}

	writeJSON(w, http.StatusOK, api.ShareResponse{URL: link, Token: codec.Encode(text)})
}

// readInput decodes {"text": ...}. It answers 400 itself when the body is
// not a JSON object.
func readInput(w http.ResponseWriter, r *http.Request) (message.Input, bool) {
	var req api.TextRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		status := http.StatusBadRequest

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}

		writeJSON(w, status, api.ErrorResponse{Error: "request body must be a JSON object: " + err.Error()})

		return message.Invalid, false
	}

	return message.FromJSON(req.Text), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := outfmt.WriteJSON(w, v); err != nil {
		slog.Debug("writing response", "error", err)
	}
}
