package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	wizard "github.com/xraph/formwizard"
	"github.com/xraph/formwizard/form"
	"github.com/xraph/formwizard/middleware"
	"github.com/xraph/formwizard/storage"
	"github.com/xraph/formwizard/storage/cookie"
	"github.com/xraph/formwizard/storage/memory"
)

// Wizard is the controller surface Handler drives. Both
// wizard.Controller and wizard.NamedURLController satisfy it.
type Wizard interface {
	HandleGet(ctx context.Context, req *wizard.Request, st storage.Store) (wizard.Response, error)
	HandlePost(ctx context.Context, req *wizard.Request, st storage.Store) (wizard.Response, error)
}

// StoreFunc resolves the per-client storage for a request. It runs
// before the controller; implementations typically key on a session
// cookie.
type StoreFunc func(w http.ResponseWriter, r *http.Request) (storage.Store, error)

// tokenStore is satisfied by cookie-backed stores that need their
// signed payload written back after handling.
type tokenStore interface {
	Token() (token string, changed bool)
	Cleared() bool
}

// Handler serves a wizard over net/http. Register it on a plain path
// for the basic controller, or on a "/{step}" pattern (plus the bare
// prefix) for the named-URL variant.
type Handler struct {
	controller Wizard
	stores     StoreFunc
	fs         form.FileStorage
	mw         []middleware.Middleware
	logger     *slog.Logger
	cookieName string
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithFileStorage sets the storage uploads are persisted into. Required
// when any wizard form declares a file field.
func WithFileStorage(fs form.FileStorage) HandlerOption {
	return func(h *Handler) { h.fs = fs }
}

// WithMiddleware wraps request handling with mw, outermost first.
func WithMiddleware(mw ...middleware.Middleware) HandlerOption {
	return func(h *Handler) { h.mw = append(h.mw, mw...) }
}

// WithHandlerLogger sets the logger for transport-level failures.
func WithHandlerLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) { h.logger = logger }
}

// WithCookieName sets the cookie written back for token-carrying
// stores. Defaults to "wizard".
func WithCookieName(name string) HandlerOption {
	return func(h *Handler) { h.cookieName = name }
}

// NewHandler binds a controller to net/http with per-request storage
// from stores.
func NewHandler(controller Wizard, stores StoreFunc, opts ...HandlerOption) *Handler {
	h := &Handler{
		controller: controller,
		stores:     stores,
		logger:     slog.Default(),
		cookieName: "wizard",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r, h.fs)
	if err != nil {
		h.logger.Warn("wizard request rejected", slog.String("error", err.Error()))
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	st, err := h.stores(w, r)
	if err != nil {
		h.logger.Error("wizard storage unavailable", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var terminal middleware.Handler
	switch r.Method {
	case http.MethodGet:
		terminal = func(ctx context.Context) (wizard.Response, error) {
			return h.controller.HandleGet(ctx, req, st)
		}
	case http.MethodPost:
		terminal = func(ctx context.Context) (wizard.Response, error) {
			return h.controller.HandlePost(ctx, req, st)
		}
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp, err := middleware.Chain(h.mw...)(r.Context(), req, terminal)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.flushToken(w, st)
	h.writeResponse(w, r, resp)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wizard.ErrManagementTampered),
		errors.Is(err, cookie.ErrTampered),
		errors.Is(err, wizard.ErrUnknownStep):
		http.Error(w, "bad request", http.StatusBadRequest)
	default:
		h.logger.Error("wizard request failed", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeResponse(w http.ResponseWriter, r *http.Request, resp wizard.Response) {
	switch v := resp.(type) {
	case *Page:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(v.Status)
		_, _ = w.Write(v.Body)
	case *Redirect:
		http.Redirect(w, r, v.URL, http.StatusFound)
	default:
		h.logger.Error("wizard produced an unwritable response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// flushToken writes token-carrying stores (the cookie backend) back to
// the client.
func (h *Handler) flushToken(w http.ResponseWriter, st storage.Store) {
	ts, ok := st.(tokenStore)
	if !ok {
		return
	}
	token, changed := ts.Token()
	if !changed {
		return
	}
	c := &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if ts.Cleared() {
		c.Value = ""
		c.MaxAge = -1
	}
	http.SetCookie(w, c)
}

// CookieStores returns a StoreFunc backed by the signed-cookie store:
// wizard state travels in the named cookie, signed with secret, with
// nothing held server-side.
func CookieStores(secret []byte, name string) StoreFunc {
	return func(_ http.ResponseWriter, r *http.Request) (storage.Store, error) {
		st := cookie.New(secret)
		if c, err := r.Cookie(name); err == nil {
			st.SetToken(c.Value)
		}
		return st, nil
	}
}

// SessionStores returns a StoreFunc keying an in-memory pool by the
// named session cookie. Suitable for single-process deployments and
// tests; use the redis or postgres backends for anything shared.
func SessionStores(pool *memory.Pool, sessionCookie string) StoreFunc {
	return func(_ http.ResponseWriter, r *http.Request) (storage.Store, error) {
		c, err := r.Cookie(sessionCookie)
		if err != nil {
			return nil, err
		}
		return pool.Store(c.Value), nil
	}
}
