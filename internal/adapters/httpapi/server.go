// Package httpapi exposes the inquiry board as a JSON API over HTTP.
//
// Operator capability is derived per request from the X-Operator-Token
// header, never from a client-supplied flag. Dialog gates are satisfied from
// the request body: a password field feeds the engine's password prompt, and
// destructive verbs carry implicit confirmation.
package httpapi

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/askdeskhq/askdesk/pkg/dialog"
	"github.com/askdeskhq/askdesk/pkg/domain"
)

// Board is the workflow surface the HTTP adapter drives.
type Board interface {
	List(ctx context.Context) ([]domain.Inquiry, error)
	Create(ctx context.Context, draft domain.Draft) (*domain.Inquiry, error)
	Open(ctx context.Context, cap domain.Capability, id string) (*domain.Inquiry, error)
	Reply(ctx context.Context, cap domain.Capability, id, text string) (*domain.Inquiry, error)
	ClearReply(ctx context.Context, cap domain.Capability, id string) (*domain.Inquiry, error)
	Delete(ctx context.Context, cap domain.Capability, id string) error
}

// Server holds the board and the shared operator token.
type Server struct {
	board         Board
	operatorToken string
	logger        *slog.Logger
}

// NewHandler builds the chi router for the board API. An empty operatorToken
// disables operator access entirely.
func NewHandler(board Board, operatorToken string, logger *slog.Logger) http.Handler {
	s := &Server{board: board, operatorToken: operatorToken, logger: logger}

	r := chi.NewRouter()
	r.Use(corsMiddleware)

	r.Get("/healthz", s.health)
	r.Route("/inquiries", func(r chi.Router) {
		r.Get("/", s.list)
		r.Post("/", s.create)
		r.Route("/{id}", func(r chi.Router) {
			r.Post("/open", s.open)
			r.Put("/reply", s.reply)
			r.Delete("/reply", s.clearReply)
			r.Delete("/", s.delete)
		})
	})
	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Operator-Token")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// capability derives the caller's capability from X-Operator-Token.
func (s *Server) capability(r *http.Request) domain.Capability {
	if s.operatorToken == "" {
		return domain.Visitor
	}
	token := r.Header.Get("X-Operator-Token")
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.operatorToken)) == 1 {
		return domain.AsOperator
	}
	return domain.Visitor
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	cap := s.capability(r)
	inquiries, err := s.board.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]domain.Inquiry, len(inquiries))
	for i := range inquiries {
		out[i] = inquiries[i].Redacted(cap)
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var draft domain.Draft
	if !s.decode(w, r, &draft) {
		return
	}

	created, err := s.board.Create(r.Context(), draft)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created.Redacted(s.capability(r)))
}

func (s *Server) open(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password *string `json:"password"`
	}
	if r.ContentLength != 0 && !s.decode(w, r, &body) {
		return
	}

	ctx := r.Context()
	if body.Password != nil {
		ctx = dialog.WithPromptAnswer(ctx, *body.Password)
	}

	cap := s.capability(r)
	opened, err := s.board.Open(ctx, cap, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := *opened
	if !cap.Operator {
		out.Password = ""
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) reply(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if !s.decode(w, r, &body) {
		return
	}

	cap := s.capability(r)
	updated, err := s.board.Reply(r.Context(), cap, chi.URLParam(r, "id"), body.Text)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated.Redacted(cap))
}

func (s *Server) clearReply(w http.ResponseWriter, r *http.Request) {
	// The DELETE verb already expresses consent.
	ctx := dialog.WithConfirm(r.Context(), true)

	cap := s.capability(r)
	updated, err := s.board.ClearReply(ctx, cap, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated.Redacted(cap))
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password *string `json:"password"`
	}
	if r.ContentLength != 0 && !s.decode(w, r, &body) {
		return
	}

	ctx := dialog.WithConfirm(r.Context(), true)
	if body.Password != nil {
		ctx = dialog.WithPromptAnswer(ctx, *body.Password)
	}

	if err := s.board.Delete(ctx, s.capability(r), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	var serr *domain.StoreError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrAccessDenied), errors.Is(err, domain.ErrNotAuthorized):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &serr):
		status = http.StatusBadGateway
		s.logger.Error("store failure", "op", serr.Op, "err", serr.Err)
	}

	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
