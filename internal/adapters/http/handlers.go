// Package httpadapter exposes the game service as a JSON REST API and
// serves the embedded browser client.
package httpadapter

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"svw.info/playsudoku/internal/domain"
	"svw.info/playsudoku/internal/game"
	"svw.info/playsudoku/internal/ports"
	"svw.info/playsudoku/web"
)

type Handler struct {
	service  *game.Service
	sessions ports.SessionStore
	tmpl     *template.Template
}

func New(service *game.Service, sessions ports.SessionStore) *Handler {
	return &Handler{service: service, sessions: sessions, tmpl: web.Templates()}
}

// Router builds the full route tree: API under /api, static assets and
// the single-page client at the root.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))
	r.Group(func(r chi.Router) {
		r.Use(h.withSession)
		r.Route("/api", func(r chi.Router) {
			r.Post("/games", h.createGame)
			r.Get("/games", h.listGames)
			r.Route("/games/{gameID}", func(r chi.Router) {
				r.Get("/", h.getGame)
				r.Delete("/", h.deleteGame)
				r.Post("/cell", h.updateCell)
				r.Post("/reset", h.resetGame)
				r.Post("/hint", h.hint)
			})
			r.Post("/solve", h.solve)
		})
		r.Get("/", h.index)
	})
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(web.StaticFS())))
	return r
}

type apiError struct {
	Message string `json:"message"`
}

func newError(message string) *apiError { return &apiError{Message: message} }

var errBadRequest = newError("invalid request body")

// gameView is the client-facing shape of a game; the solution never
// leaves the server.
type gameView struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Mode           domain.Mode        `json:"mode"`
	Status         domain.Status      `json:"status"`
	Size           int                `json:"size"`
	Puzzle         domain.Grid        `json:"puzzle"`
	Board          domain.Grid        `json:"board"`
	Conflicts      []domain.CellCoord `json:"conflicts"`
	Hint           *domain.CellCoord  `json:"hint,omitempty"`
	Clues          int                `json:"clues"`
	ElapsedSeconds int64              `json:"elapsedSeconds"`
	CreatedAt      time.Time          `json:"createdAt"`
}

func viewOf(g *domain.Game) *gameView {
	conflicts := g.Conflicts
	if conflicts == nil {
		conflicts = []domain.CellCoord{}
	}
	return &gameView{
		ID:             g.ID,
		Name:           g.Name,
		Mode:           g.Mode,
		Status:         g.Status,
		Size:           g.Board.Size(),
		Puzzle:         g.Puzzle,
		Board:          g.Board,
		Conflicts:      conflicts,
		Hint:           g.Hint,
		Clues:          g.Clues,
		ElapsedSeconds: int64(g.Elapsed(time.Now()).Seconds()),
		CreatedAt:      g.CreatedAt,
	}
}

func (h *Handler) renderGame(w http.ResponseWriter, r *http.Request, g *domain.Game, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, newError("game not found"))
		return
	}
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, newError(err.Error()))
		return
	}
	render.JSON(w, r, viewOf(g))
}

// ---- games ----

type createGameRequest struct {
	Mode domain.Mode `json:"mode"`
}

func (h *Handler) createGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errBadRequest)
		return
	}
	if req.Mode == "" {
		req.Mode = domain.ModeNormal
	}
	if !req.Mode.Valid() {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, newError("unsupported mode"))
		return
	}
	g, err := h.service.NewGame(r.Context(), sessionID(r), req.Mode)
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, newError(err.Error()))
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, viewOf(g))
}

func (h *Handler) listGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.service.List(r.Context(), sessionID(r))
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, newError(err.Error()))
		return
	}
	if games == nil {
		games = []domain.GameMeta{}
	}
	render.JSON(w, r, games)
}

func (h *Handler) getGame(w http.ResponseWriter, r *http.Request) {
	g, err := h.service.Game(r.Context(), sessionID(r), chi.URLParam(r, "gameID"))
	h.renderGame(w, r, g, err)
}

func (h *Handler) deleteGame(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), sessionID(r), chi.URLParam(r, "gameID"))
	if errors.Is(err, domain.ErrNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, newError("game not found"))
		return
	}
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, newError(err.Error()))
		return
	}
	render.NoContent(w, r)
}

// ---- play ----

type updateCellRequest struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Value string `json:"value"`
}

func (h *Handler) updateCell(w http.ResponseWriter, r *http.Request) {
	var req updateCellRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errBadRequest)
		return
	}
	// Rejected edits (clue cell, bad value, finished game) are not
	// errors: the unchanged game comes back with 200.
	g, _, err := h.service.UpdateCell(r.Context(), sessionID(r), chi.URLParam(r, "gameID"), req.Row, req.Col, req.Value)
	h.renderGame(w, r, g, err)
}

func (h *Handler) resetGame(w http.ResponseWriter, r *http.Request) {
	g, err := h.service.Reset(r.Context(), sessionID(r), chi.URLParam(r, "gameID"))
	h.renderGame(w, r, g, err)
}

func (h *Handler) hint(w http.ResponseWriter, r *http.Request) {
	g, err := h.service.Hint(r.Context(), sessionID(r), chi.URLParam(r, "gameID"))
	h.renderGame(w, r, g, err)
}

// ---- solve ----

type solveRequest struct {
	Board domain.Grid `json:"board"`
}

type solveResponse struct {
	Board      domain.Grid `json:"board"`
	DurationMs int64       `json:"durationMs"`
	Nodes      int         `json:"nodes"`
}

func (h *Handler) solve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errBadRequest)
		return
	}
	for _, row := range req.Board {
		if len(row) != req.Board.Size() {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, newError("board is not square"))
			return
		}
	}
	solved, stats, err := h.service.Solve(r.Context(), req.Board)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, newError(err.Error()))
		return
	}
	render.JSON(w, r, &solveResponse{Board: solved, DurationMs: stats.Duration.Milliseconds(), Nodes: stats.Nodes})
}

// ---- client ----

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "index.tmpl", nil); err != nil {
		http.Error(w, template.HTMLEscapeString(err.Error()), http.StatusInternalServerError)
	}
}
