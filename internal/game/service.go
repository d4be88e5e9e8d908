// Package game is the play-state manager: it owns the lifecycle of a
// game record and applies edits, resets, and hint requests to it.
package game

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"svw.info/playsudoku/internal/domain"
	"svw.info/playsudoku/internal/namegen"
	"svw.info/playsudoku/internal/ports"
)

// Service wires the engine pieces to the store. All methods persist the
// game after a successful state change.
type Service struct {
	Generator ports.Generator
	Validator ports.Validator
	Hinter    ports.Hinter
	Solver    ports.Solver
	Store     ports.GameStore
	Names     *namegen.Generator

	now  func() time.Time
	seed func() int64
}

func NewService(gen ports.Generator, val ports.Validator, h ports.Hinter, s ports.Solver, store ports.GameStore, names *namegen.Generator) *Service {
	return &Service{
		Generator: gen,
		Validator: val,
		Hinter:    h,
		Solver:    s,
		Store:     store,
		Names:     names,
		now:       time.Now,
		seed:      func() int64 { return time.Now().UnixNano() },
	}
}

// NewGame generates a fresh solution and puzzle for the mode and resets
// all play state: working board, conflicts, elapsed timer, hint.
func (s *Service) NewGame(ctx context.Context, sessionID string, mode domain.Mode) (*domain.Game, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("unsupported mode %q", mode)
	}
	puzzle, solution, _, err := s.Generator.Generate(ctx, s.seed(), mode)
	if err != nil {
		return nil, fmt.Errorf("generate puzzle: %w", err)
	}
	now := s.now()
	g := &domain.Game{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Name:      s.Names.Name(),
		Mode:      mode,
		Status:    domain.StatusPlaying,
		Puzzle:    puzzle,
		Solution:  solution,
		Board:     puzzle.Clone(),
		Conflicts: nil,
		Clues:     puzzle.Clues(),
		StartedAt: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.SaveGame(ctx, g); err != nil {
		return nil, fmt.Errorf("save game: %w", err)
	}
	return g, nil
}

// Game loads a record, enforcing session ownership.
func (s *Service) Game(ctx context.Context, sessionID, id string) (*domain.Game, error) {
	g, err := s.Store.Game(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.SessionID != sessionID {
		return nil, domain.ErrNotFound
	}
	return g, nil
}

// UpdateCell applies one edit to a non-clue cell. Malformed values,
// out-of-range coordinates, clue cells, and finished games are silent
// no-ops: the current game is returned unchanged with changed=false.
// An empty raw value clears the cell. Every accepted edit recomputes
// the conflict set, drops any pending hint, and flips the game to
// completed when the board is full and conflict-free.
func (s *Service) UpdateCell(ctx context.Context, sessionID, id string, row, col int, raw string) (*domain.Game, bool, error) {
	g, err := s.Game(ctx, sessionID, id)
	if err != nil {
		return nil, false, err
	}
	if g.Status != domain.StatusPlaying {
		return g, false, nil
	}
	n := g.Board.Size()
	if row < 0 || row >= n || col < 0 || col >= n {
		return g, false, nil
	}
	if g.IsClue(row, col) {
		return g, false, nil
	}
	value := 0
	if trimmed := strings.TrimSpace(raw); trimmed != "" {
		v, err := strconv.Atoi(trimmed)
		if err != nil || v < 1 || v > n {
			return g, false, nil
		}
		value = v
	}
	if g.Board[row][col] == value {
		return g, false, nil
	}

	g.Board[row][col] = value
	g.Conflicts = s.Validator.Conflicts(g.Board)
	g.Hint = nil
	if g.Board.Empties() == 0 && len(g.Conflicts) == 0 {
		g.Status = domain.StatusCompleted
	}
	g.UpdatedAt = s.now()
	if err := s.Store.SaveGame(ctx, g); err != nil {
		return nil, false, fmt.Errorf("save game: %w", err)
	}
	return g, true, nil
}

// Reset reverts the working board to the initial puzzle and restarts the
// elapsed timer.
func (s *Service) Reset(ctx context.Context, sessionID, id string) (*domain.Game, error) {
	g, err := s.Game(ctx, sessionID, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	g.Board = g.Puzzle.Clone()
	g.Conflicts = nil
	g.Hint = nil
	g.Status = domain.StatusPlaying
	g.StartedAt = now
	g.UpdatedAt = now
	if err := s.Store.SaveGame(ctx, g); err != nil {
		return nil, fmt.Errorf("save game: %w", err)
	}
	return g, nil
}

// Hint sets the game's hint target to the first cell with a unique
// viable candidate, or leaves it unset when no such cell exists. The
// absence of a hint is a normal outcome, not an error.
func (s *Service) Hint(ctx context.Context, sessionID, id string) (*domain.Game, error) {
	g, err := s.Game(ctx, sessionID, id)
	if err != nil {
		return nil, err
	}
	if g.Status != domain.StatusPlaying {
		return g, nil
	}
	if cell, ok := s.Hinter.Hint(g.Board); ok {
		g.Hint = &cell
	} else {
		g.Hint = nil
	}
	g.UpdatedAt = s.now()
	if err := s.Store.SaveGame(ctx, g); err != nil {
		return nil, fmt.Errorf("save game: %w", err)
	}
	return g, nil
}

// List returns the session's games, newest first per the store.
func (s *Service) List(ctx context.Context, sessionID string) ([]domain.GameMeta, error) {
	return s.Store.GamesBySession(ctx, sessionID)
}

// Delete removes a game owned by the session.
func (s *Service) Delete(ctx context.Context, sessionID, id string) error {
	if _, err := s.Game(ctx, sessionID, id); err != nil {
		return err
	}
	return s.Store.DeleteGame(ctx, id)
}

// Solve completes an arbitrary submitted board; used by the client's
// reveal control.
func (s *Service) Solve(ctx context.Context, g domain.Grid) (domain.Grid, ports.Stats, error) {
	if _, _, ok := domain.BoxDims(g.Size()); !ok {
		return nil, ports.Stats{}, fmt.Errorf("unsupported board size %d", g.Size())
	}
	return s.Solver.Solve(ctx, g)
}
