package repos

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrTeamNameTaken signals a team_name unique violation.
	ErrTeamNameTaken = errors.New("team name already taken")
	// ErrConflict wraps any other integrity violation raised while writing.
	ErrConflict = errors.New("conflicts with stored data")
	// ErrIncomplete signals a team created without its lead or project manager.
	ErrIncomplete = errors.New("team lead and project manager are required")
)
