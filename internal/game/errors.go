package game

import "errors"

var (
	// ErrTableFull is returned when joining a table with no free seats.
	ErrTableFull = errors.New("table is full")
	// ErrAlreadySeated is returned when a player ID is already at the table.
	ErrAlreadySeated = errors.New("player already seated")
	// ErrIllegalOption is returned when an option is not in the legal set.
	ErrIllegalOption = errors.New("illegal option")
	// ErrDecisionTimeout is returned when a decider did not answer in time.
	ErrDecisionTimeout = errors.New("decision timed out")
	// ErrChipMismatch reports that the ledger no longer accounts for every chip.
	ErrChipMismatch = errors.New("chip conservation violation")
	// ErrNotEnoughPlayers is returned when fewer than two players can be dealt in.
	ErrNotEnoughPlayers = errors.New("not enough players")
	// ErrInvalidRules is returned by Rules.Validate.
	ErrInvalidRules = errors.New("invalid rules")
)
