package game

import "errors"

// Validation errors. Rejected synchronously, never partially applied, safe
// to retry with corrected input.
var (
	ErrInvalidBlind        = errors.New("invalid_blind")
	ErrInvalidPlayerCount  = errors.New("invalid_player_count")
	ErrInvalidSeat         = errors.New("invalid_seat")
	ErrSeatTaken           = errors.New("seat_taken")
	ErrTableFull           = errors.New("table_full")
	ErrNotEnoughPlayers    = errors.New("not_enough_players")
	ErrNotCreator          = errors.New("not_creator")
	ErrWrongPhase          = errors.New("wrong_phase")
	ErrNotYourTurn         = errors.New("not_your_turn")
	ErrInvalidActor        = errors.New("invalid_actor")
	ErrInsufficientChips   = errors.New("insufficient_chips")
	ErrRaiseTooSmall       = errors.New("raise_too_small")
	ErrInvalidAction       = errors.New("invalid_action")
	ErrMustCallOrFold      = errors.New("must_call_or_fold")
	ErrTokenGateRequired   = errors.New("token_gate_required")
	ErrInsufficientTokens  = errors.New("insufficient_tokens")
	ErrBettingNotComplete  = errors.New("betting_not_complete")
	ErrAdvancePending      = errors.New("advance_pending")
	ErrUnknownPlayer       = errors.New("unknown_player")
)

// Oracle callback errors. Stale callbacks are safe to ignore; conservation
// failures must not mutate chip stacks.
var (
	ErrStaleCallback             = errors.New("stale_callback")
	ErrAlreadySettled            = errors.New("already_settled")
	ErrInvalidCard               = errors.New("invalid_card")
	ErrInvalidPayoutDistribution = errors.New("invalid_payout_distribution")
)
