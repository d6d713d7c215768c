package httptransport

import (
	"errors"
	"net/http"

	"github.com/Ololadestephen/EncryptedPoker/internal/game"
	"github.com/Ololadestephen/EncryptedPoker/internal/registry"
	"github.com/Ololadestephen/EncryptedPoker/internal/store"
)

// mapErr translates engine and registry sentinels into an HTTP status plus
// the snake_case error code clients see. Unknown errors stay opaque.
func mapErr(err error) (int, string) {
	switch {
	case errors.Is(err, registry.ErrTableNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, game.ErrNotCreator):
		return http.StatusForbidden, err.Error()

	case errors.Is(err, game.ErrSeatTaken),
		errors.Is(err, game.ErrTableFull),
		errors.Is(err, game.ErrAdvancePending),
		errors.Is(err, game.ErrStaleCallback),
		errors.Is(err, game.ErrAlreadySettled):
		return http.StatusConflict, err.Error()

	case errors.Is(err, game.ErrInvalidBlind),
		errors.Is(err, game.ErrInvalidPlayerCount),
		errors.Is(err, game.ErrInvalidSeat),
		errors.Is(err, game.ErrNotEnoughPlayers),
		errors.Is(err, game.ErrWrongPhase),
		errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrInvalidActor),
		errors.Is(err, game.ErrInsufficientChips),
		errors.Is(err, game.ErrRaiseTooSmall),
		errors.Is(err, game.ErrInvalidAction),
		errors.Is(err, game.ErrMustCallOrFold),
		errors.Is(err, game.ErrTokenGateRequired),
		errors.Is(err, game.ErrInsufficientTokens),
		errors.Is(err, game.ErrBettingNotComplete),
		errors.Is(err, game.ErrUnknownPlayer),
		errors.Is(err, game.ErrInvalidCard),
		errors.Is(err, game.ErrInvalidPayoutDistribution):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, "internal_error"
}
