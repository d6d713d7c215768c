package game

import "time"

// Table-talk state: a seat carries its last emoji reaction (1..5, 0 none)
// and last chat line. Pure presentation fields, no phase gating.

const maxReaction = 5

// React records a seated player's emoji reaction.
func (t *Table) React(playerID string, reaction uint8, now time.Time) error {
	s := t.seatByPlayer(playerID)
	if s == nil {
		return ErrUnknownPlayer
	}
	if reaction > maxReaction {
		return ErrInvalidAction
	}
	s.LastReaction = reaction
	s.LastReactionAt = now
	return nil
}

// Say records a seated player's chat line, truncated to the on-record cap.
func (t *Table) Say(playerID, message string, now time.Time) error {
	s := t.seatByPlayer(playerID)
	if s == nil {
		return ErrUnknownPlayer
	}
	if len(message) > MaxMessageBytes {
		message = message[:MaxMessageBytes]
	}
	s.LastMessage = message
	s.LastMessageAt = now
	return nil
}
