package service

import "errors"

// Sentinels the controllers map onto HTTP statuses. Parsing failures keep
// their own identities from the parser package.
var (
	ErrNotFound             = errors.New("not found")
	ErrDuplicateRound       = errors.New("a round for this date has already been submitted")
	ErrDuplicateParticipant = errors.New("already joined this tournament")
	ErrDuplicateMember      = errors.New("already a member of this group")
	ErrNotGroupMember       = errors.New("not a member of this group")
	ErrNotGroupAdmin        = errors.New("requires group owner or admin")
	ErrOwnerCannotLeave     = errors.New("the group owner cannot leave, delete the group instead")
	ErrInvalidInviteCode    = errors.New("invalid invite code")
	ErrInvalidDate          = errors.New("dates must be YYYY-MM-DD")
	ErrInvalidDateRange     = errors.New("end date must not be before start date")
	ErrInvalidFormat        = errors.New("unknown tournament format")
	ErrInvalidTeamSize      = errors.New("team size must be at least 1")
	ErrInvalidTeamId        = errors.New("team id must be at least 1")
	ErrNotParticipant       = errors.New("not a participant of this tournament")
)
