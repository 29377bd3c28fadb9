package app_error

import (
	"errors"

	"github.com/jlp0422/coffee-golf-leaderboard/parser"
	"github.com/jlp0422/coffee-golf-leaderboard/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type statusError struct {
	error
	status int
}

func (e statusError) Unwrap() error {
	return e.error
}

func (e statusError) HTTPStatus() int {
	return e.status
}

// New attaches an explicit HTTP status to an error, overriding the
// default mapping in HTTPStatus.
func New(err error, status int) error {
	return statusError{err, status}
}

var badRequestErrors = []error{
	service.ErrInvalidInviteCode,
	service.ErrInvalidDate,
	service.ErrInvalidDateRange,
	service.ErrInvalidFormat,
	service.ErrInvalidTeamSize,
	service.ErrInvalidTeamId,
	service.ErrNotParticipant,
	parser.ErrDateNotFound,
	parser.ErrDateUnparseable,
	parser.ErrStrokesNotFound,
	parser.ErrWrongColorCount,
	parser.ErrWrongDigitCount,
	parser.ErrScoreMismatch,
}

// HTTPStatus maps domain errors onto response codes. Unknown errors are
// treated as internal.
func HTTPStatus(err error) int {
	var withStatus interface{ HTTPStatus() int }
	if errors.As(err, &withStatus) {
		return withStatus.HTTPStatus()
	}
	switch {
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return 404
	case errors.Is(err, service.ErrDuplicateRound),
		errors.Is(err, service.ErrDuplicateParticipant),
		errors.Is(err, service.ErrDuplicateMember):
		return 409
	case errors.Is(err, service.ErrNotGroupMember),
		errors.Is(err, service.ErrNotGroupAdmin),
		errors.Is(err, service.ErrOwnerCannotLeave):
		return 403
	}
	for _, known := range badRequestErrors {
		if errors.Is(err, known) {
			return 400
		}
	}
	return 500
}

func Respond(c *gin.Context, err error) {
	c.JSON(HTTPStatus(err), gin.H{"error": err.Error()})
}
