package incentive

import "errors"

var (
	ErrNotFound          = errors.New("team incentive not found")
	ErrSharesExceedTotal = errors.New("member shares exceed total amount")
	ErrNoMembers         = errors.New("team incentive needs at least one member")
)
