package rating

import "errors"

var ErrNotFound = errors.New("rating not found")
