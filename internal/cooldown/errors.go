package cooldown

import "errors"

var ErrNoSession = errors.New("cooldown.no_session")
