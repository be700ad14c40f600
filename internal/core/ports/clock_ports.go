package ports

import "time"

// Clock is the timestamp oracle every observer of the election agrees on.
type Clock interface {
	Now() time.Time
}
