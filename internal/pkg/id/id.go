package id

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// New generates a ULID string stamped with the current time.
func New() string {
	return NewAt(time.Now())
}

// NewAt generates a ULID whose timestamp component is t, so records created
// together with their id sort the same way by id and by creation time.
func NewAt(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), rand.Reader).String()
}
