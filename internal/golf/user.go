// internal/golf/user.go
package golf

import "math"

// Unrated is the rating sentinel for a user who has not submitted yet, and
// for a submission whose complexity could not be computed. Lower ratings are
// better, so the sentinel sorts last.
const Unrated = math.MaxFloat64

// User is one participant's entry within a Group. Entries are owned
// exclusively by their Group; Group methods hand out value copies, never
// pointers, so callers can't mutate shared state outside the group lock.
type User struct {
	ConnectionID string  `json:"connectionId"`
	Name         string  `json:"name"`
	Code         string  `json:"-"`
	Rating       float64 `json:"rating"`
	Attempts     int     `json:"attempts"`
}
