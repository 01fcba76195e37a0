package order

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// GenerateOrderNumber builds a human-readable order number: the current date
// (YYYYMMDD) followed by six random digits. The random suffix gives one
// million combinations per day; collisions are possible, so callers must
// check existence and regenerate, with the unique index as the final
// arbiter.
func GenerateOrderNumber() string {
	now := time.Now()
	return fmt.Sprintf("%s%06d", now.Format("20060102"), 100000+rand.IntN(900000))
}
