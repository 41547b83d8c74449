package notification

import (
	"math/rand/v2"
	"time"
)

// backoff doubles base per attempt and adds up to 20% jitter. Attempt starts at 1.
func backoff(base time.Duration, attempt int) time.Duration {
	if attempt <= 0 || base <= 0 {
		return 0
	}
	d := base << (attempt - 1)
	jitter := time.Duration(rand.Int64N(int64(d)/5 + 1))
	return d + jitter
}
