package redigo

import "time"

// formatExpirationArgs renders ttl as SET options, in milliseconds unless it
// is a whole number of seconds. Any positive ttl expires after at least one
// unit.
func formatExpirationArgs(ttl time.Duration) []any {
	if ttl == 0 {
		return []any{}
	}

	opt, unit := "EX", time.Second
	if ttl < time.Second || ttl%time.Second != 0 {
		opt, unit = "PX", time.Millisecond
	}

	t := int64(ttl / unit)
	if t < 1 {
		t = 1
	}
	return []any{opt, t}
}
