package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Consensus timestamps are the ledger's "seconds.nanoseconds" strings
// (e.g. "1617786650.552347000"). They are kept as strings end to end so
// no precision is lost; helpers below parse them only where ordering or
// arithmetic is required.

// TimestampFrom renders a time as a consensus timestamp string.
func TimestampFrom(t time.Time) string {
	return fmt.Sprintf("%d.%09d", t.Unix(), t.Nanosecond())
}

// ParseTimestamp parses a consensus timestamp into its seconds and
// nanoseconds parts. The nanoseconds part may be absent.
func ParseTimestamp(ts string) (secs int64, nanos int64, err error) {
	if ts == "" {
		return 0, 0, fmt.Errorf("parse timestamp: empty")
	}
	parts := strings.SplitN(ts, ".", 2)
	secs, err = strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse timestamp %q: %w", ts, err)
	}
	if len(parts) == 2 && parts[1] != "" {
		// right-pad to nanosecond precision so "5.1" means 5.100000000
		frac := parts[1]
		if len(frac) > 9 {
			frac = frac[:9]
		}
		frac += strings.Repeat("0", 9-len(frac))
		nanos, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("parse timestamp %q: %w", ts, err)
		}
	}
	return secs, nanos, nil
}

// CompareTimestamps orders two consensus timestamps, returning -1, 0 or 1.
// Unparseable values sort first so they can never advance a watermark.
func CompareTimestamps(a, b string) int {
	as, an, aerr := ParseTimestamp(a)
	bs, bn, berr := ParseTimestamp(b)
	if aerr != nil || berr != nil {
		switch {
		case aerr != nil && berr != nil:
			return 0
		case aerr != nil:
			return -1
		default:
			return 1
		}
	}
	switch {
	case as != bs:
		if as < bs {
			return -1
		}
		return 1
	case an != bn:
		if an < bn {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// AddSecondsToTimestamp advances a consensus timestamp by whole seconds,
// preserving the nanoseconds part.
func AddSecondsToTimestamp(ts string, seconds int64) (string, error) {
	secs, nanos, err := ParseTimestamp(ts)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d.%09d", secs+seconds, nanos), nil
}
