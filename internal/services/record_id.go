package services

import (
	"strconv"
	"time"
)

// newRecordID derives an opaque identifier from the creation time, the
// way the original records were keyed. Two records created within the
// same millisecond would collide, so the candidate is bumped until
// taken reports it free.
func newRecordID(now time.Time, taken func(id string) bool) string {
	base := now.UnixMilli()
	for offset := int64(0); ; offset++ {
		candidate := strconv.FormatInt(base+offset, 10)
		if !taken(candidate) {
			return candidate
		}
	}
}
