package utils

import (
	"sync"
	"time"
)

var (
	istOnce     sync.Once
	istLocation *time.Location
)

// GetISTTimeLocation returns Asia/Kolkata, or a fixed +05:30 zone when the tz
// database is unavailable.
func GetISTTimeLocation() *time.Location {
	istOnce.Do(func() {
		loc, err := time.LoadLocation("Asia/Kolkata")
		if err != nil {
			loc = time.FixedZone("IST", 5*60*60+30*60)
		}
		istLocation = loc
	})
	return istLocation
}
