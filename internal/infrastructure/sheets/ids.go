package sheets

import (
	"fmt"
	"math/rand"
	"time"
)

// The board runs on Korean business time regardless of host timezone;
// every stamp carries an explicit +09:00 offset.
var seoulZone = time.FixedZone("KST", 9*60*60)

// timestamp formats t as ISO-8601 with the fixed +09:00 offset.
func timestamp(t time.Time) string {
	return t.In(seoulZone).Format("2006-01-02T15:04:05+09:00")
}

// newJobID builds "YYYYMMDD-HHMMSS-RRRR" from local time plus a 4-digit
// random suffix. Not collision-proof; the second-level stamp plus suffix
// keeps the odds low enough that no uniqueness check is made.
func newJobID(t time.Time, randInt func(int) int) string {
	return fmt.Sprintf("%s-%04d", t.In(seoulZone).Format("20060102-150405"), randInt(10000))
}

func defaultRandInt(n int) int { return rand.Intn(n) }
