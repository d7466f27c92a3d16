// Package idgen produces string identifiers for stored records.
//
// Identifiers are not cryptographically unique. Collisions are accepted as
// negligible at this system's scale and no check against existing collections
// is made here; callers needing unique business keys check separately.
package idgen

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"
)

// Generate returns an identifier of the form {prefix}_{unixMillis}_{n}
// where n is uniform in [0, 1e9).
func Generate(prefix string) string {
	return fmt.Sprintf("%s_%d_%d", prefix, time.Now().UnixMilli(), rand.IntN(1_000_000_000))
}

// NationalID returns a random 9-digit numeric string without a leading zero.
func NationalID() string {
	return strconv.Itoa(100_000_000 + rand.IntN(900_000_000))
}
