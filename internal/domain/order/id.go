package order

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const (
	idPrefix    = "TF-"
	idRandLen   = 4
	idCharset   = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	idSeparator = "-"
)

// NewID builds an order id from a millisecond timestamp and a random tail:
// "TF-" + base36(unix ms) + "-" + 4 random base36 characters, uppercased.
// The timestamp keeps ids roughly sortable and human-scannable; the tail
// gives 36^4 (~1.68M) variants per millisecond. Ids are NOT checked against
// the ledger, so collisions are improbable rather than impossible.
func NewID(now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))

	var tail [idRandLen]byte
	for i := range tail {
		tail[i] = idCharset[rand.IntN(len(idCharset))]
	}

	return idPrefix + ts + idSeparator + string(tail[:])
}
