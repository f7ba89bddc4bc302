package mockapi

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// numericID describes the "<prefix><zero-padded n>" identifiers used by
// orders, customers, materials and tailors.
type numericID struct {
	prefix string
	digits int
}

var (
	orderIDs     = numericID{prefix: "#ORD-", digits: 4}
	customerIDs  = numericID{prefix: "#JD-", digits: 3}
	inventoryIDs = numericID{prefix: "#MAT-", digits: 4}
	tailorIDs    = numericID{prefix: "#TLR-", digits: 3}
)

const randomAttempts = 32

func (f numericID) size() int {
	n := 1
	for range f.digits {
		n *= 10
	}
	return n
}

func (f numericID) format(n int) string {
	return fmt.Sprintf("%s%0*d", f.prefix, f.digits, n)
}

// next draws uniformly from the format's range and skips identifiers already
// in use. After a bounded number of misses it walks the range from a random
// offset, so a nearly full collection still gets a free id if one exists.
func (f numericID) next(taken func(string) bool) (string, error) {
	size := f.size()
	for range randomAttempts {
		if id := f.format(rand.IntN(size)); !taken(id) {
			return id, nil
		}
	}

	start := rand.IntN(size)
	for i := range size {
		if id := f.format((start + i) % size); !taken(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrIDSpaceExhausted, f.prefix)
}

const productSuffixLen = 9

// nextProductID returns PRD-<epoch millis>-<9 base36 chars>.
func nextProductID(now time.Time, taken func(string) bool) (string, error) {
	for range randomAttempts {
		id := fmt.Sprintf("PRD-%d-%s", now.UnixMilli(), randomBase36(productSuffixLen))
		if !taken(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: PRD", ErrIDSpaceExhausted)
}

func randomBase36(n int) string {
	u := uuid.New()
	s := strconv.FormatUint(binary.BigEndian.Uint64(u[8:]), 36)
	if len(s) < n {
		s = strings.Repeat("0", n-len(s)) + s
	}
	return s[len(s)-n:]
}
