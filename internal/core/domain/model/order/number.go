package order

import (
	"fmt"
	"sync"
	"time"

	"fooddelivery/internal/pkg/errs"
)

const (
	// numberPrefix starts every order number.
	numberPrefix = "ORD"
	// numberStampLayout encodes day-of-month, hour, minute and second,
	// fixed width, so numbers sort roughly by creation time within a month.
	numberStampLayout = "02150405"
	// numberCounterMax is the rolling counter's upper bound per second.
	numberCounterMax = 999
)

// NumberGenerator produces human-readable order numbers of the form
// "ORD" + ddHHmmss + zero-padded 3-digit rolling counter, e.g.
// "ORD30174512007". The counter resets whenever the second rolls over and
// wraps after 999. The format is deterministic and parseable; global
// uniqueness is enforced by the store's unique index on the number.
//
// NumberGenerator is safe for concurrent use.
type NumberGenerator struct {
	mu        sync.Mutex
	lastStamp string
	counter   int
	now       func() time.Time
}

// NewNumberGenerator creates a generator using the system clock.
func NewNumberGenerator() *NumberGenerator {
	return &NumberGenerator{now: time.Now}
}

// NewNumberGeneratorWithClock creates a generator with an injected clock.
func NewNumberGeneratorWithClock(now func() time.Time) *NumberGenerator {
	return &NumberGenerator{now: now}
}

// Next returns the next order number.
func (g *NumberGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	stamp := g.now().UTC().Format(numberStampLayout)
	if stamp != g.lastStamp {
		g.lastStamp = stamp
		g.counter = 0
	} else if g.counter < numberCounterMax {
		g.counter++
	} else {
		g.counter = 0
	}

	return fmt.Sprintf("%s%s%03d", numberPrefix, stamp, g.counter)
}

// NumberParts is the decomposition of an order number.
type NumberParts struct {
	Day      int
	Hour     int
	Minute   int
	Second   int
	Sequence int
}

// ParseNumber decomposes an order number back into its timestamp fields and
// rolling sequence. Returns an error for anything that is not a well-formed
// number.
func ParseNumber(number string) (NumberParts, error) {
	if len(number) != len(numberPrefix)+len(numberStampLayout)+3 ||
		number[:len(numberPrefix)] != numberPrefix {
		return NumberParts{}, errs.NewValueIsInvalidError("orderNumber")
	}

	rest := number[len(numberPrefix):]
	for _, r := range rest {
		if r < '0' || r > '9' {
			return NumberParts{}, errs.NewValueIsInvalidError("orderNumber")
		}
	}

	var p NumberParts
	if _, err := fmt.Sscanf(rest, "%02d%02d%02d%02d%03d",
		&p.Day, &p.Hour, &p.Minute, &p.Second, &p.Sequence); err != nil {
		return NumberParts{}, errs.NewValueIsInvalidErrorWithCause("orderNumber", err)
	}

	if p.Day < 1 || p.Day > 31 || p.Hour > 23 || p.Minute > 59 || p.Second > 59 {
		return NumberParts{}, errs.NewValueIsInvalidError("orderNumber")
	}

	return p, nil
}
