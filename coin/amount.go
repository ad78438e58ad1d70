/*
Package coin defines the monetary amount moved around by the escrow node.

There is a single native currency, so an amount is a plain unsigned
quantity of its smallest unit. All arithmetic is checked: an operation that
does not fit fails with errors.ErrOverflow and never wraps around.
*/
package coin

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/iov-one/escrowd/errors"
)

// Amount is a non-negative quantity of the native currency
type Amount uint64

// MaxAmount is the largest representable value
const MaxAmount = Amount(math.MaxUint64)

// Add returns the sum of both amounts, or ErrOverflow if it does not fit.
func (a Amount) Add(b Amount) (Amount, error) {
	sum := a + b
	if sum < a {
		return 0, errors.Wrapf(errors.ErrOverflow, "%s + %s", a, b)
	}
	return sum, nil
}

// Sub returns a - b, or ErrOverflow if b is greater than a.
func (a Amount) Sub(b Amount) (Amount, error) {
	if b > a {
		return 0, errors.Wrapf(errors.ErrOverflow, "%s - %s", a, b)
	}
	return a - b, nil
}

// Sum adds all given amounts, failing on the first overflow
func Sum(amounts ...Amount) (Amount, error) {
	var total Amount
	for _, a := range amounts {
		var err error
		if total, err = total.Add(a); err != nil {
			return 0, err
		}
	}
	return total, nil
}

// IsZero returns true if nothing is held
func (a Amount) IsZero() bool {
	return a == 0
}

// IsGTE returns true if a is greater or equal to b
func (a Amount) IsGTE(b Amount) bool {
	return a >= b
}

// String returns the decimal representation
func (a Amount) String() string {
	return strconv.FormatUint(uint64(a), 10)
}

// ParseAmount reads a decimal representation of an amount
func ParseAmount(s string) (Amount, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 0, errors.Wrapf(errors.ErrOverflow, "amount %q", s)
		}
		return 0, errors.Wrapf(errors.ErrInvalidAmount, "amount %q", s)
	}
	return Amount(v), nil
}

// MarshalJSON encodes as a decimal string, so that clients never lose
// precision on values above 2^53.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both a decimal string and a JSON number.
func (a *Amount) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		// not a string, try a plain number
		s = string(raw)
	}
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Set implements flag.Value so amounts can be passed on the command line
func (a *Amount) Set(raw string) error {
	v, err := ParseAmount(raw)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
