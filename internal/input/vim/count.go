package vim

import "math"

// MaxCount is the largest count kept; longer digit runs saturate.
const MaxCount = math.MaxInt32

// CountState tracks count prefix accumulation.
type CountState struct {
	// Value is the accumulated count value.
	Value int

	// Active indicates if a count is being accumulated.
	Active bool
}

// Reset clears the count state.
func (c *CountState) Reset() {
	c.Value = 0
	c.Active = false
}

// Fold adds a decimal digit to the count.
// A leading zero is not a count ("0" is a motion) and is refused.
func (c *CountState) Fold(digit int) bool {
	if digit < 0 || digit > 9 {
		return false
	}
	if !c.Active && digit == 0 {
		return false
	}

	c.Active = true

	// Saturate rather than overflow.
	if c.Value > (MaxCount-digit)/10 {
		c.Value = MaxCount
		return true
	}

	c.Value = c.Value*10 + digit
	return true
}

// Erase drops the last folded digit. Erasing the only digit makes the
// count unspecified again. It reports whether there was a count to erase.
func (c *CountState) Erase() bool {
	if !c.Active {
		return false
	}
	c.Value /= 10
	if c.Value == 0 {
		c.Active = false
	}
	return true
}

// Get returns the effective count (1 if no count was specified).
func (c *CountState) Get() int {
	if c.Value <= 0 {
		return 1
	}
	return c.Value
}

// Raw returns the typed count, 0 when unspecified.
func (c *CountState) Raw() int {
	if !c.Active {
		return 0
	}
	return c.Value
}

// CombineCounts multiplies two counts, treating unspecified (<= 0) as 1.
// The product saturates at MaxCount.
// e.g., "2d3w" = delete (2*3=6) words
func CombineCounts(count1, count2 int) int {
	if count1 <= 0 {
		count1 = 1
	}
	if count2 <= 0 {
		count2 = 1
	}

	if count1 > MaxCount/count2 {
		return MaxCount
	}

	return count1 * count2
}
