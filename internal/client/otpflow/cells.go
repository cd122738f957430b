package otpflow

import (
	"strings"

	"github.com/dmitrijs2005/expenseshare/internal/common"
)

// Cells is the four single-digit code inputs and the focused one.
type Cells struct {
	digits [common.OTPLength]string
	focus  int
}

// Input sets cell i to value, which must be empty or one digit. A digit
// moves focus to the next cell.
func (c *Cells) Input(i int, value string) bool {
	if i < 0 || i >= len(c.digits) || len(value) > 1 || (value != "" && !common.IsDigits(value)) {
		return false
	}
	c.digits[i] = value
	c.focus = i
	if value != "" && i < len(c.digits)-1 {
		c.focus = i + 1
	}
	return true
}

// Type enters value into the focused cell.
func (c *Cells) Type(value string) bool {
	return c.Input(c.focus, value)
}

// Backspace clears the focused cell, or moves focus back when it is
// already empty.
func (c *Cells) Backspace() {
	if c.digits[c.focus] != "" {
		c.digits[c.focus] = ""
		return
	}
	if c.focus > 0 {
		c.focus--
	}
}

// Paste drops non-digits from text and fills the cells left to right with
// the first four digits. Cells beyond the pasted digits keep their value.
func (c *Cells) Paste(text string) {
	i := 0
	for _, r := range text {
		if i == len(c.digits) {
			break
		}
		if r < '0' || r > '9' {
			continue
		}
		c.digits[i] = string(r)
		i++
	}
}

func (c *Cells) Focus() int { return c.focus }

func (c *Cells) SetFocus(i int) {
	if i >= 0 && i < len(c.digits) {
		c.focus = i
	}
}

func (c *Cells) Values() [common.OTPLength]string { return c.digits }

func (c *Cells) Code() string { return strings.Join(c.digits[:], "") }

// Complete reports whether every cell holds a digit.
func (c *Cells) Complete() bool {
	for _, d := range c.digits {
		if d == "" {
			return false
		}
	}
	return true
}

func (c *Cells) Reset() {
	c.digits = [common.OTPLength]string{}
	c.focus = 0
}
