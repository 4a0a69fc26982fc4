// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ParseInteger converts the longest leading base-10 integer of s, after
// optional leading whitespace and sign. Trailing garbage is ignored, a string
// with no digits yields 0 and out-of-range values saturate.
func ParseInteger(s string) int64 {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	end := signedDigits(s, 0)
	if end == 0 {
		return 0
	}
	// The prefix is well formed, so the only possible error is a range
	// error, for which ParseInt already returns the clamped value.
	n, _ := strconv.ParseInt(s[:end], 10, 64)
	return n
}

// ParseFloat converts the longest leading decimal floating-point number of
// s: optional sign, digits with an optional fraction, and an optional
// exponent. "inf", "infinity" and "nan" are accepted in any case. Trailing
// garbage is ignored and a string with no number yields 0.
func ParseFloat(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	if f, ok := parseSpecialFloat(s); ok {
		return f
	}
	end := floatPrefix(s)
	if end == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f
		}
		return 0
	}
	return f
}

// parseIntegerStrict is the Options.StrictNumbers counterpart of ParseInteger.
func parseIntegerStrict(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// parseFloatStrict is the Options.StrictNumbers counterpart of ParseFloat.
func parseFloatStrict(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// signedDigits returns the end of an optional sign followed by at least one
// digit starting at i, or i if there is none.
func signedDigits(s string, i int) int {
	j := i
	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		j++
	}
	k := digits(s, j)
	if k == j {
		return i
	}
	return k
}

func digits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

func floatPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	i = digits(s, i)
	mantissa := i > start
	if i < len(s) && s[i] == '.' {
		j := digits(s, i+1)
		if j > i+1 {
			mantissa = true
		}
		if mantissa {
			i = j
		}
	}
	if !mantissa {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		if j := signedDigits(s, i+1); j > i+1 {
			i = j
		}
	}
	return i
}

func parseSpecialFloat(s string) (float64, bool) {
	sign := 1.0
	rest := s
	if rest != "" && (rest[0] == '+' || rest[0] == '-') {
		if rest[0] == '-' {
			sign = -1
		}
		rest = rest[1:]
	}
	lower := strings.ToLower(rest)
	switch {
	case strings.HasPrefix(lower, "inf"):
		return math.Inf(int(sign)), true
	case strings.HasPrefix(lower, "nan"):
		return math.NaN(), true
	}
	return 0, false
}
