// Package fraction implements the treasury "32nds with 8ths" fractional
// tick grammar: W-XYZ means W + (8*XY + Z)/256 dollars, where XY is a
// two-digit 32nds count and Z is an eighths-of-a-32nd digit 0..7, or '+'
// meaning 4. A bare decimal is also accepted on parse.
package fraction

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"bond-trading-pipeline/internal/errors"
)

// Parse converts a fractional-tick or bare-decimal string to a float64.
func Parse(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, &errors.ParseError{Source: "fraction", Line: s, Reason: "empty value"}
	}

	dash := strings.IndexByte(trimmed, '-')
	if dash < 0 {
		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, &errors.ParseError{Source: "fraction", Line: s, Reason: "not a number"}
		}
		return v, nil
	}

	wholePart, rest := trimmed[:dash], trimmed[dash+1:]
	whole, err := strconv.Atoi(wholePart)
	if err != nil {
		return 0, &errors.ParseError{Source: "fraction", Line: s, Reason: "bad whole-dollar part"}
	}
	if len(rest) < 2 {
		return 0, &errors.ParseError{Source: "fraction", Line: s, Reason: "missing 32nds part"}
	}

	thirtySeconds, err := strconv.Atoi(rest[:2])
	if err != nil || thirtySeconds < 0 || thirtySeconds > 31 {
		return 0, &errors.ParseError{Source: "fraction", Line: s, Reason: "bad 32nds part"}
	}

	eighths := 0
	if tail := rest[2:]; tail != "" {
		if tail == "+" {
			eighths = 4
		} else {
			eighths, err = strconv.Atoi(tail)
			if err != nil || eighths < 0 || eighths > 7 {
				return 0, &errors.ParseError{Source: "fraction", Line: s, Reason: "bad eighths part"}
			}
		}
	}

	value := float64(whole) + float64(8*thirtySeconds+eighths)/256.0
	return value, nil
}

// Format renders x using the "{whole}-{32nds:02d}{eighths}" convention used
// by the GUI throttle and output sinks: eighths 4 renders as "+", 0 renders
// as nothing, anything else renders as the single digit.
func Format(x float64) string {
	whole := math.Floor(x)
	ticks256 := math.Round((x - whole) * 256)
	if ticks256 == 256 {
		ticks256 = 0
		whole++
	}

	thirtySeconds := int(ticks256) / 8
	eighths := int(ticks256) % 8

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d-%02d", int(whole), thirtySeconds)
	switch {
	case eighths == 4:
		sb.WriteString("+")
	case eighths != 0:
		fmt.Fprintf(&sb, "%d", eighths)
	}
	return sb.String()
}
