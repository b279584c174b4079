package ticket

import (
	"encoding/json"
	"math/big"
	"strconv"
	"strings"
)

// FormatBusinessID renders a business id as read from the store. The store
// hands back auto-numbers as JSON numbers, sometimes with a fractional part.
func FormatBusinessID(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return ""
	}
}

// BusinessIDMatches reports whether a back-reference read from a secondary
// record refers to the requested business id. Besides exact equality it treats
// integral decimals as equal ("65" and "65.00"), which is how the store
// formats number columns. "165" never matches "65".
func BusinessIDMatches(candidate, requested string) bool {
	candidate = strings.TrimSpace(candidate)
	requested = strings.TrimSpace(requested)
	if candidate == "" || requested == "" {
		return false
	}
	if candidate == requested {
		return true
	}
	c, ok := integralValue(candidate)
	if !ok {
		return false
	}
	r, ok := integralValue(requested)
	if !ok {
		return false
	}
	return c.Cmp(r) == 0
}

// integralValue parses s as a decimal whose fractional digits are all zero.
// The whole part must be canonical: no sign and no leading zeros.
func integralValue(s string) (*big.Int, bool) {
	whole, frac, hasFrac := strings.Cut(s, ".")
	if !canonicalDigits(whole) {
		return nil, false
	}
	if hasFrac {
		if frac == "" || strings.Trim(frac, "0") != "" {
			return nil, false
		}
	}
	n, ok := new(big.Int).SetString(whole, 10)
	return n, ok
}

// BackReferenceValue converts a business id to the integer the secondary
// collections store. ok is false when the id is absent or not integral.
func BackReferenceValue(businessID string) (int, bool) {
	n, ok := integralValue(strings.TrimSpace(businessID))
	if !ok || !n.IsInt64() {
		return 0, false
	}
	return int(n.Int64()), true
}

// canonicalDigits reports whether s matches 0|[1-9][0-9]*.
func canonicalDigits(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
