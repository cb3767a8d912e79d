package service

import (
	"errors"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/recetario/recetario/internal/store"
)

var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// parseNumber parses raw the way a JavaScript Number() conversion does:
// surrounding whitespace is ignored, decimals with fractions and exponents,
// unsigned 0x/0o/0b integers and signed "Infinity" are accepted. Blank input
// and anything else has no numeric reading. The result may be infinite.
func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	switch s {
	case "":
		return 0, false
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	if len(s) > 2 && s[0] == '0' {
		if base, ok := radixPrefix(s[1]); ok {
			return parseRadix(s[2:], base)
		}
	}

	if !decimalPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

func radixPrefix(c byte) (int, bool) {
	switch c {
	case 'x', 'X':
		return 16, true
	case 'o', 'O':
		return 8, true
	case 'b', 'B':
		return 2, true
	}
	return 0, false
}

// parseRadix reads unsigned digits in base. Values past 2^53 round like
// JavaScript numbers do.
func parseRadix(digits string, base int) (float64, bool) {
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return 0, false
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return 0, false
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f, true
}

// RefKind tells how a user reference was resolved.
type RefKind int

const (
	// RefExternal addresses a user by the client-assigned numeric id.
	RefExternal RefKind = iota + 1
	// RefStore addresses a user by the store identifier.
	RefStore
)

// UserRef is a resolved user reference.
type UserRef struct {
	Kind     RefKind
	External float64
	StoreID  string
}

// ResolveUserRef resolves raw as a numeric external id first and as a store
// identifier second. Anything else is an invalid reference.
func ResolveUserRef(raw string) (UserRef, error) {
	if n, ok := parseNumber(raw); ok {
		return UserRef{Kind: RefExternal, External: n}, nil
	}
	if id, err := store.ParseID(raw); err == nil {
		return UserRef{Kind: RefStore, StoreID: id}, nil
	}
	return UserRef{}, invalid("id inválido")
}

// matchable reports whether the reference can select a stored user. Infinite
// external ids are well-formed but never stored.
func (r UserRef) matchable() bool {
	return r.Kind == RefStore || finite(r.External)
}

// filter returns the store filter selecting the referenced user.
func (r UserRef) filter() store.Filter {
	if r.Kind == RefStore {
		return store.Where(store.ByID(r.StoreID))
	}
	return store.Where(store.Eq("id", r.External))
}

// CoerceNumber converts a decoded JSON value to a number the way JavaScript's
// Number() does for the shapes a request body can carry. Values with no
// numeric reading yield NaN.
func CoerceNumber(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case bool:
		if n {
			return 1
		}
		return 0
	case float64:
		return n
	case string:
		if strings.TrimSpace(n) == "" {
			return 0
		}
		if f, ok := parseNumber(n); ok {
			return f
		}
	}
	return math.NaN()
}

// finite reports whether n can be stored and matched as a number.
func finite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}
