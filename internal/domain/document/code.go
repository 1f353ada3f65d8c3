package document

import (
	"fmt"
	"strconv"
	"strings"
)

// Document code prefixes, one per document type
const (
	CodePrefixQuote         = "COT"
	CodePrefixSale          = "VTA"
	CodePrefixPurchaseOrder = "OC"
)

// FormatCode renders a document code as <PREFIX>-<4-digit-seq>-<year>,
// e.g. VTA-0012-2026.
func FormatCode(prefix string, sequence, year int) string {
	return fmt.Sprintf("%s-%04d-%d", prefix, sequence, year)
}

// CodePattern returns the LIKE pattern matching all codes of a prefix for
// one calendar year. The year scoping makes sequences restart at 0001 every
// January.
func CodePattern(prefix string, year int) string {
	return fmt.Sprintf("%s-%%-%d", prefix, year)
}

// ParseSequence extracts the numeric middle segment of a code. Malformed or
// empty codes yield 0, so the next generated sequence is 1.
func ParseSequence(code string) int {
	parts := strings.Split(code, "-")
	if len(parts) < 2 {
		return 0
	}
	seq, err := strconv.Atoi(parts[1])
	if err != nil || seq < 0 {
		return 0
	}
	return seq
}

// NextCode computes the successor of the most recent code for a prefix and
// year. lastCode is empty when no document exists yet for that year.
func NextCode(prefix, lastCode string, year int) string {
	return FormatCode(prefix, ParseSequence(lastCode)+1, year)
}
