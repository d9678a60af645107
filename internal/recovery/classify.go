package recovery

import (
	"fmt"

	"seedvault/internal/slip39"
)

// Encoding is the word-count-derived scheme governing validation rules.
type Encoding int

const (
	// EncodingBIP39 is a single mnemonic seed.
	EncodingBIP39 Encoding = iota + 1
	// EncodingSLIP39 is a share of a Shamir backup.
	EncodingSLIP39
)

// IsShare reports whether the encoding is share-based.
func (e Encoding) IsShare() bool { return e == EncodingSLIP39 }

// WordCounts lists every word count the recovery flow accepts, in the order
// offered to the operator.
var WordCounts = []int{12, 18, 20, 24, 33}

// Classify maps the expected word count of one seed or share to its
// encoding. Counts outside WordCounts are a caller precondition violation.
func Classify(wordCount int) (Encoding, error) {
	switch wordCount {
	case 12, 18, 24:
		return EncodingBIP39, nil
	case slip39.ShareWords128, slip39.ShareWords256:
		return EncodingSLIP39, nil
	default:
		return 0, fmt.Errorf("recovery: unsupported word count %d", wordCount)
	}
}
