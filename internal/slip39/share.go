package slip39

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const (
	radixBits = 10

	idBits  = 15
	expBits = 5

	// idExpWords carry the identifier and iteration exponent.
	idExpWords = 2
	// prefixWords carry identifier, exponent, and the group/member
	// parameters; a share's placement is fully known after this many words.
	prefixWords = 4

	checksumWords = 3
	metadataWords = prefixWords + checksumWords

	minStrengthBits = 128

	// MaxShareCount is the maximum number of shares per group (and of
	// groups per secret), bounded by the 4-bit index fields.
	MaxShareCount = 16

	// ShareWords128 and ShareWords256 are the share lengths for 128-bit
	// and 256-bit master secrets.
	ShareWords128 = 20
	ShareWords256 = 33
)

var (
	ErrInvalidWord     = errors.New("slip39: word not in wordlist")
	ErrInvalidChecksum = errors.New("slip39: invalid share checksum")
	ErrInvalidLength   = errors.New("slip39: invalid share length")
	ErrInvalidPadding  = errors.New("slip39: share padding bits are not zero")
	ErrInvalidShare    = errors.New("slip39: inconsistent share parameters")
)

// Prefix holds the share parameters packed into the first four words.
type Prefix struct {
	Identifier        int
	IterationExponent int
	GroupIndex        int
	GroupThreshold    int
	GroupCount        int
	MemberIndex       int
	MemberThreshold   int
}

// Share is one fully parsed SLIP-0039 member share.
type Share struct {
	Prefix
	Value []byte
}

// ValidWordCount reports whether n words can form a share.
func ValidWordCount(n int) bool {
	return n == ShareWords128 || n == ShareWords256
}

// ParsePrefix decodes the share parameters from the first four words of a
// share in progress. The checksum cannot be verified this early, so the
// result is tentative until ParseShare succeeds on the full mnemonic.
func ParsePrefix(words []string) (Prefix, error) {
	if len(words) < prefixWords {
		return Prefix{}, fmt.Errorf("%w: need %d words for a prefix, have %d",
			ErrInvalidLength, prefixWords, len(words))
	}
	indices, err := wordsToIndices(words[:prefixWords])
	if err != nil {
		return Prefix{}, err
	}
	return prefixFromIndices(indices), nil
}

func prefixFromIndices(w []int) Prefix {
	return Prefix{
		Identifier:        w[0]<<5 | w[1]>>5,
		IterationExponent: w[1] & 0x1F,
		GroupIndex:        w[2] >> 6,
		GroupThreshold:    (w[2]>>2)&0xF + 1,
		GroupCount:        ((w[2]&0x3)<<2 | w[3]>>8) + 1,
		MemberIndex:       (w[3] >> 4) & 0xF,
		MemberThreshold:   w[3]&0xF + 1,
	}
}

func (p Prefix) prefixIndices() []int {
	w0 := p.Identifier >> 5
	w1 := (p.Identifier&0x1F)<<5 | p.IterationExponent
	w2 := p.GroupIndex<<6 | (p.GroupThreshold-1)<<2 | (p.GroupCount-1)>>2
	w3 := ((p.GroupCount-1)&0x3)<<8 | p.MemberIndex<<4 | (p.MemberThreshold - 1)
	return []int{w0, w1, w2, w3}
}

// ParseShare decodes and checksums a complete share mnemonic.
func ParseShare(words []string) (Share, error) {
	if !ValidWordCount(len(words)) {
		return Share{}, fmt.Errorf("%w: %d words", ErrInvalidLength, len(words))
	}
	indices, err := wordsToIndices(words)
	if err != nil {
		return Share{}, err
	}
	if !rs1024Verify(indices) {
		return Share{}, ErrInvalidChecksum
	}

	prefix := prefixFromIndices(indices[:prefixWords])
	if prefix.GroupThreshold > prefix.GroupCount {
		return Share{}, fmt.Errorf("%w: group threshold %d exceeds group count %d",
			ErrInvalidShare, prefix.GroupThreshold, prefix.GroupCount)
	}

	value, err := decodeValue(indices[prefixWords : len(indices)-checksumWords])
	if err != nil {
		return Share{}, err
	}
	return Share{Prefix: prefix, Value: value}, nil
}

// Words encodes the share back into its mnemonic words.
func (s Share) Words() ([]string, error) {
	valueIndices, err := encodeValue(s.Value)
	if err != nil {
		return nil, err
	}
	data := append(s.prefixIndices(), valueIndices...)
	data = append(data, rs1024Checksum(data)...)
	return indicesToWords(data), nil
}

// Mnemonic returns the space-joined share words.
func (s Share) Mnemonic() (string, error) {
	words, err := s.Words()
	if err != nil {
		return "", err
	}
	return strings.Join(words, " "), nil
}

// decodeValue unpacks 10-bit words into the share value, rejecting non-zero
// padding bits.
func decodeValue(indices []int) ([]byte, error) {
	bits := len(indices) * radixBits
	padding := bits % 16
	if padding >= radixBits {
		return nil, ErrInvalidLength
	}
	byteLen := (bits - padding) / 8
	if byteLen*8 < minStrengthBits {
		return nil, ErrInvalidLength
	}

	acc := new(big.Int)
	for _, w := range indices {
		acc.Lsh(acc, radixBits)
		acc.Or(acc, big.NewInt(int64(w)))
	}
	if acc.BitLen() > byteLen*8 {
		return nil, ErrInvalidPadding
	}
	out := make([]byte, byteLen)
	acc.FillBytes(out)
	return out, nil
}

// encodeValue packs the share value into 10-bit words with zero padding.
func encodeValue(value []byte) ([]int, error) {
	bits := len(value) * 8
	if bits < minStrengthBits || bits%16 != 0 {
		return nil, fmt.Errorf("%w: %d-byte value", ErrInvalidLength, len(value))
	}
	wordCount := (bits + radixBits - 1) / radixBits

	acc := new(big.Int).SetBytes(value)
	mask := big.NewInt(radix - 1)
	out := make([]int, wordCount)
	for i := wordCount - 1; i >= 0; i-- {
		out[i] = int(new(big.Int).And(acc, mask).Int64())
		acc.Rsh(acc, radixBits)
	}
	return out, nil
}
