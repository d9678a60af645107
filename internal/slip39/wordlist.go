package slip39

import (
	_ "embed"
	"fmt"
	"strings"
)

// radix is the size of the share wordlist; each word encodes 10 bits.
const radix = 1024

//go:embed wordlist.txt
var wordlistRaw string

var (
	wordlist  []string
	wordIndex map[string]int
)

func init() {
	wordlist = strings.Fields(wordlistRaw)
	if len(wordlist) != radix {
		panic(fmt.Sprintf("slip39: embedded wordlist has %d words, want %d", len(wordlist), radix))
	}
	wordIndex = make(map[string]int, radix)
	for i, w := range wordlist {
		wordIndex[w] = i
	}
}

// KnownWord reports whether w belongs to the share wordlist.
func KnownWord(w string) bool {
	_, ok := wordIndex[w]
	return ok
}

func wordsToIndices(words []string) ([]int, error) {
	out := make([]int, len(words))
	for i, w := range words {
		idx, ok := wordIndex[w]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWord, w)
		}
		out[i] = idx
	}
	return out, nil
}

func indicesToWords(indices []int) []string {
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = wordlist[idx]
	}
	return out
}
