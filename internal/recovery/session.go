package recovery

import (
	"strings"

	"github.com/tyler-smith/go-bip39"

	"seedvault/internal/domain"
	"seedvault/internal/slip39"
)

// ResultKind classifies the outcome of checking a word sequence. The kinds
// are mutually exclusive and total: every Check returns exactly one.
type ResultKind int

const (
	// Incomplete means more input is needed: more words for the current
	// seed or share or, when ShareAccepted is set, the next share.
	Incomplete ResultKind = iota
	// Accepted means the full secret has been recovered.
	Accepted
	// AlreadyAdded means the share was entered earlier in this session.
	AlreadyAdded
	// IdentifierMismatch means the share belongs to a different backup.
	IdentifierMismatch
	// ThresholdReached means the share's group needs no further shares.
	ThresholdReached
	// Invalid means the words fail validation intrinsic to the encoding.
	Invalid
)

// Result is the outcome of one validity check.
type Result struct {
	Kind ResultKind
	// Secret is set when Kind is Accepted: the mnemonic itself for BIP-39,
	// the reconstructed master secret for SLIP-39.
	Secret []byte
	// ShareAccepted is set on an Incomplete result when a complete share
	// was just consumed, so the caller should collect the next share.
	ShareAccepted bool
	// Progress describes group completion for share-based sessions.
	Progress domain.Progress
}

// Session owns the validation state of one recovery attempt: the accepted
// shares so far and the threshold bookkeeping derived from them. It must
// never be reused across recovery attempts.
type Session struct {
	wordCount  int
	encoding   Encoding
	dryRun     bool
	backupType domain.BackupType

	shares []slip39.Share
	// refWords holds the first accepted share's leading words; mismatches
	// against them surface before a candidate share is fully typed.
	refWords []string
}

// NewSession classifies wordCount and returns a fresh session. The dry-run
// flag is fixed for the session's lifetime.
func NewSession(wordCount int, dryRun bool) (*Session, error) {
	enc, err := Classify(wordCount)
	if err != nil {
		return nil, err
	}
	s := &Session{wordCount: wordCount, encoding: enc, dryRun: dryRun}
	if enc == EncodingBIP39 {
		s.backupType = domain.BackupBIP39
	}
	return s, nil
}

// WordCount returns the expected word count per seed or share.
func (s *Session) WordCount() int { return s.wordCount }

// Encoding returns the session's word encoding.
func (s *Session) Encoding() Encoding { return s.encoding }

// DryRun reports whether this session validates without mutating state.
func (s *Session) DryRun() bool { return s.dryRun }

// BackupType returns the backup type, once known. For share-based sessions
// it is BackupNone until the first share is accepted.
func (s *Session) BackupType() domain.BackupType { return s.backupType }

// ShareCount returns how many shares have been accepted so far.
func (s *Session) ShareCount() int { return len(s.shares) }

// Check validates the word sequence typed so far for the current seed or
// share. Sequences shorter than the expected count mutate nothing; a
// full-length valid share is appended and the thresholds recomputed.
func (s *Session) Check(words []string) Result {
	if len(words) > s.wordCount {
		return Result{Kind: Invalid}
	}
	if s.encoding == EncodingBIP39 {
		return s.checkSeed(words)
	}
	return s.checkShare(words)
}

func (s *Session) checkSeed(words []string) Result {
	if len(words) < s.wordCount {
		return Result{Kind: Incomplete}
	}
	mnemonic := strings.Join(words, " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return Result{Kind: Invalid}
	}
	return Result{Kind: Accepted, Secret: []byte(mnemonic)}
}

func (s *Session) checkShare(words []string) Result {
	for _, w := range words {
		if !slip39.KnownWord(w) {
			return Result{Kind: Invalid}
		}
	}
	if len(words) < s.wordCount {
		return s.checkSharePrefix(words)
	}

	share, err := slip39.ParseShare(words)
	if err != nil {
		return Result{Kind: Invalid}
	}
	if r, rejected := s.classifyCandidate(share.Prefix); rejected {
		return r
	}
	return s.accept(share)
}

// checkSharePrefix runs the incremental checks possible on a partial share.
// The identifier words must match the established backup from the first
// word on, and once four words are in, the share's group and member
// placement is known and can be classified in full.
func (s *Session) checkSharePrefix(words []string) Result {
	if len(s.shares) == 0 {
		return Result{Kind: Incomplete}
	}

	// Identifier and iteration exponent span the first two words; in a
	// single-group backup the third word (group parameters) is fixed too.
	fixed := 2
	if s.backupType == domain.BackupSLIP39Basic {
		fixed = 3
	}
	for i, w := range words {
		if i >= fixed {
			break
		}
		if w != s.refWords[i] {
			return Result{Kind: IdentifierMismatch}
		}
	}

	if len(words) >= 4 {
		prefix, err := slip39.ParsePrefix(words)
		if err != nil {
			return Result{Kind: Invalid}
		}
		if r, rejected := s.classifyCandidate(prefix); rejected {
			return r
		}
	}
	return Result{Kind: Incomplete}
}

// classifyCandidate rejects candidates that conflict with the accepted
// shares. It never mutates the session.
func (s *Session) classifyCandidate(p slip39.Prefix) (Result, bool) {
	if len(s.shares) == 0 {
		return Result{}, false
	}
	ref := s.shares[0].Prefix
	if p.Identifier != ref.Identifier ||
		p.IterationExponent != ref.IterationExponent ||
		p.GroupThreshold != ref.GroupThreshold ||
		p.GroupCount != ref.GroupCount {
		return Result{Kind: IdentifierMismatch}, true
	}

	inGroup := 0
	groupThresholdOf := 0
	for _, sh := range s.shares {
		if sh.GroupIndex != p.GroupIndex {
			continue
		}
		if sh.MemberIndex == p.MemberIndex {
			return Result{Kind: AlreadyAdded}, true
		}
		inGroup++
		groupThresholdOf = sh.MemberThreshold
	}

	if inGroup > 0 {
		if p.MemberThreshold != groupThresholdOf {
			return Result{Kind: IdentifierMismatch}, true
		}
		if inGroup >= groupThresholdOf {
			return Result{Kind: ThresholdReached}, true
		}
		return Result{}, false
	}
	if s.satisfiedGroups() >= ref.GroupThreshold {
		return Result{Kind: ThresholdReached}, true
	}
	return Result{}, false
}

func (s *Session) accept(share slip39.Share) Result {
	if len(s.shares) == 0 {
		if words, err := share.Words(); err == nil {
			s.refWords = words[:4]
		}
		if share.GroupCount == 1 {
			s.backupType = domain.BackupSLIP39Basic
		} else {
			s.backupType = domain.BackupSLIP39Advanced
		}
	}
	s.shares = append(s.shares, share)

	if s.satisfiedGroups() >= share.GroupThreshold {
		secret, err := slip39.Combine(s.shares, nil)
		if err != nil {
			return Result{Kind: Invalid, Progress: s.progress()}
		}
		return Result{Kind: Accepted, Secret: secret, Progress: s.progress()}
	}
	return Result{Kind: Incomplete, ShareAccepted: true, Progress: s.progress()}
}

// satisfiedGroups counts the groups whose member threshold is met.
func (s *Session) satisfiedGroups() int {
	counts := make(map[int]int)
	thresholds := make(map[int]int)
	for _, sh := range s.shares {
		counts[sh.GroupIndex]++
		thresholds[sh.GroupIndex] = sh.MemberThreshold
	}
	satisfied := 0
	for gi, n := range counts {
		if n >= thresholds[gi] {
			satisfied++
		}
	}
	return satisfied
}

func (s *Session) progress() domain.Progress {
	p := domain.Progress{Groups: make(map[int]domain.GroupProgress)}
	if len(s.shares) == 0 {
		return p
	}
	p.GroupThreshold = s.shares[0].GroupThreshold
	for _, sh := range s.shares {
		gp := p.Groups[sh.GroupIndex]
		gp.Accepted++
		gp.MemberThreshold = sh.MemberThreshold
		p.Groups[sh.GroupIndex] = gp
	}
	return p
}
