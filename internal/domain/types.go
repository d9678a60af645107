package domain

// BackupType identifies how the device's stored secret was encoded when it
// was created or recovered.
type BackupType int

const (
	// BackupNone means the device holds no secret, or the type is not yet known.
	BackupNone BackupType = iota
	// BackupBIP39 is a single mnemonic seed.
	BackupBIP39
	// BackupSLIP39Basic is a Shamir backup with a single share group.
	BackupSLIP39Basic
	// BackupSLIP39Advanced is a Shamir backup split across multiple groups.
	BackupSLIP39Advanced
)

// String returns a human-readable name for the backup type.
func (t BackupType) String() string {
	switch t {
	case BackupBIP39:
		return "BIP-39 seed"
	case BackupSLIP39Basic:
		return "SLIP-39 (single group)"
	case BackupSLIP39Advanced:
		return "SLIP-39 (multiple groups)"
	default:
		return "none"
	}
}

// IsShare reports whether the backup type is share-based.
func (t BackupType) IsShare() bool {
	return t == BackupSLIP39Basic || t == BackupSLIP39Advanced
}

// DeviceSecret is the durable secret committed after a successful recovery.
// For BIP-39 the secret is the mnemonic itself; for SLIP-39 it is the
// reconstructed master secret.
type DeviceSecret struct {
	BackupType BackupType `json:"backup_type"`
	Secret     []byte     `json:"secret"`
}

// ReportKind enumerates the outcome screens shown to the operator.
type ReportKind int

const (
	// ReportShareAlreadyAdded - the share was entered earlier in this session.
	ReportShareAlreadyAdded ReportKind = iota
	// ReportIdentifierMismatch - the share belongs to a different Shamir backup.
	ReportIdentifierMismatch
	// ReportGroupThresholdReached - no further shares are needed from this group.
	ReportGroupThresholdReached
	// ReportInvalidWords - the completed seed or share failed validation.
	ReportInvalidWords
	// ReportDryRunMatch - the candidate secret matches the stored one.
	ReportDryRunMatch
	// ReportDryRunMismatch - the candidate secret is valid but differs.
	ReportDryRunMismatch
	// ReportDryRunTypeMismatch - the stored secret uses another backup mechanism.
	ReportDryRunTypeMismatch
)

// ReportInfo carries context that selects the wording of an outcome screen.
type ReportInfo struct {
	// WordCount of the seed or share being entered, when known.
	WordCount int
	// IsShare selects share wording over seed wording.
	IsShare bool
}

// GroupProgress summarizes how far one share group has progressed.
type GroupProgress struct {
	Accepted        int
	MemberThreshold int
}

// Progress describes the overall state of a share-based recovery, for
// display between shares.
type Progress struct {
	GroupThreshold int
	// Groups maps group index to its progress; untouched groups are absent.
	Groups map[int]GroupProgress
}
