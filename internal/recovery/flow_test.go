package recovery_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"seedvault/internal/domain"
	"seedvault/internal/recovery"
	"seedvault/internal/slip39"
	"seedvault/internal/store"
)

// scriptedUI feeds pre-programmed answers to the flow and records what was
// displayed.
type scriptedUI struct {
	t *testing.T

	wordCount int
	words     []string
	continues []bool
	confirms  []bool

	reports       []domain.ReportKind
	successes     []string
	progressCalls int
}

func (u *scriptedUI) RequestWordCount(ctx context.Context) (int, error) {
	return u.wordCount, nil
}

func (u *scriptedUI) RequestWord(ctx context.Context, index, total int, isShare bool) (string, error) {
	u.t.Helper()
	require.NotEmpty(u.t, u.words, "flow requested more words than scripted")
	w := u.words[0]
	u.words = u.words[1:]
	return w, nil
}

func (u *scriptedUI) Report(kind domain.ReportKind, info domain.ReportInfo) error {
	u.reports = append(u.reports, kind)
	return nil
}

func (u *scriptedUI) Confirm(ctx context.Context, title, question, description string) (bool, error) {
	u.t.Helper()
	require.NotEmpty(u.t, u.confirms, "flow asked for an unscripted confirmation")
	ok := u.confirms[0]
	u.confirms = u.confirms[1:]
	return ok, nil
}

func (u *scriptedUI) ContinueRecovery(ctx context.Context, label, text, subtext string) (bool, error) {
	u.t.Helper()
	require.NotEmpty(u.t, u.continues, "flow asked for an unscripted continue")
	ok := u.continues[0]
	u.continues = u.continues[1:]
	return ok, nil
}

func (u *scriptedUI) ShowProgress(p domain.Progress) error {
	u.progressCalls++
	return nil
}

func (u *scriptedUI) ShowSuccess(message string) error {
	u.successes = append(u.successes, message)
	return nil
}

var _ domain.RecoveryUI = (*scriptedUI)(nil)

const testPassphrase = "correct horse"

func newFlow(t *testing.T, ui *scriptedUI) (*recovery.Flow, *store.FileStore) {
	t.Helper()
	fs := store.NewFileStore(t.TempDir())
	return recovery.NewFlow(ui, fs, fs, testPassphrase, zap.NewNop()), fs
}

func TestFlowRun_SeedCommitsSecret(t *testing.T) {
	ui := &scriptedUI{t: t, wordCount: 12, words: strings.Fields(validSeed12), continues: []bool{true}}
	flow, fs := newFlow(t, ui)

	require.NoError(t, flow.Run(context.Background(), false))
	require.Len(t, ui.successes, 1)

	sec, err := fs.LoadSecret(testPassphrase)
	require.NoError(t, err)
	require.Equal(t, domain.BackupBIP39, sec.BackupType)
	require.Equal(t, validSeed12, string(sec.Secret))

	// The session record must not leak into a later session.
	_, err = fs.DryRun()
	require.Error(t, err)
}

func TestFlowRun_ShareRecoveryAcrossShares(t *testing.T) {
	master, words := splitShares(t, 1, slip39.GroupParams{MemberThreshold: 2, MemberCount: 3})

	script := append(append([]string(nil), words[0][0]...), words[0][1]...)
	ui := &scriptedUI{t: t, wordCount: 20, words: script, continues: []bool{true, true}}
	flow, fs := newFlow(t, ui)

	require.NoError(t, flow.Run(context.Background(), false))
	require.Equal(t, 1, ui.progressCalls)

	sec, err := fs.LoadSecret(testPassphrase)
	require.NoError(t, err)
	require.Equal(t, domain.BackupSLIP39Basic, sec.BackupType)
	require.Equal(t, master, sec.Secret)
}

func TestFlowRun_DuplicateShareTerminates(t *testing.T) {
	_, words := splitShares(t, 1, slip39.GroupParams{MemberThreshold: 2, MemberCount: 3})

	// The duplicate is rejected four words in; no further words are read.
	script := append(append([]string(nil), words[0][0]...), words[0][0][:4]...)
	ui := &scriptedUI{t: t, wordCount: 20, words: script, continues: []bool{true, true}}
	flow, fs := newFlow(t, ui)

	err := flow.Run(context.Background(), false)
	require.ErrorIs(t, err, domain.ErrRecoveryFailed)
	require.Equal(t, []domain.ReportKind{domain.ReportShareAlreadyAdded}, ui.reports)
	require.Empty(t, ui.words)

	has, err := fs.HasSecret()
	require.NoError(t, err)
	require.False(t, has)
}

func TestFlowRun_InvalidSeedTerminates(t *testing.T) {
	ui := &scriptedUI{t: t, wordCount: 12, words: strings.Fields(invalidSeed12), continues: []bool{true}}
	flow, _ := newFlow(t, ui)

	err := flow.Run(context.Background(), false)
	require.ErrorIs(t, err, domain.ErrRecoveryFailed)
	require.Equal(t, []domain.ReportKind{domain.ReportInvalidWords}, ui.reports)
}

func TestFlowRun_AbortConfirmed(t *testing.T) {
	ui := &scriptedUI{t: t, wordCount: 12, continues: []bool{false}, confirms: []bool{true}}
	flow, _ := newFlow(t, ui)

	err := flow.Run(context.Background(), false)
	require.ErrorIs(t, err, domain.ErrRecoveryAborted)
}

func TestFlowRun_AbortDeclinedResumes(t *testing.T) {
	master, words := splitShares(t, 1, slip39.GroupParams{MemberThreshold: 2, MemberCount: 3})

	script := append(append([]string(nil), words[0][0]...), words[0][1]...)
	ui := &scriptedUI{
		t:         t,
		wordCount: 20,
		words:     script,
		// First homescreen: decline continue, then decline the abort
		// confirmation, then continue. Second homescreen (between
		// shares): continue.
		continues: []bool{false, true, true},
		confirms:  []bool{false},
	}
	flow, fs := newFlow(t, ui)

	require.NoError(t, flow.Run(context.Background(), false))

	sec, err := fs.LoadSecret(testPassphrase)
	require.NoError(t, err)
	require.Equal(t, master, sec.Secret)
}

func TestFlowRun_DryRunMatch(t *testing.T) {
	ui := &scriptedUI{t: t, wordCount: 12, words: strings.Fields(validSeed12), continues: []bool{true}}
	flow, fs := newFlow(t, ui)

	stored := domain.DeviceSecret{BackupType: domain.BackupBIP39, Secret: []byte(validSeed12)}
	require.NoError(t, fs.SaveSecret(testPassphrase, stored))

	require.NoError(t, flow.Run(context.Background(), true))
	require.Equal(t, []domain.ReportKind{domain.ReportDryRunMatch}, ui.reports)
}

func TestFlowRun_DryRunMismatchKeepsStoredSecret(t *testing.T) {
	other := "legal winner thank year wave sausage worth useful legal winner thank yellow"
	ui := &scriptedUI{t: t, wordCount: 12, words: strings.Fields(validSeed12), continues: []bool{true}}
	flow, fs := newFlow(t, ui)

	stored := domain.DeviceSecret{BackupType: domain.BackupBIP39, Secret: []byte(other)}
	require.NoError(t, fs.SaveSecret(testPassphrase, stored))

	err := flow.Run(context.Background(), true)
	require.ErrorIs(t, err, domain.ErrRecoveryFailed)
	require.Equal(t, []domain.ReportKind{domain.ReportDryRunMismatch}, ui.reports)

	sec, err := fs.LoadSecret(testPassphrase)
	require.NoError(t, err)
	require.Equal(t, other, string(sec.Secret))
}

func TestFlowRun_DryRunTypeMismatch(t *testing.T) {
	ui := &scriptedUI{t: t, wordCount: 12, words: strings.Fields(validSeed12), continues: []bool{true}}
	flow, fs := newFlow(t, ui)

	stored := domain.DeviceSecret{BackupType: domain.BackupSLIP39Basic, Secret: []byte{1, 2, 3, 4}}
	require.NoError(t, fs.SaveSecret(testPassphrase, stored))

	err := flow.Run(context.Background(), true)
	require.ErrorIs(t, err, domain.ErrRecoveryFailed)
	require.Equal(t, []domain.ReportKind{domain.ReportDryRunTypeMismatch}, ui.reports)
}

func TestFlowRun_DryRunRequiresProvisionedDevice(t *testing.T) {
	ui := &scriptedUI{t: t, wordCount: 12}
	flow, _ := newFlow(t, ui)

	err := flow.Run(context.Background(), true)
	require.ErrorIs(t, err, domain.ErrNoSecret)
}

func TestFlowRun_RefusesProvisionedDevice(t *testing.T) {
	ui := &scriptedUI{t: t, wordCount: 12}
	flow, fs := newFlow(t, ui)

	stored := domain.DeviceSecret{BackupType: domain.BackupBIP39, Secret: []byte(validSeed12)}
	require.NoError(t, fs.SaveSecret(testPassphrase, stored))

	require.Error(t, flow.Run(context.Background(), false))
}

func TestFlowRun_CancelledBetweenWords(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ui := &scriptedUI{t: t, wordCount: 12, continues: []bool{true}}
	flow, _ := newFlow(t, ui)

	err := flow.Run(ctx, false)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, ui.reports)
}
