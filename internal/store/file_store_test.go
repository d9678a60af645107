package store

import (
	"bytes"
	"errors"
	"testing"

	"seedvault/internal/domain"
)

func TestSaveLoadSecret(t *testing.T) {
	s := NewFileStore(t.TempDir())

	in := domain.DeviceSecret{
		BackupType: domain.BackupSLIP39Basic,
		Secret:     []byte{0xde, 0xad, 0xbe, 0xef},
	}
	if err := s.SaveSecret("pw", in); err != nil {
		t.Fatalf("SaveSecret: %v", err)
	}

	out, err := s.LoadSecret("pw")
	if err != nil {
		t.Fatalf("LoadSecret: %v", err)
	}
	if out.BackupType != in.BackupType {
		t.Fatalf("backup type = %v, want %v", out.BackupType, in.BackupType)
	}
	if !bytes.Equal(out.Secret, in.Secret) {
		t.Fatalf("secret mismatch")
	}
}

func TestLoadSecretWrongPassphrase(t *testing.T) {
	s := NewFileStore(t.TempDir())

	sec := domain.DeviceSecret{BackupType: domain.BackupBIP39, Secret: []byte("words")}
	if err := s.SaveSecret("pw", sec); err != nil {
		t.Fatalf("SaveSecret: %v", err)
	}
	if _, err := s.LoadSecret("not-pw"); err == nil {
		t.Fatal("expected decryption failure")
	}
}

func TestLoadSecretMissing(t *testing.T) {
	s := NewFileStore(t.TempDir())

	_, err := s.LoadSecret("pw")
	if !errors.Is(err, domain.ErrNoSecret) {
		t.Fatalf("err = %v, want ErrNoSecret", err)
	}
}

func TestHasAndDeleteSecret(t *testing.T) {
	s := NewFileStore(t.TempDir())

	if has, err := s.HasSecret(); err != nil || has {
		t.Fatalf("HasSecret on empty store = %v, %v", has, err)
	}

	sec := domain.DeviceSecret{BackupType: domain.BackupBIP39, Secret: []byte("words")}
	if err := s.SaveSecret("pw", sec); err != nil {
		t.Fatalf("SaveSecret: %v", err)
	}
	if has, _ := s.HasSecret(); !has {
		t.Fatal("HasSecret = false after save")
	}

	if err := s.DeleteSecret(); err != nil {
		t.Fatalf("DeleteSecret: %v", err)
	}
	if has, _ := s.HasSecret(); has {
		t.Fatal("HasSecret = true after delete")
	}

	// Deleting an absent secret is a no-op.
	if err := s.DeleteSecret(); err != nil {
		t.Fatalf("repeated DeleteSecret: %v", err)
	}
}

func TestOverwriteSecret(t *testing.T) {
	s := NewFileStore(t.TempDir())

	first := domain.DeviceSecret{BackupType: domain.BackupBIP39, Secret: []byte("one")}
	second := domain.DeviceSecret{BackupType: domain.BackupSLIP39Advanced, Secret: []byte("two")}
	if err := s.SaveSecret("pw", first); err != nil {
		t.Fatalf("SaveSecret: %v", err)
	}
	if err := s.SaveSecret("pw", second); err != nil {
		t.Fatalf("SaveSecret: %v", err)
	}

	out, err := s.LoadSecret("pw")
	if err != nil {
		t.Fatalf("LoadSecret: %v", err)
	}
	if out.BackupType != second.BackupType || !bytes.Equal(out.Secret, second.Secret) {
		t.Fatalf("got %+v, want %+v", out, second)
	}
}

func TestRecoverySessionLifecycle(t *testing.T) {
	s := NewFileStore(t.TempDir())

	if _, err := s.DryRun(); err == nil {
		t.Fatal("DryRun without a session should fail")
	}

	if err := s.BeginRecovery(true); err != nil {
		t.Fatalf("BeginRecovery: %v", err)
	}
	dry, err := s.DryRun()
	if err != nil {
		t.Fatalf("DryRun: %v", err)
	}
	if !dry {
		t.Fatal("dry-run flag not persisted")
	}

	if err := s.EndRecovery(); err != nil {
		t.Fatalf("EndRecovery: %v", err)
	}
	if _, err := s.DryRun(); err == nil {
		t.Fatal("session record survived EndRecovery")
	}

	// Ending twice is a no-op.
	if err := s.EndRecovery(); err != nil {
		t.Fatalf("repeated EndRecovery: %v", err)
	}
}
