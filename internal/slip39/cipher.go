package slip39

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

// Four-round Feistel network encrypting the master secret under the
// passphrase, per SLIP-0039. The identifier salts the key derivation so
// identical secrets split twice never produce related shares.

const (
	baseIterationCount = 10000
	roundCount         = 4
)

func cipherSalt(identifier int) []byte {
	salt := append([]byte(nil), customization...)
	return append(salt, byte(identifier>>8), byte(identifier))
}

func roundKey(round byte, passphrase, salt, r []byte, exponent int) []byte {
	pass := append([]byte{round}, passphrase...)
	iterations := (baseIterationCount << uint(exponent)) / roundCount
	return pbkdf2.Key(pass, append(append([]byte(nil), salt...), r...), iterations, len(r), sha256.New)
}

func feistel(input, passphrase []byte, exponent, identifier int, rounds []byte) []byte {
	salt := cipherSalt(identifier)
	half := len(input) / 2
	l := append([]byte(nil), input[:half]...)
	r := append([]byte(nil), input[half:]...)
	for _, round := range rounds {
		f := roundKey(round, passphrase, salt, r, exponent)
		for i := range l {
			l[i] ^= f[i]
		}
		l, r = r, l
	}
	return append(r, l...)
}

// encryptMasterSecret turns the master secret into the encrypted master
// secret that gets split into shares.
func encryptMasterSecret(master, passphrase []byte, exponent, identifier int) []byte {
	return feistel(master, passphrase, exponent, identifier, []byte{0, 1, 2, 3})
}

// decryptMasterSecret reverses encryptMasterSecret.
func decryptMasterSecret(ems, passphrase []byte, exponent, identifier int) []byte {
	return feistel(ems, passphrase, exponent, identifier, []byte{3, 2, 1, 0})
}
