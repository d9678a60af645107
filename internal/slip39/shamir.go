package slip39

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
)

// Shamir secret sharing over GF(256), one byte at a time, with the digest
// share construction from SLIP-0039: the value at x=254 commits to the
// shared secret via a truncated HMAC so that wrong share combinations are
// detected instead of silently yielding garbage.

const (
	digestIndex = 254
	secretIndex = 255
	digestLen   = 4
)

var (
	ErrBadDigest          = errors.New("slip39: share digest verification failed")
	ErrInsufficientShares = errors.New("slip39: not enough shares to reconstruct the secret")
	ErrDuplicateIndex     = errors.New("slip39: duplicate share index")
)

// GF(256) log/exp tables for the AES polynomial, generator 3.
var (
	gfExp [255]byte
	gfLog [256]int
)

func init() {
	x := 1
	for i := 0; i < 255; i++ {
		gfExp[i] = byte(x)
		gfLog[x] = i
		x ^= x << 1
		if x&0x100 != 0 {
			x ^= 0x11B
		}
	}
}

type point struct {
	x int
	y []byte
}

// interpolate evaluates the polynomial defined by points at x using Lagrange
// interpolation in the log domain.
func interpolate(points []point, x int) ([]byte, error) {
	for _, p := range points {
		if p.x == x {
			return append([]byte(nil), p.y...), nil
		}
	}
	if len(points) == 0 {
		return nil, ErrInsufficientShares
	}
	n := len(points[0].y)

	logProd := 0
	for _, p := range points {
		if len(p.y) != n {
			return nil, fmt.Errorf("%w: mismatched value lengths", ErrInvalidShare)
		}
		logProd += gfLog[p.x^x]
	}

	result := make([]byte, n)
	for _, p := range points {
		logDenom := gfLog[p.x^x]
		for _, q := range points {
			if q.x != p.x {
				logDenom += gfLog[p.x^q.x]
			}
		}
		logBasis := (logProd - logDenom) % 255
		if logBasis < 0 {
			logBasis += 255
		}
		for k, y := range p.y {
			if y != 0 {
				result[k] ^= gfExp[(gfLog[y]+logBasis)%255]
			}
		}
	}
	return result, nil
}

func shareDigest(randomPart, secret []byte) []byte {
	mac := hmac.New(sha256.New, randomPart)
	mac.Write(secret)
	return mac.Sum(nil)[:digestLen]
}

// splitSecret produces count share values of which any threshold reconstruct
// secret. With threshold 1 every share is the secret itself.
func splitSecret(threshold, count int, secret []byte) ([][]byte, error) {
	if threshold < 1 || threshold > count || count > MaxShareCount {
		return nil, fmt.Errorf("%w: threshold %d of %d", ErrInvalidShare, threshold, count)
	}
	if len(secret) < digestLen+1 {
		return nil, fmt.Errorf("%w: secret too short", ErrInvalidShare)
	}

	shares := make([][]byte, count)
	if threshold == 1 {
		for i := range shares {
			shares[i] = append([]byte(nil), secret...)
		}
		return shares, nil
	}

	randomCount := threshold - 2
	base := make([]point, 0, threshold)
	for i := 0; i < randomCount; i++ {
		y := make([]byte, len(secret))
		if _, err := rand.Read(y); err != nil {
			return nil, err
		}
		shares[i] = y
		base = append(base, point{x: i, y: y})
	}

	randomPart := make([]byte, len(secret)-digestLen)
	if _, err := rand.Read(randomPart); err != nil {
		return nil, err
	}
	digest := append(shareDigest(randomPart, secret), randomPart...)
	base = append(base,
		point{x: digestIndex, y: digest},
		point{x: secretIndex, y: secret},
	)

	for i := randomCount; i < count; i++ {
		y, err := interpolate(base, i)
		if err != nil {
			return nil, err
		}
		shares[i] = y
	}
	return shares, nil
}

// recoverSecret reconstructs and digest-verifies the secret from exactly
// threshold distinct share points.
func recoverSecret(threshold int, points []point) ([]byte, error) {
	if len(points) < threshold {
		return nil, ErrInsufficientShares
	}
	points = points[:threshold]
	seen := make(map[int]bool, len(points))
	for _, p := range points {
		if seen[p.x] {
			return nil, ErrDuplicateIndex
		}
		seen[p.x] = true
	}

	if threshold == 1 {
		return append([]byte(nil), points[0].y...), nil
	}

	secret, err := interpolate(points, secretIndex)
	if err != nil {
		return nil, err
	}
	digestShare, err := interpolate(points, digestIndex)
	if err != nil {
		return nil, err
	}
	if !hmac.Equal(digestShare[:digestLen], shareDigest(digestShare[digestLen:], secret)) {
		return nil, ErrBadDigest
	}
	return secret, nil
}
