package slip39

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sort"
)

const defaultIterationExponent = 1

// GroupParams describes one share group passed to Split.
type GroupParams struct {
	MemberThreshold int
	MemberCount     int
}

func randomIdentifier() (int, error) {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return int(binary.BigEndian.Uint16(b[:])) & (1<<idBits - 1), nil
}

// Split encrypts master under passphrase and splits the result into member
// shares, grouped per groups. Any groupThreshold reconstructed groups
// recover the secret.
func Split(master, passphrase []byte, groupThreshold int, groups []GroupParams) ([][]Share, error) {
	if len(master)*8 < minStrengthBits || len(master)%2 != 0 {
		return nil, fmt.Errorf("%w: master secret must be at least %d bits and an even byte count",
			ErrInvalidShare, minStrengthBits)
	}
	if groupThreshold < 1 || groupThreshold > len(groups) || len(groups) > MaxShareCount {
		return nil, fmt.Errorf("%w: group threshold %d of %d groups",
			ErrInvalidShare, groupThreshold, len(groups))
	}
	for _, g := range groups {
		if g.MemberThreshold == 1 && g.MemberCount > 1 {
			return nil, fmt.Errorf("%w: a 1-of-%d group is not allowed, use several 1-of-1 groups",
				ErrInvalidShare, g.MemberCount)
		}
	}

	identifier, err := randomIdentifier()
	if err != nil {
		return nil, err
	}
	ems := encryptMasterSecret(master, passphrase, defaultIterationExponent, identifier)

	groupSecrets, err := splitSecret(groupThreshold, len(groups), ems)
	if err != nil {
		return nil, err
	}

	out := make([][]Share, len(groups))
	for gi, g := range groups {
		members, err := splitSecret(g.MemberThreshold, g.MemberCount, groupSecrets[gi])
		if err != nil {
			return nil, err
		}
		out[gi] = make([]Share, g.MemberCount)
		for mi, value := range members {
			out[gi][mi] = Share{
				Prefix: Prefix{
					Identifier:        identifier,
					IterationExponent: defaultIterationExponent,
					GroupIndex:        gi,
					GroupThreshold:    groupThreshold,
					GroupCount:        len(groups),
					MemberIndex:       mi,
					MemberThreshold:   g.MemberThreshold,
				},
				Value: value,
			}
		}
	}
	return out, nil
}

// Combine reconstructs the master secret from member shares spanning enough
// satisfied groups. Shares beyond a group's member threshold are ignored.
func Combine(shares []Share, passphrase []byte) ([]byte, error) {
	if len(shares) == 0 {
		return nil, ErrInsufficientShares
	}
	ref := shares[0]

	byGroup := make(map[int][]Share)
	for _, s := range shares {
		if s.Identifier != ref.Identifier ||
			s.IterationExponent != ref.IterationExponent ||
			s.GroupThreshold != ref.GroupThreshold ||
			s.GroupCount != ref.GroupCount ||
			len(s.Value) != len(ref.Value) {
			return nil, fmt.Errorf("%w: shares belong to different secrets", ErrInvalidShare)
		}
		byGroup[s.GroupIndex] = append(byGroup[s.GroupIndex], s)
	}

	var groupPoints []point
	for gi, members := range byGroup {
		threshold := members[0].MemberThreshold
		memberPoints := make([]point, 0, len(members))
		seen := make(map[int]bool, len(members))
		for _, m := range members {
			if m.MemberThreshold != threshold {
				return nil, fmt.Errorf("%w: conflicting member thresholds in group %d",
					ErrInvalidShare, gi)
			}
			if seen[m.MemberIndex] {
				return nil, ErrDuplicateIndex
			}
			seen[m.MemberIndex] = true
			memberPoints = append(memberPoints, point{x: m.MemberIndex, y: m.Value})
		}
		if len(memberPoints) < threshold {
			continue // group not yet satisfied
		}
		secret, err := recoverSecret(threshold, memberPoints)
		if err != nil {
			return nil, err
		}
		groupPoints = append(groupPoints, point{x: gi, y: secret})
	}

	if len(groupPoints) < ref.GroupThreshold {
		return nil, ErrInsufficientShares
	}
	sort.Slice(groupPoints, func(i, j int) bool { return groupPoints[i].x < groupPoints[j].x })

	ems, err := recoverSecret(ref.GroupThreshold, groupPoints)
	if err != nil {
		return nil, err
	}
	return decryptMasterSecret(ems, passphrase, ref.IterationExponent, ref.Identifier), nil
}
