package slip39

// rs1024 is the Reed-Solomon style checksum over GF(1024) defined by
// SLIP-0039. It detects any error affecting at most three words.

// customization personalizes the checksum to the share format.
const customization = "shamir"

var rs1024Gen = [10]uint32{
	0x00E0E040, 0x01C1C080, 0x03838100, 0x07070200, 0x0E0E0009,
	0x1C0C2412, 0x38086C24, 0x3090FC48, 0x21B1F890, 0x03F3F120,
}

func rs1024Polymod(values []int) uint32 {
	chk := uint32(1)
	for _, v := range values {
		b := chk >> 20
		chk = (chk&0xFFFFF)<<10 ^ uint32(v)
		for i := 0; i < 10; i++ {
			if (b>>uint(i))&1 != 0 {
				chk ^= rs1024Gen[i]
			}
		}
	}
	return chk
}

func rs1024Values(data []int, pad int) []int {
	values := make([]int, 0, len(customization)+len(data)+pad)
	for _, c := range customization {
		values = append(values, int(c))
	}
	values = append(values, data...)
	for i := 0; i < pad; i++ {
		values = append(values, 0)
	}
	return values
}

// rs1024Checksum returns the three checksum words for data.
func rs1024Checksum(data []int) []int {
	polymod := rs1024Polymod(rs1024Values(data, checksumWords)) ^ 1
	out := make([]int, checksumWords)
	for i := 0; i < checksumWords; i++ {
		out[i] = int(polymod >> uint(10*(checksumWords-i-1)) & 1023)
	}
	return out
}

// rs1024Verify reports whether data (including its trailing checksum words)
// has a valid checksum.
func rs1024Verify(data []int) bool {
	return rs1024Polymod(rs1024Values(data, 0)) == 1
}
