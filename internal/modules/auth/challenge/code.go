package challenge

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"
)

// GenerateCode returns a uniformly distributed 6-digit code in
// [100000, 999999]. Short-TTL OTP, not a long-lived secret.
func GenerateCode() (string, error) {
	// rejection sampling keeps the distribution uniform over 900000 values
	const span = 999999 - 100000 + 1
	const limit = (1 << 63) - (1<<63)%span
	var buf [8]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return "", err
		}
		v := binary.BigEndian.Uint64(buf[:]) >> 1
		if v >= limit {
			continue
		}
		return strconv.Itoa(int(v%span) + 100000), nil
	}
}
