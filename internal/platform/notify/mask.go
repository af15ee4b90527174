package notify

import "strings"

// Mask redacts a destination for logs and client-facing confirmations. Never
// used for matching.
func Mask(m Method, destination string) string {
	if m == MethodSMS {
		return maskPhone(destination)
	}
	return maskEmail(destination)
}

func maskEmail(addr string) string {
	at := strings.LastIndex(addr, "@")
	if at < 1 {
		return "***"
	}
	return addr[:1] + "***" + addr[at:]
}

func maskPhone(number string) string {
	var digits strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) < 4 {
		return "***"
	}
	return "***-***-" + d[len(d)-4:]
}
