package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// SMTPChannel delivers verification codes by email over plain SMTP. Works
// with MailHog (no auth) and regular servers (PlainAuth + STARTTLS).
type SMTPChannel struct {
	enabled bool
	host    string
	port    int
	user    string
	pass    string
	from    string
	// If true, skip TLS certificate verification (local dev only).
	InsecureSkipVerify bool
}

func NewSMTPChannel(enabled bool, host string, port int, user, pass, from string) *SMTPChannel {
	return &SMTPChannel{enabled: enabled, host: host, port: port, user: user, pass: pass, from: from}
}

func (ch *SMTPChannel) Enabled() bool {
	return ch.enabled && ch.host != "" && ch.from != ""
}

func (ch *SMTPChannel) Send(ctx context.Context, destination, code string) error {
	subject := "Your verification code"
	body := fmt.Sprintf(`<h2>Verify your account</h2><p>Your code: <b>%s</b></p><p>Enter it in the app to finish signing up.</p>`, code)
	return ch.send(ctx, destination, subject, body)
}

func (ch *SMTPChannel) send(ctx context.Context, to, subject, htmlBody string) error {
	headers := []string{
		"From: " + ch.from,
		"To: " + to,
		"Subject: " + encodeRFC2047(subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}
	msg := strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody

	var auth smtp.Auth
	if ch.user != "" {
		auth = smtp.PlainAuth("", ch.user, ch.pass, ch.host)
	}

	dialer := &net.Dialer{Timeout: 5 * time.Second}
	if deadline, ok := ctx.Deadline(); ok {
		dialer.Deadline = deadline
	}
	addr := net.JoinHostPort(ch.host, strconv.Itoa(ch.port))
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, ch.host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if err := c.Hello("localhost"); err != nil {
		return err
	}
	// STARTTLS when the server offers it; MailHog offers but does not require.
	if ok, _ := c.Extension("STARTTLS"); ok {
		cfg := &tls.Config{
			ServerName:         ch.host,
			InsecureSkipVerify: ch.InsecureSkipVerify,
		}
		if err := c.StartTLS(cfg); err != nil {
			return err
		}
		if err := c.Hello("localhost"); err != nil {
			return err
		}
	}
	if auth != nil {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(auth); err != nil {
				return err
			}
		}
	}

	if err := c.Mail(ch.from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return err
	}
	return w.Close()
}

// RFC 2047 Q-encoding for the Subject header.
func encodeRFC2047(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ':
			b.WriteByte('_')
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9'):
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "=%02X", c)
		}
	}
	return fmt.Sprintf("=?UTF-8?Q?%s?=", b.String())
}
