// Package email delivers the rendered digest over SMTP with implicit TLS
// (SMTPS, typically port 465), which net/smtp.SendMail cannot speak.
package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"

	"journaldigest/internal/config"
	"journaldigest/internal/ports"
)

// Notifier sends one HTML message per run to the whole distribution list.
type Notifier struct {
	host     string
	port     int
	username string
	password string
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers SMTP endpoint and credentials. The authenticated
// user doubles as the From address.
func NewNotifier(cfg config.EmailConfig) *Notifier {
	return &Notifier{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.User,
		password: cfg.Password,
	}
}

// Send composes a multipart/alternative message holding a single HTML part
// and transmits it to all recipients in one SMTP session. Delivery failure
// propagates; the digest run treats it as fatal.
func (n *Notifier) Send(ctx context.Context, subject, htmlBody string, to []string) error {
	if n.host == "" || n.username == "" || n.password == "" {
		return fmt.Errorf("email notifier misconfigured")
	}
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}

	msg, err := buildMessage(n.username, to, subject, htmlBody)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	addr := net.JoinHostPort(n.host, strconv.Itoa(n.port))
	dialer := &tls.Dialer{Config: &tls.Config{ServerName: n.host}}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, n.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", n.username, n.password, n.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(n.username); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt %s: %w", rcpt, err)
		}
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := wc.Write(msg); err != nil {
		wc.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("finish message: %w", err)
	}

	return client.Quit()
}

// buildMessage assembles an RFC 5322 multipart/alternative message whose
// only part is the base64-encoded HTML body.
func buildMessage(from string, to []string, subject, htmlBody string) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n", mw.Boundary())
	fmt.Fprintf(&buf, "\r\n")

	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"text/html; charset=UTF-8"},
		"Content-Transfer-Encoding": {"base64"},
	})
	if err != nil {
		return nil, fmt.Errorf("create html part: %w", err)
	}
	if _, err := part.Write([]byte(wrapBase64(htmlBody))); err != nil {
		return nil, fmt.Errorf("write html part: %w", err)
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	return buf.Bytes(), nil
}

// wrapBase64 encodes the body and folds it at 76 characters per RFC 2045.
func wrapBase64(body string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(body))

	const lineLen = 76
	var sb strings.Builder
	for len(encoded) > lineLen {
		sb.WriteString(encoded[:lineLen])
		sb.WriteString("\r\n")
		encoded = encoded[lineLen:]
	}
	sb.WriteString(encoded)

	return sb.String()
}
