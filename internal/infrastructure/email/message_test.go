package email

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"testing"
)

func TestBuildMessage(t *testing.T) {
	t.Parallel()

	const htmlBody = "<html><body><h1>Monthly Spine Journal Update</h1></body></html>"
	to := []string{"alice@example.org", "bob@example.org"}

	raw, err := buildMessage("digest@example.org", to, "Monthly Spine Journal Update", htmlBody)
	if err != nil {
		t.Fatalf("buildMessage error: %v", err)
	}

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("message does not parse: %v", err)
	}

	if got := msg.Header.Get("From"); got != "digest@example.org" {
		t.Fatalf("From = %q", got)
	}
	if got := msg.Header.Get("To"); got != "alice@example.org, bob@example.org" {
		t.Fatalf("To = %q", got)
	}
	if got := msg.Header.Get("Subject"); got != "Monthly Spine Journal Update" {
		t.Fatalf("Subject = %q", got)
	}

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	if err != nil {
		t.Fatalf("parse content type: %v", err)
	}
	if mediaType != "multipart/alternative" {
		t.Fatalf("media type = %q", mediaType)
	}

	mr := multipart.NewReader(msg.Body, params["boundary"])
	part, err := mr.NextPart()
	if err != nil {
		t.Fatalf("read part: %v", err)
	}

	partType, _, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
	if err != nil || partType != "text/html" {
		t.Fatalf("part type = %q, err = %v", partType, err)
	}
	if got := part.Header.Get("Content-Transfer-Encoding"); got != "base64" {
		t.Fatalf("transfer encoding = %q", got)
	}

	encoded, err := io.ReadAll(part)
	if err != nil {
		t.Fatalf("read part body: %v", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(string(encoded), "\r\n", ""))
	if err != nil {
		t.Fatalf("decode part body: %v", err)
	}
	if string(decoded) != htmlBody {
		t.Fatalf("body round trip mismatch: %q", decoded)
	}

	if _, err := mr.NextPart(); err != io.EOF {
		t.Fatalf("expected a single part, got err=%v", err)
	}
}

func TestWrapBase64FoldsLines(t *testing.T) {
	t.Parallel()

	wrapped := wrapBase64(strings.Repeat("spine surgery digest ", 50))
	for i, line := range strings.Split(wrapped, "\r\n") {
		if len(line) > 76 {
			t.Fatalf("line %d exceeds 76 characters: %d", i, len(line))
		}
	}
	if !strings.Contains(wrapped, "\r\n") {
		t.Fatal("long body should fold across lines")
	}
}
