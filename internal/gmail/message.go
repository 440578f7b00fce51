package gmail

import (
	"encoding/base64"
	"fmt"
	"mime"
	"regexp"
	"strings"

	readability "github.com/go-shiori/go-readability"
	gmail "google.golang.org/api/gmail/v1"

	"github.com/rwestgarth/linkedin-engine/internal/content"
)

// ExtractText pulls readable text out of a Gmail message payload, handling
// multipart messages. text/plain parts win over text/html.
func ExtractText(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}

	if len(payload.Parts) > 0 {
		if text := findPart(payload.Parts, "text/plain"); text != "" {
			return text
		}
		if html := findPart(payload.Parts, "text/html"); html != "" {
			return htmlToText(html)
		}
		// Nested multipart (e.g. multipart/alternative inside multipart/mixed).
		for _, part := range payload.Parts {
			if text := ExtractText(part); text != "" {
				return text
			}
		}
		return ""
	}

	data := decodeBody(payload.Body)
	switch payload.MimeType {
	case "text/plain":
		return data
	case "text/html":
		return htmlToText(data)
	}
	return ""
}

func findPart(parts []*gmail.MessagePart, mimeType string) string {
	for _, part := range parts {
		if part.MimeType == mimeType {
			return decodeBody(part.Body)
		}
	}
	return ""
}

func decodeBody(body *gmail.MessagePartBody) string {
	if body == nil || body.Data == "" {
		return ""
	}
	data, err := base64.URLEncoding.DecodeString(body.Data)
	if err != nil {
		data, err = base64.RawURLEncoding.DecodeString(body.Data)
		if err != nil {
			return ""
		}
	}
	return string(data)
}

// htmlToText converts an HTML email body to text, preferring readability
// extraction and falling back to plain tag stripping.
func htmlToText(html string) string {
	article, err := readability.FromReader(strings.NewReader(html), nil)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return article.TextContent
	}
	return content.StripHTML(html)
}

// noisePatterns match the boilerplate lines newsletters carry.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)unsubscribe`),
	regexp.MustCompile(`(?i)view.*browser`),
	regexp.MustCompile(`(?i)forward.*friend`),
	regexp.MustCompile(`(?i)rights reserved`),
	regexp.MustCompile(`(?i)privacy policy`),
	regexp.MustCompile(`(?i)manage.*preferences`),
	regexp.MustCompile(`(?i)update.*profile`),
	regexp.MustCompile(`^--$`),
}

const maxBodyLength = 5000

// CleanBody strips footer noise and very short navigation lines from an
// email body and caps its length.
func CleanBody(body string) string {
	var kept []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 10 {
			continue
		}
		if matchesNoise(line) {
			continue
		}
		kept = append(kept, line)
	}

	cleaned := strings.Join(kept, "\n")
	if len(cleaned) > maxBodyLength {
		cleaned = cleaned[:maxBodyLength] + "..."
	}
	return cleaned
}

func matchesNoise(line string) bool {
	for _, p := range noisePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// DigestMessage is the outgoing daily digest: HTML body plus a plain-text
// fallback for non-HTML clients.
type DigestMessage struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

const altBoundary = "linkedin-digest-alt"

// BuildRaw assembles the RFC 2822 multipart/alternative message. The plain
// part comes first so HTML-capable clients pick the richer alternative.
func (m *DigestMessage) BuildRaw() (string, error) {
	if m.To == "" {
		return "", fmt.Errorf("recipient is required")
	}
	if m.Subject == "" {
		return "", fmt.Errorf("subject is required")
	}
	if m.HTMLBody == "" && m.TextBody == "" {
		return "", fmt.Errorf("body is required")
	}

	var b strings.Builder
	b.WriteString("To: " + m.To + "\r\n")
	b.WriteString("Subject: " + encodeRFC2047(m.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: multipart/alternative; boundary=\"" + altBoundary + "\"\r\n")
	b.WriteString("\r\n")

	b.WriteString("--" + altBoundary + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(m.TextBody)
	b.WriteString("\r\n")

	b.WriteString("--" + altBoundary + "\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(m.HTMLBody)
	b.WriteString("\r\n")

	b.WriteString("--" + altBoundary + "--\r\n")
	return b.String(), nil
}

// encodeRFC2047 encodes a header value when it carries non-ASCII characters.
func encodeRFC2047(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.BEncoding.Encode("UTF-8", s)
		}
	}
	return s
}
