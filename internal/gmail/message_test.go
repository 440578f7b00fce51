package gmail

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmail "google.golang.org/api/gmail/v1"
)

func b64(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func TestExtractTextPrefersPlainPart(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gmail.MessagePart{
			{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: b64("<p>html version</p>")}},
			{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: b64("plain version")}},
		},
	}

	assert.Equal(t, "plain version", ExtractText(payload))
}

func TestExtractTextFallsBackToHTML(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gmail.MessagePart{
			{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: b64("<p>only html here</p>")}},
		},
	}

	assert.Contains(t, ExtractText(payload), "only html here")
}

func TestExtractTextSinglePart(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "text/plain",
		Body:     &gmail.MessagePartBody{Data: b64("single part body")},
	}
	assert.Equal(t, "single part body", ExtractText(payload))

	assert.Equal(t, "", ExtractText(nil))
	assert.Equal(t, "", ExtractText(&gmail.MessagePart{MimeType: "image/png"}))
}

func TestExtractTextUnpaddedBase64(t *testing.T) {
	raw := base64.RawURLEncoding.EncodeToString([]byte("unpadded body text"))
	payload := &gmail.MessagePart{
		MimeType: "text/plain",
		Body:     &gmail.MessagePartBody{Data: raw},
	}
	assert.Equal(t, "unpadded body text", ExtractText(payload))
}

func TestCleanBody(t *testing.T) {
	body := strings.Join([]string{
		"This is a line of real newsletter content worth keeping.",
		"Unsubscribe from this list",
		"View this email in your browser",
		"ok",
		"Another substantial paragraph about the industry news today.",
		"(c) 2026 All rights reserved",
	}, "\n")

	cleaned := CleanBody(body)

	assert.Contains(t, cleaned, "real newsletter content")
	assert.Contains(t, cleaned, "substantial paragraph")
	assert.NotContains(t, cleaned, "Unsubscribe")
	assert.NotContains(t, cleaned, "browser")
	assert.NotContains(t, cleaned, "ok\n")
}

func TestCleanBodyCapsLength(t *testing.T) {
	line := strings.Repeat("abcdefghij ", 60) // well over 10 chars
	body := strings.Repeat(line+"\n", 20)

	cleaned := CleanBody(body)
	assert.LessOrEqual(t, len(cleaned), maxBodyLength+3)
	assert.True(t, strings.HasSuffix(cleaned, "..."))
}

func TestMessageToArticle(t *testing.T) {
	msg := &gmail.Message{
		Id: "abc123",
		Payload: &gmail.MessagePart{
			MimeType: "text/plain",
			Headers: []*gmail.MessagePartHeader{
				{Name: "Subject", Value: "Weekly AI Roundup"},
				{Name: "From", Value: "news@example.com"},
				{Name: "Date", Value: time.Now().UTC().Format(time.RFC1123Z)},
			},
			Body: &gmail.MessagePartBody{Data: b64("A meaningful body line that survives cleaning.")},
		},
	}

	article := messageToArticle(msg, time.Now().Add(-24*time.Hour))
	require.NotNil(t, article)
	assert.Equal(t, "Weekly AI Roundup", article.Title)
	assert.Equal(t, "gmail:abc123", article.URL)
	assert.Equal(t, "news@example.com", article.Sender)
}

func TestMessageToArticleSkipsOldMessages(t *testing.T) {
	msg := &gmail.Message{
		Id: "old",
		Payload: &gmail.MessagePart{
			MimeType: "text/plain",
			Headers: []*gmail.MessagePartHeader{
				{Name: "Subject", Value: "Old"},
				{Name: "Date", Value: time.Now().UTC().Add(-96 * time.Hour).Format(time.RFC1123Z)},
			},
			Body: &gmail.MessagePartBody{Data: b64("body")},
		},
	}

	assert.Nil(t, messageToArticle(msg, time.Now().Add(-24*time.Hour)))
}

func TestBuildRawStructure(t *testing.T) {
	msg := &DigestMessage{
		To:       "russ@example.com",
		Subject:  "Daily LinkedIn Drafts - 30 August 2026",
		HTMLBody: "<html><body>digest</body></html>",
		TextBody: "digest",
	}

	raw, err := msg.BuildRaw()
	require.NoError(t, err)

	assert.Contains(t, raw, "To: russ@example.com\r\n")
	assert.Contains(t, raw, "Subject: Daily LinkedIn Drafts - 30 August 2026\r\n")
	assert.Contains(t, raw, "Content-Type: multipart/alternative")
	assert.Contains(t, raw, "Content-Type: text/plain")
	assert.Contains(t, raw, "Content-Type: text/html")
	assert.True(t, strings.HasSuffix(raw, "--"+altBoundary+"--\r\n"))

	// Plain part must precede the HTML part.
	assert.Less(t, strings.Index(raw, "text/plain"), strings.Index(raw, "text/html"))
}

func TestBuildRawValidation(t *testing.T) {
	_, err := (&DigestMessage{Subject: "s", TextBody: "b"}).BuildRaw()
	assert.Error(t, err)

	_, err = (&DigestMessage{To: "a@b.c", TextBody: "b"}).BuildRaw()
	assert.Error(t, err)

	_, err = (&DigestMessage{To: "a@b.c", Subject: "s"}).BuildRaw()
	assert.Error(t, err)
}

func TestEncodeRFC2047(t *testing.T) {
	assert.Equal(t, "Plain subject", encodeRFC2047("Plain subject"))

	encoded := encodeRFC2047("Tägliche Entwürfe")
	assert.True(t, strings.HasPrefix(encoded, "=?UTF-8?"))
}

func TestMatchSender(t *testing.T) {
	newsletters := []NewsletterConfig{
		{Name: "Marketing Brew", SenderPatterns: []string{"marketingbrew.com"}, CategoryHint: "Email Marketing"},
		{Name: "The Neuron", SenderPatterns: []string{"theneuron", "neurondaily"}, CategoryHint: "AI"},
	}

	assert.Equal(t, "Marketing Brew", MatchSender("crew@marketingbrew.com", newsletters).Name)
	assert.Equal(t, "The Neuron", MatchSender("Hello <hi@NeuronDaily.ai>", newsletters).Name)

	unknown := MatchSender("who@nowhere.com", newsletters)
	assert.Contains(t, unknown.Name, "Unknown Newsletter")
	assert.Equal(t, "General", unknown.CategoryHint)
}
