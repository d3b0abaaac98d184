// Package notify renders the daily word email.
package notify

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"wordofday/internal/domain"
)

// Content is a rendered email ready for delivery
type Content struct {
	Subject string
	HTML    string
	Text    string
}

//go:embed templates/word.html
var wordTemplateRaw string

// Fields are substituted verbatim: text/template, unlike html/template, does not
// escape. Content with markup in it can break the layout.
var wordTemplate = template.Must(template.New("word").Parse(wordTemplateRaw))

// Compose renders the subject and bodies for word
func Compose(word domain.Word) (Content, error) {
	var html bytes.Buffer
	if err := wordTemplate.Execute(&html, word); err != nil {
		return Content{}, fmt.Errorf("failed to render word template: %w", err)
	}

	return Content{
		Subject: Subject(word.Title),
		HTML:    html.String(),
		Text:    PlainText(word),
	}, nil
}

// Subject returns the email subject line for a word title
func Subject(title string) string {
	return "Word of the Day: " + title
}

// PlainText returns the fallback body. The separators are the two characters
// backslash and n, not line breaks; mail clients show them as-is.
func PlainText(word domain.Word) string {
	return fmt.Sprintf(`Word of the Day: %s\nDescription: %s\nExample: %s`, word.Title, word.Description, word.Example)
}
