package controllers

import (
	"fmt"
	"html/template"
	"strings"
)

type emailMetaItem struct {
	Label string
	Value string
}

// buildEmailTemplate renders the shared transactional email layout: escaped
// paragraphs, an optional label/value table, a button, and a footer.
func buildEmailTemplate(subject string, paragraphs []string, meta []emailMetaItem, buttonText, buttonURL, footerHTML string) string {
	var contentBuilder strings.Builder
	for _, paragraph := range paragraphs {
		trimmed := strings.TrimSpace(paragraph)
		if trimmed == "" {
			continue
		}
		escaped := template.HTMLEscapeString(trimmed)
		contentBuilder.WriteString(`<p style="margin:0 0 18px 0;line-height:1.7;word-break:break-word;">`)
		contentBuilder.WriteString(escaped)
		contentBuilder.WriteString(`</p>`)
	}

	var metaBuilder strings.Builder
	for _, item := range meta {
		label := strings.TrimSpace(item.Label)
		value := strings.TrimSpace(item.Value)
		if label == "" || value == "" {
			continue
		}
		metaBuilder.WriteString(fmt.Sprintf(
			`<tr><td style="padding:8px 16px;color:#6b7280;">%s</td><td style="padding:8px 16px;color:#111827;font-weight:600;">%s</td></tr>`,
			template.HTMLEscapeString(label),
			template.HTMLEscapeString(value),
		))
	}
	metaSection := ""
	if metaBuilder.Len() > 0 {
		metaSection = fmt.Sprintf(
			`<table role="presentation" cellpadding="0" cellspacing="0" width="100%%" style="margin:0 0 24px 0;border:1px solid #e5e7eb;border-radius:12px;background-color:#f9fafb;">%s</table>`,
			metaBuilder.String(),
		)
	}

	button := ""
	if buttonText != "" && buttonURL != "" {
		button = fmt.Sprintf(
			`<p style="margin:0 0 24px 0;"><a href="%s" style="display:inline-block;padding:12px 24px;border-radius:8px;background-color:#2563eb;color:#ffffff;text-decoration:none;font-weight:600;">%s</a></p>`,
			template.HTMLEscapeString(buttonURL),
			template.HTMLEscapeString(buttonText),
		)
	}

	footer := ""
	if footerHTML != "" {
		footer = fmt.Sprintf(`<p style="margin:24px 0 0 0;font-size:12px;color:#6b7280;">%s</p>`, footerHTML)
	}

	return fmt.Sprintf(
		`<html><body style="margin:0;padding:24px;background-color:#f3f4f6;font-family:Arial,Helvetica,sans-serif;">
<div style="max-width:560px;margin:0 auto;background-color:#ffffff;border-radius:16px;padding:32px;">
<h2 style="margin:0 0 24px 0;color:#111827;">%s</h2>
%s%s%s%s
</div></body></html>`,
		template.HTMLEscapeString(subject),
		contentBuilder.String(),
		metaSection,
		button,
		footer,
	)
}
