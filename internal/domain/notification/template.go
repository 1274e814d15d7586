package notification

import (
	"regexp"
	"strings"

	"github.com/flamenca/backend/internal/domain/shared"
)

var placeholderRegex = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// Render substitutes {{name}} placeholders in body with the values in vars.
// Placeholders with no matching variable are left untouched so a missing
// value is visible in the delivered text instead of silently vanishing.
func Render(body string, vars map[string]string) string {
	return placeholderRegex.ReplaceAllStringFunc(body, func(match string) string {
		name := placeholderRegex.FindStringSubmatch(match)[1]
		if value, ok := vars[name]; ok {
			return value
		}
		return match
	})
}

// Placeholders returns the distinct placeholder names used in body, in order
// of first appearance
func Placeholders(body string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderRegex.FindAllStringSubmatch(body, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Template is a reusable notification text with {{name}} placeholders
type Template struct {
	shared.BaseEntity
	Name    string
	Type    Type
	Channel Channel
	Subject string
	Body    string
	Active  bool
}

// NewTemplate creates a new active template
func NewTemplate(name string, typ Type, channel Channel, subject, body string) (*Template, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_TEMPLATE_NAME", "Template name cannot be empty")
	}
	if !typ.IsValid() {
		return nil, shared.NewDomainError("INVALID_TEMPLATE_TYPE", "Invalid notification type")
	}
	if !channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Invalid notification channel")
	}
	if strings.TrimSpace(body) == "" {
		return nil, shared.NewDomainError("INVALID_TEMPLATE_BODY", "Template body cannot be empty")
	}

	return &Template{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Type:       typ,
		Channel:    channel,
		Subject:    subject,
		Body:       body,
		Active:     true,
	}, nil
}

// RenderWith renders the template body and subject with the given variables
func (t *Template) RenderWith(vars map[string]string) (subject, body string) {
	return Render(t.Subject, vars), Render(t.Body, vars)
}
