package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		vars     map[string]string
		expected string
	}{
		{
			name:     "single placeholder",
			body:     "Hola {{name}}",
			vars:     map[string]string{"name": "Maria"},
			expected: "Hola Maria",
		},
		{
			name:     "repeated placeholder",
			body:     "{{name}} y {{name}}",
			vars:     map[string]string{"name": "Ana"},
			expected: "Ana y Ana",
		},
		{
			name:     "placeholder with spaces",
			body:     "Pedido {{ order_number }} listo",
			vars:     map[string]string{"order_number": "FL-0042"},
			expected: "Pedido FL-0042 listo",
		},
		{
			name:     "missing variable left untouched",
			body:     "Hola {{name}}, pedido {{order_number}}",
			vars:     map[string]string{"name": "Maria"},
			expected: "Hola Maria, pedido {{order_number}}",
		},
		{
			name:     "no placeholders",
			body:     "Sin variables",
			vars:     map[string]string{"name": "Maria"},
			expected: "Sin variables",
		},
		{
			name:     "nil vars",
			body:     "Hola {{name}}",
			vars:     nil,
			expected: "Hola {{name}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Render(tt.body, tt.vars))
		})
	}
}

func TestPlaceholders(t *testing.T) {
	names := Placeholders("Hola {{name}}, pedido {{order_number}} de {{name}}")
	assert.Equal(t, []string{"name", "order_number"}, names)

	assert.Nil(t, Placeholders("sin variables"))
}

func TestNewTemplate(t *testing.T) {
	tmpl, err := NewTemplate("order-ready", TypeNewOrder, ChannelSMS, "", "Pedido {{order_number}} listo")
	require.NoError(t, err)
	assert.Equal(t, "order-ready", tmpl.Name)
	assert.True(t, tmpl.Active)
	assert.NotEqual(t, "", tmpl.ID.String())
}

func TestNewTemplateValidation(t *testing.T) {
	tests := []struct {
		name    string
		tplName string
		typ     Type
		channel Channel
		body    string
	}{
		{"empty name", "  ", TypeNewOrder, ChannelSMS, "body"},
		{"invalid type", "t", Type("bogus"), ChannelSMS, "body"},
		{"invalid channel", "t", TypeNewOrder, Channel("pigeon"), "body"},
		{"empty body", "t", TypeNewOrder, ChannelSMS, "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTemplate(tt.tplName, tt.typ, tt.channel, "", tt.body)
			assert.Error(t, err)
		})
	}
}

func TestTemplateRenderWith(t *testing.T) {
	tmpl, err := NewTemplate("reset", TypePasswordReset, ChannelEmail,
		"Contraseña para {{name}}", "Tu nueva contraseña es {{password}}")
	require.NoError(t, err)

	subject, body := tmpl.RenderWith(map[string]string{
		"name":     "Maria",
		"password": "xK3p9qW2a1",
	})
	assert.Equal(t, "Contraseña para Maria", subject)
	assert.Equal(t, "Tu nueva contraseña es xK3p9qW2a1", body)
}
