package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"
)

// Syntax selects the placeholder language of a template.
type Syntax string

const (
	// SyntaxMustache uses base16-builder placeholders such as {{base00-hex}}.
	SyntaxMustache Syntax = "mustache"
	// SyntaxGo uses text/template with role fields such as {{ .base00 }}.
	SyntaxGo Syntax = "go"
)

// ParseSyntax validates a syntax name.
func ParseSyntax(s string) (Syntax, error) {
	switch Syntax(strings.ToLower(s)) {
	case SyntaxMustache, "":
		return SyntaxMustache, nil
	case SyntaxGo:
		return SyntaxGo, nil
	default:
		return "", fmt.Errorf("unknown template syntax %q (valid: mustache, go)", s)
	}
}

// Render substitutes data into tmpl.
func Render(tmpl string, syntax Syntax, data *Data) (string, error) {
	switch syntax {
	case SyntaxGo:
		return renderGo(tmpl, data)
	case SyntaxMustache, "":
		return renderMustache(tmpl, data), nil
	default:
		return "", fmt.Errorf("unknown template syntax %q", syntax)
	}
}

func renderGo(tmpl string, data *Data) (string, error) {
	t, err := template.New("scheme").Funcs(TemplateFuncs()).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data.templateMap()); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_-]+)\s*\}\}`)

// renderMustache replaces known base16-builder placeholders and leaves
// unknown ones untouched.
func renderMustache(tmpl string, data *Data) string {
	values := mustacheValues(data)
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		key := strings.ToLower(placeholder.FindStringSubmatch(m)[1])
		if v, ok := values[key]; ok {
			return v
		}
		return m
	})
}

// mustacheValues lists every placeholder a base16-builder template may use.
// Keys are lowercase.
func mustacheValues(data *Data) map[string]string {
	v := map[string]string{
		"scheme-name":   data.Name,
		"scheme-author": data.Author,
		"scheme-slug":   data.Slug,
	}
	for _, c := range data.Colours {
		p := strings.ToLower(c.Role)
		hex := string(c.Hex)
		v[p+"-hex"] = hex
		v[p+"-hex-r"] = hex[0:2]
		v[p+"-hex-g"] = hex[2:4]
		v[p+"-hex-b"] = hex[4:6]
		v[p+"-hex-bgr"] = hex[4:6] + hex[2:4] + hex[0:2]
		v[p+"-rgb-r"] = fmt.Sprint(c.RGB.R)
		v[p+"-rgb-g"] = fmt.Sprint(c.RGB.G)
		v[p+"-rgb-b"] = fmt.Sprint(c.RGB.B)
		v[p+"-dec-r"] = fmt.Sprintf("%.4f", float64(c.RGB.R)/255)
		v[p+"-dec-g"] = fmt.Sprintf("%.4f", float64(c.RGB.G)/255)
		v[p+"-dec-b"] = fmt.Sprintf("%.4f", float64(c.RGB.B)/255)
	}
	return v
}
