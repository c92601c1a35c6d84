package template

import (
	"strings"
	"text/template"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeXML escapes text for use in XML element content or attribute values.
// Characters XML 1.0 cannot carry are dropped.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(StripInvalidXML(s))
}

// CDATA wraps s in a CDATA section. A "]]>" inside s is split across two
// sections so the result stays well formed.
func CDATA(s string) string {
	return "<![CDATA[" + strings.ReplaceAll(StripInvalidXML(s), "]]>", "]]]]><![CDATA[>") + "]]>"
}

// StripInvalidXML removes the runes outside the XML 1.0 Char production,
// such as form feeds and other C0 controls pasted into text documents.
func StripInvalidXML(s string) string {
	if strings.IndexFunc(s, invalidXMLRune) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if invalidXMLRune(r) {
			return -1
		}
		return r
	}, s)
}

func invalidXMLRune(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return false
	case r < 0x20:
		return true
	case r >= 0xD800 && r <= 0xDFFF, r == 0xFFFE, r == 0xFFFF:
		return true
	}
	return r > 0x10FFFF
}

// CustomFuncMap returns the custom template functions available in templates.
func CustomFuncMap() template.FuncMap {
	return template.FuncMap{
		"xml":   EscapeXML,
		"cdata": CDATA,
	}
}
