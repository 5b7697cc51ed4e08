package ui

import "strings"

// ParseCSS parses a primitive stylesheet: .class or #id selectors, optionally grouped with
// commas, each followed by a block of "key: value;" pairs. Other selectors are skipped.
func ParseCSS(content string) *Stylesheet {
	sheet := &Stylesheet{}
	rest := stripComments(content)
	for {
		head, after, ok := strings.Cut(rest, "{")
		if !ok {
			break
		}
		body, tail, ok := strings.Cut(after, "}")
		if !ok {
			break
		}
		rest = tail
		props := parseDeclarations(body)
		for _, sel := range strings.Split(head, ",") {
			sel = strings.TrimSpace(sel)
			if len(sel) < 2 || (sel[0] != '.' && sel[0] != '#') {
				continue
			}
			sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: props})
		}
	}
	return sheet
}

func stripComments(s string) string {
	var b strings.Builder
	for {
		before, after, ok := strings.Cut(s, "/*")
		b.WriteString(before)
		if !ok {
			return b.String()
		}
		_, s, ok = strings.Cut(after, "*/")
		if !ok {
			return b.String()
		}
	}
}

func parseDeclarations(body string) map[string]string {
	props := make(map[string]string)
	for _, decl := range strings.Split(body, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if k = strings.TrimSpace(k); k != "" {
			props[k] = strings.TrimSpace(v)
		}
	}
	return props
}
