package pages

import (
	"fmt"
	"strings"
)

// Strategy is how a Locator's selector is interpreted.
type Strategy int

const (
	ByXPath Strategy = iota
	ByID
	ByCSS
)

// Locator is a (strategy, selector) pair resolved against the live page.
type Locator struct {
	By       Strategy
	Selector string
}

func XPath(selector string) Locator { return Locator{By: ByXPath, Selector: selector} }
func ID(id string) Locator          { return Locator{By: ByID, Selector: id} }
func CSS(selector string) Locator   { return Locator{By: ByCSS, Selector: selector} }

// String renders the Playwright selector for l.
func (l Locator) String() string {
	switch l.By {
	case ByID:
		return "id=" + l.Selector
	case ByCSS:
		return "css=" + l.Selector
	default:
		return "xpath=" + l.Selector
	}
}

// Template is an XPath with %s verbs for quoted values or %d verbs for
// 1-based positions.
type Template string

// Format substitutes values as XPath string literals, so names containing
// quotes cannot break the expression.
func (t Template) Format(values ...string) Locator {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = XPathLiteral(v)
	}
	return XPath(fmt.Sprintf(string(t), args...))
}

// At substitutes a 1-based position.
func (t Template) At(position int) Locator {
	return XPath(fmt.Sprintf(string(t), position))
}

// XPathLiteral quotes s for use inside an XPath 1.0 expression.
func XPathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, 2*len(parts)-1)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		if p != "" {
			quoted = append(quoted, "'"+p+"'")
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
