package render

import (
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	cardPolicyOnce sync.Once
	cardPolicy     *bluemonday.Policy
)

var cardClassPattern = regexp.MustCompile(`^[a-z0-9 _-]*$`)

// sanitizeCard strips anything outside the card vocabulary from rendered
// markup.
func sanitizeCard(raw string) string {
	return strings.TrimSpace(cardSanitizer().Sanitize(raw))
}

func cardSanitizer() *bluemonday.Policy {
	cardPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		elements := []string{"figure", "blockquote", "figcaption", "div", "p", "span"}
		policy.AllowElements(elements...)
		policy.AllowAttrs("class").Matching(cardClassPattern).OnElements(elements...)
		policy.AllowAttrs("aria-hidden").Matching(regexp.MustCompile(`^true$`)).OnElements("span", "div")
		policy.AllowDataAttributes()
		cardPolicy = policy
	})
	return cardPolicy
}
