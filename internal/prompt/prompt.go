// Package prompt builds the text-to-image generation prompt.
package prompt

import (
	"fmt"
	"strings"

	"github.com/Pratik-0309/thumbnail-generator/internal/catalog"
)

// Compose builds the full generation prompt from the request fields.
// It is pure: the same inputs always produce the same string. Unknown
// styles and color schemes are passed through verbatim.
func Compose(title, style, colorScheme, userPrompt string) string {
	var b strings.Builder

	b.WriteString("Create a professional YouTube thumbnail background.\n")
	fmt.Fprintf(&b, "Topic: %q\n", title)
	fmt.Fprintf(&b, "Style: %s.\n", catalog.StyleFragment(style))

	if colorScheme != "" {
		fmt.Fprintf(&b, "Color scheme: %s.\n", catalog.ColorSchemeFragment(colorScheme))
	}
	if userPrompt != "" {
		fmt.Fprintf(&b, "Additional details: %s.\n", userPrompt)
	}

	b.WriteString("Do NOT include any text, letters, words, watermark, logo.\n")
	b.WriteString("Leave clean empty space for text overlay.\n")
	b.WriteString("Ultra sharp, cinematic lighting, high contrast.")

	return b.String()
}
