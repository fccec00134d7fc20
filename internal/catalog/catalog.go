// Package catalog holds the static style and color-scheme lookup tables
// used to build generation prompts. The maps are initialized once and
// never mutated after process start.
package catalog

// Styles maps the user-facing style names to prompt fragments.
var Styles = map[string]string{
	"Bold & Graphic":  "eye-catching thumbnail, bold typography, vibrant colors, expressive facial reaction, dramatic lighting, high contrast, click-worthy composition, professional style",
	"Tech/Futuristic": "futuristic thumbnail, sleek modern design, digital UI elements, glowing accents, holographic effects, cyber-tech aesthetic, sharp lighting, high-tech atmosphere",
	"Minimalist":      "minimalist thumbnail, clean layout, simple shapes, limited color palette, plenty of negative space, modern flat design, clear focal point",
	"Photorealistic":  "photorealistic thumbnail, ultra-realistic lighting, natural skin tones, candid moment, DSLR-style photography, lifestyle realism, shallow depth of field",
	"Illustrated":     "illustrated thumbnail, custom digital illustration, stylized characters, bold outlines, vibrant colors, creative cartoon or vector art style",
}

// ColorSchemes maps color-scheme identifiers to prompt fragments.
var ColorSchemes = map[string]string{
	"vibrant":    "vibrant and energetic colors, high saturation, bold contrasts, eye-catching palette",
	"sunset":     "warm sunset tones, orange pink and purple hues, soft gradients, cinematic glow",
	"forest":     "natural green tones, earthy colors, calm and organic palette, fresh atmosphere",
	"neon":       "neon glow effects, electric blues and pinks, cyberpunk lighting, high contrast glow",
	"purple":     "purple-dominant color palette, magenta and violet tones, modern and stylish mood",
	"monochrome": "black and white color scheme, high contrast, dramatic lighting, timeless aesthetic",
	"ocean":      "cool blue and teal tones, aquatic color palette, fresh and clean atmosphere",
	"pastel":     "soft pastel colors, low saturation, gentle tones, calm and friendly aesthetic",
}

// StyleFragment returns the prompt fragment for a style, falling back to
// the raw style string when it is not in the catalog.
func StyleFragment(style string) string {
	if frag, ok := Styles[style]; ok {
		return frag
	}
	return style
}

// ColorSchemeFragment behaves like StyleFragment for color schemes.
func ColorSchemeFragment(scheme string) string {
	if frag, ok := ColorSchemes[scheme]; ok {
		return frag
	}
	return scheme
}

// Dimensions returns the target image size for an aspect ratio.
func Dimensions(aspectRatio string) (width, height int) {
	switch aspectRatio {
	case "16:9":
		return 1280, 720
	case "9:16":
		return 720, 1280
	default:
		return 1024, 1024
	}
}
