package components

import "math/rand"

// Variant selects the glyph a star is drawn with. It affects rendering only.
type Variant uint8

const (
	VariantCross   Variant = iota // Plus sign with double glow and a bright core
	VariantSparkle                // Eight-armed cross with a white core
	VariantRadiant                // Triple glow with pulsing rays
	VariantPulsar                 // Ten-point outline that breathes with the phase

	NumVariants = 4
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case VariantCross:
		return "cross"
	case VariantSparkle:
		return "sparkle"
	case VariantRadiant:
		return "radiant"
	case VariantPulsar:
		return "pulsar"
	}
	return "unknown"
}

// Valid reports whether v is one of the defined variants.
func (v Variant) Valid() bool {
	return v < NumVariants
}

// ColorFamily is one of the stylized hue families a star colour is sampled from.
type ColorFamily uint8

const (
	FamilyBlue ColorFamily = iota
	FamilyMagenta
	FamilyGold
	FamilyGreen
	FamilyOrange
	FamilyViolet
	FamilyCyan
	FamilyWhite

	NumColorFamilies = 8
)

// String returns the family name.
func (f ColorFamily) String() string {
	switch f {
	case FamilyBlue:
		return "blue"
	case FamilyMagenta:
		return "magenta"
	case FamilyGold:
		return "gold"
	case FamilyGreen:
		return "green"
	case FamilyOrange:
		return "orange"
	case FamilyViolet:
		return "violet"
	case FamilyCyan:
		return "cyan"
	case FamilyWhite:
		return "white"
	}
	return "unknown"
}

// Color is a linear RGB triple in [0, 1].
type Color struct {
	R, G, B float32
}

// channelRange is a base value plus the width of its random jitter.
type channelRange struct {
	Base, Jitter float32
}

// familyRange describes how one family samples its channels.
// Mono families draw a single value and use it for all three channels.
type familyRange struct {
	R, G, B channelRange
	Mono    bool
}

var palette = [NumColorFamilies]familyRange{
	FamilyBlue:    {R: channelRange{0.2, 0.3}, G: channelRange{0.4, 0.4}, B: channelRange{0.9, 0.1}},
	FamilyMagenta: {R: channelRange{0.9, 0.1}, G: channelRange{0.2, 0.3}, B: channelRange{0.7, 0.3}},
	FamilyGold:    {R: channelRange{0.9, 0.1}, G: channelRange{0.8, 0.2}, B: channelRange{0.1, 0.2}},
	FamilyGreen:   {R: channelRange{0.1, 0.2}, G: channelRange{0.8, 0.2}, B: channelRange{0.3, 0.3}},
	FamilyOrange:  {R: channelRange{0.9, 0.1}, G: channelRange{0.5, 0.3}, B: channelRange{0.1, 0.2}},
	FamilyViolet:  {R: channelRange{0.7, 0.3}, G: channelRange{0.2, 0.2}, B: channelRange{0.9, 0.1}},
	FamilyCyan:    {R: channelRange{0.1, 0.2}, G: channelRange{0.8, 0.2}, B: channelRange{0.9, 0.1}},
	FamilyWhite:   {R: channelRange{0.9, 0.1}, Mono: true},
}

// Sample draws a colour from the family. Every channel stays within
// [base, base+jitter), which never exceeds 1.
func (f ColorFamily) Sample(rng *rand.Rand) Color {
	fr := palette[f%NumColorFamilies]
	if fr.Mono {
		v := fr.R.sample(rng)
		return Color{R: v, G: v, B: v}
	}
	return Color{R: fr.R.sample(rng), G: fr.G.sample(rng), B: fr.B.sample(rng)}
}

func (c channelRange) sample(rng *rand.Rand) float32 {
	return c.Base + rng.Float32()*c.Jitter
}
