// Package rarity maps free-text rarity input onto a fixed vocabulary.
//
// Two explicit tables drive it: aliases (raw form to canonical rarity) and
// members (canonical rarity to every stored rarity string it selects). Nothing
// is inferred from substrings, so an input missing from the alias table is
// rejected instead of becoming a no-op filter.
package rarity

import (
	"fmt"
	"strings"
)

type Rarity string

const (
	Common                  Rarity = "Common"
	Uncommon                Rarity = "Uncommon"
	Rare                    Rarity = "Rare"
	HoloRare                Rarity = "Holo Rare"
	DoubleRare              Rarity = "Double Rare"
	UltraRare               Rarity = "Ultra Rare"
	IllustrationRare        Rarity = "Illustration Rare"
	SpecialIllustrationRare Rarity = "Special Illustration Rare"
	HyperRare               Rarity = "Hyper Rare"
	SecretRare              Rarity = "Secret Rare"
	AceSpecRare             Rarity = "ACE SPEC Rare"
	FullArt                 Rarity = "Full Art"
	V                       Rarity = "V"
	VMAX                    Rarity = "VMAX"
	VSTAR                   Rarity = "VSTAR"
	Promo                   Rarity = "Promo"

	// older and special printings, named as the Pokemon TCG API lists them
	AmazingRare       Rarity = "Amazing Rare"
	ClassicCollection Rarity = "Classic Collection"
	Legend            Rarity = "LEGEND"
	RadiantRare       Rarity = "Radiant Rare"
	RareACE           Rarity = "Rare ACE"
	RareBREAK         Rarity = "Rare BREAK"
	HoloEX            Rarity = "Rare Holo EX"
	HoloGX            Rarity = "Rare Holo GX"
	HoloLVX           Rarity = "Rare Holo LV.X"
	HoloStar          Rarity = "Rare Holo Star"
	RarePrime         Rarity = "Rare Prime"
	PrismStar         Rarity = "Rare Prism Star"
	RainbowRare       Rarity = "Rare Rainbow"
	ShiningRare       Rarity = "Rare Shining"
	ShinyRare         Rarity = "Shiny Rare"
	ShinyUltraRare    Rarity = "Shiny Ultra Rare"
	ShinyGX           Rarity = "Rare Shiny GX"
	TrainerGallery    Rarity = "Trainer Gallery Rare Holo"
)

var Vocabulary = []Rarity{
	Common, Uncommon, Rare, HoloRare, DoubleRare, UltraRare,
	IllustrationRare, SpecialIllustrationRare, HyperRare, SecretRare,
	AceSpecRare, FullArt, V, VMAX, VSTAR, Promo,
	AmazingRare, ClassicCollection, Legend, RadiantRare, RareACE, RareBREAK,
	HoloEX, HoloGX, HoloLVX, HoloStar, RarePrime, PrismStar,
	RainbowRare, ShiningRare, ShinyRare, ShinyUltraRare, ShinyGX, TrainerGallery,
}

// aliases keys are in normalized form (see key). Each canonical rarity is
// also reachable through its own name, added by init.
var aliases = map[string]Rarity{
	"c":                Common,
	"u":                Uncommon,
	"r":                Rare,
	"holo":             HoloRare,
	"rare holo":        HoloRare,
	"rr":               DoubleRare,
	"ur":               UltraRare,
	"rare ultra":       UltraRare,
	"ir":               IllustrationRare,
	"sir":              SpecialIllustrationRare,
	"sar":              SpecialIllustrationRare,
	"special art":      SpecialIllustrationRare,
	"special art rare": SpecialIllustrationRare,
	"hr":               HyperRare,
	"secret":           SecretRare,
	"rare secret":      SecretRare,
	"ace spec":         AceSpecRare,
	"fa":               FullArt,
	"rare holo v":      V,
	"rare holo vmax":   VMAX,
	"rare holo vstar":  VSTAR,
	"radiant":          RadiantRare,
	"amazing":          AmazingRare,
	"rainbow":          RainbowRare,
	"rainbow rare":     RainbowRare,
	"prism star":       PrismStar,
	"lv.x":             HoloLVX,
	"rare shiny":       ShinyRare,
	"shiny":            ShinyRare,
	"tg":               TrainerGallery,
	"trainer gallery":  TrainerGallery,
	"legend":           Legend,
}

// members lists the stored rarity strings a canonical rarity selects. A
// rarity absent from this table selects only rows stored under its own name.
var members = map[Rarity][]string{
	SpecialIllustrationRare: {"Special Illustration Rare", "Special Art Rare", "Special Art"},
	HoloRare:                {"Holo Rare", "Rare Holo"},
	UltraRare:               {"Ultra Rare", "Rare Ultra"},
	SecretRare:              {"Secret Rare", "Rare Secret"},
	V:                       {"V", "Rare Holo V"},
	VMAX:                    {"VMAX", "Rare Holo VMAX"},
	VSTAR:                   {"VSTAR", "Rare Holo VSTAR"},
	ShinyRare:               {"Shiny Rare", "Rare Shiny"},
	Promo:                   {"Promo", "Promo Rare"},
}

// covered holds every stored rarity string some canonical rarity selects.
var covered = map[string]bool{}

func init() {
	for _, r := range Vocabulary {
		if _, ok := aliases[key(string(r))]; !ok {
			aliases[key(string(r))] = r
		}
		for _, m := range Members(r) {
			covered[m] = true
		}
	}
}

func key(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Normalize maps raw input to its canonical rarity.
func Normalize(raw string) (Rarity, bool) {
	r, ok := aliases[key(raw)]
	return r, ok
}

// IsAll reports whether raw means "no rarity filter".
func IsAll(raw string) bool {
	k := key(raw)
	return k == "" || k == "all"
}

func Members(r Rarity) []string {
	if m, ok := members[r]; ok {
		out := make([]string, len(m))
		copy(out, m)
		return out
	}
	return []string{string(r)}
}

// Uncovered returns the stored rarity strings no canonical rarity selects.
// Rows under them can only be reached without a rarity filter.
func Uncovered(stored []string) []string {
	var out []string
	for _, st := range stored {
		if st != "" && !covered[st] {
			out = append(out, st)
		}
	}
	return out
}

// Validate checks the tables against the vocabulary. It is run at startup so
// an edit that breaks them stops the service instead of mis-filtering.
func Validate() error {
	known := make(map[Rarity]bool, len(Vocabulary))
	for _, r := range Vocabulary {
		if known[r] {
			return fmt.Errorf("rarity %q listed twice in vocabulary", r)
		}
		known[r] = true
	}

	for raw, r := range aliases {
		if !known[r] {
			return fmt.Errorf("alias %q targets unknown rarity %q", raw, r)
		}
	}
	for _, r := range Vocabulary {
		if got, ok := aliases[key(string(r))]; !ok || got != r {
			return fmt.Errorf("rarity %q is not reachable by its own name", r)
		}
	}

	owner := map[string]Rarity{}
	for r, stored := range members {
		if !known[r] {
			return fmt.Errorf("inclusion rule for unknown rarity %q", r)
		}
		self := false
		for _, s := range stored {
			if s == string(r) {
				self = true
			}
			if prev, dup := owner[s]; dup && prev != r {
				return fmt.Errorf("stored rarity %q claimed by both %q and %q", s, prev, r)
			}
			owner[s] = r
		}
		if !self {
			return fmt.Errorf("inclusion rule for %q does not include itself", r)
		}
	}
	for _, r := range Vocabulary {
		if prev, dup := owner[string(r)]; dup && prev != r {
			return fmt.Errorf("canonical rarity %q is a member of %q", r, prev)
		}
	}
	return nil
}
