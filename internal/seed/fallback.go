package seed

import (
	"github.com/shopspring/decimal"

	"github.com/avvvet/pokecard-services/internal/catalogsvc/models"
)

func price(v float64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromFloat(v))
}

type rate struct {
	category, label string
	perPack         float64
	notes           string
}

func pullRates(setID string, rates []rate) []models.PullRate {
	out := make([]models.PullRate, 0, len(rates))
	for _, r := range rates {
		out = append(out, models.PullRate{
			SetID:       setID,
			PackType:    "Booster Pack",
			Category:    r.category,
			Label:       r.label,
			RatePerPack: price(r.perPack),
			Notes:       r.notes,
		})
	}
	return out
}

// DefaultPullRates are community estimates used for sets without data of
// their own.
func DefaultPullRates(setID string) []models.PullRate {
	return pullRates(setID, []rate{
		{"Rare", "Rare Holo", 0.25, "~1 in 4 packs"},
		{"Ultra Rare", "Full Art / Illustration Rare", 0.08, "~1 in 12 packs"},
		{"Special Art", "Special Illustration Rare", 0.05, "~1 in 20 packs"},
		{"Secret", "Secret Rare / Gold", 0.02, "~1 in 50 packs"},
		{"Common", "Common/Uncommon", 1.0, "Multiple per pack"},
	})
}

type fallbackCard struct {
	id, name, rarity  string
	market, low, high float64
}

// mid is not published for the fallback cards; it sits halfway between
// market and high.
func cards(setID string, in []fallbackCard) []models.Card {
	out := make([]models.Card, 0, len(in))
	for _, c := range in {
		market := decimal.NewFromFloat(c.market)
		high := decimal.NewFromFloat(c.high)
		out = append(out, models.Card{
			ID:          c.id,
			SetID:       setID,
			Name:        c.name,
			Rarity:      c.rarity,
			Supertype:   "Pokémon",
			MarketPrice: decimal.NewNullDecimal(market),
			LowPrice:    price(c.low),
			MidPrice:    decimal.NewNullDecimal(market.Add(high).Div(decimal.NewFromInt(2))),
			HighPrice:   decimal.NewNullDecimal(high),
		})
	}
	return out
}

// Fallback is the dataset written when the card-data API is unreachable or
// skipped.
func Fallback() Dataset {
	ds := Dataset{
		Sets: []models.Set{
			{ID: "sv8", Name: "Prismatic Evolutions", Slug: "prismatic-evolutions", Series: "Scarlet & Violet", ReleaseDate: "2025-01-17", Total: 200, ValueIndex: price(12500)},
			{ID: "sv10", Name: "Destined Rivals", Slug: "destined-rivals", Series: "Scarlet & Violet", ReleaseDate: "2025-05-30", Total: 244, ValueIndex: price(38320)},
			{ID: "sv3pt5", Name: "151", Slug: "151", Series: "Scarlet & Violet", ReleaseDate: "2023-09-22", Total: 165, ValueIndex: price(25200)},
			{ID: "swsh1", Name: "Sword & Shield", Slug: "sword-shield", Series: "Sword & Shield", ReleaseDate: "2020-02-07", Total: 216, ValueIndex: price(385)},
			{ID: "swsh8", Name: "Fusion Strike", Slug: "fusion-strike", Series: "Sword & Shield", ReleaseDate: "2021-11-12", Total: 264, ValueIndex: price(4200)},
		},
		Aliases: []models.SetAlias{
			{Alias: "pokemon-151", SetID: "sv3pt5"},
			{Alias: "sv3.5", SetID: "sv3pt5"},
			{Alias: "prismatic", SetID: "sv8"},
			{Alias: "sv8pt5", SetID: "sv8"},
		},
		PullRates: map[string][]models.PullRate{},
	}

	ds.PullRates["sv8"] = DefaultPullRates("sv8")
	ds.Cards = append(ds.Cards, cards("sv8", []fallbackCard{
		{"sv8-1", "Charizard ex", "Illustration Rare", 45.00, 40.00, 50.00},
		{"sv8-2", "Pikachu", "Special Art", 35.00, 30.00, 42.00},
		{"sv8-3", "Mew ex", "Ultra Rare", 28.00, 24.00, 32.00},
		{"sv8-4", "Eevee", "Illustration Rare", 22.00, 18.00, 26.00},
		{"sv8-5", "Dragonite", "Holo Rare", 12.00, 10.00, 15.00},
		{"sv8-6", "Gengar", "Holo Rare", 10.00, 8.00, 12.00},
		{"sv8-161", "Umbreon ex", "Special Illustration Rare", 838.00, 796.10, 1676.00},
	})...)

	ds.PullRates["sv10"] = pullRates("sv10", []rate{
		{"Illustration Rare", "Illustration Rare", 0.055, "1:18 (5.5%)"},
		{"Special Art Rare", "Special Art Rare", 0.022, "1:45 (2.2%)"},
		{"Ultra Rare", "Ultra Rare", 0.028, "1:36 (2.8%)"},
		{"Hyper Rare", "Hyper Rare", 0.0055, "1:180 (0.55%)"},
		{"Holo Rare", "Holo Rare", 0.33, "1:3 (33%)"},
		{"Double Rare", "Double Rare", 0.11, "1:9 (11%)"},
	})
	ds.Cards = append(ds.Cards, cards("sv10", []fallbackCard{
		{"sv10-1", "Team Rocket's Moltres ex", "Special Illustration Rare", 585.00, 520.00, 650.00},
		{"sv10-2", "Team Rocket's Zapdos ex", "Special Illustration Rare", 495.00, 440.00, 550.00},
		{"sv10-3", "Team Rocket's Articuno ex", "Special Illustration Rare", 475.00, 420.00, 530.00},
		{"sv10-4", "Team Rocket's Mewtwo", "Illustration Rare", 435.00, 380.00, 490.00},
		{"sv10-5", "Team Rocket's Houndoom", "Illustration Rare", 385.00, 340.00, 430.00},
		{"sv10-6", "Team Rocket's Ampharos", "Illustration Rare", 325.00, 280.00, 370.00},
		{"sv10-7", "Team Rocket's Hypno", "Illustration Rare", 265.00, 230.00, 300.00},
		{"sv10-8", "Team Rocket's Spidops", "Double Rare", 185.00, 160.00, 210.00},
		{"sv10-9", "Team Rocket's Flaaffy", "Double Rare", 145.00, 125.00, 165.00},
		{"sv10-10", "Team Rocket's Houndour", "Holo Rare", 95.00, 80.00, 110.00},
		{"sv10-11", "Team Rocket's Drowzee", "Holo Rare", 72.00, 62.00, 82.00},
		{"sv10-12", "Team Rocket's Mareep", "Holo Rare", 58.00, 48.00, 68.00},
		{"sv10-13", "Team Rocket's Tarountula", "Holo Rare", 42.00, 35.00, 50.00},
		{"sv10-14", "Team Rocket's Blipbug", "Holo Rare", 38.00, 32.00, 45.00},
	})...)

	ds.PullRates["sv3pt5"] = pullRates("sv3pt5", []rate{
		{"Illustration Rare", "Illustration Rare", 0.04, "~1:25"},
		{"Special Illustration Rare", "Special Illustration Rare", 0.02, "~1:50"},
		{"Ultra Rare", "Ultra Rare", 0.03, "~1:33"},
		{"Holo Rare", "Holo Rare", 0.20, "~1:5"},
		{"Common/Uncommon", "Common/Uncommon", 1.0, "Multiple per pack"},
	})
	ds.Cards = append(ds.Cards, cards("sv3pt5", []fallbackCard{
		{"sv3pt5-6", "Charizard ex", "Special Illustration Rare", 185.00, 165.00, 210.00},
		{"sv3pt5-9", "Blastoise ex", "Illustration Rare", 95.00, 82.00, 110.00},
		{"sv3pt5-3", "Venusaur ex", "Illustration Rare", 88.00, 75.00, 102.00},
		{"sv3pt5-25", "Pikachu", "Illustration Rare", 72.00, 62.00, 85.00},
		{"sv3pt5-54", "Alakazam ex", "Special Illustration Rare", 68.00, 58.00, 78.00},
		{"sv3pt5-59", "Arcanine ex", "Illustration Rare", 55.00, 48.00, 62.00},
		{"sv3pt5-78", "Eevee", "Illustration Rare", 48.00, 42.00, 55.00},
		{"sv3pt5-94", "Gengar ex", "Ultra Rare", 42.00, 36.00, 50.00},
		{"sv3pt5-113", "Mew ex", "Illustration Rare", 38.00, 32.00, 45.00},
		{"sv3pt5-123", "Zapdos ex", "Ultra Rare", 35.00, 30.00, 42.00},
		{"sv3pt5-124", "Moltres ex", "Ultra Rare", 32.00, 28.00, 38.00},
		{"sv3pt5-125", "Articuno ex", "Ultra Rare", 30.00, 26.00, 35.00},
	})...)

	ds.PullRates["swsh1"] = pullRates("swsh1", []rate{
		{"Alternate Art", "Alternate Art", 0.0167, "1:60 (1.67%)"},
		{"Secret Rare", "Secret Rare", 0.014, "1:72 (1.4%)"},
		{"Full Art", "Full Art", 0.028, "1:36 (2.8%)"},
		{"VMAX", "VMAX", 0.042, "1:24 (4.2%)"},
		{"V", "V", 0.11, "1:9 (11%)"},
		{"Holo Rare", "Holo Rare", 0.33, "1:3 (33%)"},
	})
	ds.Cards = append(ds.Cards, cards("swsh1", []fallbackCard{
		{"swsh1-1", "Snorlax VMAX", "VMAX", 72.82, 65.00, 82.00},
		{"swsh1-2", "Snorlax VMAX (Alt)", "VMAX", 42.15, 38.00, 48.00},
		{"swsh1-3", "Marnie", "Full Art", 36.61, 32.00, 42.00},
		{"swsh1-4", "Snorlax V", "V", 18.93, 16.00, 22.00},
		{"swsh1-5", "Quick Ball", "Secret Rare", 18.62, 15.00, 22.00},
		{"swsh1-6", "Marnie (Rainbow)", "Full Art", 18.52, 15.00, 22.00},
		{"swsh1-7", "Zacian V", "V", 15.55, 13.00, 18.00},
		{"swsh1-8", "Lapras V", "V", 12.40, 10.00, 15.00},
		{"swsh1-9", "Air Balloon", "Secret Rare", 10.20, 8.50, 12.00},
		{"swsh1-10", "Holo Rare 1", "Holo Rare", 4.00, 3.00, 5.00},
	})...)

	ds.PullRates["swsh8"] = pullRates("swsh8", []rate{
		{"Alternate Art", "Alternate Art", 0.015, "~1:65"},
		{"Secret Rare", "Secret Rare", 0.012, "~1:80"},
		{"Full Art", "Full Art", 0.025, "~1:40"},
		{"VMAX", "VMAX", 0.038, "~1:26"},
		{"V", "V", 0.10, "~1:10"},
		{"Holo Rare", "Holo Rare", 0.30, "~1:3"},
	})
	ds.Cards = append(ds.Cards, cards("swsh8", []fallbackCard{
		{"swsh8-1", "Gengar VMAX", "VMAX", 95.00, 85.00, 108.00},
		{"swsh8-2", "Mew VMAX", "VMAX", 78.00, 68.00, 88.00},
		{"swsh8-3", "Espeon VMAX", "VMAX", 52.00, 45.00, 60.00},
		{"swsh8-4", "Inteleon VMAX", "VMAX", 38.00, 32.00, 45.00},
		{"swsh8-5", "Gengar V", "V", 28.00, 24.00, 32.00},
		{"swsh8-6", "Mew V", "V", 22.00, 18.00, 26.00},
		{"swsh8-7", "Celebi V", "V", 18.00, 15.00, 22.00},
		{"swsh8-8", "Full Art Trainer", "Full Art", 14.00, 12.00, 17.00},
		{"swsh8-9", "Secret Rare Item", "Secret Rare", 12.00, 10.00, 15.00},
		{"swsh8-10", "Holo Rare", "Holo Rare", 3.50, 2.50, 4.50},
	})...)

	// card id, grader, grade, label, market, low, high
	graded := []struct {
		card, grader, grade, label string
		market, low, high          float64
	}{
		{"sv8-161", "PSA", "10", "Gem Mint", 838.00, 796.10, 1676.00},
		{"sv8-161", "CGC", "10", "Pristine 10", 720.00, 650.00, 900.00},
		{"sv8-161", "BGS", "9.5", "Gem Mint", 680.00, 600.00, 800.00},
		{"sv8-1", "PSA", "10", "Gem Mint", 55.00, 48.00, 65.00},
		{"sv8-1", "CGC", "10", "Pristine 10", 52.00, 45.00, 62.00},
		{"sv8-1", "BGS", "9.5", "Gem Mint", 50.00, 42.00, 58.00},
		{"sv10-1", "PSA", "10", "Gem Mint", 1450.00, 1300.00, 1600.00},
	}
	for _, g := range graded {
		ds.GradedPrices = append(ds.GradedPrices, models.GradedPrice{
			CardID:     g.card,
			Grader:     g.grader,
			Grade:      g.grade,
			GradeLabel: g.label,
			Market:     price(g.market),
			Low:        price(g.low),
			High:       price(g.high),
			Source:     "PriceCharting/eBay",
		})
	}

	return ds
}
