package repository

// InitialCatalog is the atelier's launch collection, inserted the first time
// the storefront starts against an empty products collection.
func InitialCatalog() []Product {
	return []Product{
		{
			CatalogID:   1,
			Name:        "The Eternity Ring",
			Category:    "Rings",
			Material:    "18K Gold",
			Stone:       "Diamond",
			Occasion:    "Engagement",
			Price:       "$12,500",
			Image:       "/images/hero-luxury-2.png",
			Description: "A timeless masterpiece, the Eternity Ring features 2ct of the world's finest diamonds set in recycled 18k Rose Gold. Designed to immortalize the most profound promises, its circular brilliance dances with every ray of light.",
		},
		{
			CatalogID:   2,
			Name:        "Royal Sapphire",
			Category:    "Necklaces",
			Material:    "Platinum",
			Stone:       "Sapphire",
			Occasion:    "Gala",
			Price:       "$28,000",
			Image:       "/images/hero-luxury.png",
			Description: "The Royal Sapphire is a breath-taking expression of oceanic depth. A singular 5ct Ceylon Sapphire rests within a platinum lattice, surrounded by a constellation of micro-pavé diamonds for an aura of regal elegance.",
		},
		{
			CatalogID:   3,
			Name:        "Golden Horizon",
			Category:    "Bracelets",
			Material:    "24K Gold",
			Stone:       "Diamond",
			Occasion:    "Anniversary",
			Price:       "$18,200",
			Image:       "/images/hero-luxury-3.png",
			Description: "Sculpted from pure 24k gold, the Golden Horizon bracelet captures the warmth of a setting sun. The faceted surface is punctuated by high-clarity diamonds, creating a piece that is as robust as it is radiant.",
		},
		{
			CatalogID:   4,
			Name:        "Imperial Necklace",
			Category:    "Necklaces",
			Material:    "18K Gold",
			Stone:       "Ruby",
			Occasion:    "Gala",
			Price:       "$45,000",
			Image:       "/images/collection-ruby.png",
			Description: "Commanding and passionate, the Imperial Necklace showcases a 10ct pigeon-blood ruby. Suspended from a hand-woven 18k gold chain, it is the pinnacle of the LUMIÈRE signature collection, reserved for the most extraordinary occasions.",
		},
		{
			CatalogID:   5,
			Name:        "Midnight Pearl",
			Category:    "Earrings",
			Material:    "Silver",
			Stone:       "Pearl",
			Occasion:    "Evening",
			Price:       "$8,900",
			Image:       "/images/collection-emerald.png",
			Description: "The Midnight Pearl earrings are a study in contrast. Rare Tahitian black pearls are cradled in oxidized sterling silver, offering a mysterious and contemporary alternative to traditional high-jewelry staples.",
		},
		{
			CatalogID:   6,
			Name:        "Celestial Band",
			Category:    "Rings",
			Material:    "18K Gold",
			Stone:       "Diamond",
			Occasion:    "Wedding",
			Price:       "$15,400",
			Image:       "https://images.unsplash.com/photo-1573408301185-9146fe634ad0?auto=format&fit=crop&q=80&w=1200",
			Description: "Inspired by the night sky, the Celestial Band features an irregular arrangement of brilliant-cut diamonds that mimic a starry nebula. A perfect choice for those who seek a wedding band with cosmic character.",
		},
		{
			CatalogID:   7,
			Name:        "Nocturnal Emerald",
			Category:    "Rings",
			Material:    "18K Gold",
			Stone:       "Emerald",
			Occasion:    "Gala",
			Price:       "$32,000",
			Image:       "/images/collection-emerald.png",
			Description: "A deep, verdant 4ct Zambian Emerald takes center stage in this architectural gold ring. The Nocturnal Emerald represents the peak of sophistication, blending geometric strength with organic, vivid color.",
		},
		{
			CatalogID:   8,
			Name:        "Arctic Mist",
			Category:    "Earrings",
			Material:    "Platinum",
			Stone:       "Diamond",
			Occasion:    "Wedding",
			Price:       "$12,200",
			Image:       "/images/hero-luxury-3.png",
			Description: "Delicate and ethereal, the Arctic Mist earrings feature cascading drops of pear-shaped diamonds. They evoke the transient beauty of mountain fog, shimmering with a cool, platinum glow.",
		},
		{
			CatalogID:   9,
			Name:        "Lunar Bracelet",
			Category:    "Bracelets",
			Material:    "Silver",
			Stone:       "Pearl",
			Occasion:    "Evening",
			Price:       "$10,500",
			Image:       "https://images.unsplash.com/photo-1543810145-21d960714b2d?auto=format&fit=crop&q=80&w=1200",
			Description: "The Lunar Bracelet features hand-selected South Sea pearls that catch the moonlight. Each pearl is uniquely lustrous, threaded on a silk-wrapped silver cord for a piece that feels intimate and alive.",
		},
	}
}
