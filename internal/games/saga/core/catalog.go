package core

// CatalogConfig sets how many tiles exist per art variant.
type CatalogConfig struct {
	Variants int // art variants per category
	Playable int // playable tiles per variant
	Filler   int // filler tiles per variant
}

// DefaultCatalog is one variant per category, 20 playable and 6 filler tiles each.
func DefaultCatalog() CatalogConfig {
	return CatalogConfig{Variants: 1, Playable: 20, Filler: 6}
}

// NewCatalog builds the playable and filler tile sets for every category.
// Tiles start invisible in their pool; IDs are unique across both sets.
func NewCatalog(cfg CatalogConfig) (playable, filler []*Tile) {
	id := 0
	for _, cat := range Categories {
		for v := 0; v < cfg.Variants; v++ {
			for i := 0; i < cfg.Playable; i++ {
				playable = append(playable, &Tile{ID: id, Category: cat, Variant: v, Loc: InReserve})
				id++
			}
			for i := 0; i < cfg.Filler; i++ {
				filler = append(filler, &Tile{ID: id, Category: cat, Variant: v, Loc: InFiller})
				id++
			}
		}
	}
	return playable, filler
}
