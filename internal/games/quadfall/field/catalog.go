package field

// Tags of the classic catalog. Renderers map them to colors.
const (
	TagT Cell = iota + 1
	TagI
	TagO
	TagL
	TagJ
	TagS
	TagZ
)

// Classic returns the seven-shape catalog quadfall ships with.
// Rows are drawn top to bottom.
func Classic() *Catalog {
	c, _ := NewCatalog("classic",
		MustTemplate("T", TagT,
			".#.",
			".##",
			".#.",
		),
		MustTemplate("I", TagI,
			".#..",
			".#..",
			".#..",
			".#..",
		),
		MustTemplate("O", TagO,
			"##",
			"##",
		),
		MustTemplate("L", TagL,
			"#..",
			"###",
			"...",
		),
		MustTemplate("J", TagJ,
			"...",
			"###",
			"#..",
		),
		MustTemplate("S", TagS,
			"..#",
			".##",
			".#.",
		),
		MustTemplate("Z", TagZ,
			".#.",
			".##",
			"..#",
		),
	)
	return c
}

// Mini returns a gentler catalog of dominoes and trominoes.
func Mini() *Catalog {
	c, _ := NewCatalog("mini",
		MustTemplate("domino", TagI,
			"#.",
			"#.",
		),
		MustTemplate("bar", TagO,
			".#.",
			".#.",
			".#.",
		),
		MustTemplate("corner", TagL,
			"#.",
			"##",
		),
	)
	return c
}
