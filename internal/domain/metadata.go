package domain

// Console is a platform lookup entry
type Console struct {
	ID           int    `json:"consoleid"`
	Description  string `json:"description"`
	Manufacturer string `json:"manufacturer"`
	Abbreviation string `json:"abb"`
}

// Genre is a game genre lookup entry
type Genre struct {
	ID          int    `json:"genreid"`
	Description string `json:"description"`
}

// Language is a translation language lookup entry
type Language struct {
	ID          int    `json:"languageid"`
	Description string `json:"description"`
}

// PatchStatus is a translation completeness lookup entry
type PatchStatus struct {
	ID          int    `json:"statusid"`
	Description string `json:"description"`
}

// Category is shared by hack, utility, document and homebrew categories
type Category struct {
	ID          int    `json:"categoryid"`
	Description string `json:"description"`
}

// SkillLevel is a document difficulty lookup entry
type SkillLevel struct {
	ID          int    `json:"levelid"`
	Description string `json:"description"`
}

// OperatingSystem is a utility platform lookup entry
type OperatingSystem struct {
	ID          int    `json:"osid"`
	Description string `json:"description"`
}

// Metadata bundles every lookup table
type Metadata struct {
	Consoles           []Console         `json:"consoles"`
	Genres             []Genre           `json:"genres"`
	Languages          []Language        `json:"languages"`
	PatchStatuses      []PatchStatus     `json:"patch_statuses"`
	HackCategories     []Category        `json:"hack_categories"`
	UtilityCategories  []Category        `json:"util_categories"`
	DocumentCategories []Category        `json:"doc_categories"`
	HomebrewCategories []Category        `json:"homebrew_categories"`
	SkillLevels        []SkillLevel      `json:"skill_levels"`
	OperatingSystems   []OperatingSystem `json:"operating_systems"`
}

// Lookup names the single-table metadata endpoints
type Lookup string

const (
	LookupConsoles           Lookup = "consoles"
	LookupGenres             Lookup = "genres"
	LookupLanguages          Lookup = "languages"
	LookupPatchStatuses      Lookup = "patch-statuses"
	LookupHackCategories     Lookup = "categories/hacks"
	LookupUtilityCategories  Lookup = "categories/utilities"
	LookupDocumentCategories Lookup = "categories/documents"
	LookupHomebrewCategories Lookup = "categories/homebrew"
	LookupSkillLevels        Lookup = "skill-levels"
	LookupOperatingSystems   Lookup = "operating-systems"
)

// Option is a lookup entry flattened for pickers
type Option struct {
	ID    int
	Label string
}

// Options returns the entries of a lookup table as picker options
func (m Metadata) Options(l Lookup) []Option {
	var opts []Option
	switch l {
	case LookupConsoles:
		for _, c := range m.Consoles {
			opts = append(opts, Option{ID: c.ID, Label: c.Description})
		}
	case LookupGenres:
		for _, g := range m.Genres {
			opts = append(opts, Option{ID: g.ID, Label: g.Description})
		}
	case LookupLanguages:
		for _, lang := range m.Languages {
			opts = append(opts, Option{ID: lang.ID, Label: lang.Description})
		}
	case LookupPatchStatuses:
		for _, s := range m.PatchStatuses {
			opts = append(opts, Option{ID: s.ID, Label: s.Description})
		}
	case LookupHackCategories:
		opts = categoryOptions(m.HackCategories)
	case LookupUtilityCategories:
		opts = categoryOptions(m.UtilityCategories)
	case LookupDocumentCategories:
		opts = categoryOptions(m.DocumentCategories)
	case LookupHomebrewCategories:
		opts = categoryOptions(m.HomebrewCategories)
	case LookupSkillLevels:
		for _, s := range m.SkillLevels {
			opts = append(opts, Option{ID: s.ID, Label: s.Description})
		}
	case LookupOperatingSystems:
		for _, o := range m.OperatingSystems {
			opts = append(opts, Option{ID: o.ID, Label: o.Description})
		}
	}
	return opts
}

// Label returns the description of a lookup entry, or "" if the id is unknown
func (m Metadata) Label(l Lookup, id int) string {
	for _, opt := range m.Options(l) {
		if opt.ID == id {
			return opt.Label
		}
	}
	return ""
}

func categoryOptions(cats []Category) []Option {
	opts := make([]Option, 0, len(cats))
	for _, c := range cats {
		opts = append(opts, Option{ID: c.ID, Label: c.Description})
	}
	return opts
}
