package archive

import (
	"context"
	"fmt"

	"github.com/mmcdole/romshelf/internal/domain"
)

// GetMetadata returns every lookup table
func (c *Client) GetMetadata(ctx context.Context) (domain.Metadata, error) {
	var m domain.Metadata
	if err := c.getJSON(ctx, "/metadata", nil, &m); err != nil {
		return domain.Metadata{}, err
	}
	return m, nil
}

// GetLookup returns a single lookup table wrapped in a Metadata value
func (c *Client) GetLookup(ctx context.Context, lookup domain.Lookup) (domain.Metadata, error) {
	var m domain.Metadata
	var dest any
	switch lookup {
	case domain.LookupConsoles:
		dest = &m.Consoles
	case domain.LookupGenres:
		dest = &m.Genres
	case domain.LookupLanguages:
		dest = &m.Languages
	case domain.LookupPatchStatuses:
		dest = &m.PatchStatuses
	case domain.LookupHackCategories:
		dest = &m.HackCategories
	case domain.LookupUtilityCategories:
		dest = &m.UtilityCategories
	case domain.LookupDocumentCategories:
		dest = &m.DocumentCategories
	case domain.LookupHomebrewCategories:
		dest = &m.HomebrewCategories
	case domain.LookupSkillLevels:
		dest = &m.SkillLevels
	case domain.LookupOperatingSystems:
		dest = &m.OperatingSystems
	default:
		return domain.Metadata{}, fmt.Errorf("unknown lookup %q", lookup)
	}

	if err := c.getJSON(ctx, "/metadata/"+string(lookup), nil, dest); err != nil {
		return domain.Metadata{}, err
	}
	return m, nil
}
