package archive

import (
	"context"
	"fmt"

	"github.com/mmcdole/romshelf/internal/domain"
)

// ListGames returns one page of games
func (c *Client) ListGames(ctx context.Context, params domain.ListParams) (domain.Page[domain.Game], error) {
	return getPage[domain.Game](ctx, c, "/games", params.Values())
}

// GetGame returns the full game record
func (c *Client) GetGame(ctx context.Context, id int) (domain.GameDetail, error) {
	return getDetail[domain.GameDetail](ctx, c, domain.KindGame, id)
}

// GameHacks returns one page of hacks for a game
func (c *Client) GameHacks(ctx context.Context, id, page, pageSize int) (domain.Page[domain.Hack], error) {
	path := fmt.Sprintf("/games/%d/hacks", id)
	return getPage[domain.Hack](ctx, c, path, domain.PageParams(page, pageSize))
}

// GameTranslations returns one page of translations for a game
func (c *Client) GameTranslations(ctx context.Context, id, page, pageSize int) (domain.Page[domain.Translation], error) {
	path := fmt.Sprintf("/games/%d/translations", id)
	return getPage[domain.Translation](ctx, c, path, domain.PageParams(page, pageSize))
}

// ListHacks returns one page of hacks
func (c *Client) ListHacks(ctx context.Context, params domain.ListParams) (domain.Page[domain.Hack], error) {
	return getPage[domain.Hack](ctx, c, "/hacks", params.Values())
}

// GetHack returns the full hack record
func (c *Client) GetHack(ctx context.Context, id int) (domain.HackDetail, error) {
	return getDetail[domain.HackDetail](ctx, c, domain.KindHack, id)
}

// HackImages returns the screenshots of a hack
func (c *Client) HackImages(ctx context.Context, id int) ([]domain.Image, error) {
	var images []domain.Image
	err := c.getJSON(ctx, fmt.Sprintf("/hacks/%d/images", id), nil, &images)
	return images, err
}

// ListTranslations returns one page of translations
func (c *Client) ListTranslations(ctx context.Context, params domain.ListParams) (domain.Page[domain.Translation], error) {
	return getPage[domain.Translation](ctx, c, "/translations", params.Values())
}

// GetTranslation returns the full translation record
func (c *Client) GetTranslation(ctx context.Context, id int) (domain.TranslationDetail, error) {
	return getDetail[domain.TranslationDetail](ctx, c, domain.KindTranslation, id)
}

// TranslationImages returns the screenshots of a translation
func (c *Client) TranslationImages(ctx context.Context, id int) ([]domain.Image, error) {
	var images []domain.Image
	err := c.getJSON(ctx, fmt.Sprintf("/translations/%d/images", id), nil, &images)
	return images, err
}

// ListUtilities returns one page of utilities
func (c *Client) ListUtilities(ctx context.Context, params domain.ListParams) (domain.Page[domain.Utility], error) {
	return getPage[domain.Utility](ctx, c, "/utilities", params.Values())
}

// GetUtility returns the full utility record
func (c *Client) GetUtility(ctx context.Context, id int) (domain.UtilityDetail, error) {
	return getDetail[domain.UtilityDetail](ctx, c, domain.KindUtility, id)
}

// ListDocuments returns one page of documents
func (c *Client) ListDocuments(ctx context.Context, params domain.ListParams) (domain.Page[domain.Document], error) {
	return getPage[domain.Document](ctx, c, "/documents", params.Values())
}

// GetDocument returns the full document record
func (c *Client) GetDocument(ctx context.Context, id int) (domain.DocumentDetail, error) {
	return getDetail[domain.DocumentDetail](ctx, c, domain.KindDocument, id)
}

// ListHomebrew returns one page of homebrew
func (c *Client) ListHomebrew(ctx context.Context, params domain.ListParams) (domain.Page[domain.Homebrew], error) {
	return getPage[domain.Homebrew](ctx, c, "/homebrew", params.Values())
}

// GetHomebrew returns the full homebrew record
func (c *Client) GetHomebrew(ctx context.Context, id int) (domain.HomebrewDetail, error) {
	return getDetail[domain.HomebrewDetail](ctx, c, domain.KindHomebrew, id)
}

var _ domain.ArchiveSource = (*Client)(nil)
