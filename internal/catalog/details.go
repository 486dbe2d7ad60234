package catalog

import (
	"context"
	"errors"
)

var errEmptyDetail = errors.New("detail lookup returned no items")

// Details fetches the expanded record for item using its highest-priority
// identifier. The fetch is best-effort: when the item has no identifier it is
// returned unchanged without a request, and any failure is logged and the
// summary item returned instead.
func (c *Client) Details(ctx context.Context, token string, item Item) Item {
	param, value, ok := item.Identity()
	if !ok {
		return item
	}

	detailed, err := c.fetchDetail(ctx, token, param, value)
	if err != nil {
		c.logger.Warn("detail fetch failed, showing summary",
			"lookup", param, "value", value, "error", err)
		return item
	}
	return detailed
}

func (c *Client) fetchDetail(ctx context.Context, token, param, value string) (Item, error) {
	data, err := c.Fetch(ctx, token, Params{param: value})
	if err != nil {
		return Item{}, err
	}
	items, _ := c.normalize(data)
	if len(items) == 0 {
		return Item{}, errEmptyDetail
	}
	return items[0], nil
}
