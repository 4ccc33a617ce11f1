// Package notion keeps lineup rows in a Notion database, one page per act
// with the act name as the page title.
package notion

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// DefaultRequestsPerSecond is Notion's average request limit per integration.
const DefaultRequestsPerSecond = 3

// Client is the part of the Notion API a lineup database needs.
type Client interface {
	QueryDatabase(ctx context.Context, dbID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
	CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
}

// API is a Client over the Notion REST API. All calls share one limiter.
type API struct {
	databases notionapi.DatabaseService
	pages     notionapi.PageService
	limiter   *rate.Limiter
}

// NewAPI returns a client for the integration token, throttled to rps
// requests per second. rps <= 0 disables throttling.
func NewAPI(token string, rps float64) *API {
	inner := notionapi.NewClient(notionapi.Token(token))
	a := &API{databases: inner.Database, pages: inner.Page}
	if rps > 0 {
		a.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return a
}

func (a *API) throttle(ctx context.Context) error {
	if a.limiter == nil {
		return nil
	}
	return eris.Wrap(a.limiter.Wait(ctx), "notion: throttle")
}

func (a *API) QueryDatabase(ctx context.Context, dbID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	if err := a.throttle(ctx); err != nil {
		return nil, err
	}
	resp, err := a.databases.Query(ctx, notionapi.DatabaseID(dbID), req)
	if err != nil {
		return nil, eris.Wrapf(err, "notion: query lineup database %s", dbID)
	}
	return resp, nil
}

func (a *API) CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	if err := a.throttle(ctx); err != nil {
		return nil, err
	}
	page, err := a.pages.Create(ctx, req)
	if err != nil {
		return nil, eris.Wrapf(err, "notion: create page in %s", req.Parent.DatabaseID)
	}
	return page, nil
}
