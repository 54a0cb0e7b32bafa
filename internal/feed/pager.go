// Package feed pages through the available products in fixed windows.
package feed

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"marmita-storefront/internal/logger"
	"marmita-storefront/internal/product"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DefaultPageSize = 12

// Source fetches one window of available products ordered by name.
type Source interface {
	ListAvailablePage(ctx context.Context, limit, offset int) ([]product.Product, error)
}

type Page struct {
	Items      []product.Product
	Offset     int
	Limit      int
	HasMore    bool
	NextOffset int
	// PrevOffset is nil on the first window.
	PrevOffset *int
}

type Pager struct {
	src      Source
	pageSize int
	group    singleflight.Group

	mu    sync.RWMutex
	gen   uint64
	pages map[int]Page
}

func NewPager(src Source, pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager{
		src:      src,
		pageSize: pageSize,
		pages:    make(map[int]Page),
	}
}

func (p *Pager) PageSize() int {
	return p.pageSize
}

// Load fetches the window starting at offset and stores it, replacing any
// page previously loaded for that offset. Concurrent loads of the same
// window share one request. limit <= 0 uses the pager's page size.
func (p *Pager) Load(ctx context.Context, offset, limit int) (Page, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = p.pageSize
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "feed"),
		zap.Int("offset", offset),
		zap.Int("limit", limit),
	)

	p.mu.RLock()
	gen := p.gen
	p.mu.RUnlock()

	// The fetch outlives any single caller; each caller stops waiting on its
	// own ctx. Keys carry the generation so loads after Invalidate refetch.
	fetchCtx := context.WithoutCancel(ctx)
	key := strconv.FormatUint(gen, 10) + ":" + strconv.Itoa(offset) + ":" + strconv.Itoa(limit)
	ch := p.group.DoChan(key, func() (any, error) {
		return p.src.ListAvailablePage(fetchCtx, limit, offset)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		log.Warn("product page load abandoned", zap.Error(ctx.Err()))
		return Page{}, &LoadError{Offset: offset, Limit: limit, Err: ctx.Err()}
	}
	if res.Err != nil {
		log.Warn("product page load failed", zap.Error(res.Err))
		return Page{}, &LoadError{Offset: offset, Limit: limit, Err: res.Err}
	}

	page := assemble(res.Val.([]product.Product), offset, limit)

	p.mu.Lock()
	if p.gen == gen {
		p.pages[offset] = page
	}
	p.mu.Unlock()

	log.Debug("product page loaded",
		zap.Int("items", len(page.Items)),
		zap.Bool("has_more", page.HasMore),
		zap.Bool("shared", res.Shared),
	)
	return page, nil
}

// LoadNext loads the window after page, or reports false when page was the
// last one.
func (p *Pager) LoadNext(ctx context.Context, page Page) (Page, bool, error) {
	if !page.HasMore {
		return Page{}, false, nil
	}
	next, err := p.Load(ctx, page.NextOffset, page.Limit)
	if err != nil {
		return Page{}, true, err
	}
	return next, true, nil
}

// Page returns the stored window starting at offset.
func (p *Pager) Page(offset int) (Page, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	page, ok := p.pages[offset]
	return page, ok
}

// Pages returns the stored windows ordered by offset.
func (p *Pager) Pages() []Page {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]Page, 0, len(p.pages))
	for _, page := range p.pages {
		out = append(out, page)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}

// Items concatenates the stored windows in offset order.
func (p *Pager) Items() []product.Product {
	var items []product.Product
	for _, page := range p.Pages() {
		items = append(items, page.Items...)
	}
	return items
}

// Invalidate drops every stored window. Loads already in flight do not
// repopulate the pager.
func (p *Pager) Invalidate() {
	p.mu.Lock()
	p.gen++
	p.pages = make(map[int]Page)
	p.mu.Unlock()
}

// RefreshOffset is where to restart after Invalidate to keep the reader near
// anchor. A nil anchor restarts from the top.
func RefreshOffset(anchor *Page) int {
	if anchor == nil || anchor.Offset < 0 {
		return 0
	}
	return anchor.Offset
}

// assemble builds the page for a fetched window. Paging is computed from the
// fetched count so windows stay aligned even when unavailable rows are
// dropped.
func assemble(fetched []product.Product, offset, limit int) Page {
	items := make([]product.Product, 0, len(fetched))
	for _, pr := range fetched {
		if pr.Available {
			items = append(items, pr)
		}
	}

	page := Page{
		Items:      items,
		Offset:     offset,
		Limit:      limit,
		HasMore:    len(fetched) == limit,
		NextOffset: offset + len(fetched),
	}
	if offset > 0 {
		prev := offset - limit
		if prev < 0 {
			prev = 0
		}
		page.PrevOffset = &prev
	}
	return page
}
