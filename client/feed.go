package client

import (
	"context"
	"math/rand"

	"forum404/internal/model"
)

// FetchPage loads one page of topics. Implementations usually wrap
// Client.ListTopics with a fixed filter.
type FetchPage func(ctx context.Context, page, limit int) ([]model.Topic, *Pagination, error)

// Feed accumulates topic pages. Items already present are never appended
// twice, and any fetch failure closes the feed (HasMore false) while keeping
// what was loaded.
type Feed struct {
	fetch FetchPage
	limit int

	page    int
	items   []model.Topic
	seen    map[string]struct{}
	hasMore bool
}

func NewFeed(fetch FetchPage, limit int) *Feed {
	if limit <= 0 {
		limit = 5
	}
	return &Feed{
		fetch:   fetch,
		limit:   limit,
		seen:    make(map[string]struct{}),
		hasMore: true,
	}
}

// TopicFeed pages through /topic with the given filter.
func TopicFeed(c *Client, f TopicFilter, limit int) *Feed {
	return NewFeed(func(ctx context.Context, page, limit int) ([]model.Topic, *Pagination, error) {
		tp, err := c.ListTopics(ctx, f, page, limit)
		if err != nil {
			return nil, nil, err
		}
		return tp.Items, &tp.Pagination, nil
	}, limit)
}

func (f *Feed) Items() []model.Topic { return f.items }
func (f *Feed) HasMore() bool        { return f.hasMore }

// LoadMore fetches the next page and appends the unseen items.
func (f *Feed) LoadMore(ctx context.Context) error {
	if !f.hasMore {
		return nil
	}

	next := f.page + 1
	items, pg, err := f.fetch(ctx, next, f.limit)
	if err != nil {
		f.hasMore = false
		return err
	}
	f.page = next
	f.append(items)

	if pg != nil {
		f.hasMore = pg.HasMore
	} else {
		f.hasMore = len(items) == f.limit
	}
	return nil
}

// Refresh drops everything and reloads the first page.
func (f *Feed) Refresh(ctx context.Context) error {
	f.page = 0
	f.items = nil
	f.seen = make(map[string]struct{})
	f.hasMore = true
	return f.LoadMore(ctx)
}

func (f *Feed) append(items []model.Topic) {
	for _, t := range items {
		if _, dup := f.seen[t.ID]; dup {
			continue
		}
		f.seen[t.ID] = struct{}{}
		f.items = append(f.items, t)
	}
}

// ForYouFeed is a Feed that shuffles each fetched page before appending, so
// the discovery order varies per load while pagination stays stable.
type ForYouFeed struct {
	Feed
	rng *rand.Rand
}

func NewForYouFeed(fetch FetchPage, limit int, seed int64) *ForYouFeed {
	ff := &ForYouFeed{rng: rand.New(rand.NewSource(seed))}
	inner := func(ctx context.Context, page, limit int) ([]model.Topic, *Pagination, error) {
		items, pg, err := fetch(ctx, page, limit)
		if err != nil {
			return nil, nil, err
		}
		ff.shuffle(items)
		return items, pg, nil
	}
	ff.Feed = Feed{
		fetch:   inner,
		limit:   limit,
		seen:    make(map[string]struct{}),
		hasMore: true,
	}
	if limit <= 0 {
		ff.Feed.limit = 5
	}
	return ff
}

// ForYou pages through all topics, shuffling each page.
func ForYou(c *Client, limit int, seed int64) *ForYouFeed {
	return NewForYouFeed(func(ctx context.Context, page, limit int) ([]model.Topic, *Pagination, error) {
		tp, err := c.ListTopics(ctx, TopicFilter{}, page, limit)
		if err != nil {
			return nil, nil, err
		}
		return tp.Items, &tp.Pagination, nil
	}, limit, seed)
}

// shuffle is an in-place Fisher-Yates pass over one page.
func (ff *ForYouFeed) shuffle(items []model.Topic) {
	for i := len(items) - 1; i > 0; i-- {
		j := ff.rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
