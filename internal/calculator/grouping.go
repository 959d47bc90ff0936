package calculator

import (
	"sort"
	"time"

	"cloud.google.com/go/civil"
)

// DateGroup is a bucket of records that share a civil date.
type DateGroup[T any] struct {
	Date  civil.Date
	Items []T
}

// GroupByDate buckets items by the civil date of at(item) in loc. Buckets are
// ordered most recent day first and items inside a bucket by timestamp descending.
// Items with equal timestamps keep their input order.
func GroupByDate[T any](items []T, at func(T) time.Time, loc *time.Location) []DateGroup[T] {
	if len(items) == 0 {
		return nil
	}
	index := make(map[civil.Date]int)
	var groups []DateGroup[T]
	for _, item := range items {
		d := DateOf(at(item), loc)
		i, ok := index[d]
		if !ok {
			i = len(groups)
			index[d] = i
			groups = append(groups, DateGroup[T]{Date: d})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	sort.Slice(groups, func(a, b int) bool { return groups[a].Date.After(groups[b].Date) })
	for _, g := range groups {
		sort.SliceStable(g.Items, func(a, b int) bool { return at(g.Items[a]).After(at(g.Items[b])) })
	}
	return groups
}

// Recent keeps the first n items across groups while preserving the grouping.
func Recent[T any](groups []DateGroup[T], n int) []DateGroup[T] {
	var out []DateGroup[T]
	remaining := n
	for _, g := range groups {
		if remaining <= 0 {
			break
		}
		items := g.Items
		if len(items) > remaining {
			items = items[:remaining]
		}
		out = append(out, DateGroup[T]{Date: g.Date, Items: items})
		remaining -= len(items)
	}
	return out
}
