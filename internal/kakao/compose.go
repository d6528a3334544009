package kakao

import (
	"sort"
	"time"
)

// Platform capacity limits. The cap depends on the container kind, not on a
// universal constant: a list card shown on its own holds more rows than one
// riding inside a carousel.
const (
	ListCardMaxItems      = 5
	CarouselListCardItems = 4
	CarouselMaxCards      = 10
)

// ChunkCards packs cards into pagers of at most size cards each, preserving
// order. A pager that would hold a single card is unwrapped to the bare card.
// Returns nil for an empty input; the caller decides on a placeholder.
func ChunkCards(cards []Card, size int) []Component {
	if len(cards) == 0 {
		return nil
	}
	if size <= 0 {
		size = CarouselMaxCards
	}
	var out []Component
	for start := 0; start < len(cards); start += size {
		end := start + size
		if end > len(cards) {
			end = len(cards)
		}
		chunk := cards[start:end]
		if len(chunk) == 1 {
			out = append(out, chunk[0])
			continue
		}
		out = append(out, NewCarousel(chunk...))
	}
	return out
}

// ComposeGroup renders one group of cards into its top-level slots. An empty
// group yields the placeholder leaf rather than silently dropping the slot.
func ComposeGroup(cards []Card, size int, placeholder Card) []Component {
	if len(cards) == 0 {
		return []Component{placeholder}
	}
	return ChunkCards(cards, size)
}

// ComposeBuckets chunks each bucket independently and concatenates the
// results in bucket order. Buckets partition a group before pagination, e.g.
// the featured venue ahead of the rest; empty buckets occupy no slot.
func ComposeBuckets(buckets [][]Card, size int) []Component {
	var out []Component
	for _, b := range buckets {
		out = append(out, ChunkCards(b, size)...)
	}
	return out
}

// ComposeListItems renders rows under a shared header: a single list card up
// to the standalone cap, beyond that a carousel of list cards filled to the
// in-carousel cap. Returns nil for an empty input.
func ComposeListItems(header string, items []ListItem) Component {
	if len(items) == 0 {
		return nil
	}
	if len(items) <= ListCardMaxItems {
		return ListCard{Header: ListHeader{Title: header}, Items: items}
	}
	var cards []Card
	for start := 0; start < len(items); start += CarouselListCardItems {
		end := start + CarouselListCardItems
		if end > len(items) {
			end = len(items)
		}
		cards = append(cards, ListCard{Header: ListHeader{Title: header}, Items: items[start:end]})
	}
	if len(cards) == 1 {
		return cards[0]
	}
	return NewCarousel(cards...)
}

// SortTwoTierByTime orders items so that everything stamped at or after the
// cutoff comes first, ascending, followed by the older tier, also ascending.
// The sort is stable within equal timestamps.
func SortTwoTierByTime[T any](items []T, timestamp func(T) time.Time, cutoff time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, tj := timestamp(items[i]), timestamp(items[j])
		recentI, recentJ := !ti.Before(cutoff), !tj.Before(cutoff)
		if recentI != recentJ {
			return recentI
		}
		return ti.Before(tj)
	})
}
