package kakao

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textCards(n int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = TextCard{Title: fmt.Sprintf("card %d", i)}
	}
	return cards
}

func TestChunkCards(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, ChunkCards(nil, CarouselMaxCards))
	})

	t.Run("single card is unwrapped", func(t *testing.T) {
		out := ChunkCards(textCards(1), CarouselMaxCards)
		require.Len(t, out, 1)
		assert.NotNil(t, out[0].output().TextCard)
	})

	t.Run("full chunk becomes one carousel", func(t *testing.T) {
		out := ChunkCards(textCards(10), CarouselMaxCards)
		require.Len(t, out, 1)
		carousel := out[0].output().Carousel
		require.NotNil(t, carousel)
		assert.Len(t, carousel.Items, 10)
		assert.Equal(t, "textCard", carousel.Type)
	})

	t.Run("overflow card rides alone", func(t *testing.T) {
		out := ChunkCards(textCards(11), CarouselMaxCards)
		require.Len(t, out, 2)
		assert.NotNil(t, out[0].output().Carousel)
		assert.NotNil(t, out[1].output().TextCard, "a one-card pager is unwrapped")
	})

	t.Run("23 cards yield three slots", func(t *testing.T) {
		out := ChunkCards(textCards(23), CarouselMaxCards)
		require.Len(t, out, 3)
		assert.Len(t, out[0].output().Carousel.Items, 10)
		assert.Len(t, out[1].output().Carousel.Items, 10)
		assert.Len(t, out[2].output().Carousel.Items, 3)
	})

	t.Run("order is preserved", func(t *testing.T) {
		out := ChunkCards(textCards(12), CarouselMaxCards)
		first := out[0].output().Carousel.Items[0].(TextCard)
		last := out[1].output().Carousel.Items[1].(TextCard)
		assert.Equal(t, "card 0", first.Title)
		assert.Equal(t, "card 11", last.Title)
	})
}

func TestComposeGroup(t *testing.T) {
	placeholder := TextCard{Title: "비어 있음"}

	t.Run("empty group yields the placeholder", func(t *testing.T) {
		out := ComposeGroup(nil, CarouselMaxCards, placeholder)
		require.Len(t, out, 1)
		assert.Equal(t, "비어 있음", out[0].output().TextCard.Title)
	})

	t.Run("non-empty group chunks normally", func(t *testing.T) {
		out := ComposeGroup(textCards(2), CarouselMaxCards, placeholder)
		require.Len(t, out, 1)
		assert.NotNil(t, out[0].output().Carousel)
	})
}

func TestComposeBuckets(t *testing.T) {
	buckets := [][]Card{
		{TextCard{Title: "featured"}},
		nil,
		textCards(11),
	}
	out := ComposeBuckets(buckets, CarouselMaxCards)
	require.Len(t, out, 3)
	assert.Equal(t, "featured", out[0].output().TextCard.Title, "buckets chunk independently, in order")
	assert.NotNil(t, out[1].output().Carousel)
	assert.NotNil(t, out[2].output().TextCard)
}

func TestComposeListItems(t *testing.T) {
	rows := func(n int) []ListItem {
		items := make([]ListItem, n)
		for i := range items {
			items[i] = ListItem{Title: fmt.Sprintf("row %d", i)}
		}
		return items
	}

	t.Run("empty yields nil", func(t *testing.T) {
		assert.Nil(t, ComposeListItems("공지사항", nil))
	})

	t.Run("at the cap a single list card", func(t *testing.T) {
		out := ComposeListItems("공지사항", rows(5))
		card := out.output().ListCard
		require.NotNil(t, card)
		assert.Equal(t, "공지사항", card.Header.Title)
		assert.Len(t, card.Items, 5)
	})

	t.Run("over the cap a carousel of four-row cards", func(t *testing.T) {
		out := ComposeListItems("공지사항", rows(6))
		carousel := out.output().Carousel
		require.NotNil(t, carousel)
		require.Len(t, carousel.Items, 2)
		assert.Len(t, carousel.Items[0].(ListCard).Items, 4)
		assert.Len(t, carousel.Items[1].(ListCard).Items, 2)
	})
}

func TestSortTwoTierByTime(t *testing.T) {
	type stamped struct {
		name string
		at   time.Time
	}
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cutoff := base.Add(-17 * time.Hour) // yesterday 19:00

	items := []stamped{
		{"two days old", base.Add(-48 * time.Hour)},
		{"exactly at cutoff", cutoff},
		{"ten hours old", base.Add(-10 * time.Hour)},
		{"one hour ahead", base.Add(time.Hour)},
	}
	SortTwoTierByTime(items, func(s stamped) time.Time { return s.at }, cutoff)

	got := make([]string, len(items))
	for i, s := range items {
		got[i] = s.name
	}
	assert.Equal(t, []string{"exactly at cutoff", "ten hours old", "one hour ahead", "two days old"}, got)
}

func TestResponseWireShape(t *testing.T) {
	resp := Text("안녕하세요")
	assert.Equal(t, "2.0", resp.Version)
	require.Len(t, resp.Template.Outputs, 1)
	assert.Equal(t, "안녕하세요", resp.Template.Outputs[0].SimpleText.Text)
	assert.False(t, resp.Empty())

	resp.SetContexts([]Context{{Name: "lunch_menu", Lifespan: 5, TTL: 300, Params: map[string]ContextParam{
		"menu_list": {Value: `["라면"]`, ResolvedValue: `["라면"]`},
	}}})
	require.NotNil(t, resp.Context)
	require.Len(t, resp.Context.Values, 1)
	assert.Equal(t, `["라면"]`, resp.Context.Values[0].Params["menu_list"], "outbound params flatten to plain strings")
}
