package classroom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sandol-kakao-backend/internal/kakao"
	"sandol-kakao-backend/internal/upstream"
)

func TestRoomFloor(t *testing.T) {
	cases := []struct {
		room  string
		floor int
		ok    bool
	}{
		{"103호", 1, true},
		{"1204호", 12, true},
		{"B01호", 0, false},
		{"103", 0, false},
		{"강당", 0, false},
	}
	for _, tc := range cases {
		floor, ok := roomFloor(tc.room)
		assert.Equal(t, tc.ok, ok, tc.room)
		assert.Equal(t, tc.floor, floor, tc.room)
	}
}

func TestBuildingCardGroupsByFloor(t *testing.T) {
	b := upstream.BuildingClassrooms{
		Building: "공학관",
		Rooms:    []string{"103호", "105호", "101호", "204호", "강당"},
	}
	card, ok := buildingCard(b, "b-detail", zap.NewNop())
	require.True(t, ok)

	require.NotNil(t, card.ImageTitle)
	assert.Equal(t, "공학관", card.ImageTitle.Title)

	require.Len(t, card.ItemList, 2, "unparsable rooms are dropped")
	assert.Equal(t, "1층", card.ItemList[0].Title)
	assert.Equal(t, "103호 외 2개", card.ItemList[0].Description)
	assert.Equal(t, "2층", card.ItemList[1].Title)
	assert.Equal(t, "204호", card.ItemList[1].Description)

	require.Len(t, card.Buttons, 1)
	assert.Equal(t, "b-detail", card.Buttons[0].BlockID)
	assert.Equal(t, "공학관", card.Buttons[0].Extra["building"])
}

func TestBuildingCardSkippedWithoutRooms(t *testing.T) {
	_, ok := buildingCard(upstream.BuildingClassrooms{Building: "공학관"}, "b-detail", zap.NewNop())
	assert.False(t, ok)

	_, ok = buildingCard(upstream.BuildingClassrooms{
		Building: "공학관",
		Rooms:    []string{"강당", "로비"},
	}, "b-detail", zap.NewNop())
	assert.False(t, ok, "a building with only unparsable rooms is dropped")
}

func TestPartitionBuildingsPutsMiraeLast(t *testing.T) {
	buildings := []upstream.BuildingClassrooms{
		{Building: "미래관"},
		{Building: "공학관"},
		{Building: "미래별관"},
		{Building: "가온관"},
	}
	main, annex := partitionBuildings(buildings)

	names := func(bs []upstream.BuildingClassrooms) []string {
		out := make([]string, len(bs))
		for i, b := range bs {
			out[i] = b.Building
		}
		return out
	}
	assert.Equal(t, []string{"가온관", "공학관"}, names(main))
	assert.Equal(t, []string{"미래관", "미래별관"}, names(annex))
}

func TestComposeEmpty(t *testing.T) {
	resp := Compose(nil, "b-detail", zap.NewNop())
	require.Len(t, resp.Template.Outputs, 1)
	assert.Equal(t, "빈 강의실 정보가 없습니다.", resp.Template.Outputs[0].SimpleText.Text)
}

func TestComposeDropsRoomlessBuildings(t *testing.T) {
	buildings := []upstream.BuildingClassrooms{
		{Building: "공학관", Rooms: []string{"101호"}},
		{Building: "가온관", Rooms: []string{"강당"}},
	}
	resp := Compose(buildings, "b-detail", zap.NewNop())

	require.Len(t, resp.Template.Outputs, 1)
	card := resp.Template.Outputs[0].ItemCard
	require.NotNil(t, card, "the surviving building rides alone, unwrapped")
	assert.Equal(t, "공학관", card.ImageTitle.Title)
}

func TestComposeAllBuildingsRoomless(t *testing.T) {
	buildings := []upstream.BuildingClassrooms{
		{Building: "공학관", Rooms: []string{"강당"}},
		{Building: "가온관"},
	}
	resp := Compose(buildings, "b-detail", zap.NewNop())

	require.Len(t, resp.Template.Outputs, 1)
	require.NotNil(t, resp.Template.Outputs[0].SimpleText)
	assert.Equal(t, "빈 강의실 정보가 없습니다.", resp.Template.Outputs[0].SimpleText.Text)
}

func TestComposeBucketsAnnexAfterMain(t *testing.T) {
	buildings := []upstream.BuildingClassrooms{
		{Building: "미래관", Rooms: []string{"101호"}},
		{Building: "공학관", Rooms: []string{"201호"}},
		{Building: "가온관", Rooms: []string{"301호"}},
	}
	resp := Compose(buildings, "b-detail", zap.NewNop())

	// Main campus buildings paginate together; the annex occupies its own slot.
	require.Len(t, resp.Template.Outputs, 2)
	carousel := resp.Template.Outputs[0].Carousel
	require.NotNil(t, carousel)
	require.Len(t, carousel.Items, 2)
	assert.Equal(t, "가온관", carousel.Items[0].(kakao.ItemCard).ImageTitle.Title)
	assert.Equal(t, "공학관", carousel.Items[1].(kakao.ItemCard).ImageTitle.Title)

	annex := resp.Template.Outputs[1].ItemCard
	require.NotNil(t, annex)
	assert.Equal(t, "미래관", annex.ImageTitle.Title)
}

func TestComposeChunksLargeBucket(t *testing.T) {
	buildings := make([]upstream.BuildingClassrooms, 11)
	for i := range buildings {
		buildings[i] = upstream.BuildingClassrooms{
			Building: string(rune('A' + i)),
			Rooms:    []string{"101호"},
		}
	}
	resp := Compose(buildings, "b-detail", zap.NewNop())

	require.Len(t, resp.Template.Outputs, 2)
	require.NotNil(t, resp.Template.Outputs[0].Carousel)
	assert.Len(t, resp.Template.Outputs[0].Carousel.Items, 10)
	assert.NotNil(t, resp.Template.Outputs[1].ItemCard)
}
