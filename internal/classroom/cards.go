package classroom

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"sandol-kakao-backend/internal/kakao"
	"sandol-kakao-backend/internal/upstream"
)

// Room numbers are floor-prefixed: "103호" is room 03 on floor 1, "1204호" is
// room 04 on floor 12.
var roomPattern = regexp.MustCompile(`^(\d+)(\d{2})호$`)

func roomFloor(room string) (int, bool) {
	m := roomPattern.FindStringSubmatch(room)
	if m == nil {
		return 0, false
	}
	floor, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return floor, true
}

// buildingCard renders one building's free rooms grouped by floor. Rooms that
// don't parse are dropped after logging; a building left with no floors
// reports false and is skipped entirely.
func buildingCard(b upstream.BuildingClassrooms, detailBlock string, log *zap.Logger) (kakao.ItemCard, bool) {
	byFloor := make(map[int][]string)
	var floors []int
	for _, room := range b.Rooms {
		floor, ok := roomFloor(room)
		if !ok {
			log.Warn("dropping unparsable room number",
				zap.String("building", b.Building), zap.String("room", room))
			continue
		}
		if _, seen := byFloor[floor]; !seen {
			floors = append(floors, floor)
		}
		byFloor[floor] = append(byFloor[floor], room)
	}
	if len(floors) == 0 {
		return kakao.ItemCard{}, false
	}
	sort.Ints(floors)

	card := kakao.ItemCard{
		ImageTitle: &kakao.ImageTitle{Title: b.Building, Description: "빈 강의실"},
	}
	for _, floor := range floors {
		rooms := byFloor[floor]
		value := rooms[0]
		if len(rooms) > 1 {
			value = fmt.Sprintf("%s 외 %d개", rooms[0], len(rooms)-1)
		}
		card.AddItem(fmt.Sprintf("%d층", floor), value)
	}
	card.AddButton(kakao.Button{
		Label:   "자세히 보기",
		Action:  "block",
		BlockID: detailBlock,
		Extra:   map[string]any{"building": b.Building},
	})
	return card, true
}

// partitionBuildings splits buildings into the main campus bucket and the
// 미래관 annex bucket, each in name order. The annex always paginates after
// the rest.
func partitionBuildings(buildings []upstream.BuildingClassrooms) (main, annex []upstream.BuildingClassrooms) {
	for _, b := range buildings {
		if strings.HasPrefix(b.Building, "미래") {
			annex = append(annex, b)
		} else {
			main = append(main, b)
		}
	}
	byName := func(bs []upstream.BuildingClassrooms) {
		sort.SliceStable(bs, func(i, j int) bool { return bs[i].Building < bs[j].Building })
	}
	byName(main)
	byName(annex)
	return main, annex
}

func bucketCards(buildings []upstream.BuildingClassrooms, detailBlock string, log *zap.Logger) []kakao.Card {
	cards := make([]kakao.Card, 0, len(buildings))
	for _, b := range buildings {
		if card, ok := buildingCard(b, detailBlock, log); ok {
			cards = append(cards, card)
		}
	}
	return cards
}

// Compose renders the empty-classroom query result, one card per building
// that still has rooms to show.
func Compose(buildings []upstream.BuildingClassrooms, detailBlock string, log *zap.Logger) *kakao.Response {
	main, annex := partitionBuildings(buildings)
	buckets := [][]kakao.Card{
		bucketCards(main, detailBlock, log),
		bucketCards(annex, detailBlock, log),
	}
	components := kakao.ComposeBuckets(buckets, kakao.CarouselMaxCards)
	if len(components) == 0 {
		return kakao.Text("빈 강의실 정보가 없습니다.")
	}
	resp := kakao.NewResponse()
	resp.AddComponents(components...)
	return resp
}
