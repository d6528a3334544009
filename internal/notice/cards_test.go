package notice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sandol-kakao-backend/internal/upstream"
)

var kst = time.FixedZone("KST", 9*60*60)

func TestComposeEmptyPage(t *testing.T) {
	resp := Compose(GeneralHeader, upstream.NoticePage{}, kst)
	require.Len(t, resp.Template.Outputs, 1)
	require.NotNil(t, resp.Template.Outputs[0].SimpleText)
	assert.Equal(t, "공지사항이 없습니다.", resp.Template.Outputs[0].SimpleText.Text)
}

func TestComposeListsNotices(t *testing.T) {
	page := upstream.NoticePage{Items: []upstream.Notice{
		{
			Title:    "2026학년도 1학기 수강신청 안내",
			Author:   "학사운영팀",
			URL:      "https://example.ac.kr/notice/1",
			CreateAt: time.Date(2026, 3, 2, 14, 5, 0, 0, kst),
		},
		{
			Title:    "도서관 임시 휴관",
			Author:   "도서관",
			URL:      "https://example.ac.kr/notice/2",
			CreateAt: time.Date(2026, 3, 3, 9, 30, 0, 0, kst),
		},
	}}
	resp := Compose(GeneralHeader, page, kst)

	require.Len(t, resp.Template.Outputs, 1)
	card := resp.Template.Outputs[0].ListCard
	require.NotNil(t, card)
	assert.Equal(t, "공지사항", card.Header.Title)
	require.Len(t, card.Items, 2)

	first := card.Items[0]
	assert.Equal(t, "2026학년도 1학기 수강신청 안내", first.Title)
	assert.Equal(t, "학사운영팀 | 3월 2일 14시 5분", first.Description)
	require.NotNil(t, first.Link)
	assert.Equal(t, "https://example.ac.kr/notice/1", first.Link.Web)
}

func TestComposeOverflowBecomesCarousel(t *testing.T) {
	items := make([]upstream.Notice, 7)
	for i := range items {
		items[i] = upstream.Notice{Title: "공지", Author: "작성자", CreateAt: time.Date(2026, 3, 2, 10, 0, 0, 0, kst)}
	}
	resp := Compose(DormitoryHeader, upstream.NoticePage{Items: items}, kst)

	require.Len(t, resp.Template.Outputs, 1)
	carousel := resp.Template.Outputs[0].Carousel
	require.NotNil(t, carousel)
	assert.Len(t, carousel.Items, 2)
}
