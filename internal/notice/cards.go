package notice

import (
	"fmt"
	"time"

	"sandol-kakao-backend/internal/kakao"
	"sandol-kakao-backend/internal/upstream"
)

const (
	// GeneralHeader titles the campus notice board list.
	GeneralHeader = "공지사항"
	// DormitoryHeader titles the dormitory notice board list.
	DormitoryHeader = "생활관 공지사항"

	// DefaultPageSize is how many notices one turn shows.
	DefaultPageSize = 5
)

func listItem(n upstream.Notice, loc *time.Location) kakao.ListItem {
	at := n.CreateAt.In(loc)
	return kakao.ListItem{
		Title: n.Title,
		Description: fmt.Sprintf("%s | %d월 %d일 %d시 %d분",
			n.Author, int(at.Month()), at.Day(), at.Hour(), at.Minute()),
		Link: &kakao.Link{Web: n.URL},
	}
}

// Compose renders one page of notices under the given header. An empty page
// yields a plain text response instead of an empty list card.
func Compose(header string, page upstream.NoticePage, loc *time.Location) *kakao.Response {
	if len(page.Items) == 0 {
		return kakao.Text("공지사항이 없습니다.")
	}
	items := make([]kakao.ListItem, 0, len(page.Items))
	for _, n := range page.Items {
		items = append(items, listItem(n, loc))
	}
	return kakao.NewResponse().AddComponent(kakao.ComposeListItems(header, items))
}
