package kakao

// Display components of the Kakao skill response vocabulary. Only the closed
// set used by this service is modeled; each component knows how to place
// itself into a template output slot.

// Component is any displayable unit that can occupy a top-level output slot.
type Component interface {
	output() Output
}

// Card is a component that can also ride inside a carousel.
type Card interface {
	Component
	cardType() string
}

// Output is one slot of template.outputs; exactly one field is set.
type Output struct {
	SimpleText  *SimpleText  `json:"simpleText,omitempty"`
	SimpleImage *SimpleImage `json:"simpleImage,omitempty"`
	TextCard    *TextCard    `json:"textCard,omitempty"`
	ItemCard    *ItemCard    `json:"itemCard,omitempty"`
	ListCard    *ListCard    `json:"listCard,omitempty"`
	Carousel    *Carousel    `json:"carousel,omitempty"`
}

type SimpleText struct {
	Text string `json:"text"`
}

func (c SimpleText) output() Output { return Output{SimpleText: &c} }

type SimpleImage struct {
	ImageURL string `json:"imageUrl"`
	AltText  string `json:"altText"`
}

func (c SimpleImage) output() Output { return Output{SimpleImage: &c} }

type Button struct {
	Label       string         `json:"label"`
	Action      string         `json:"action"` // message | block | webLink | phone
	MessageText string         `json:"messageText,omitempty"`
	BlockID     string         `json:"blockId,omitempty"`
	WebLinkURL  string         `json:"webLinkUrl,omitempty"`
	PhoneNumber string         `json:"phoneNumber,omitempty"`
	Extra       map[string]any `json:"extra,omitempty"`
}

type TextCard struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Buttons     []Button `json:"buttons,omitempty"`
}

func (c TextCard) output() Output   { return Output{TextCard: &c} }
func (c TextCard) cardType() string { return "textCard" }

func (c *TextCard) AddButton(b Button) { c.Buttons = append(c.Buttons, b) }

type ImageTitle struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type ItemRow struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type ItemCardHead struct {
	Title string `json:"title"`
}

type ItemCard struct {
	ImageTitle *ImageTitle   `json:"imageTitle,omitempty"`
	Head       *ItemCardHead `json:"head,omitempty"`
	ItemList   []ItemRow     `json:"itemList"`
	Buttons    []Button      `json:"buttons,omitempty"`
}

func (c ItemCard) output() Output   { return Output{ItemCard: &c} }
func (c ItemCard) cardType() string { return "itemCard" }

func (c *ItemCard) AddItem(title, description string) {
	c.ItemList = append(c.ItemList, ItemRow{Title: title, Description: description})
}

func (c *ItemCard) AddButton(b Button) { c.Buttons = append(c.Buttons, b) }

type Link struct {
	Web string `json:"web,omitempty"`
}

type ListItem struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	ImageURL    string         `json:"imageUrl,omitempty"`
	Link        *Link          `json:"link,omitempty"`
	Action      string         `json:"action,omitempty"` // message | block
	MessageText string         `json:"messageText,omitempty"`
	BlockID     string         `json:"blockId,omitempty"`
	Extra       map[string]any `json:"extra,omitempty"`
}

type ListHeader struct {
	Title string `json:"title"`
}

type ListCard struct {
	Header  ListHeader `json:"header"`
	Items   []ListItem `json:"items"`
	Buttons []Button   `json:"buttons,omitempty"`
}

func (c ListCard) output() Output   { return Output{ListCard: &c} }
func (c ListCard) cardType() string { return "listCard" }

// Carousel pages through cards of a single kind.
type Carousel struct {
	Type  string `json:"type"`
	Items []Card `json:"items"`
}

func (c Carousel) output() Output { return Output{Carousel: &c} }

// NewCarousel wraps cards in a pager; the carousel type is taken from the
// first card, so all cards must be of the same kind.
func NewCarousel(cards ...Card) Carousel {
	c := Carousel{Items: cards}
	if len(cards) > 0 {
		c.Type = cards[0].cardType()
	}
	return c
}

type QuickReply struct {
	Label       string         `json:"label"`
	Action      string         `json:"action"` // message | block
	MessageText string         `json:"messageText,omitempty"`
	BlockID     string         `json:"blockId,omitempty"`
	Extra       map[string]any `json:"extra,omitempty"`
}
