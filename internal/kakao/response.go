package kakao

import (
	"encoding/json"
	"net/http"
)

// Response is the skill response body. The platform expects HTTP 200 with a
// well-formed template even for logical errors, so every handler path ends in
// one of these.
type Response struct {
	Version  string          `json:"version"`
	Template Template        `json:"template"`
	Context  *ContextControl `json:"context,omitempty"`
}

type Template struct {
	Outputs      []Output     `json:"outputs"`
	QuickReplies []QuickReply `json:"quickReplies,omitempty"`
}

// ContextControl carries the updated context set back to the platform.
type ContextControl struct {
	Values []ContextValue `json:"values"`
}

// ContextValue is the outbound form of a context: params flattened to strings.
type ContextValue struct {
	Name     string            `json:"name"`
	Lifespan int               `json:"lifeSpan"`
	TTL      int               `json:"ttl,omitempty"`
	Params   map[string]string `json:"params,omitempty"`
}

func NewResponse() *Response {
	return &Response{Version: "2.0"}
}

func (r *Response) AddComponent(c Component) *Response {
	r.Template.Outputs = append(r.Template.Outputs, c.output())
	return r
}

func (r *Response) AddComponents(cs ...Component) *Response {
	for _, c := range cs {
		r.AddComponent(c)
	}
	return r
}

func (r *Response) AddQuickReply(qr QuickReply) *Response {
	r.Template.QuickReplies = append(r.Template.QuickReplies, qr)
	return r
}

// SetContexts replaces the outbound context set with the given contexts.
func (r *Response) SetContexts(ctxs []Context) *Response {
	values := make([]ContextValue, 0, len(ctxs))
	for _, c := range ctxs {
		v := ContextValue{Name: c.Name, Lifespan: c.Lifespan, TTL: c.TTL}
		if len(c.Params) > 0 {
			v.Params = make(map[string]string, len(c.Params))
			for k, p := range c.Params {
				v.Params[k] = p.Value
			}
		}
		values = append(values, v)
	}
	r.Context = &ContextControl{Values: values}
	return r
}

// Empty reports whether no output slot has been filled yet.
func (r *Response) Empty() bool {
	return len(r.Template.Outputs) == 0
}

// Text is shorthand for a response holding a single simple text message.
func Text(text string) *Response {
	return NewResponse().AddComponent(SimpleText{Text: text})
}

// ErrorCard renders a server-fault apology card. Detail stays in the logs;
// the user only sees the generic message.
func ErrorCard() *Response {
	return NewResponse().AddComponent(TextCard{
		Title:       "오류 발생",
		Description: "죄송합니다. 서버 오류가 발생했습니다. 오류가 지속될 경우 관리자에게 문의해주세요.",
	})
}

// Write serializes the response with the HTTP 200 the platform requires.
func (r *Response) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(r)
}
