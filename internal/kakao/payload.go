package kakao

import (
	"encoding/json"
	"fmt"
	"io"
)

// Payload is the skill request body sent by the Kakao OpenBuilder on every turn.
type Payload struct {
	Intent      Intent      `json:"intent"`
	UserRequest UserRequest `json:"userRequest"`
	Action      Action      `json:"action"`
	Contexts    []Context   `json:"contexts"`
}

type Intent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UserRequest struct {
	Timezone  string      `json:"timezone"`
	Utterance string      `json:"utterance"`
	Block     Block       `json:"block"`
	User      RequestUser `json:"user"`
}

type Block struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RequestUser struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Properties UserProperties `json:"properties"`
}

// UserProperties carries the optional secondary identifiers the platform issues
// across its integration surfaces.
type UserProperties struct {
	PlusfriendUserKey string `json:"plusfriendUserKey"`
	AppUserID         string `json:"appUserId"`
	IsFriend          bool   `json:"isFriend"`
}

type Action struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Params       map[string]string      `json:"params"`
	DetailParams map[string]DetailParam `json:"detailParams"`
	ClientExtra  map[string]any         `json:"clientExtra"`
}

// DetailParam is a detected slot: the user's original text plus the value the
// platform resolved it to.
type DetailParam struct {
	Origin    string `json:"origin"`
	Value     string `json:"value"`
	GroupName string `json:"groupName,omitempty"`
}

// ParsePayload decodes a skill request body.
func ParsePayload(r io.Reader) (*Payload, error) {
	var p Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("invalid skill payload: %w", err)
	}
	return &p, nil
}

// DetailParam returns the named detected slot, or nil if absent.
func (p *Payload) DetailParam(name string) *DetailParam {
	if p.Action.DetailParams == nil {
		return nil
	}
	dp, ok := p.Action.DetailParams[name]
	if !ok {
		return nil
	}
	return &dp
}

// ClientExtraString returns a string value carried over from a previous turn's
// button, or "" if absent.
func (p *Payload) ClientExtraString(key string) string {
	if p.Action.ClientExtra == nil {
		return ""
	}
	s, _ := p.Action.ClientExtra[key].(string)
	return s
}
