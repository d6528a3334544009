package kakao

import "encoding/json"

// Context is a named, TTL'd bag of string parameters round-tripped through the
// client on every turn. All cross-request conversation state lives here.
type Context struct {
	Name     string                  `json:"name"`
	Lifespan int                     `json:"lifeSpan"`
	TTL      int                     `json:"ttl,omitempty"`
	Params   map[string]ContextParam `json:"params,omitempty"`
}

type ContextParam struct {
	Value         string `json:"value"`
	ResolvedValue string `json:"resolvedValue,omitempty"`
}

// DecodeContexts deep-copies the inbound context list so that flow code never
// mutates the request payload's slice.
func DecodeContexts(src []Context) []Context {
	out := make([]Context, 0, len(src))
	for _, c := range src {
		cp := c
		if c.Params != nil {
			cp.Params = make(map[string]ContextParam, len(c.Params))
			for k, v := range c.Params {
				cp.Params[k] = v
			}
		}
		out = append(out, cp)
	}
	return out
}

// ExtractItems returns the string list stored under itemsKey in the context
// named name, but only when the guard parameter matches guardValue. Any
// mismatch, missing piece, expired (lifespan 0) context, or corrupted stored
// JSON yields an empty list. Extraction fails closed and never errors.
func ExtractItems(ctxs []Context, name, itemsKey, guardKey, guardValue string) []string {
	for _, c := range ctxs {
		if c.Name != name {
			continue
		}
		if c.Lifespan <= 0 {
			return []string{}
		}
		stored, ok := c.Params[itemsKey]
		if !ok {
			return []string{}
		}
		guard, ok := c.Params[guardKey]
		if !ok || guard.Value != guardValue {
			return []string{}
		}
		var items []string
		if err := json.Unmarshal([]byte(stored.Value), &items); err != nil {
			return []string{}
		}
		if items == nil {
			items = []string{}
		}
		return items
	}
	return []string{}
}

// SaveItems replaces the context named name with a fresh one holding the
// JSON-encoded items and the guard value. Writing is remove-then-append, so at
// most one context per name survives. A lifespan of 0 clears the state: the
// replacement context is written expired and ExtractItems treats it as absent
// within the same turn.
func SaveItems(ctxs []Context, name, itemsKey string, items []string, guardKey, guardValue string, lifespan, ttl int) []Context {
	out := make([]Context, 0, len(ctxs)+1)
	for _, c := range ctxs {
		if c.Name != name {
			out = append(out, c)
		}
	}
	if items == nil {
		items = []string{}
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		// []string never fails to marshal; keep the old state out regardless.
		return out
	}
	out = append(out, Context{
		Name:     name,
		Lifespan: lifespan,
		TTL:      ttl,
		Params: map[string]ContextParam{
			itemsKey: {Value: string(encoded), ResolvedValue: string(encoded)},
			guardKey: {Value: guardValue, ResolvedValue: guardValue},
		},
	})
	return out
}
