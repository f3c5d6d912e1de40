// Package deeplink encodes the navigation position as ?body=&card= query
// parameters and keeps the last written link on disk, which is the
// terminal's stand-in for the browser address bar.
package deeplink

import (
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names.
const (
	ParamBody = "body"
	ParamCard = "card"
)

// Scheme and host used when a full link is rendered.
const (
	Scheme = "cosmos"
	Host   = "cv"
)

// Link is a (body, card) pair as carried by a URL.
type Link struct {
	Body string
	Card int
}

// Query returns the encoded query string without the leading '?'.
func (l Link) Query() string {
	v := url.Values{}
	v.Set(ParamBody, l.Body)
	v.Set(ParamCard, strconv.Itoa(l.Card))
	return v.Encode()
}

// Encode returns "?body=..&card=..".
func (l Link) Encode() string {
	return "?" + l.Query()
}

// URL returns the full cosmos:// link.
func (l Link) URL() string {
	u := url.URL{Scheme: Scheme, Host: Host, RawQuery: l.Query()}
	return u.String()
}

// Clamp returns the link with its card clamped into [0, maxCard].
func (l Link) Clamp(maxCard int) Link {
	if l.Card < 0 {
		l.Card = 0
	}
	if l.Card > maxCard {
		l.Card = maxCard
	}
	return l
}

// Parse reads a link from a bare query ("body=mars&card=2"), a query with
// a leading '?', or a full URL. valid decides whether a body id is known.
//
// An absent or unknown body yields ok=false. A missing, malformed or
// negative card becomes 0 and a card above maxCard becomes maxCard; bad
// input is never an error.
func Parse(raw string, valid func(string) bool, maxCard int) (Link, bool) {
	q := extractQuery(raw)
	values, err := url.ParseQuery(q)
	if err != nil {
		return Link{}, false
	}

	body := strings.ToLower(strings.TrimSpace(values.Get(ParamBody)))
	if body == "" || (valid != nil && !valid(body)) {
		return Link{}, false
	}

	card, err := strconv.Atoi(strings.TrimSpace(values.Get(ParamCard)))
	if err != nil {
		card = 0
	}

	return Link{Body: body, Card: card}.Clamp(maxCard), true
}

func extractQuery(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[i+1:]
	}
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	return raw
}
