// Package classifier maps raw cache URLs onto request categories.
package classifier

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.trai.ch/scrwatch/internal/core/domain"
)

// Classify labels a raw cache key. It never fails: keys that are not absolute
// URLs are Unparsable, and known URLs with malformed fields are Unknown.
func Classify(raw string) domain.Request {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return domain.Unparsable{URL: raw}
	}

	r := request{raw: raw, u: u}
	for _, rl := range rules {
		if rl.match(r) {
			return rl.build(r)
		}
	}

	return domain.Unknown{URL: raw}
}

// RuleNames returns the rule names in evaluation order.
func RuleNames() []string {
	names := make([]string, 0, len(rules))
	for _, rl := range rules {
		names = append(names, rl.name)
	}
	return names
}

// player extracts an alias and gateway from fixed path positions.
// A non-empty reason means the URL is malformed.
func player(r request, aliasIdx, gatewayIdx int) (domain.Player, string) {
	segments := strings.Split(strings.TrimPrefix(r.u.EscapedPath(), "/"), "/")

	last := max(aliasIdx, gatewayIdx)
	if len(segments) <= last {
		return domain.Player{}, fmt.Sprintf("expected at least %d path segments, got %d", last+1, len(segments))
	}

	alias, err := url.PathUnescape(segments[aliasIdx])
	if err != nil {
		return domain.Player{}, fmt.Sprintf("undecodable path segment %q", segments[aliasIdx])
	}

	gateway, err := strconv.ParseUint(segments[gatewayIdx], 10, 8)
	if err != nil {
		return domain.Player{}, fmt.Sprintf("invalid gateway %q", segments[gatewayIdx])
	}

	return domain.Player{Alias: alias, Gateway: uint8(gateway)}, ""
}
