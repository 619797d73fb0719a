package classifier

import (
	"net/url"
	"slices"
	"strings"

	"go.trai.ch/scrwatch/internal/core/domain"
)

// URL markers of the client's web API. Segment positions are fixed by the
// API shape: /web-api/v2/aurora-profile-by-toon/{alias}/{gateway} and
// /web-api/v1/leaderboard-rank-by-toon/{ladder}/{alias}/{gateway}.
const (
	profileMarker      = "aurora-profile-by-toon"
	tooninfoFlag       = "scr_tooninfo"
	gameLoadingFlag    = "scr_mmgameloading"
	leaderboardMarker  = "leaderboard-rank-by-toon"
	gameLoadingPanel   = "mmgameloading"
	chatPanel          = "chat"
	toastPanel         = "toast"
	mapPreviewMarker   = "map-preview"
	mapPreviewHashName = "hash"

	profileAliasSegment     = 3
	profileGatewaySegment   = 4
	leaderboardAliasSegment = 4
	leaderboardGatewaySeg   = 5
)

// request is the parsed form handed to each rule.
type request struct {
	raw string
	u   *url.URL
}

func (r request) pathHas(marker string) bool {
	return strings.Contains(r.u.Path, marker)
}

// pathSegment reports whether one whole path segment equals name.
func (r request) pathSegment(name string) bool {
	return slices.Contains(strings.Split(r.u.Path, "/"), name)
}

func (r request) queryHas(marker string) bool {
	return strings.Contains(r.u.RawQuery, marker)
}

// rule is one entry of the ordered classification table.
type rule struct {
	name  string
	match func(request) bool
	build func(request) domain.Request
}

// rules is evaluated top to bottom; the first match wins.
var rules = []rule{
	{
		name: "Tooninfo",
		match: func(r request) bool {
			return r.pathHas(profileMarker) && r.queryHas(tooninfoFlag)
		},
		build: func(r request) domain.Request {
			p, reason := player(r, profileAliasSegment, profileGatewaySegment)
			if reason != "" {
				return domain.Unknown{URL: r.raw, Reason: reason}
			}
			return domain.Tooninfo{Player: p}
		},
	},
	{
		name: "GameLoadingProfile",
		match: func(r request) bool {
			return r.pathHas(profileMarker) && r.queryHas(gameLoadingFlag)
		},
		build: func(r request) domain.Request {
			p, reason := player(r, profileAliasSegment, profileGatewaySegment)
			if reason != "" {
				return domain.Unknown{URL: r.raw, Reason: reason}
			}
			return domain.GameLoadingProfile{Player: p}
		},
	},
	{
		name: "LeaderboardByToon",
		match: func(r request) bool {
			return r.pathHas(leaderboardMarker)
		},
		build: func(r request) domain.Request {
			p, reason := player(r, leaderboardAliasSegment, leaderboardGatewaySeg)
			if reason != "" {
				return domain.Unknown{URL: r.raw, Reason: reason}
			}
			return domain.LeaderboardByToon{Player: p}
		},
	},
	{
		name:  "GameLoading",
		match: func(r request) bool { return r.pathSegment(gameLoadingPanel) },
		build: func(r request) domain.Request { return domain.GameLoading{URL: r.raw} },
	},
	{
		name:  "ChatPanel",
		match: func(r request) bool { return r.pathSegment(chatPanel) },
		build: func(r request) domain.Request { return domain.ChatPanel{URL: r.raw} },
	},
	{
		name:  "ToastPanel",
		match: func(r request) bool { return r.pathSegment(toastPanel) },
		build: func(r request) domain.Request { return domain.ToastPanel{URL: r.raw} },
	},
	{
		name:  "MapPreview",
		match: func(r request) bool { return r.pathHas(mapPreviewMarker) },
		build: func(r request) domain.Request {
			values, ok := r.u.Query()[mapPreviewHashName]
			if !ok || len(values) == 0 {
				return domain.Unknown{URL: r.raw, Reason: "map preview without hash parameter"}
			}
			return domain.MapPreview{Hash: values[0]}
		},
	},
}
