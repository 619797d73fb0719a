package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/scrwatch/internal/core/domain"
)

func TestEventEnvelope(t *testing.T) {
	flash := domain.Player{Alias: "Flash", Gateway: 30}
	jaedong := domain.Player{Alias: "Jaedong", Gateway: 10}

	tests := []struct {
		name  string
		event domain.Event
		want  string
	}{
		{"service up", domain.ServiceUp{Port: 57421}, `{"name":"WebServerRunning","payload":{"port":57421}}`},
		{"service down", domain.ServiceDown{}, `{"name":"WebServerDown"}`},
		{"game ended", domain.GameEnded{}, `{"name":"GameEnded"}`},
		{"profile select", domain.ProfileSelect{Player: flash}, `{"name":"ProfileSelect","payload":{"alias":"Flash","gateway":30}}`},
		{
			"match found",
			domain.MatchFound{Player1: flash, Player2: jaedong, Map: "e3b0c442"},
			`{"name":"MatchFound","payload":{"player1":{"alias":"Flash","gateway":30},"player2":{"alias":"Jaedong","gateway":10},"map":"e3b0c442"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(domain.EventEnvelope(tt.event))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestRequestEnvelope(t *testing.T) {
	tests := []struct {
		name string
		req  domain.Request
		want string
	}{
		{"tooninfo", domain.Tooninfo{Player: domain.Player{Alias: "Flash", Gateway: 30}}, `{"name":"Tooninfo","payload":{"alias":"Flash","gateway":30}}`},
		{"map preview", domain.MapPreview{Hash: "e3b0c442"}, `{"name":"MapPreview","payload":{"hash":"e3b0c442"}}`},
		{"unknown without reason", domain.Unknown{URL: "http://x/y"}, `{"name":"Unknown","payload":{"url":"http://x/y"}}`},
		{"unknown with reason", domain.Unknown{URL: "http://x/y", Reason: "bad"}, `{"name":"Unknown","payload":{"url":"http://x/y","reason":"bad"}}`},
		{"unparsable", domain.Unparsable{URL: "::"}, `{"name":"Unparsable","payload":{"url":"::"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(domain.RequestEnvelope(tt.req))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig()

	assert.Empty(t, cfg.Cache.Dir)
	assert.Equal(t, domain.DefaultNotifyInterval, cfg.Cache.NotifyInterval)
	assert.Equal(t, domain.DefaultMaxAttempts, cfg.Cache.Retry.MaxAttempts)
	assert.Equal(t, domain.DefaultProcessName, cfg.Process.Name)
	assert.Equal(t, 30, cfg.Deriver.WindowCapacity)
	assert.Equal(t, 5, cfg.Deriver.ChatLookback)
	assert.Equal(t, []string{"index", "data_0", "data_1", "data_2", "data_3"}, domain.CacheFiles())
}
