package service

import (
	"testing"

	"oneshot/internal/classify"
	"oneshot/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestRankCounter_Top(t *testing.T) {
	c := newRankCounter()
	for _, name := range []string{"b", "a", "c", "a", "d", "c"} {
		c.add(name)
	}

	assert.Equal(t, []model.RankedItem{
		{Name: "a", Count: 2},
		{Name: "c", Count: 2},
		{Name: "b", Count: 1},
		{Name: "d", Count: 1},
	}, c.top(0))

	assert.Equal(t, []model.RankedItem{{Name: "a", Count: 2}, {Name: "c", Count: 2}}, c.top(2))
	assert.Empty(t, newRankCounter().top(10))
}

func TestPageAndCampaign(t *testing.T) {
	tests := []struct {
		raw      string
		page     string
		campaign string
	}{
		{"https://blog.example.com/x", "/x", ""},
		{"https://blog.example.com/x?utm_campaign=launch&utm_source=hn", "/x", "launch"},
		{"https://blog.example.com", "/", ""},
		{"https://blog.example.com/#pricing", "/", ""},
		{"/relative/path?utm_campaign=spring", "/relative/path", "spring"},
		{"mailto:hello@example.com", "mailto:hello@example.com", ""},
		{"http://[::1", "http://[::1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			page, campaign := pageAndCampaign(tt.raw)
			assert.Equal(t, tt.page, page)
			assert.Equal(t, tt.campaign, campaign)
		})
	}
}

func TestReferrerHost(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"", classify.DirectNone},
		{"https://www.Google.com/search?q=x", "google.com"},
		{"https://t.co:443/abc", "t.co"},
		{"android-app://com.slack", "com.slack"},
		{"not a url", "not a url"},
		{"http://[::1", "http://[::1"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, referrerHost(tt.raw))
		})
	}
}
