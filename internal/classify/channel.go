package classify

import (
	"net"
	"strings"
)

// Channel is a marketing-source category derived from a referrer host
type Channel string

// Channels
const (
	Social Channel = "Social"
	Search Channel = "Search"
	Direct Channel = "Direct"
	Email  Channel = "Email"
	Other  Channel = "Other"
)

// DirectNone is the referrer host sentinel for events without a referrer
const DirectNone = "Direct / None"

var socialDomains = []string{
	"facebook.com", "fb.com", "fb.me", "messenger.com",
	"twitter.com", "x.com", "t.co",
	"linkedin.com", "lnkd.in",
	"instagram.com", "reddit.com", "pinterest.com",
	"youtube.com", "youtu.be", "tiktok.com",
	"news.ycombinator.com", "threads.net", "bsky.app",
	"mastodon.social", "quora.com", "tumblr.com", "vk.com",
	"weibo.com", "discord.com", "telegram.org", "t.me", "whatsapp.com",
}

// searchLabels match any domain label, so google.co.uk and news.google.com
// are both search engines
var searchLabels = []string{
	"google", "bing", "yahoo", "duckduckgo", "baidu",
	"yandex", "ecosia", "startpage", "qwant", "brave", "naver", "sogou",
}

var searchDomains = []string{
	"search.brave.com", "kagi.com", "ask.com", "aol.com",
}

var emailDomains = []string{
	"mail.google.com", "gmail.com",
	"outlook.live.com", "outlook.office.com", "outlook.office365.com", "outlook.com", "hotmail.com",
	"mail.yahoo.com", "mail.proton.me", "proton.me", "protonmail.com",
	"mail.aol.com", "mail.zoho.com", "fastmail.com", "icloud.com", "mail.yandex.ru",
	"mailchi.mp", "list-manage.com", "substack.com",
}

// ChannelRule maps a host predicate to a channel
type ChannelRule struct {
	Channel Channel
	Match   func(host string) bool
}

// channelRules are evaluated in order; the final rule always matches.
// Reordering changes the classification of hosts that match several lists,
// e.g. mail.google.com is Search because Search precedes Email.
var channelRules = []ChannelRule{
	{Channel: Social, Match: func(h string) bool { return matchDomain(h, socialDomains) }},
	{Channel: Search, Match: func(h string) bool { return matchLabel(h, searchLabels) || matchDomain(h, searchDomains) }},
	{Channel: Direct, Match: func(h string) bool { return h == DirectNone }},
	{Channel: Email, Match: func(h string) bool { return matchDomain(h, emailDomains) }},
	{Channel: Other, Match: func(string) bool { return true }},
}

// ClassifyChannel categorizes a referrer host. The DirectNone sentinel is
// matched exactly; other hosts are lower-cased with any port and leading
// "www." removed before matching.
func ClassifyChannel(host string) Channel {
	if host != DirectNone {
		host = NormalizeHost(host)
	}
	for _, r := range channelRules {
		if r.Match(host) {
			return r.Channel
		}
	}
	return Other
}

// ChannelOrder returns the channels in rule evaluation order
func ChannelOrder() []Channel {
	out := make([]Channel, 0, len(channelRules))
	for _, r := range channelRules {
		out = append(out, r.Channel)
	}
	return out
}

// NormalizeHost lower-cases a host and strips a port and a leading "www."
func NormalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimSuffix(host, ".")
	return strings.TrimPrefix(host, "www.")
}

func matchDomain(host string, domains []string) bool {
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

func matchLabel(host string, names []string) bool {
	if host == "" || strings.ContainsAny(host, " /") {
		return false
	}
	for _, label := range strings.Split(host, ".") {
		for _, n := range names {
			if label == n {
				return true
			}
		}
	}
	return false
}
