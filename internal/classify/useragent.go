// Package classify holds the ordered, first-match-wins rule lists used to
// categorize user agents and referrers.
package classify

import (
	"regexp"
	"strings"
)

// Unknown is returned when no browser or OS rule matches
const Unknown = "Unknown"

// Rule maps a matching predicate to a label. Rules are evaluated in slice
// order and the first match wins.
type Rule struct {
	Label string
	Match func(string) bool
}

func contains(substr string) func(string) bool {
	return func(s string) bool {
		return strings.Contains(s, substr)
	}
}

// Chrome is listed before Safari and Edge, so Chromium-based Edge and any UA
// carrying both Chrome and Safari tokens classify as Chrome.
var browserRules = []Rule{
	{Label: "Chrome", Match: contains("Chrome")},
	{Label: "Firefox", Match: contains("Firefox")},
	{Label: "Safari", Match: contains("Safari")},
	{Label: "Edge", Match: contains("Edge")},
	{Label: "Opera", Match: contains("Opera")},
}

var osRules = []Rule{
	{Label: "Windows", Match: contains("Windows")},
	{Label: "MacOS", Match: contains("Mac")},
	{Label: "Linux", Match: contains("Linux")},
	{Label: "Android", Match: contains("Android")},
	{Label: "iOS", Match: contains("iOS")},
}

var (
	tabletPattern = regexp.MustCompile(`(?i)(tablet|ipad|playbook|silk)`)
	mobilePattern = regexp.MustCompile(`Mobile|Android|iP(hone|od)|IEMobile|BlackBerry|Kindle|Silk-Accelerated|(hpw|web)OS|Opera M(obi|ini)`)
)

// isTablet also treats Android without a trailing "mobi" token as a tablet
func isTablet(ua string) bool {
	if tabletPattern.MatchString(ua) {
		return true
	}
	lower := strings.ToLower(ua)
	idx := strings.LastIndex(lower, "android")
	return idx >= 0 && !strings.Contains(lower[idx:], "mobi")
}

var deviceRules = []Rule{
	{Label: "Tablet", Match: isTablet},
	{Label: "Mobile", Match: mobilePattern.MatchString},
}

// Device labels
const (
	DeviceDesktop = "Desktop"
)

func firstMatch(rules []Rule, s, fallback string) string {
	for _, r := range rules {
		if r.Match(s) {
			return r.Label
		}
	}
	return fallback
}

// Browser classifies the browser family of a user agent
func Browser(ua string) string {
	return firstMatch(browserRules, ua, Unknown)
}

// OS classifies the operating system of a user agent
func OS(ua string) string {
	return firstMatch(osRules, ua, Unknown)
}

// Device classifies the device class of a user agent
func Device(ua string) string {
	return firstMatch(deviceRules, ua, DeviceDesktop)
}

// UserAgent is the derived browser/OS/device triple
type UserAgent struct {
	Browser string
	OS      string
	Device  string
}

// ParseUserAgent derives all three classes at once
func ParseUserAgent(ua string) UserAgent {
	return UserAgent{
		Browser: Browser(ua),
		OS:      OS(ua),
		Device:  Device(ua),
	}
}

func labels(rules []Rule) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.Label)
	}
	return out
}

// BrowserOrder returns the browser rule labels in evaluation order
func BrowserOrder() []string { return labels(browserRules) }

// OSOrder returns the OS rule labels in evaluation order
func OSOrder() []string { return labels(osRules) }

// DeviceOrder returns the device rule labels in evaluation order
func DeviceOrder() []string { return labels(deviceRules) }
