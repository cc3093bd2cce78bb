package services

import (
	"fmt"
	"net/url"
	"strings"
)

// partyAbbreviations is the fixed lookup table mapping party names to the
// display abbreviations used in synthesized asset paths.
var partyAbbreviations = map[string]string{
	"Liberal Party":          "LPC",
	"Conservative Party":     "CPC",
	"New Democratic Party":   "NDP",
	"Bloc Québécois":         "BQ",
	"Green Party":            "GPC",
	"People's Party":         "PPC",
	"Independent":            "IND",
}

const avatarURLTemplate = "https://assets.pledgeboard.org/avatars/%s/%s_%s.jpg"

// PartyAbbreviation returns the display code for a party name
func PartyAbbreviation(party string) (string, bool) {
	code, ok := partyAbbreviations[party]
	return code, ok
}

// FallbackAvatarURL synthesizes a deterministic portrait URL for a tenure
// record that has none. It returns "" when any component needed for the
// template is missing; an unset avatar is preferable to a malformed URL.
func FallbackAvatarURL(sessionID, personName, party string) string {
	if sessionID == "" || personName == "" {
		return ""
	}
	code, ok := PartyAbbreviation(party)
	if !ok {
		return ""
	}
	slug := strings.ToLower(strings.Join(strings.Fields(personName), "-"))
	return fmt.Sprintf(avatarURLTemplate, url.PathEscape(sessionID), url.PathEscape(slug), code)
}
