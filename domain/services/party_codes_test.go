package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartyAbbreviation(t *testing.T) {
	code, ok := PartyAbbreviation("New Democratic Party")
	assert.True(t, ok)
	assert.Equal(t, "NDP", code)

	_, ok = PartyAbbreviation("Rhinoceros Party")
	assert.False(t, ok)
}

func TestFallbackAvatarURL(t *testing.T) {
	url := FallbackAvatarURL("45-1", "Jane Doe", "Liberal Party")
	assert.Equal(t, "https://assets.pledgeboard.org/avatars/45-1/jane-doe_LPC.jpg", url)
}

func TestFallbackAvatarURL_MissingComponents(t *testing.T) {
	assert.Empty(t, FallbackAvatarURL("", "Jane Doe", "Liberal Party"))
	assert.Empty(t, FallbackAvatarURL("45-1", "", "Liberal Party"))
	assert.Empty(t, FallbackAvatarURL("45-1", "Jane Doe", "Unknown Party"))
}
