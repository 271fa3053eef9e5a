package platform

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestRestrictedOverwrites(t *testing.T) {
	got := restrictedOverwrites("guild-1", "bot-1", []string{"mod-1", "", "mod-1", "bot-1"})

	require.Len(t, got, 3)

	everyone := got[0]
	assert.Equal(t, "guild-1", everyone.ID)
	assert.Equal(t, discordgo.PermissionOverwriteTypeRole, everyone.Type)
	assert.Equal(t, int64(PermissionViewChannel), everyone.Deny)
	assert.Zero(t, everyone.Allow)

	keepers := PermissionViewChannel | PermissionSendMessages | PermissionReadMessageHistory
	for i, id := range []string{"bot-1", "mod-1"} {
		assert.Equal(t, id, got[i+1].ID)
		assert.Equal(t, discordgo.PermissionOverwriteTypeMember, got[i+1].Type)
		assert.Equal(t, int64(keepers), got[i+1].Allow)
		assert.Zero(t, got[i+1].Deny)
	}
}

func TestRestrictedOverwritesWithoutSelf(t *testing.T) {
	got := restrictedOverwrites("guild-1", "", nil)

	require.Len(t, got, 1)
	assert.Equal(t, "guild-1", got[0].ID)
}

func TestNewLimiterBurst(t *testing.T) {
	tests := []struct {
		name  string
		rps   float64
		burst int
	}{
		{"fractional rate", 0.5, 1},
		{"rounds up", 2.5, 3},
		{"whole rate", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLimiter(tt.rps)
			assert.Equal(t, tt.burst, l.Burst())
			assert.Equal(t, rate.Limit(tt.rps), l.Limit())
			assert.True(t, l.Allow())
		})
	}
}

func TestNewDiscordFractionalRateAllowsRequests(t *testing.T) {
	session, err := discordgo.New("Bot token")
	require.NoError(t, err)

	d, err := NewDiscord(&DiscordConfig{Session: session, RequestsPerSecond: 0.5})
	require.NoError(t, err)

	assert.Equal(t, 1, d.limiter.Burst())
	assert.True(t, d.limiter.Allow())
}
