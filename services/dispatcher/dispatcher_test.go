package dispatcher

import (
	"fmt"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luvihelper/clients"
	discordclient "luvihelper/clients/discord"
)

func TestDispatcherService(t *testing.T) {
	t.Run("SendGroupMessage", func(t *testing.T) {
		t.Run("RestrictsMentionToSingleRole", func(t *testing.T) {
			mockClient := new(discordclient.MockDiscordClient)
			service := NewDispatcherService(mockClient)

			mockClient.On("SendChannelMessage", "C1", "boss ping",
				clients.AllowedMentions{RoleIDs: []string{"R1"}}).Return(nil)

			err := service.SendGroupMessage("C1", "boss ping", mo.Some("R1"))
			require.NoError(t, err)
			mockClient.AssertExpectations(t)
		})

		t.Run("NoRoleMeansNoPings", func(t *testing.T) {
			mockClient := new(discordclient.MockDiscordClient)
			service := NewDispatcherService(mockClient)

			mockClient.On("SendChannelMessage", "C1", "plain", clients.AllowedMentions{}).Return(nil)

			err := service.SendGroupMessage("C1", "plain", mo.None[string]())
			require.NoError(t, err)
			mockClient.AssertExpectations(t)
		})

		t.Run("WrapsTransportError", func(t *testing.T) {
			mockClient := new(discordclient.MockDiscordClient)
			service := NewDispatcherService(mockClient)

			mockClient.On("SendChannelMessage", "C1", "boss ping", clients.AllowedMentions{}).
				Return(fmt.Errorf("missing access"))

			err := service.SendGroupMessage("C1", "boss ping", mo.None[string]())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to send group message")
		})
	})

	t.Run("SendUserMention", func(t *testing.T) {
		t.Run("PrefixesMentionAndRestrictsToUser", func(t *testing.T) {
			mockClient := new(discordclient.MockDiscordClient)
			service := NewDispatcherService(mockClient)

			mockClient.On("SendChannelMessage", "C1", "<@U1> your stamina is back",
				clients.AllowedMentions{UserIDs: []string{"U1"}}).Return(nil)

			err := service.SendUserMention("C1", "U1", "your stamina is back")
			require.NoError(t, err)
			mockClient.AssertExpectations(t)
		})
	})

	t.Run("SendDirectMessage", func(t *testing.T) {
		t.Run("ForwardsToClient", func(t *testing.T) {
			mockClient := new(discordclient.MockDiscordClient)
			service := NewDispatcherService(mockClient)

			mockClient.On("SendDirectMessage", "U1", "hello").Return(nil)

			require.NoError(t, service.SendDirectMessage("U1", "hello"))
			mockClient.AssertExpectations(t)
		})
	})
}
