// Package dispatcher sends final notifications through the Discord client,
// restricting pings to exactly the intended role or user.
package dispatcher

import (
	"fmt"

	"github.com/samber/mo"

	"luvihelper/clients"
)

type DispatcherService struct {
	discordClient clients.DiscordClient
}

func NewDispatcherService(discordClient clients.DiscordClient) *DispatcherService {
	return &DispatcherService{discordClient: discordClient}
}

// SendGroupMessage sends content to a channel. When mentionRoleID is present,
// the message is allowed to ping that single role and nothing else.
func (s *DispatcherService) SendGroupMessage(channelID, content string, mentionRoleID mo.Option[string]) error {
	mentions := clients.AllowedMentions{}
	if roleID, ok := mentionRoleID.Get(); ok {
		mentions.RoleIDs = []string{roleID}
	}

	if err := s.discordClient.SendChannelMessage(channelID, content, mentions); err != nil {
		return fmt.Errorf("failed to send group message: %w", err)
	}
	return nil
}

// SendUserMention sends content to a channel prefixed with a mention of the
// user; only that user may be pinged.
func (s *DispatcherService) SendUserMention(channelID, userID, content string) error {
	mentions := clients.AllowedMentions{UserIDs: []string{userID}}
	body := fmt.Sprintf("<@%s> %s", userID, content)

	if err := s.discordClient.SendChannelMessage(channelID, body, mentions); err != nil {
		return fmt.Errorf("failed to send user mention: %w", err)
	}
	return nil
}

func (s *DispatcherService) SendDirectMessage(userID, content string) error {
	if err := s.discordClient.SendDirectMessage(userID, content); err != nil {
		return fmt.Errorf("failed to send direct message: %w", err)
	}
	return nil
}
