package handlers

import (
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEditAuthor(t *testing.T) {
	t.Run("PayloadAuthorWinsWithoutFetch", func(t *testing.T) {
		update := &discordgo.MessageUpdate{
			Message: &discordgo.Message{
				ID:        "M1",
				ChannelID: "C1",
				Author:    &discordgo.User{ID: "SOURCEBOT"},
			},
		}

		author := resolveEditAuthor(update, func(channelID, messageID string) (*discordgo.Message, error) {
			t.Fatal("fetch should not be called when the payload carries an author")
			return nil, nil
		})

		require.NotNil(t, author)
		assert.Equal(t, "SOURCEBOT", author.ID)
	})

	t.Run("MissingAuthorIsFetched", func(t *testing.T) {
		update := &discordgo.MessageUpdate{
			Message: &discordgo.Message{ID: "M1", ChannelID: "C1"},
		}

		author := resolveEditAuthor(update, func(channelID, messageID string) (*discordgo.Message, error) {
			assert.Equal(t, "C1", channelID)
			assert.Equal(t, "M1", messageID)
			return &discordgo.Message{ID: "M1", Author: &discordgo.User{ID: "SOURCEBOT"}}, nil
		})

		require.NotNil(t, author)
		assert.Equal(t, "SOURCEBOT", author.ID)
	})

	t.Run("FetchFailureLeavesEditUnattributed", func(t *testing.T) {
		update := &discordgo.MessageUpdate{
			Message: &discordgo.Message{ID: "M1", ChannelID: "C1"},
		}

		author := resolveEditAuthor(update, func(channelID, messageID string) (*discordgo.Message, error) {
			return nil, fmt.Errorf("message not found")
		})

		assert.Nil(t, author)
	})
}

func TestMapToMessageEvent(t *testing.T) {
	t.Run("MapsCoreFields", func(t *testing.T) {
		created := time.Now().Add(-time.Minute)
		message := &discordgo.Message{
			ID:        "M1",
			GuildID:   "G1",
			ChannelID: "C1",
			Content:   "hello",
			Timestamp: created,
			Author:    &discordgo.User{ID: "A1", Bot: true},
			Mentions:  []*discordgo.User{{ID: "U1"}, {ID: "U2"}},
			Embeds: []*discordgo.MessageEmbed{{
				Title:       "A Boss Spawned!",
				Description: "watch out",
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Tier", Value: "**S**"},
				},
			}},
		}

		event := mapToMessageEvent(message)

		assert.Equal(t, "M1", event.MessageID)
		assert.Equal(t, "G1", event.GuildID)
		assert.Equal(t, "C1", event.ChannelID)
		assert.Equal(t, "A1", event.AuthorID)
		assert.True(t, event.AuthorIsBot)
		assert.Equal(t, []string{"U1", "U2"}, event.Mentions)
		assert.Equal(t, created, event.CreatedAt)
		assert.True(t, event.EditedAt.IsZero())

		require.Len(t, event.Embeds, 1)
		assert.Equal(t, "A Boss Spawned!", event.Embeds[0].Title)
		require.Len(t, event.Embeds[0].Fields, 1)
		assert.Equal(t, "Tier", event.Embeds[0].Fields[0].Name)
		assert.Equal(t, "**S**", event.Embeds[0].Fields[0].Value)
	})

	t.Run("MapsEditedTimestamp", func(t *testing.T) {
		edited := time.Now()
		message := &discordgo.Message{
			ID:              "M1",
			Timestamp:       edited.Add(-time.Hour),
			EditedTimestamp: &edited,
		}

		event := mapToMessageEvent(message)
		assert.Equal(t, edited, event.EditedAt)
	})

	t.Run("MapsInteractionMetadata", func(t *testing.T) {
		message := &discordgo.Message{
			ID:        "M1",
			Timestamp: time.Now(),
			Interaction: &discordgo.MessageInteraction{
				Name: "raid spawn",
				User: &discordgo.User{ID: "U1"},
			},
		}

		event := mapToMessageEvent(message)
		assert.Equal(t, "raid spawn", event.InteractionName)
		assert.Equal(t, "U1", event.InteractionUserID)
	})

	t.Run("ToleratesMissingAuthor", func(t *testing.T) {
		event := mapToMessageEvent(&discordgo.Message{ID: "M1", Timestamp: time.Now()})
		assert.Empty(t, event.AuthorID)
		assert.False(t, event.AuthorIsBot)
	})
}
