package client

import (
	"fmt"

	"github.com/jlp0422/coffee-golf-leaderboard/config"

	"github.com/bwmarrin/discordgo"
)

// DiscordClient posts digest messages into the configured channel.
type DiscordClient struct {
	session   *discordgo.Session
	channelId string
}

func NewDiscordClient() (*DiscordClient, error) {
	env := config.Env()
	if env.DiscordBotToken == "" || env.DiscordChannelID == "" {
		return nil, fmt.Errorf("discord bot token or channel id not configured")
	}
	session, err := discordgo.New("Bot " + env.DiscordBotToken)
	if err != nil {
		return nil, err
	}
	return &DiscordClient{
		session:   session,
		channelId: env.DiscordChannelID,
	}, nil
}

func (c *DiscordClient) PostMessage(content string) error {
	_, err := c.session.ChannelMessageSend(c.channelId, content)
	return err
}
