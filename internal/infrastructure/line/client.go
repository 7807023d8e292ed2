package line

import (
	appErrors "bdaywisher/internal/pkg/errors"
	"bdaywisher/internal/pkg/logger"
	"errors"
	"fmt"
	"net/http"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// Client wraps the linebot.Client.
type Client struct {
	*linebot.Client
	log logger.Logger
}

// NewClient creates a LINE Bot client from the channel credentials.
func NewClient(channelSecret, channelToken string, log logger.Logger) (*Client, error) {
	if channelSecret == "" || channelToken == "" {
		return nil, fmt.Errorf("%w: CHANNEL_SECRET and CHANNEL_ACCESS_TOKEN must be set", appErrors.ErrChannelDisabled)
	}

	bot, err := linebot.New(channelSecret, channelToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErrors.ErrLineAPI, err)
	}
	log.Info("Successfully created LINE Bot client.")
	return &Client{
		Client: bot,
		log:    log,
	}, nil
}

// SendMessages sends one or more messages using the ReplyMessage API.
func (c *Client) SendMessages(replyToken string, messages ...linebot.SendingMessage) error {
	_, err := c.ReplyMessage(replyToken, messages...).Do()
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrLineAPI, err)
	}
	c.log.Debug("Successfully sent reply message.")
	return nil
}

// PushMessages sends one or more messages using the PushMessage API. silent
// suppresses the device notification sound.
func (c *Client) PushMessages(to string, silent bool, messages ...linebot.SendingMessage) error {
	call := c.PushMessage(to, messages...)
	if silent {
		call = call.WithNotificationDisabled()
	}
	if _, err := call.Do(); err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrLineAPI, err)
	}
	c.log.Debug(fmt.Sprintf("Successfully sent push message to %s.", to))
	return nil
}

// DisplayName returns the profile name of a LINE user, or "" when it cannot be fetched.
func (c *Client) DisplayName(userID string) string {
	profile, err := c.GetProfile(userID).Do()
	if err != nil {
		c.log.Warn(fmt.Sprintf("Failed to get profile for %s: %v", userID, err))
		return ""
	}
	return profile.DisplayName
}

// ParseRequest parses incoming webhook requests. An invalid signature is
// reported as linebot.ErrInvalidSignature.
func (c *Client) ParseRequest(r *http.Request) ([]*linebot.Event, error) {
	events, err := c.Client.ParseRequest(r)
	if err != nil && !errors.Is(err, linebot.ErrInvalidSignature) {
		return nil, fmt.Errorf("%w: %v", appErrors.ErrLineAPI, err)
	}
	return events, err
}
