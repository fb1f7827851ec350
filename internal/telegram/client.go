package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v4"
)

// Telegram accepts between 2 and 10 items in one media group.
const maxAlbumSize = 10

// sender is the subset of *tele.Bot used for publishing.
type sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	SendAlbum(to tele.Recipient, a tele.Album, opts ...interface{}) ([]tele.Message, error)
}

// Client publishes to Telegram chats and channels. It never polls for updates.
type Client struct {
	bot sender
}

// NewClient creates a send-only bot. timeout bounds every HTTP request to the Bot API.
func NewClient(token string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("telegram token is empty")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	bot, err := tele.NewBot(tele.Settings{
		Token:  token,
		Client: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Debug().Str("bot", bot.Me.Username).Msg("Telegram bot authorized")
	return &Client{bot: bot}, nil
}

// SendPhotos posts urls as grouped media. More than ten links become several consecutive
// groups and a lone link is posted as a plain photo.
func (c *Client) SendPhotos(ctx context.Context, chatID string, urls []string) error {
	to, err := ParseChatID(chatID)
	if err != nil {
		return err
	}

	for i, chunk := range chunkURLs(urls, maxAlbumSize) {
		err := call(ctx, func() error {
			if len(chunk) == 1 {
				_, err := c.bot.Send(to, &tele.Photo{File: tele.FromURL(chunk[0])})
				return err
			}
			_, err := c.bot.SendAlbum(to, buildAlbum(chunk))
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to send media group %d: %w", i+1, err)
		}
	}
	return nil
}

// SendHTML posts text with HTML parse mode.
func (c *Client) SendHTML(ctx context.Context, chatID, text string) error {
	to, err := ParseChatID(chatID)
	if err != nil {
		return err
	}

	err = call(ctx, func() error {
		_, err := c.bot.Send(to, text, &tele.SendOptions{ParseMode: tele.ModeHTML})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// ParseChatID accepts a numeric chat id ("-1001234567890") or a public channel username ("@name").
func ParseChatID(raw string) (tele.Recipient, error) {
	id := strings.TrimSpace(raw)
	if strings.HasPrefix(id, "@") {
		if len(id) == 1 {
			return nil, fmt.Errorf("invalid chat id %q", raw)
		}
		return channelName(id), nil
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat id %q: %w", raw, err)
	}
	return tele.ChatID(n), nil
}

type channelName string

func (c channelName) Recipient() string { return string(c) }

func buildAlbum(urls []string) tele.Album {
	album := make(tele.Album, 0, len(urls))
	for _, u := range urls {
		album = append(album, &tele.Photo{File: tele.FromURL(u)})
	}
	return album
}

func chunkURLs(urls []string, size int) [][]string {
	var chunks [][]string
	for len(urls) > size {
		chunks = append(chunks, urls[:size])
		urls = urls[size:]
	}
	if len(urls) > 0 {
		chunks = append(chunks, urls)
	}
	return chunks
}

// call runs fn and gives up waiting once ctx is done; telebot itself takes no context.
func call(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
