package bot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultAPIURL = "https://api.telegram.org"

type Client struct {
	token  string
	httpc  *http.Client
	apiURL string
}

func NewClient(token string) *Client {
	return &Client{
		token:  token,
		apiURL: defaultAPIURL + "/bot" + token,
		httpc:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithAPI points the client at an alternate API base, used by tests.
func NewClientWithAPI(token, base string) *Client {
	c := NewClient(token)
	c.apiURL = base + "/bot" + token
	return c
}

func (c *Client) send(method string, payload any) error {
	b, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", c.apiURL+"/"+method, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("telegram %s: %s", method, resp.Status)
	}
	return nil
}

func (c *Client) SendMessage(chatID int64, text string, replyMarkup any) error {
	data := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	if replyMarkup != nil {
		data["reply_markup"] = replyMarkup
	}
	return c.send("sendMessage", data)
}

func (c *Client) SendPhoto(chatID int64, photoURL, caption string) error {
	data := map[string]any{
		"chat_id": chatID,
		"photo":   photoURL,
	}
	if caption != "" {
		data["caption"] = caption
	}
	return c.send("sendPhoto", data)
}

func (c *Client) AnswerCallbackQuery(callbackID string) error {
	return c.send("answerCallbackQuery", map[string]any{
		"callback_query_id": callbackID,
	})
}

// SetWebhook registers url as the bot's webhook endpoint.
func (c *Client) SetWebhook(url string) error {
	return c.send("setWebhook", map[string]any{"url": url})
}
