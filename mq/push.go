package mq

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"
)

var pushClient = &http.Client{Timeout: 5 * time.Second}

// PushPayload is the relay's wire format (fcm/send style).
type PushPayload struct {
	To      string `json:"to,omitempty"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// SendPush posts a notification to the push relay. Fire-and-forget:
// failures are logged and swallowed.
func SendPush(userID, title, message string) {
	url := os.Getenv("PUSH_RELAY_URL")
	if url == "" {
		return
	}

	body, err := json.Marshal(PushPayload{To: userID, Title: title, Message: message})
	if err != nil {
		log.Printf("[Push] marshal failed: %v", err)
		return
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Printf("[Push] request build failed: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if key := os.Getenv("PUSH_RELAY_KEY"); key != "" {
		req.Header.Set("Authorization", "key="+key)
	}

	resp, err := pushClient.Do(req)
	if err != nil {
		log.Printf("[Push] relay unreachable: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		log.Printf("[Push] relay returned %d", resp.StatusCode)
	}
}
