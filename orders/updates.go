package orders

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"vitrin/utils"

	"github.com/julienschmidt/httprouter"
)

// Per-user live order update channels, consumed by the SSE endpoint.
var userUpdateChannels = struct {
	sync.RWMutex
	channels map[string]chan map[string]any
}{
	channels: make(map[string]chan map[string]any),
}

func getUpdatesChannel(userID string) chan map[string]any {
	userUpdateChannels.RLock()
	if ch, exists := userUpdateChannels.channels[userID]; exists {
		userUpdateChannels.RUnlock()
		return ch
	}
	userUpdateChannels.RUnlock()

	userUpdateChannels.Lock()
	defer userUpdateChannels.Unlock()
	if ch, exists := userUpdateChannels.channels[userID]; exists {
		return ch
	}
	newCh := make(chan map[string]any, 10)
	userUpdateChannels.channels[userID] = newCh
	return newCh
}

// BroadcastOrderUpdate pushes a delivery-status change to the owning
// user's update stream. Drops the update if the stream is backed up.
func BroadcastOrderUpdate(userID, orderID, status string) {
	update := map[string]any{
		"type":    "order_update",
		"orderId": orderID,
		"status":  status,
	}
	channel := getUpdatesChannel(userID)
	select {
	case channel <- update:
	default:
		log.Printf("Warning: updates channel for user %s is full. Dropping update.", userID)
	}
}

// GET /api/orders/updates — server-sent events stream of the caller's
// order status changes.
func OrderUpdates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	updatesChannel := getUpdatesChannel(userID)
	for {
		select {
		case update := <-updatesChannel:
			jsonUpdate, _ := json.Marshal(update)
			fmt.Fprintf(w, "data: %s\n\n", jsonUpdate)
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
