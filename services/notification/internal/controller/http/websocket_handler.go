package http

import (
	"context"
	"net/http"
	"strconv"

	"hotel-ops/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

// RoomSubscriber opens the live pub/sub channel of one room.
type RoomSubscriber interface {
	Subscribe(ctx context.Context, roomID int64) *redis.PubSub
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleRoomWebSocket streams new notifications of a room. Browsers cannot set
// headers on websocket requests, so the token comes from the query string.
func (h *NotificationHandler) HandleRoomWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	switch claims.Role {
	case jwt.RoleAdmin, jwt.RoleStaff, jwt.RoleRoom:
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	roomID, err := strconv.ParseInt(c.Param("room_id"), 10, 64)
	if err != nil || roomID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room_id"})
		return
	}

	if claims.Role == jwt.RoleRoom && claims.UserID != strconv.FormatInt(roomID, 10) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access to this room is not allowed"})
		return
	}

	if err := h.notificationUseCase.EnsureRoom(c.Request.Context(), roomID, claims.HotelID); err != nil {
		h.respondError(c, err, "Failed to open room feed")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection to WebSocket: %v", err)
		return
	}
	defer conn.Close()

	h.logger.Info("WebSocket connected for room %d (user %s)", roomID, claims.UserID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubsub := h.feed.Subscribe(ctx, roomID)
	defer pubsub.Close()

	redisChannel := pubsub.Channel()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-redisChannel:
				if !ok {
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
					h.logger.Error("Failed to write WebSocket message: %v", err)
					return
				}
			}
		}
	}()

	for {
		messageType, _, err := conn.ReadMessage()
		if err != nil {
			h.logger.Warn("WebSocket read error: %v", err)
			break
		}
		if messageType == websocket.CloseMessage {
			break
		}
	}

	h.logger.Info("WebSocket disconnected for room %d", roomID)
}
