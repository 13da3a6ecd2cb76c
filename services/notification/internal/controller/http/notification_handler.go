package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"hotel-ops/pkg/jwt"
	"hotel-ops/pkg/logger"
	"hotel-ops/pkg/middleware"
	"hotel-ops/services/notification/internal/entity"
	"hotel-ops/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	fanoutUseCase       usecase.FanoutUseCase
	notificationUseCase usecase.NotificationUseCase
	feed                RoomSubscriber
	logger              *logger.Logger
	jwtService          *jwt.Service
}

func NewNotificationHandler(
	fanoutUseCase usecase.FanoutUseCase,
	notificationUseCase usecase.NotificationUseCase,
	feed RoomSubscriber,
	logger *logger.Logger,
	jwtService *jwt.Service,
) *NotificationHandler {
	return &NotificationHandler{
		fanoutUseCase:       fanoutUseCase,
		notificationUseCase: notificationUseCase,
		feed:                feed,
		logger:              logger,
		jwtService:          jwtService,
	}
}

type SendNotificationRequest struct {
	Message    string          `json:"message" example:"Fire drill at 3pm"`
	Target     string          `json:"target" example:"floor" enums:"all,room,guest,floor,multipleRooms"`
	TargetID   json.RawMessage `json:"targetId,omitempty" swaggertype:"string" example:"3"`
	Priority   string          `json:"priority,omitempty" example:"high" enums:"low,medium,high"`
	HotelScope *int64          `json:"hotelScope,omitempty" example:"1"`
}

type CreateNotificationRequest struct {
	RoomID   int64  `json:"room_id" binding:"required" example:"101"`
	Message  string `json:"message" binding:"required" example:"Your laundry is ready"`
	Priority string `json:"type,omitempty" example:"medium" enums:"low,medium,high"`
}

type UpdateReadStateRequest struct {
	IsRead *bool `json:"is_read" binding:"required"`
}

// SendNotification godoc
// @Summary      Fan out a notification
// @Description  Resolve a target (all, room, guest, floor, multipleRooms) to rooms and store one notification per room
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SendNotificationRequest true "Fan-out request"
// @Success      200  {object}  entity.FanoutOutcome "No rooms matched"
// @Success      201  {object}  entity.FanoutOutcome
// @Success      207  {object}  entity.FanoutOutcome "Partial success"
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  entity.FanoutOutcome "Every write failed"
// @Failure      500  {object}  map[string]string
// @Router       /notifications/send [post]
func (h *NotificationHandler) SendNotification(c *gin.Context) {
	var req SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	hotelID, err := resolveHotelScope(c, req.HotelScope)
	if err != nil {
		h.respondError(c, err, "Failed to send notifications")
		return
	}

	outcome, err := h.fanoutUseCase.Send(c.Request.Context(), usecase.FanoutRequest{
		Message:  req.Message,
		Target:   req.Target,
		TargetID: req.TargetID,
		Priority: req.Priority,
		HotelID:  hotelID,
	})
	if err != nil {
		h.respondError(c, err, "Failed to send notifications")
		return
	}

	c.JSON(fanoutStatus(outcome), outcome)
}

// CreateNotification godoc
// @Summary      Create a notification
// @Description  Store a single notification for one room
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateNotificationRequest true "Notification"
// @Success      201  {object}  entity.Notification
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /notifications [post]
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hotelID := tokenHotel(c)
	notification, err := h.notificationUseCase.CreateNotification(c.Request.Context(), req.RoomID, req.Message, req.Priority, hotelID)
	if err != nil {
		h.respondError(c, err, "Failed to create notification")
		return
	}

	c.JSON(http.StatusCreated, notification)
}

// GetNotifications godoc
// @Summary      List notifications
// @Description  List notifications newest first, limited to the caller's hotel when the token carries one
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Number of notifications to return (max 100)"
// @Param        offset query int false "Offset for pagination"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 && parsedLimit <= 100 {
			limit = parsedLimit
		}
	}

	offset := 0
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsedOffset, err := strconv.Atoi(offsetStr); err == nil && parsedOffset >= 0 {
			offset = parsedOffset
		}
	}

	notifications, totalCount, err := h.notificationUseCase.ListNotifications(c.Request.Context(), tokenHotel(c), limit, offset)
	if err != nil {
		h.logger.Error("Failed to get notifications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"count":         len(notifications),
		"total":         totalCount,
		"offset":        offset,
	})
}

// GetNotification godoc
// @Summary      Get a notification
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Notification ID"
// @Success      200  {object}  entity.Notification
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /notifications/{id} [get]
func (h *NotificationHandler) GetNotification(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	notification, err := h.notificationUseCase.GetNotification(c.Request.Context(), id, tokenHotel(c))
	if err != nil {
		h.respondError(c, err, "Failed to get notification")
		return
	}

	c.JSON(http.StatusOK, notification)
}

// MarkRead godoc
// @Summary      Set the read flag
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Notification ID"
// @Param        request body UpdateReadStateRequest true "Read state"
// @Success      200  {object}  entity.Notification
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateReadStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_read is required"})
		return
	}

	notification, err := h.notificationUseCase.SetReadState(c.Request.Context(), id, *req.IsRead, tokenHotel(c))
	if err != nil {
		h.respondError(c, err, "Failed to update notification")
		return
	}

	c.JSON(http.StatusOK, notification)
}

// DeleteNotification godoc
// @Summary      Delete a notification
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Notification ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.notificationUseCase.DeleteNotification(c.Request.Context(), id, tokenHotel(c)); err != nil {
		h.respondError(c, err, "Failed to delete notification")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted", "notification_id": id})
}

// GetRoomNotifications godoc
// @Summary      List a room's notifications
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        room_id path int true "Room ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /rooms/{room_id}/notifications [get]
func (h *NotificationHandler) GetRoomNotifications(c *gin.Context) {
	roomID, ok := h.roomFromPath(c)
	if !ok {
		return
	}

	notifications, err := h.notificationUseCase.ListRoomNotifications(c.Request.Context(), roomID, tokenHotel(c))
	if err != nil {
		h.respondError(c, err, "Failed to get room notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room_id":       roomID,
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// GetRecentRoomNotifications godoc
// @Summary      Recent notifications of a room
// @Description  Read the cached feed of a room, newest first
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        room_id path int true "Room ID"
// @Param        limit query int false "Number of notifications to return"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /rooms/{room_id}/notifications/recent [get]
func (h *NotificationHandler) GetRecentRoomNotifications(c *gin.Context) {
	roomID, ok := h.roomFromPath(c)
	if !ok {
		return
	}

	var limit int64 = 20
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsedLimit, err := strconv.ParseInt(limitStr, 10, 64); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	notifications, err := h.notificationUseCase.RecentRoomNotifications(c.Request.Context(), roomID, tokenHotel(c), limit)
	if err != nil {
		h.respondError(c, err, "Failed to get recent notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room_id":       roomID,
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// GetQueueStatus godoc
// @Summary      Push queue status
// @Description  Number of push tasks waiting for the device push service
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /notifications/queue [get]
func (h *NotificationHandler) GetQueueStatus(c *gin.Context) {
	queueLength, err := h.notificationUseCase.PushQueueLength()
	if err != nil {
		h.logger.Error("Failed to get queue length: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get queue length"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"queue_length": queueLength})
}

// roomFromPath parses :room_id and rejects room tokens asking for another room.
func (h *NotificationHandler) roomFromPath(c *gin.Context) (int64, bool) {
	roomID, ok := pathID(c, "room_id")
	if !ok {
		return 0, false
	}
	if c.GetString(middleware.ContextRole) == jwt.RoleRoom && c.GetString(middleware.ContextUserID) != strconv.FormatInt(roomID, 10) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access to this room is not allowed"})
		return 0, false
	}
	return roomID, true
}

func (h *NotificationHandler) respondError(c *gin.Context, err error, fallback string) {
	var validationErr *usecase.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("%s: %v", fallback, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func fanoutStatus(outcome *entity.FanoutOutcome) int {
	switch {
	case outcome.SentCount == 0 && outcome.FailedCount == 0:
		return http.StatusOK
	case outcome.SentCount == 0:
		return http.StatusUnprocessableEntity
	case outcome.FailedCount > 0:
		return http.StatusMultiStatus
	default:
		return http.StatusCreated
	}
}

// resolveHotelScope returns the hotel a fan-out is confined to. A token bound to a
// hotel always wins and may not be widened or redirected by the request body.
func resolveHotelScope(c *gin.Context, requested *int64) (*int64, error) {
	scope, ok := middleware.HotelScope(c)
	if !ok {
		return requested, nil
	}
	if requested != nil && *requested != scope {
		return nil, fmt.Errorf("hotelScope %d is outside the caller's hotel: %w", *requested, usecase.ErrForbidden)
	}
	return &scope, nil
}

func tokenHotel(c *gin.Context) *int64 {
	if scope, ok := middleware.HotelScope(c); ok {
		return &scope
	}
	return nil
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}
