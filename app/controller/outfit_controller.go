package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"outfit-studio/models"
	"outfit-studio/outfit"
	"outfit-studio/service"
	"outfit-studio/utils"
)

// OutfitController handles HTTP requests for the avatar builder
type OutfitController struct {
	sessions       *service.SessionStore
	renderService  *service.RenderService
	previewService service.PreviewServiceInterface
}

// NewOutfitController creates a new OutfitController
func NewOutfitController(sessions *service.SessionStore, renderService *service.RenderService, previewService service.PreviewServiceInterface) *OutfitController {
	return &OutfitController{
		sessions:       sessions,
		renderService:  renderService,
		previewService: previewService,
	}
}

// CreateAvatar handles POST /api/avatar
// Creates a new base avatar and starts an empty outfit for the tab
func (c *OutfitController) CreateAvatar(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateAvatar: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateAvatarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ CreateAvatar: Failed to decode request body: %v", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ageGroup := utils.MapAgeGroup(req.AgeGroup)
	if ageGroup == "" {
		log.Printf("❌ CreateAvatar: Invalid ageGroup: %s", req.AgeGroup)
		writeError(w, http.StatusBadRequest, "ageGroup must be adult or kid")
		return
	}
	gender := utils.MapGender(req.Gender)
	if gender == "" {
		log.Printf("❌ CreateAvatar: Invalid gender: %s", req.Gender)
		writeError(w, http.StatusBadRequest, "gender must be male, female or other")
		return
	}

	avatar := models.BaseAvatarConfig{
		ID:        uuid.NewString(),
		AgeGroup:  ageGroup,
		Gender:    gender,
		FaceStyle: utils.MapOptionValue(req.FaceStyle, "oval"),
		SkinTone:  utils.MapOptionValue(req.SkinTone, "#f1c27d"),
		HairStyle: utils.MapOptionValue(req.HairStyle, "short"),
		HairColor: utils.MapOptionValue(req.HairColor, "#4a2c2a"),
		BodyType:  utils.MapOptionValue(req.BodyType, "average"),
		EyeStyle:  utils.MapOptionValue(req.EyeStyle, "round"),
		EyeColor:  utils.MapOptionValue(req.EyeColor, "#3b2f2f"),
	}

	tabID := ensureTabSessionID(w, r)
	c.sessions.StartBuilder(tabID, avatar)

	log.Printf("✅ CreateAvatar: Created avatar=%s for tab=%s", avatar.ID, tabID)
	writeJSON(w, http.StatusCreated, avatar)
}

// GetAvatar handles GET /api/avatar
func (c *OutfitController) GetAvatar(w http.ResponseWriter, r *http.Request) {
	var avatar models.BaseAvatarConfig
	err := c.sessions.WithBuilder(tabSessionID(r), func(session *service.BuilderSession) error {
		avatar = session.Avatar
		return nil
	})
	if err != nil {
		writeBuilderError(w, "GetAvatar", err)
		return
	}
	writeJSON(w, http.StatusOK, avatar)
}

// GetOutfit handles GET /api/outfit
// Returns the avatar, the applied items in draw order and the running total
func (c *OutfitController) GetOutfit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var state models.OutfitStateResponse
	err := c.sessions.WithBuilder(tabSessionID(r), func(session *service.BuilderSession) error {
		state = outfitState(session)
		return nil
	})
	if err != nil {
		writeBuilderError(w, "GetOutfit", err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// ApplyItem handles POST /api/outfit/items
// The item is a catalog product as returned by the product feed
func (c *OutfitController) ApplyItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ApplyItem: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ ApplyItem: Method not allowed: %s", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.ApplyItemRequest
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&req); err != nil {
		log.Printf("❌ ApplyItem: Failed to decode request body: %v", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, ok := service.NormalizeCatalogItem(req.Item)
	if !ok {
		log.Printf("❌ ApplyItem: Item has no product id")
		writeError(w, http.StatusBadRequest, "item must have an id")
		return
	}

	var applied models.AppliedItem
	err := c.sessions.WithBuilder(tabSessionID(r), func(session *service.BuilderSession) error {
		applied = session.Slots.Apply(item)
		return nil
	})
	if err != nil {
		writeBuilderError(w, "ApplyItem", err)
		return
	}

	log.Printf("✅ ApplyItem: Applied product_id=%s as %s (instance=%s, layer=%d)", item.ID, applied.Region, applied.InstanceID, applied.Layer)
	writeJSON(w, http.StatusCreated, applied)
}

// RemoveItem handles DELETE /api/outfit/items/{id}
// Removing an unknown instance is not an error
func (c *OutfitController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	instanceID := r.PathValue("id")
	log.Printf("📥 RemoveItem: instance=%s", instanceID)

	var state models.OutfitStateResponse
	err := c.sessions.WithBuilder(tabSessionID(r), func(session *service.BuilderSession) error {
		session.Slots.Remove(instanceID)
		state = outfitState(session)
		return nil
	})
	if err != nil {
		writeBuilderError(w, "RemoveItem", err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// MoveItem handles PATCH /api/outfit/items/{id}
// Position is in percent of the canvas; scale 0 keeps the current scale
func (c *OutfitController) MoveItem(w http.ResponseWriter, r *http.Request) {
	instanceID := r.PathValue("id")
	log.Printf("📥 MoveItem: instance=%s", instanceID)

	var req models.MoveItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ MoveItem: Failed to decode request body: %v", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var moved models.AppliedItem
	found := false
	err := c.sessions.WithBuilder(tabSessionID(r), func(session *service.BuilderSession) error {
		moved, found = session.Slots.Move(instanceID, req.Position, req.Scale)
		return nil
	})
	if err != nil {
		writeBuilderError(w, "MoveItem", err)
		return
	}
	if !found {
		log.Printf("❌ MoveItem: Instance not found: %s", instanceID)
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, moved)
}

// AvatarSVG handles GET /api/outfit/avatar.svg
func (c *OutfitController) AvatarSVG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	avatar, items, err := c.snapshot(r)
	if err != nil {
		writeBuilderError(w, "AvatarSVG", err)
		return
	}

	svg, err := c.renderService.RenderSVG(avatar, items)
	if err != nil {
		log.Printf("❌ AvatarSVG: Error rendering avatar: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to render avatar")
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(svg)
}

// PreviewPNG handles GET /api/outfit/preview.png?size=thumb|medium|full
func (c *OutfitController) PreviewPNG(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 PreviewPNG: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	size := strings.ToLower(r.URL.Query().Get("size"))
	if size == "" {
		size = service.PreviewSizeMedium
	}
	if size != service.PreviewSizeThumb && size != service.PreviewSizeMedium && size != service.PreviewSizeFull {
		log.Printf("❌ PreviewPNG: Invalid size: %s", size)
		writeError(w, http.StatusBadRequest, "size must be thumb, medium or full")
		return
	}

	if c.previewService == nil {
		writeError(w, http.StatusServiceUnavailable, "Preview export is not available")
		return
	}

	avatar, items, err := c.snapshot(r)
	if err != nil {
		writeBuilderError(w, "PreviewPNG", err)
		return
	}

	page, err := c.renderService.RenderPreviewHTML(avatar, items)
	if err != nil {
		log.Printf("❌ PreviewPNG: Error rendering preview page: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to render preview")
		return
	}

	png, err := c.previewService.RenderPNG(r.Context(), page, size)
	if err != nil {
		log.Printf("❌ PreviewPNG: Error exporting preview: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to export preview")
		return
	}

	log.Printf("✅ PreviewPNG: Exported %s preview (%d bytes)", size, len(png))
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// Finalize handles POST /api/outfit/finalize
// Hands the outfit over to the checkout screen; an empty outfit is rejected with 422
func (c *OutfitController) Finalize(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Finalize: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ Finalize: Method not allowed: %s", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	tabID := tabSessionID(r)
	var payload models.OutfitPayload
	err := c.sessions.WithBuilder(tabID, func(session *service.BuilderSession) error {
		var err error
		payload, err = outfit.Finalize(&session.Avatar, session.Slots)
		return err
	})
	if errors.Is(err, outfit.ErrEmptyOutfit) {
		log.Printf("⚠️  Finalize: Empty outfit for tab=%s", tabID)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeBuilderError(w, "Finalize", err)
		return
	}

	c.sessions.PutHandoff(tabID, payload)
	c.sessions.EndBuilder(tabID)

	log.Printf("✅ Finalize: Handed off %d items for tab=%s", len(payload.Items), tabID)
	writeJSON(w, http.StatusCreated, models.FinalizeResponse{
		Payload:   payload,
		ItemCount: len(payload.Items),
		Next:      "/checkout",
	})
}

// snapshot copies the avatar and applied items out of the tab's session
func (c *OutfitController) snapshot(r *http.Request) (models.BaseAvatarConfig, []models.AppliedItem, error) {
	var avatar models.BaseAvatarConfig
	var items []models.AppliedItem
	err := c.sessions.WithBuilder(tabSessionID(r), func(session *service.BuilderSession) error {
		avatar = session.Avatar
		items = session.Slots.List()
		return nil
	})
	return avatar, items, err
}

func outfitState(session *service.BuilderSession) models.OutfitStateResponse {
	avatar := session.Avatar
	cents := session.Slots.TotalCents()
	return models.OutfitStateResponse{
		Avatar:         &avatar,
		Items:          session.Slots.List(),
		Total:          utils.FromCents(cents),
		TotalFormatted: utils.FormatUSD(cents),
	}
}

func writeBuilderError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, service.ErrNoBuilderSession) {
		log.Printf("⚠️  %s: %v", op, err)
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	log.Printf("❌ %s: %v", op, err)
	writeError(w, http.StatusInternalServerError, "Failed to update outfit")
}
