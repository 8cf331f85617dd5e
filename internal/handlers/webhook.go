package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"restobot/internal/bot"
)

type webhookRequest struct {
	ChatID    int64    `json:"chatId" binding:"required"`
	Type      string   `json:"type" binding:"required,oneof=start button text"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Username  string   `json:"username"`
	Action    string   `json:"action"`
	Params    []string `json:"params"`
	Text      string   `json:"text"`
}

// Webhook is the single inbound endpoint for chat events. Validation and
// not-found failures become user-facing effects; infrastructure failures
// degrade to a generic retry message without touching session state.
func Webhook(controller *bot.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /webhook"
		defer handlePanic(c, route)

		var req webhookRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx := c.Request.Context()
		var effects []bot.Effect
		var err error

		switch req.Type {
		case "start":
			effects, err = controller.HandleStart(ctx, bot.UserIdentified{
				ChatID:    req.ChatID,
				FirstName: req.FirstName,
				LastName:  req.LastName,
				Username:  req.Username,
			})
		case "button":
			if req.Action == "" {
				respondWithError(c, http.StatusBadRequest, route, "action is required")
				return
			}
			effects, err = controller.HandleButton(ctx, bot.ButtonAction{
				ChatID:    req.ChatID,
				FirstName: req.FirstName,
				Type:      req.Action,
				Params:    req.Params,
			})
		case "text":
			effects, err = controller.HandleText(ctx, bot.TextMessage{
				ChatID:    req.ChatID,
				FirstName: req.FirstName,
				Text:      req.Text,
			})
		}

		if err != nil {
			effects = effectsForError(req.ChatID, err)
		}

		c.JSON(http.StatusOK, gin.H{"effects": effects})
	}
}

// effectsForError maps the core's error taxonomy to user-facing effects.
// Nothing escapes to the transport as a failure status; the chat must always
// get a reply.
func effectsForError(chatID int64, err error) []bot.Effect {
	var validationErr bot.ValidationError
	if errors.As(err, &validationErr) {
		return []bot.Effect{{Kind: bot.EffectNotify, Text: validationErr.Message}}
	}

	var notFoundErr bot.NotFoundError
	if errors.As(err, &notFoundErr) {
		return []bot.Effect{{Kind: bot.EffectNotify, Text: notFoundErr.Message}}
	}

	var persistenceErr bot.PersistenceError
	if errors.As(err, &persistenceErr) {
		log.Printf("[WEBHOOK] [ERROR] chat=%d %v", chatID, persistenceErr)
		return []bot.Effect{{
			Kind: bot.EffectReply,
			Text: "😞 Sorry, something went wrong processing your request. Please try again in a moment.",
		}}
	}

	log.Printf("[WEBHOOK] [ERROR] chat=%d unexpected: %v", chatID, err)
	return []bot.Effect{{
		Kind: bot.EffectReply,
		Text: "😞 Sorry, something went wrong. Please try again in a moment.",
	}}
}
