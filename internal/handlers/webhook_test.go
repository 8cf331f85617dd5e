package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"restobot/internal/bot"
	"restobot/internal/models"
	"restobot/internal/session"
	"restobot/internal/store"
)

type stubStore struct{}

func (stubStore) FindUserByChatID(context.Context, int64) (*models.User, error) {
	return nil, store.ErrNotFound
}
func (stubStore) SaveUser(context.Context, *models.User) error       { return nil }
func (stubStore) InsertOrder(context.Context, *models.Order) error   { return nil }
func (stubStore) FindOrderByNumber(context.Context, string) (*models.Order, error) {
	return nil, store.ErrNotFound
}
func (stubStore) OrdersByChatID(context.Context, int64, int64) ([]models.Order, error) {
	return nil, nil
}

func newWebhookRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := bot.New(session.NewStore(), stubStore{}, bot.Config{
		RestaurantName: "Testaurant",
		DeliveryFee:    15,
		MinOrderAmount: 50,
		PointsPerUnit:  5,
		WelcomeBonus:   50,
		DeliveryDelay:  45 * time.Minute,
	})

	r := gin.New()
	r.POST("/webhook", Webhook(controller))
	return r
}

type webhookResponse struct {
	Effects []bot.Effect `json:"effects"`
}

func postEvent(t *testing.T, r *gin.Engine, body string) (*httptest.ResponseRecorder, webhookResponse) {
	t.Helper()
	req := httptest.NewRequest("POST", "/webhook", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp webhookResponse
	if w.Code == 200 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response json: %v", err)
		}
	}
	return w, resp
}

func TestWebhookRejectsInvalidBody(t *testing.T) {
	r := newWebhookRouter()
	w, _ := postEvent(t, r, `{"type":"button"}`)
	if w.Code != 400 {
		t.Fatalf("expected 400 for missing chatId, got %d", w.Code)
	}

	w, _ = postEvent(t, r, `{"chatId":1,"type":"dance"}`)
	if w.Code != 400 {
		t.Fatalf("expected 400 for unknown event type, got %d", w.Code)
	}
}

func TestWebhookAddItemProducesEffects(t *testing.T) {
	r := newWebhookRouter()
	w, resp := postEvent(t, r, `{"chatId":1,"type":"button","action":"add","params":["mains","0"]}`)
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(resp.Effects) == 0 {
		t.Fatal("expected effects for an add action")
	}
	if resp.Effects[0].Kind != bot.EffectNotify {
		t.Fatalf("expected a notify ack first, got %q", resp.Effects[0].Kind)
	}
}

func TestWebhookValidationErrorBecomesNotify(t *testing.T) {
	r := newWebhookRouter()
	w, resp := postEvent(t, r, `{"chatId":2,"type":"button","action":"proceed_order"}`)
	if w.Code != 200 {
		t.Fatalf("validation failures must not become transport errors, got %d", w.Code)
	}
	if len(resp.Effects) != 1 || resp.Effects[0].Kind != bot.EffectNotify {
		t.Fatalf("expected a single notify effect, got %+v", resp.Effects)
	}
	if resp.Effects[0].Text == "" {
		t.Fatal("expected a user-facing message")
	}
}

func TestWebhookStartGreetsUser(t *testing.T) {
	r := newWebhookRouter()
	w, resp := postEvent(t, r, `{"chatId":3,"type":"start","firstName":"Dana"}`)
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(resp.Effects) == 0 {
		t.Fatal("expected greeting effects")
	}
	last := resp.Effects[len(resp.Effects)-1]
	if last.Kind != bot.EffectReply || len(last.Keyboard) == 0 {
		t.Fatal("expected a main-menu reply with a keyboard")
	}
}

func TestWebhookIdleTextShowsMenuHint(t *testing.T) {
	r := newWebhookRouter()
	w, resp := postEvent(t, r, `{"chatId":4,"type":"text","text":"hello there"}`)
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(resp.Effects) != 1 || resp.Effects[0].Kind != bot.EffectReply {
		t.Fatalf("expected a single reply effect, got %+v", resp.Effects)
	}
}
