package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mingu600/tapu-simu/internal/battle"
	"github.com/mingu600/tapu-simu/internal/constants"
	"github.com/mingu600/tapu-simu/internal/dex"
	"github.com/mingu600/tapu-simu/internal/service"
)

type emptyRepo struct{}

func (emptyRepo) CreateSession(*battle.Session) error { return nil }
func (emptyRepo) GetSessionByUUID(string) (*battle.Session, error) {
	return nil, gorm.ErrRecordNotFound
}
func (emptyRepo) UpdateSession(*battle.Session) error { return nil }
func (emptyRepo) DeleteExpiredSessions(time.Time) (int64, error) { return 0, nil }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := service.NewBattleService(emptyRepo{})
	h := NewBattleHandler(svc, dex.New(
		[]battle.Move{{Name: "Return", MoveType: "normal", Category: battle.CategoryPhysical, BasePower: 80, Accuracy: 100, PP: 16}},
		[]dex.Species{{Name: "Garchomp", Types: []string{"dragon", "ground"}}},
	))
	router := gin.New()
	group := router.Group(constants.RouteAPIPrefix)
	group.GET(constants.RouteBattleByID, h.GetBattle)
	group.GET(constants.RouteBattleLegalOptions, h.LegalOptions)
	return router
}

func TestGetBattle_RejectsMalformedSessionID(t *testing.T) {
	router := newTestRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/battles/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), constants.ErrInvalidSessionID) {
		t.Fatalf("expected %q in body, got %s", constants.ErrInvalidSessionID, w.Body.String())
	}
}

func TestGetBattle_UnknownSessionIs404(t *testing.T) {
	router := newTestRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/battles/"+uuid.NewString(), nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown session, got %d", w.Code)
	}
}

func TestLegalOptions_RejectsMalformedSessionID(t *testing.T) {
	router := newTestRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/battles/42/legal-options", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", w.Code)
	}
}
