package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/felipepalage/agorahora-api/internal/cache"
	"github.com/felipepalage/agorahora-api/internal/config"
	domain "github.com/felipepalage/agorahora-api/internal/domain/appointment"
	"github.com/felipepalage/agorahora-api/internal/infra/repository"
	"github.com/felipepalage/agorahora-api/internal/middleware"
	"github.com/felipepalage/agorahora-api/internal/models"
	ucAppointment "github.com/felipepalage/agorahora-api/internal/usecase/appointment"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// banco em memória com dois estabelecimentos: o token dos testes pertence
// ao 1, e os registros do 2 não podem ser alcançados por ele.
func openSeededDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Establishment{},
		&models.User{},
		&models.Client{},
		&models.Service{},
		&models.Professional{},
		&models.Specialty{},
		&models.Appointment{},
		&models.Settings{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	seed := []any{
		&models.Establishment{ID: 1, Name: "Studio Alfa", OpensMin: 540, ClosesMin: 1080, Active: true},
		&models.Establishment{ID: 2, Name: "Studio Beta", OpensMin: 540, ClosesMin: 1080, Active: true},
		&models.Client{ID: 1, EstablishmentID: 1, Name: "Maria"},
		&models.Client{ID: 2, EstablishmentID: 2, Name: "Pedro"},
		&models.Service{ID: 1, EstablishmentID: 1, Name: "Corte", DurationMin: 30, Price: 50, Active: true},
		&models.Service{ID: 2, EstablishmentID: 2, Name: "Barba", DurationMin: 20, Price: 30, Active: true},
		&models.Professional{ID: 1, EstablishmentID: 1, Name: "João", Active: true},
		&models.Professional{ID: 2, EstablishmentID: 2, Name: "Carlos", Active: true},
	}
	for _, row := range seed {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed %T: %v", row, err)
		}
	}
	return db
}

// contexto autenticado como o estabelecimento 1
func authedContext(t *testing.T, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	c.Request = r
	c.Set(middleware.ContextEstablishmentID, uint(1))
	return c, w
}

func TestClientRoutesIgnoreForeignTenant(t *testing.T) {
	db := openSeededDB(t)
	h := NewClientHandler(db)

	t.Run("get de cliente alheio", func(t *testing.T) {
		c, w := authedContext(t, http.MethodGet, "/clients/2", "")
		c.Params = gin.Params{{Key: "id", Value: "2"}}
		h.Get(c)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})

	t.Run("update de cliente alheio", func(t *testing.T) {
		c, w := authedContext(t, http.MethodPut, "/clients/2", `{"name":"Hackeado"}`)
		c.Params = gin.Params{{Key: "id", Value: "2"}}
		h.Update(c)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}

		var client models.Client
		if err := db.First(&client, 2).Error; err != nil {
			t.Fatalf("reload: %v", err)
		}
		if client.Name != "Pedro" {
			t.Errorf("Name = %q, registro de outro estabelecimento foi alterado", client.Name)
		}
	})

	t.Run("delete de cliente alheio", func(t *testing.T) {
		c, w := authedContext(t, http.MethodDelete, "/clients/2", "")
		c.Params = gin.Params{{Key: "id", Value: "2"}}
		h.Delete(c)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
		if err := db.First(&models.Client{}, 2).Error; err != nil {
			t.Error("registro de outro estabelecimento foi removido")
		}
	})
}

func TestClientCreateUsesTokenTenant(t *testing.T) {
	db := openSeededDB(t)
	h := NewClientHandler(db)

	c, w := authedContext(t, http.MethodPost, "/clients", `{"name":"Ana","establishment_id":2}`)
	h.Create(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", w.Code, w.Body.String())
	}

	var client models.Client
	if err := db.Where("name = ?", "Ana").First(&client).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if client.EstablishmentID != 1 {
		t.Errorf("EstablishmentID = %d, want o do token (1)", client.EstablishmentID)
	}
}

func TestServiceUpdateIgnoresForeignTenant(t *testing.T) {
	db := openSeededDB(t)
	h := NewServiceHandler(db)

	c, w := authedContext(t, http.MethodPut, "/services/2", `{"price":1}`)
	c.Params = gin.Params{{Key: "id", Value: "2"}}
	h.Update(c)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}

	var service models.Service
	if err := db.First(&service, 2).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if service.Price != 30 {
		t.Errorf("Price = %v, registro de outro estabelecimento foi alterado", service.Price)
	}
}

func TestProfessionalRoutesIgnoreForeignTenant(t *testing.T) {
	db := openSeededDB(t)
	h := NewProfessionalHandler(db)

	t.Run("update de profissional alheio", func(t *testing.T) {
		c, w := authedContext(t, http.MethodPut, "/professionals/2", `{"name":"Outro"}`)
		c.Params = gin.Params{{Key: "id", Value: "2"}}
		h.Update(c)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})

	t.Run("especialidades de profissional alheio", func(t *testing.T) {
		c, w := authedContext(t, http.MethodPut, "/professionals/2/specialties", `{"names":["Coloração"]}`)
		c.Params = gin.Params{{Key: "id", Value: "2"}}
		h.SetSpecialties(c)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})

	t.Run("create usa o estabelecimento do token", func(t *testing.T) {
		c, w := authedContext(t, http.MethodPost, "/professionals", `{"name":"Bia","establishment_id":2}`)
		h.Create(c)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201 (%s)", w.Code, w.Body.String())
		}

		var pro models.Professional
		if err := db.Where("name = ?", "Bia").First(&pro).Error; err != nil {
			t.Fatalf("reload: %v", err)
		}
		if pro.EstablishmentID != 1 {
			t.Errorf("EstablishmentID = %d, want o do token (1)", pro.EstablishmentID)
		}
	})
}

func TestEstablishmentMutationsIgnoreForeignTenant(t *testing.T) {
	db := openSeededDB(t)
	h := NewEstablishmentHandler(db, cache.New(config.Load()), nil)

	t.Run("update de estabelecimento alheio", func(t *testing.T) {
		c, w := authedContext(t, http.MethodPut, "/establishments/2", `{"name":"Tomado"}`)
		c.Params = gin.Params{{Key: "id", Value: "2"}}
		h.Update(c)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})

	t.Run("delete de estabelecimento alheio", func(t *testing.T) {
		c, w := authedContext(t, http.MethodDelete, "/establishments/2", "")
		c.Params = gin.Params{{Key: "id", Value: "2"}}
		h.Delete(c)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}

		var est models.Establishment
		if err := db.First(&est, 2).Error; err != nil {
			t.Error("estabelecimento de outro dono foi removido")
		}
		if est.Name != "Studio Beta" {
			t.Errorf("Name = %q, want Studio Beta", est.Name)
		}
	})
}

func TestListByProfessionalInvertedPeriodIsBadRequest(t *testing.T) {
	db := openSeededDB(t)
	repo := repository.NewAppointmentGormRepository(db)
	h := NewAppointmentHandler(nil, nil, nil, nil, nil, ucAppointment.NewListByProfessional(repo), nil)

	c, w := authedContext(t, http.MethodGet, "/appointments?professional_id=1&ini=2026-01-11&fim=2026-01-10", "")
	h.ListByProfessional(c)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "invalid_period") {
		t.Errorf("body = %s, want invalid_period", w.Body.String())
	}
}

func TestReportSummaryScopedToToken(t *testing.T) {
	db := openSeededDB(t)
	h := NewReportHandler(db)

	start := time.Date(2026, 1, 10, 10, 0, 0, 0, time.Local)
	seed := []*models.Appointment{
		{EstablishmentID: 1, ClientID: 1, ProfessionalID: 1, ServiceID: 1,
			StartTime: start, EndTime: start.Add(30 * time.Minute),
			Status: string(domain.StatusConfirmed)},
		{EstablishmentID: 2, ClientID: 2, ProfessionalID: 2, ServiceID: 2,
			StartTime: start, EndTime: start.Add(20 * time.Minute),
			Status: string(domain.StatusConfirmed)},
	}
	for _, ap := range seed {
		if err := db.Create(ap).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	c, w := authedContext(t, http.MethodGet, "/reports/summary?ini=2026-01-10&fim=2026-01-11", "")
	h.Summary(c)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}

	var out struct {
		Total            int     `json:"total"`
		Confirmed        int     `json:"confirmed"`
		EstimatedRevenue float64 `json:"estimated_revenue"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Total != 1 || out.Confirmed != 1 {
		t.Errorf("total/confirmed = %d/%d, relatório vazou outro estabelecimento", out.Total, out.Confirmed)
	}
	if out.EstimatedRevenue != 50 {
		t.Errorf("estimated_revenue = %v, want 50", out.EstimatedRevenue)
	}
}
