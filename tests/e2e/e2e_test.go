package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salonpos/internal/database"
	"salonpos/internal/domain"
	"salonpos/internal/middleware"
	"salonpos/internal/modules/auth"
	"salonpos/internal/modules/catalog"
	"salonpos/internal/modules/notification"
	"salonpos/internal/modules/seats"
	"salonpos/internal/modules/stock"
	"salonpos/internal/modules/walkin"
	jwtsvc "salonpos/internal/pkg/jwt"
	"salonpos/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Suite struct {
	router *gin.Engine
	db     *gorm.DB
	jwt    *jwtsvc.Service
}

type Response struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupSuite(t *testing.T) *Suite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Branch{},
		&domain.Seat{},
		&domain.ServiceCategory{},
		&domain.Service{},
		&domain.PricingTier{},
		&domain.Product{},
		&domain.WalkinOrder{},
		&domain.WalkinServiceLine{},
		&domain.WalkinProductLine{},
		&domain.WalkinSeatLine{},
		&domain.Notification{},
	))

	userRepo := repository.NewUserRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	seatRepo := repository.NewSeatRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	productRepo := repository.NewProductRepository(db)
	walkinRepo := repository.NewWalkinRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	hub := notification.NewHub()
	notifService := notification.NewService(notifRepo, userRepo, hub)
	notifHandler := notification.NewHandler(notifService, hub)

	authHandler := auth.NewHandler(auth.NewService(userRepo, j))

	catalogService := catalog.NewService(categoryRepo, serviceRepo, productRepo, seatRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	stockLedger := stock.NewLedger(productRepo, notifService)
	stockHandler := stock.NewHandler(stockLedger)

	seatRegistry := seats.NewRegistry(seatRepo, branchRepo, notifService)
	seatHandler := seats.NewHandler(seatRegistry)

	walkinHandler := walkin.NewHandler(walkin.NewService(
		walkinRepo, catalogService, stockLedger, seatRegistry, userRepo, branchRepo, notifService,
	))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterReadRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			walkinHandler.RegisterRoutes(protected)
			notifHandler.RegisterRoutes(protected)
			seatHandler.RegisterReadRoutes(protected)

			managed := protected.Group("/")
			managed.Use(middleware.ManagerOrAdmin())
			{
				stockHandler.RegisterRoutes(managed)
				seatHandler.RegisterRoutes(managed)
			}

			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly())
			{
				authHandler.RegisterAdminRoutes(admin)
				catalogHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&domain.User{
		Email:        "admin@test.com",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Name:         "Admin",
		Active:       true,
	}).Error)

	return &Suite{router: r, db: db, jwt: j}
}

func (s *Suite) request(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parse(t *testing.T, w *httptest.ResponseRecorder) *Response {
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return &resp
}

func (s *Suite) login(t *testing.T, email, password string) string {
	w := s.request(t, "POST", "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	resp := parse(t, w)
	token, _ := resp.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// setupSalon provisions a branch with seats, a catalog and staff via the
// admin API, returning everything a walk-in order needs.
type salonFixture struct {
	adminToken string
	staffToken string
	branchID   float64
	seatID     float64
	serviceID  float64
	tierID     float64
	productID  float64
	stylistID  float64
}

func (s *Suite) setupSalon(t *testing.T) *salonFixture {
	f := &salonFixture{adminToken: s.login(t, "admin@test.com", "admin123")}

	w := s.request(t, "POST", "/api/v1/branches", map[string]string{"name": "Downtown"}, f.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	f.branchID = parse(t, w).Data["branch"].(map[string]interface{})["id"].(float64)

	w = s.request(t, "POST", "/api/v1/seats", map[string]interface{}{
		"branch_id":   f.branchID,
		"seat_number": 1,
		"seat_type":   "premium",
		"hourly_rate": 200,
	}, f.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	f.seatID = parse(t, w).Data["seat"].(map[string]interface{})["id"].(float64)

	w = s.request(t, "POST", "/api/v1/categories", map[string]string{
		"name":          "Hair",
		"required_role": "stylist",
	}, f.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	categoryID := parse(t, w).Data["category"].(map[string]interface{})["id"].(float64)

	w = s.request(t, "POST", "/api/v1/services", map[string]interface{}{
		"category_id": categoryID,
		"name":        "Haircut",
	}, f.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	f.serviceID = parse(t, w).Data["service"].(map[string]interface{})["id"].(float64)

	w = s.request(t, "POST", fmt.Sprintf("/api/v1/services/%.0f/tiers", f.serviceID), map[string]interface{}{
		"label":            "Senior",
		"duration_minutes": 45,
		"price":            500,
	}, f.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	f.tierID = parse(t, w).Data["tier"].(map[string]interface{})["id"].(float64)

	w = s.request(t, "POST", "/api/v1/products", map[string]interface{}{
		"name":        "Argan Oil",
		"price":       150,
		"total_stock": 10,
	}, f.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	f.productID = parse(t, w).Data["product"].(map[string]interface{})["id"].(float64)

	w = s.request(t, "POST", "/api/v1/staff", map[string]interface{}{
		"email":         "aida@test.com",
		"password":      "staff-password",
		"name":          "Aida",
		"role":          "staff",
		"employee_role": "stylist",
		"branch_id":     f.branchID,
	}, f.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	f.stylistID = parse(t, w).Data["user"].(map[string]interface{})["id"].(float64)

	f.staffToken = s.login(t, "aida@test.com", "staff-password")
	return f
}

func TestWalkinFlow_ComposeConfirmComplete(t *testing.T) {
	s := setupSuite(t)
	f := s.setupSalon(t)

	// staff opens a draft order
	w := s.request(t, "POST", "/api/v1/walkins", map[string]interface{}{
		"branch_id":     f.branchID,
		"customer_name": "Walk-in customer",
	}, f.staffToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orderID := parse(t, w).Data["order"].(map[string]interface{})["id"].(float64)
	orderPath := fmt.Sprintf("/api/v1/walkins/%.0f", orderID)

	// service line with the stylist assigned up front
	w = s.request(t, "POST", orderPath+"/services", map[string]interface{}{
		"service_id": f.serviceID,
		"tier_id":    f.tierID,
		"staff_id":   f.stylistID,
	}, f.staffToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// two units of product
	w = s.request(t, "POST", orderPath+"/products", map[string]interface{}{
		"product_id": f.productID,
		"quantity":   2,
	}, f.staffToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// seat for one hour
	w = s.request(t, "POST", orderPath+"/seats", map[string]interface{}{
		"seat_id":        f.seatID,
		"duration_hours": 1,
	}, f.staffToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// totals: 500 + 2*150 + 200 = 1000
	w = s.request(t, "GET", orderPath, nil, f.staffToken)
	require.Equal(t, http.StatusOK, w.Code)
	totals := parse(t, w).Data["totals"].(map[string]interface{})
	assert.Equal(t, 1000.0, totals["subtotal"])
	assert.Equal(t, "pending", totals["payment_status"])

	// confirm, start, pay, complete
	for _, status := range []string{"confirmed", "in_progress"} {
		w = s.request(t, "PUT", orderPath+"/status", map[string]string{"status": status}, f.staffToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w = s.request(t, "PUT", orderPath+"/payment", map[string]interface{}{
		"discount":       100,
		"amount_paid":    600,
		"payment_method": "card",
	}, f.staffToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	totals = parse(t, w).Data["totals"].(map[string]interface{})
	assert.Equal(t, 900.0, totals["total"])
	assert.Equal(t, 300.0, totals["due_amount"])
	assert.Equal(t, "partially paid", totals["payment_status"])

	w = s.request(t, "PUT", orderPath+"/status", map[string]string{"status": "completed"}, f.staffToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// completed order rejects further transitions
	w = s.request(t, "PUT", orderPath+"/status", map[string]string{"status": "cancelled"}, f.staffToken)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ILLEGAL_TRANSITION", parse(t, w).Error.Code)

	// ...and further edits
	w = s.request(t, "POST", orderPath+"/products", map[string]interface{}{
		"product_id": f.productID,
		"quantity":   1,
	}, f.staffToken)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ORDER_LOCKED", parse(t, w).Error.Code)

	// payment reconciliation still works after completion
	w = s.request(t, "PUT", orderPath+"/payment", map[string]interface{}{"amount_paid": 900}, f.staffToken)
	require.Equal(t, http.StatusOK, w.Code)
	totals = parse(t, w).Data["totals"].(map[string]interface{})
	assert.Equal(t, "fully paid", totals["payment_status"])
}

func TestWalkinFlow_CancelReleasesStockAndSeat(t *testing.T) {
	s := setupSuite(t)
	f := s.setupSalon(t)

	w := s.request(t, "POST", "/api/v1/walkins", map[string]interface{}{
		"branch_id":     f.branchID,
		"customer_name": "Cancelled customer",
	}, f.staffToken)
	require.Equal(t, http.StatusCreated, w.Code)
	orderPath := fmt.Sprintf("/api/v1/walkins/%.0f", parse(t, w).Data["order"].(map[string]interface{})["id"].(float64))

	w = s.request(t, "POST", orderPath+"/products", map[string]interface{}{
		"product_id": f.productID,
		"quantity":   4,
	}, f.staffToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.request(t, "POST", orderPath+"/seats", map[string]interface{}{
		"seat_id":        f.seatID,
		"duration_hours": 2,
	}, f.staffToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// the seat is now unavailable to any other order
	w = s.request(t, "POST", "/api/v1/walkins", map[string]interface{}{
		"branch_id":     f.branchID,
		"customer_name": "Second customer",
	}, f.staffToken)
	require.Equal(t, http.StatusCreated, w.Code)
	otherPath := fmt.Sprintf("/api/v1/walkins/%.0f", parse(t, w).Data["order"].(map[string]interface{})["id"].(float64))

	w = s.request(t, "POST", otherPath+"/seats", map[string]interface{}{
		"seat_id":        f.seatID,
		"duration_hours": 1,
	}, f.staffToken)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "SEAT_UNAVAILABLE", parse(t, w).Error.Code)

	// cancel returns the stock and frees the seat
	w = s.request(t, "PUT", orderPath+"/status", map[string]string{"status": "cancelled"}, f.staffToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var product domain.Product
	require.NoError(t, s.db.First(&product, int64(f.productID)).Error)
	assert.Equal(t, 0, product.InUseStock)

	w = s.request(t, "POST", otherPath+"/seats", map[string]interface{}{
		"seat_id":        f.seatID,
		"duration_hours": 1,
	}, f.staffToken)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestStock_ConcurrentOrdersCannotOversell(t *testing.T) {
	s := setupSuite(t)
	f := s.setupSalon(t)

	w := s.request(t, "POST", "/api/v1/walkins", map[string]interface{}{
		"branch_id":     f.branchID,
		"customer_name": "Bulk buyer",
	}, f.staffToken)
	require.Equal(t, http.StatusCreated, w.Code)
	orderPath := fmt.Sprintf("/api/v1/walkins/%.0f", parse(t, w).Data["order"].(map[string]interface{})["id"].(float64))

	// 10 in stock: 8 fits, 3 more does not
	w = s.request(t, "POST", orderPath+"/products", map[string]interface{}{
		"product_id": f.productID,
		"quantity":   8,
	}, f.staffToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.request(t, "POST", orderPath+"/products", map[string]interface{}{
		"product_id": f.productID,
		"quantity":   3,
	}, f.staffToken)
	assert.Equal(t, http.StatusConflict, w.Code)
	resp := parse(t, w)
	assert.Equal(t, "INSUFFICIENT_STOCK", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "only 2 units available")
}

func TestRBAC_StaffCannotManageStock(t *testing.T) {
	s := setupSuite(t)
	f := s.setupSalon(t)

	w := s.request(t, "PUT", fmt.Sprintf("/api/v1/products/%.0f/stock/total", f.productID),
		map[string]interface{}{"total_stock": 50}, f.staffToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.request(t, "PUT", fmt.Sprintf("/api/v1/products/%.0f/stock/total", f.productID),
		map[string]interface{}{"total_stock": 50}, f.adminToken)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestNotifications_LowStockAlertReachesAdmin(t *testing.T) {
	s := setupSuite(t)
	f := s.setupSalon(t)

	// book 6 of 10: available drops to 4, under the alert threshold
	w := s.request(t, "POST", fmt.Sprintf("/api/v1/products/%.0f/stock/book", f.productID),
		map[string]interface{}{"quantity": 6}, f.adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.request(t, "GET", "/api/v1/notifications", nil, f.adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	resp := parse(t, w)
	unread, _ := resp.Data["unread_count"].(float64)
	assert.GreaterOrEqual(t, unread, 1.0)
}

func TestAuth_UnauthenticatedRejected(t *testing.T) {
	s := setupSuite(t)

	w := s.request(t, "POST", "/api/v1/walkins", map[string]interface{}{
		"branch_id":     1,
		"customer_name": "Nobody",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
