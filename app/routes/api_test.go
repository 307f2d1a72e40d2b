package routes_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/repositories/memstore"
	"github.com/shashiranjanraj/plantnet/app/routes"
	"github.com/shashiranjanraj/plantnet/app/services"
	"github.com/shashiranjanraj/plantnet/config"
	"github.com/shashiranjanraj/plantnet/pkg/event"
	"github.com/shashiranjanraj/plantnet/pkg/router"
	"github.com/shashiranjanraj/plantnet/pkg/session"
	"github.com/shashiranjanraj/plantnet/pkg/testkit"
)

type api struct {
	t       *testing.T
	store   *memstore.Store
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newAPI(t *testing.T) *api {
	t.Helper()
	config.Set("JWT_SECRET", "routes-test")
	config.Set("APP_ENV", "testing")

	store := memstore.New()
	reg := services.NewRegistry(services.Stores{
		Users:  store.Users(),
		Plants: store.Plants(),
		Orders: store.Orders(),
	}, event.New())

	r := router.New()
	routes.RegisterAPI(r, reg, session.NewManager(), nil)

	store.PutUser(models.User{Email: "admin@x.com", Role: models.RoleAdmin})
	store.PutUser(models.User{Email: "seller@x.com", Role: models.RoleSeller})
	store.PutUser(models.User{Email: "buyer@x.com", Role: models.RoleCustomer})

	return &api{t: t, store: store, handler: r.Handler(), cookies: map[string]*http.Cookie{}}
}

// login runs POST /jwt and keeps the cookie for email.
func (a *api) login(email string) {
	a.t.Helper()
	rec := a.do("", http.MethodPost, "/jwt", `{"email":"`+email+`"}`)
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			a.cookies[email] = c
		}
	}
	require.Contains(a.t, a.cookies, email)
}

func (a *api) do(as, method, path, body string) *httptest.ResponseRecorder {
	a.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if c, ok := a.cookies[as]; ok {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func data(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

func TestJWTSetsCookieAndLogoutClears(t *testing.T) {
	a := newAPI(t)
	a.login("buyer@x.com")
	c := a.cookies["buyer@x.com"]
	assert.True(t, c.HttpOnly)

	rec := a.do("buyer@x.com", http.MethodGet, "/logout", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestJWTRequiresEmail(t *testing.T) {
	a := newAPI(t)
	rec := a.do("", http.MethodPost, "/jwt", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCustomerOnAdminRouteIsUnauthorizedAndMutatesNothing(t *testing.T) {
	a := newAPI(t)
	a.login("buyer@x.com")
	before := a.store.Snapshot()

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/all-users/buyer@x.com", ""},
		{http.MethodPatch, "/user-role/buyer@x.com", `{"role":"admin"}`},
		{http.MethodPost, "/plant", `{"name":"Rose","category":"Flower"}`},
	} {
		rec := a.do("buyer@x.com", tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.path)
	}
	assert.Equal(t, before, a.store.Snapshot())
}

func TestProtectedRoutesNeedSession(t *testing.T) {
	a := newAPI(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/order"},
		{http.MethodGet, "/customer-orders/buyer@x.com"},
		{http.MethodDelete, "/orders/65a1b2c3d4e5f60718293a4b"},
		{http.MethodPatch, "/plants/quantity/65a1b2c3d4e5f60718293a4b"},
	} {
		rec := a.do("", tc.method, tc.path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.path)
	}
}

func TestUserEndpoints(t *testing.T) {
	a := newAPI(t)

	rec := a.do("", http.MethodPost, "/users/new@x.com", `{"name":"New"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var u models.User
	data(t, rec, &u)
	assert.Equal(t, models.RoleCustomer, u.Role)

	rec = a.do("", http.MethodGet, "/user/role/seller@x.com", "")
	assert.JSONEq(t, `{"status":200,"data":{"role":"seller"}}`, rec.Body.String())

	a.login("new@x.com")
	assert.Equal(t, http.StatusOK, a.do("new@x.com", http.MethodPatch, "/user/new@x.com", "").Code)
	assert.Equal(t, http.StatusConflict, a.do("new@x.com", http.MethodPatch, "/user/new@x.com", "").Code)

	a.login("admin@x.com")
	rec = a.do("admin@x.com", http.MethodPatch, "/user-role/new@x.com", `{"role":"seller"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do("admin@x.com", http.MethodGet, "/all-users/admin@x.com", "")
	var all []models.User
	data(t, rec, &all)
	assert.Len(t, all, 3)
}

func TestCheckoutFlow(t *testing.T) {
	a := newAPI(t)
	a.login("seller@x.com")
	a.login("buyer@x.com")

	rec := a.do("seller@x.com", http.MethodPost, "/plant",
		`{"name":"Rose","category":"Flower","price":12,"quantity":5,"imageURL":"https://img/rose.png","seller":{"name":"S","email":"forged@x.com"}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var plant models.Plant
	data(t, rec, &plant)
	assert.Equal(t, "seller@x.com", plant.Seller.Email)
	pid := plant.ID.Hex()

	rec = a.do("", http.MethodGet, "/plants/"+pid, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, a.do("", http.MethodGet, "/plants/nope", "").Code)

	rec = a.do("buyer@x.com", http.MethodPost, "/order",
		`{"plantId":"`+pid+`","quantity":2,"price":24,"customer":{"name":"B","address":"Dhaka"}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order models.Order
	data(t, rec, &order)

	rec = a.do("buyer@x.com", http.MethodPost, "/order", `{"plantId":"`+pid+`","quantity":4}`)
	assert.Equal(t, http.StatusConflict, rec.Code, "only 3 left after the first order")

	rec = a.do("buyer@x.com", http.MethodPatch, "/plants/quantity/"+pid, `{"quantityToUpdate":4,"status":"decrease"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = a.do("buyer@x.com", http.MethodGet, "/customer-orders/buyer@x.com", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var enriched []map[string]any
	data(t, rec, &enriched)
	require.Len(t, enriched, 1)
	assert.Equal(t, "Rose", enriched[0]["name"])
	assert.Equal(t, "https://img/rose.png", enriched[0]["imageURL"])
	assert.Equal(t, "Flower", enriched[0]["category"])

	assert.Equal(t, http.StatusUnauthorized, a.do("seller@x.com", http.MethodGet, "/customer-orders/buyer@x.com", "").Code)

	rec = a.do("seller@x.com", http.MethodGet, "/seller-orders/seller@x.com", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do("seller@x.com", http.MethodPatch, "/orders/"+order.ID.Hex()+"/status", `{"status":"Shipped"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.do("buyer@x.com", http.MethodDelete, "/orders/"+order.ID.Hex(), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got, err := a.store.Plants().FindByID(context.Background(), plant.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity, "cancel restores the reserved stock")
}

func TestCancelDeliveredOrderIsConflict(t *testing.T) {
	a := newAPI(t)
	a.login("buyer@x.com")
	p := a.store.PutPlant(models.Plant{Name: "Rose", Quantity: 1})
	o := a.store.PutOrder(models.Order{
		PlantID:  p.ID.Hex(),
		Quantity: 1,
		Status:   "delivered",
		Customer: models.CustomerInfo{Email: "buyer@x.com"},
	})
	before := a.store.Snapshot()

	rec := a.do("buyer@x.com", http.MethodDelete, "/orders/"+o.ID.Hex(), "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, before, a.store.Snapshot())
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	rec := a.do("", http.MethodGet, "/health", "")
	assert.JSONEq(t, `{"status":200,"data":{"status":"ok","store":"up"}}`, rec.Body.String())
}

func TestGuardScenarios(t *testing.T) {
	config.Set("JWT_SECRET", "routes-test")
	sessions := session.NewManager()
	testkit.Runner{
		Handler: func(t *testing.T) http.Handler { return newAPI(t).handler },
		Authenticate: func(t *testing.T, r *http.Request, as string) {
			rec := httptest.NewRecorder()
			_, err := sessions.Issue(rec, as)
			require.NoError(t, err)
			for _, c := range rec.Result().Cookies() {
				r.AddCookie(c)
			}
		},
	}.RunFile(t, "testdata/guards.json")
}
