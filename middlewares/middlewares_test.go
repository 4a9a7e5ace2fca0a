package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fakturierung-local/models"
	"fakturierung-local/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(nil)})
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusNotFound, "invoice not found") })
	app.Get("/invalid", func(c *fiber.Ctx) error { return validation.Errors{"number": validation.MsgNumberRequired} })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("disk on fire") })

	tests := []struct {
		path    string
		status  int
		message string
	}{
		{"/fiber", http.StatusNotFound, "invoice not found"},
		{"/invalid", http.StatusUnprocessableEntity, "validation failed"},
		{"/boom", http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			body := decode(t, resp)
			assert.Equal(t, tt.message, body["message"])
			if tt.status == http.StatusUnprocessableEntity {
				assert.Equal(t, map[string]any{"number": validation.MsgNumberRequired}, body["errors"])
			}
		})
	}
}

func TestBindJSONRejectsMalformedBody(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(nil)})
	app.Post("/", func(c *fiber.Ctx) error {
		var v struct {
			Number string `json:"number"`
		}
		if err := BindJSON(c, &v); err != nil {
			return err
		}
		return c.SendString(v.Number)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"number":"INV-1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"number":`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid request body", decode(t, resp)["message"])
}

type fakeSessions struct {
	session models.Session
	err     error
}

func (f fakeSessions) Session(context.Context) (models.Session, error) { return f.session, f.err }

func TestRequireSession(t *testing.T) {
	build := func(src SessionSource) *fiber.App {
		app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(nil)})
		app.Use(RequireSession(src))
		app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })
		return app
	}

	resp, err := build(fakeSessions{}).Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = build(fakeSessions{session: models.Session{IsAuthenticated: true}}).Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = build(fakeSessions{err: errors.New("store down")}).Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestSerializeWritesRunsWritesOneAtATime(t *testing.T) {
	var inFlight, maxInFlight int32
	app := fiber.New()
	app.Use(SerializeWrites())
	app.Post("/", func(c *fiber.Ctx) error {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			m := atomic.LoadInt32(&maxInFlight)
			if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return c.SendStatus(fiber.StatusNoContent)
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/", nil), -1)
			if assert.NoError(t, err) {
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInFlight))
}
