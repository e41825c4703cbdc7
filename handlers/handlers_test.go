package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"squares-pool/broadcast"
	"squares-pool/services"
)

// newTestApp wires the routes over an engine with no store; every request
// used here is rejected before it reaches the database.
func newTestApp() *fiber.App {
	app := fiber.New()
	svc := services.NewSquaresService(nil, nil, nil)
	SetupSquaresRoutes(app, NewSquaresHandler(svc, broadcast.NewHub(0)))
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	out := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("decode %q: %v", raw, err)
		}
	}
	return resp.StatusCode, out
}

func TestRequestValidation(t *testing.T) {
	app := newTestApp()

	test := func(name, method, path, body string, want int) {
		t.Run(name, func(t *testing.T) {
			status, out := do(t, app, method, path, body)
			if status != want {
				t.Fatalf("status = %d, want %d (%v)", status, want, out)
			}
			if _, ok := out["error"]; !ok {
				t.Fatalf("missing error message in %v", out)
			}
		})
	}

	test("bad json", "POST", "/api/games/ABC123/squares", `{`, 400)
	test("missing row", "POST", "/api/games/ABC123/squares", `{"userId":1,"action":"select","col":1}`, 400)
	test("missing user", "POST", "/api/games/ABC123/squares", `{"action":"select","row":1,"col":1}`, 400)
	test("bad action", "POST", "/api/games/ABC123/squares", `{"userId":1,"action":"grab","row":1,"col":1}`, 400)
	test("row out of range", "POST", "/api/games/ABC123/squares", `{"userId":1,"action":"select","row":10,"col":1}`, 400)
	test("col negative", "POST", "/api/games/ABC123/squares", `{"userId":1,"action":"deselect","row":1,"col":-1}`, 400)
	test("login without phone", "POST", "/api/games/ABC123/login", `{"phone":""}`, 400)
	test("login punctuation phone", "POST", "/api/games/ABC123/login", `{"phone":"()-"}`, 400)
	test("assign missing admin", "POST", "/api/games/ABC123/admin/assign-square", `{"row":1,"col":1}`, 400)
	test("assign out of range", "POST", "/api/games/ABC123/admin/assign-square", `{"adminId":1,"row":1,"col":12}`, 400)
	test("winner missing col", "POST", "/api/games/ABC123/admin/set-winner", `{"adminId":1,"row":1,"quarters":["Q1"]}`, 400)
	test("winner out of range", "POST", "/api/games/ABC123/admin/set-winner", `{"adminId":1,"row":-1,"col":0,"quarters":["Q1"]}`, 400)
	test("start missing admin", "POST", "/api/games/ABC123/admin/start", `{}`, 400)
	test("complete missing admin", "POST", "/api/games/ABC123/admin/complete", `{}`, 400)
	test("submit missing user", "POST", "/api/games/ABC123/submit", `{}`, 400)
	test("create missing admin", "POST", "/api/games", `{"name":"Pool","adminName":"","adminPhone":"5551234567"}`, 400)
	test("create negative price", "POST", "/api/games", `{"name":"Pool","adminName":"Ann","adminPhone":"5551234567","pricePerSquare":-5}`, 400)
	test("join missing phone", "POST", "/api/games/ABC123/join", `{"name":"Bob"}`, 400)
	test("join negative target", "POST", "/api/games/ABC123/join", `{"name":"Bob","phone":"5551234567","squaresToBuy":-1}`, 400)
}

func TestWriteErrorMapping(t *testing.T) {
	app := fiber.New()
	route := func(path string, err error) {
		app.Get(path, func(c *fiber.Ctx) error { return writeError(c, err) })
	}
	route("/not-admin", services.ErrNotAdmin)
	route("/not-owner", services.ErrNotSquareOwner)
	route("/no-game", services.ErrGameNotFound)
	route("/phone", services.ErrPhoneTaken)
	route("/taken", services.ErrSquareTaken)
	route("/join-closed", services.ErrJoinClosed)
	route("/wrapped", fmt.Errorf("claim: %w", services.ErrPoolExhausted))
	route("/storage", errors.New("connection refused"))

	test := func(path string, want int, wantCode services.Kind, wantMsg string) {
		t.Run(path, func(t *testing.T) {
			status, out := do(t, app, "GET", path, "")
			if status != want {
				t.Fatalf("status = %d, want %d", status, want)
			}
			if out["error"] != wantMsg {
				t.Fatalf("error = %v, want %q", out["error"], wantMsg)
			}
			if out["code"] != string(wantCode) {
				t.Fatalf("code = %v, want %q", out["code"], wantCode)
			}
		})
	}

	test("/not-admin", 403, services.KindForbidden, services.ErrNotAdmin.Message)
	test("/not-owner", 400, services.KindForbidden, services.ErrNotSquareOwner.Message)
	test("/no-game", 404, services.KindNotFound, services.ErrGameNotFound.Message)
	test("/phone", 409, services.KindConflict, services.ErrPhoneTaken.Message)
	test("/taken", 400, services.KindConflict, services.ErrSquareTaken.Message)
	test("/join-closed", 400, services.KindInvalidState, "Game has started - joining is closed")
	test("/wrapped", 400, services.KindCapacityExceeded, services.ErrPoolExhausted.Message)
	test("/storage", 500, services.KindInternal, "Internal server error")
}

func TestHealth(t *testing.T) {
	status, out := do(t, newTestApp(), "GET", "/health", "")
	if status != 200 || out["status"] != "ok" {
		t.Fatalf("health = %d %v", status, out)
	}
}
