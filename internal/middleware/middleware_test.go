package middleware

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-reservation/internal/config"
    "github.com/iliyamo/hotel-reservation/internal/utils"
)

func okHandler(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"user_id": c.Get(CtxUserID), "role": c.Get(CtxRole)})
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func TestJWTAuthAndRole(t *testing.T) {
    e := echo.New()
    e.GET("/admin", okHandler, JWTAuth("secret"), RequireRole("ADMIN"))

    admin, err := utils.NewAccessToken("secret", 1, "ADMIN", 5)
    if err != nil {
        t.Fatal(err)
    }
    clerk, err := utils.NewAccessToken("secret", 2, "CLERK", 5)
    if err != nil {
        t.Fatal(err)
    }

    cases := []struct {
        name   string
        header string
        want   int
    }{
        {"missing header", "", http.StatusUnauthorized},
        {"garbage token", "Bearer nope", http.StatusUnauthorized},
        {"wrong role", "Bearer " + clerk.Token, http.StatusForbidden},
        {"admin", "Bearer " + admin.Token, http.StatusOK},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            req := httptest.NewRequest(http.MethodGet, "/admin", nil)
            if tc.header != "" {
                req.Header.Set(echo.HeaderAuthorization, tc.header)
            }
            rec := serve(e, req)
            if rec.Code != tc.want {
                t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
            }
        })
    }
}

func TestBuildRateKey(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/hotels/7", nil)
    req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
    c := e.NewContext(req, httptest.NewRecorder())
    c.SetPath("/v1/hotels/:id")
    c.Set(CtxUserID, uint64(9))

    cases := map[string]string{
        "ip":            "rl:ip:10.0.0.1",
        "user_route":    "rl:user:9:route:GET /v1/hotels/:id",
        "ip_user_route": "rl:ip:10.0.0.1:user:9:route:GET /v1/hotels/:id",
        "bogus":         "rl:ip:10.0.0.1:user:9:route:GET /v1/hotels/:id",
    }
    for strategy, want := range cases {
        got := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: strategy}, c)
        if got != want {
            t.Errorf("strategy %q: got %q want %q", strategy, got, want)
        }
    }
}

func TestParseBucketResult(t *testing.T) {
    allowed, remaining, retry, ok := parseBucketResult([]interface{}{int64(0), int64(0), int64(1500)})
    if !ok || allowed || remaining != 0 || retry != 1500 {
        t.Fatalf("unexpected parse: %v %d %d %v", allowed, remaining, retry, ok)
    }
    if retryAfterSeconds(retry) != 2 {
        t.Fatalf("1500ms should round up to 2s")
    }
    if _, _, _, ok := parseBucketResult("nope"); ok {
        t.Fatalf("non-array result must not parse")
    }
}

func TestCacheKey_UsesConcretePath(t *testing.T) {
    cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
    a := cacheKeyFrom(cfg, httptest.NewRequest(http.MethodGet, "/v1/hotels/1", nil))
    b := cacheKeyFrom(cfg, httptest.NewRequest(http.MethodGet, "/v1/hotels/2", nil))
    if a == b {
        t.Fatalf("different hotels must not share a cache key")
    }
    if !strings.HasPrefix(a, "cache:") {
        t.Fatalf("key must carry the prefix: %s", a)
    }
}

func TestPayloadRoundTrip(t *testing.T) {
    hdr := http.Header{"Content-Type": []string{"application/json"}}
    bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"ok":true}`))
    if err != nil {
        t.Fatal(err)
    }
    status, gotHdr, body, ok := decodePayload(bs)
    if !ok || status != http.StatusOK || string(body) != `{"ok":true}` || gotHdr.Get("Content-Type") != "application/json" {
        t.Fatalf("unexpected decode: %d %v %q %v", status, gotHdr, body, ok)
    }
    if _, _, _, ok := decodePayload([]byte{0, 0}); ok {
        t.Fatalf("short payload must not decode")
    }
}

func TestDisabledMiddlewarePassesThrough(t *testing.T) {
    e := echo.New()
    e.GET("/x", okHandler,
        NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil),
        NewRedisCache(config.CacheConfig{Enabled: true}, nil))
    rec := serve(e, httptest.NewRequest(http.MethodGet, "/x", nil))
    if rec.Code != http.StatusOK {
        t.Fatalf("expected 200, got %d", rec.Code)
    }
}
