package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anns25/stayhub-web/internal/web/i18n"
)

func TestCSRFMiddleware(t *testing.T) {
	mw := CSRF(CSRFConfig{CookieName: "csrf", HeaderName: "X-CSRF-Token"})

	t.Run("issues cookie on GET", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		rr := httptest.NewRecorder()
		mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := CSRFFromContext(r.Context())
			if state.Token == "" {
				t.Fatalf("expected token in context")
			}
			if state.FieldName != "_csrf" || state.HeaderName != "X-CSRF-Token" {
				t.Fatalf("unexpected csrf state %+v", state)
			}
			w.WriteHeader(http.StatusOK)
		})).ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		found := false
		for _, c := range rr.Result().Cookies() {
			if c.Name == "csrf" && c.Value != "" {
				found = true
				if !c.HttpOnly || c.SameSite != http.SameSiteStrictMode {
					t.Fatalf("unexpected cookie attributes %+v", c)
				}
			}
		}
		if !found {
			t.Fatalf("expected csrf cookie to be set")
		}
	})

	t.Run("reuses existing cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.AddCookie(&http.Cookie{Name: "csrf", Value: "existing"})
		rr := httptest.NewRecorder()
		mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := CSRFTokenFromContext(r.Context()); got != "existing" {
				t.Fatalf("expected existing token, got %q", got)
			}
		})).ServeHTTP(rr, req)
		if len(rr.Result().Cookies()) != 0 {
			t.Fatalf("expected no new cookie")
		}
	})

	t.Run("rejects unsafe request without header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.AddCookie(&http.Cookie{Name: "csrf", Value: "token"})
		rr := httptest.NewRecorder()
		mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rr, req)
		if rr.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rr.Code)
		}
	})

	t.Run("allows unsafe request with matching header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.AddCookie(&http.Cookie{Name: "csrf", Value: "token"})
		req.Header.Set("X-CSRF-Token", "token")
		rr := httptest.NewRecorder()
		mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})).ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
	})
}

func TestHTMXMiddleware(t *testing.T) {
	cases := []struct {
		name     string
		headers  map[string]string
		htmx     bool
		fragment bool
	}{
		{name: "plain navigation", headers: nil, htmx: false, fragment: false},
		{name: "htmx swap", headers: map[string]string{"HX-Request": "true"}, htmx: true, fragment: true},
		{name: "boosted link", headers: map[string]string{"HX-Request": "true", "HX-Boosted": "true"}, htmx: true, fragment: false},
		{name: "history restore", headers: map[string]string{"HX-Request": "true", "HX-History-Restore-Request": "true"}, htmx: true, fragment: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var info HTMXInfo
			handler := HTMX()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				info = HTMXInfoFromContext(r.Context())
				require.Equal(t, tc.htmx, IsHTMXRequest(r.Context()))
			}))
			req := httptest.NewRequest(http.MethodGet, "/register", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Equal(t, tc.fragment, info.Fragment())
			require.Contains(t, rr.Header().Values("Vary"), "HX-Request")
		})
	}
}

func TestNoStoreMiddleware(t *testing.T) {
	handler := NoStore()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Cache-Control"); got != "no-store, max-age=0" {
		t.Fatalf("unexpected Cache-Control: %s", got)
	}
	if got := rr.Header().Get("Pragma"); got != "no-cache" {
		t.Fatalf("unexpected Pragma: %s", got)
	}
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestRequestInfoJoinsBasePath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		base string
		path string
		want string
	}{
		{base: "", path: "/login", want: "/login"},
		{base: "/", path: "register", want: "/register"},
		{base: "accounts/", path: "/forgot-password", want: "/accounts/forgot-password"},
		{base: "/accounts", path: "/", want: "/accounts"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, JoinBase(tc.base, tc.path), "base=%q path=%q", tc.base, tc.path)
	}

	var href string
	handler := RequestInfoMiddleware("/accounts/")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info, ok := RequestInfoFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "/accounts/login", info.Path)
		href = HrefFromContext(r.Context(), "/register")
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/accounts/login", nil))
	require.Equal(t, "/accounts/register", href)
}

func TestLocaleMiddleware(t *testing.T) {
	bundle, err := i18n.LoadEmbedded("ja", []string{"ja", "en"})
	require.NoError(t, err)

	run := func(req *http.Request) (string, *httptest.ResponseRecorder) {
		var lang string
		handler := Locale(bundle)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang = LocalizerFromContext(r.Context()).Lang()
		}))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return lang, rr
	}

	t.Run("accept-language", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.Header.Set("Accept-Language", "en-GB,en;q=0.9")
		lang, rr := run(req)
		require.Equal(t, "en", lang)
		require.Equal(t, "en", rr.Header().Get("Content-Language"))
		require.Contains(t, rr.Header().Values("Vary"), "Accept-Language")
	})

	t.Run("query override sets cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/login?hl=EN", nil)
		req.Header.Set("Accept-Language", "ja")
		lang, rr := run(req)
		require.Equal(t, "en", lang)
		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, LocaleCookieName, cookies[0].Name)
		require.Equal(t, "en", cookies[0].Value)
	})

	t.Run("cookie beats header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.Header.Set("Accept-Language", "ja")
		req.AddCookie(&http.Cookie{Name: LocaleCookieName, Value: "en"})
		lang, _ := run(req)
		require.Equal(t, "en", lang)
	})

	t.Run("unsupported override ignored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/login?hl=fr", nil)
		lang, rr := run(req)
		require.Equal(t, "ja", lang)
		require.Empty(t, rr.Result().Cookies())
	})
}

func TestThemeMiddleware(t *testing.T) {
	cases := []struct {
		name     string
		fallback string
		cookie   string
		want     string
	}{
		{name: "default", fallback: "", want: "light"},
		{name: "configured dark", fallback: "dark", want: "dark"},
		{name: "cookie wins", fallback: "light", cookie: "Dark", want: "dark"},
		{name: "invalid cookie ignored", fallback: "dark", cookie: "neon", want: "dark"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got string
			handler := Theme(tc.fallback)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = ThemeFromContext(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/login", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: ThemeCookieName, Value: tc.cookie})
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)
			require.Equal(t, tc.want, got)
		})
	}
}
