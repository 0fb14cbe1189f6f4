package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/justinas/alice"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard/internal/session"
	"github.com/vfg2006/sales-dashboard/internal/usecases/loading"
	"github.com/vfg2006/sales-dashboard/pkg/middleware"
	"github.com/vfg2006/sales-dashboard/web"
)

const csvHeader = "Sale Start date,Sale End date,Reporting Label,Source,Asset Artist,Product Title,Your Earnings\n"

const sampleCSV = csvHeader +
	"2024-01-15,2024-01-31,L1,Spotify,A1,Song1,10.00\n" +
	"2024-01-20,2024-01-31,L2,Apple Music,A2,Song2,5.00\n" +
	"2024-02-03,2024-02-28,L1,Spotify,A1,Song3,2.50\n"

func testCookies() middleware.SessionCookies {
	return middleware.SessionCookies{
		Name:   "sales_session",
		TTL:    time.Hour,
		Issuer: session.NewTokenIssuer("segredo-de-teste", time.Hour),
	}
}

func testRenderer(t *testing.T) Renderer {
	t.Helper()
	templates, err := web.Templates()
	require.NoError(t, err)
	return templates
}

func testUploader(store session.Store) Uploader {
	return Uploader{
		Loader:   loading.NewCSVLoader(),
		Store:    store,
		Cookies:  testCookies(),
		MaxBytes: 1 << 20,
	}
}

// testServer monta as rotas com o middleware de sessão, como no servidor real
func testServer(t *testing.T, uploader Uploader) http.Handler {
	t.Helper()
	rt := router.New(
		router.WithRoutes(Dashboard(uploader, testRenderer(t))...),
		router.WithRoutes(Reports(uploader)...),
	)
	return alice.New(middleware.SessionMiddleware(uploader.Cookies, uploader.Store)).Then(rt)
}

func multipartRequest(t *testing.T, path, field, fileName, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// sessionCookie retorna o último cookie de sessão escrito, que é o que o navegador guarda
func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	var found *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "sales_session" {
			found = cookie
		}
	}
	if found == nil {
		t.Fatalf("cookie de sessão ausente na resposta")
	}
	return found
}

func serve(handler http.Handler, req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func httptestGet(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func httptestPost(target string) *http.Request {
	return httptest.NewRequest(http.MethodPost, target, nil)
}

func httptestDelete(target string) *http.Request {
	return httptest.NewRequest(http.MethodDelete, target, nil)
}
