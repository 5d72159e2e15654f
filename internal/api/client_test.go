package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/teletela/storefront/internal/errs"
	"github.com/teletela/storefront/internal/model"
)

type fakeTokens struct {
	token   string
	expired bool
}

func (f *fakeTokens) Token() string   { return f.token }
func (f *fakeTokens) IsExpired() bool { return f.expired }

func newTestClient(t *testing.T, handler http.Handler, tokens TokenSource, onUnauthorized func()) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, tokens, 5*time.Second, zap.NewNop(), onUnauthorized)
	require.NoError(t, err)
	return c
}

func TestTransport_AttachesBearerExceptAuth(t *testing.T) {
	var catalogAuth, loginAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /televisoes", func(w http.ResponseWriter, r *http.Request) {
		catalogAuth = r.Header.Get("Authorization")
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		_ = json.NewEncoder(w).Encode([]model.Television{})
	})
	mux.HandleFunc("POST /auth", func(w http.ResponseWriter, r *http.Request) {
		loginAuth = r.Header.Get("Authorization")
		w.Header().Set("Authorization", "Bearer issued-token")
		_ = json.NewEncoder(w).Encode(model.Profile{ID: 1, Username: "ana"})
	})

	c := newTestClient(t, mux, &fakeTokens{token: "tok123"}, nil)

	_, err := c.Televisions(context.Background(), 0, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", catalogAuth)

	_, _, err = c.Login(context.Background(), model.LoginRequest{Username: "ana", Password: "pw"})
	require.NoError(t, err)
	assert.Empty(t, loginAuth, "the auth endpoint must not receive a bearer token")
}

func TestTransport_SkipsExpiredToken(t *testing.T) {
	var got string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /televisoes", func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]model.Television{})
	})

	c := newTestClient(t, mux, &fakeTokens{token: "tok123", expired: true}, nil)
	_, err := c.Televisions(context.Background(), 0, 10, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTransport_UnauthorizedHook(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("GET /pedidos/meus-pedidos", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "token rejeitado"})
	})
	mux.HandleFunc("POST /auth", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	c := newTestClient(t, mux, &fakeTokens{token: "tok"}, func() { calls++ })

	_, err := c.MyOrders(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "token rejeitado", apiErr.Message)

	// login failures never trigger the forced-logout hook
	_, _, err = c.Login(context.Background(), model.LoginRequest{Username: "u", Password: "p"})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestPagination_TotalCountHeader(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /televisoes", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("pageSize"))
		w.Header().Set("X-Total-Count", "42")
		_ = json.NewEncoder(w).Encode([]model.Television{{ID: 1}, {ID: 2}})
	})

	c := newTestClient(t, mux, nil, nil)
	page, err := c.Televisions(context.Background(), 2, 5, nil)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 42, page.TotalCount)
}

func TestPagination_MissingHeaderFallsBack(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /marcas", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]model.Brand{{ID: 1, Name: "LG"}})
	})

	c := newTestClient(t, mux, nil, nil)
	page, err := c.Brands.List(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)
}

func TestTVFilter_QueryEncoding(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /televisoes", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, []string{"Samsung", "LG"}, q["marcas"])
		assert.Equal(t, []string{"OLED"}, q["tipos"])
		assert.Equal(t, "55", q.Get("maxPolegada"))
		assert.Equal(t, "valor", q.Get("sort"))
		_ = json.NewEncoder(w).Encode([]model.Television{})
	})

	c := newTestClient(t, mux, nil, nil)
	_, err := c.Televisions(context.Background(), 0, 10, &TVFilter{
		Brands: []string{"Samsung", "LG"}, Types: []string{"OLED"}, MaxInches: 55, Sort: "valor",
	})
	require.NoError(t, err)
}

func TestLogin_TokenFromHeader(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth", func(w http.ResponseWriter, r *http.Request) {
		var creds model.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "ana", creds.Username)
		w.Header().Set("Authorization", "Bearer the-token")
		_ = json.NewEncoder(w).Encode(model.Profile{ID: 9, Username: "ana", Role: model.RoleCustomer})
	})

	c := newTestClient(t, mux, nil, nil)
	profile, token, err := c.Login(context.Background(), model.LoginRequest{Username: "ana", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "the-token", token)
	assert.Equal(t, int64(9), profile.ID)
}

func TestLogin_MissingHeaderFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(model.Profile{ID: 9})
	})

	c := newTestClient(t, mux, nil, nil)
	_, _, err := c.Login(context.Background(), model.LoginRequest{Username: "ana", Password: "pw"})
	assert.Error(t, err)
}

func TestLogin_ValidatesInput(t *testing.T) {
	c := newTestClient(t, http.NewServeMux(), nil, nil)
	_, _, err := c.Login(context.Background(), model.LoginRequest{})
	assert.Error(t, err)
}

func TestContextCancellation_DropsCall(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /televisoes", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	c := newTestClient(t, mux, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Televisions(ctx, 0, 10, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCatalogResource_PathGrammar(t *testing.T) {
	var paths []string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		_ = json.NewEncoder(w).Encode(model.Brand{ID: 3, Name: "Sony"})
	})

	c := newTestClient(t, mux, nil, nil)
	ctx := context.Background()

	_, err := c.Brands.Create(ctx, model.BrandRequest{Name: "Sony"})
	require.NoError(t, err)
	require.NoError(t, c.Brands.Update(ctx, 3, model.BrandRequest{Name: "Sony BR"}))
	require.NoError(t, c.Brands.Deactivate(ctx, 3))
	require.NoError(t, c.Brands.Restore(ctx, 3))
	_, err = c.Brands.Get(ctx, 3)
	require.NoError(t, err)

	// creation posts to the resource root; soft delete and restore are the
	// backend's apagar/ativar pair
	assert.Equal(t, []string{
		"POST /marcas",
		"PUT /marcas/3/atualizar",
		"DELETE /marcas/3/apagar",
		"PATCH /marcas/3/ativar",
		"GET /marcas/3/buscar-marca-por-id",
	}, paths)
}

func TestCatalogResource_FindByIDSegmentPerEntity(t *testing.T) {
	var paths []string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte(`{}`))
	})

	c := newTestClient(t, mux, nil, nil)
	ctx := context.Background()

	_, _ = c.Models.Get(ctx, 1)
	_, _ = c.Manufacturers.Get(ctx, 2)
	_, _ = c.Suppliers.Get(ctx, 3)
	_, _ = c.Characteristics.Get(ctx, 4)

	assert.Equal(t, []string{
		"/modelos/1/buscar-modelo-por-id",
		"/fabricantes/2/buscar-fabricante-por-id",
		"/fornecedores/3/buscar-fornecedor-por-id",
		"/caracteristicas/4/buscar-por-id",
	}, paths)
}

func TestCatalogResource_InactiveAndNameArePaginated(t *testing.T) {
	var paths []string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "20", r.URL.Query().Get("pageSize"))
		paths = append(paths, r.URL.Path)
		w.Header().Set("X-Total-Count", "3")
		_ = json.NewEncoder(w).Encode([]model.Brand{{ID: 1}})
	})

	c := newTestClient(t, mux, nil, nil)
	ctx := context.Background()

	inactive, err := c.Brands.Inactive(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 3, inactive.TotalCount)

	byName, err := c.Brands.FindByName(ctx, "Sony", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 3, byName.TotalCount)

	assert.Equal(t, []string{"/marcas/inativos", "/marcas/nome/Sony"}, paths)
}

func TestTelevisionAdmin_PathGrammar(t *testing.T) {
	var paths []string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		_ = json.NewEncoder(w).Encode(model.Television{ID: 9})
	})

	c := newTestClient(t, mux, nil, nil)
	ctx := context.Background()

	req := model.TelevisionRequest{
		ModelID: 1, ResolutionID: 2, ScreenTypeID: 3, Price: 999,
		Description: "55 inch", Height: 70, Width: 120, Inches: 55,
	}
	_, err := c.CreateTelevision(ctx, req)
	require.NoError(t, err)
	require.NoError(t, c.DeactivateTelevision(ctx, 9))
	require.NoError(t, c.RestoreTelevision(ctx, 9))

	assert.Equal(t, []string{
		"POST /televisoes",
		"DELETE /televisoes/9/desativar",
		"PATCH /televisoes/9/restaurar",
	}, paths)
}

func TestTelevisionFormLookups(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /televisoes/marcas", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]string{"LG", "Samsung"})
	})
	mux.HandleFunc("GET /modelos/marca/7", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]model.TVModel{{ID: 1, Name: "C3"}})
	})
	mux.HandleFunc("GET /televisoes/5/modelo", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(model.TVModel{ID: 1, Name: "C3"})
	})

	c := newTestClient(t, mux, nil, nil)
	ctx := context.Background()

	brands, err := c.TelevisionBrands(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"LG", "Samsung"}, brands)

	models, err := c.ModelsByBrand(ctx, 7)
	require.NoError(t, err)
	require.Len(t, models, 1)

	m, err := c.TelevisionModel(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "C3", m.Name)
}

func TestTelevisionImageUpload(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /televisoes/imagem/upload", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "9", r.FormValue("idTelevisao"))
		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "tv.jpg", header.Filename)
		_, _ = w.Write([]byte("ok"))
	})

	c := newTestClient(t, mux, nil, nil)
	err := c.UploadTelevisionImage(context.Background(), 9, "tv.jpg", strings.NewReader("jpegdata"))
	require.NoError(t, err)
}

func TestAddressAndMunicipalityPaths(t *testing.T) {
	var paths []string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		_, _ = w.Write([]byte(`{}`))
	})

	c := newTestClient(t, mux, nil, nil)
	ctx := context.Background()

	addr := model.AddressRequest{CEP: "01001000", District: "Sé", Number: 10, MunicipalityID: 2}
	_, err := c.CreateAddress(ctx, addr)
	require.NoError(t, err)
	require.NoError(t, c.UpdateAddress(ctx, 4, addr))
	require.NoError(t, c.DeleteAddress(ctx, 4))
	_, err = c.EnsureMunicipality(ctx, model.MunicipalityCheckRequest{City: "São Paulo", State: "SP"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"POST /endereco",
		"PUT /endereco/4/atualizar",
		"DELETE /endereco/4/deletar",
		"POST /municipio/verificar-ou-cadastrar",
	}, paths)
}

func TestEmployeeClient(t *testing.T) {
	var deleteAuth string
	var deleteBody model.EmployeeDeleteRequest
	mux := http.NewServeMux()
	mux.HandleFunc("GET /funcionario", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Total-Count", "1")
		_ = json.NewEncoder(w).Encode([]model.Employee{{ID: 1, Username: "carla"}})
	})
	mux.HandleFunc("POST /funcionario/incluir", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(model.Employee{ID: 2, Username: "joao"})
	})
	mux.HandleFunc("DELETE /funcionario/deletar", func(w http.ResponseWriter, r *http.Request) {
		deleteAuth = r.Header.Get("X-Password")
		_ = json.NewDecoder(r.Body).Decode(&deleteBody)
		w.WriteHeader(http.StatusNoContent)
	})

	c := newTestClient(t, mux, nil, nil)
	ctx := context.Background()

	page, err := c.Employees(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)

	_, err = c.CreateEmployee(ctx, model.EmployeeRequest{
		Name: "João", Surname: "Silva", CPF: "12345678901",
		Username: "joao", Password: "segredo1", Email: "joao@teletela.com.br",
	})
	require.NoError(t, err)

	// the target's password goes in the header and in the body
	require.NoError(t, c.DeleteEmployee(ctx, model.EmployeeDeleteRequest{
		EmployeeID: 2, TargetPassword: "segredo1",
	}))
	assert.Equal(t, "segredo1", deleteAuth)
	assert.Equal(t, int64(2), deleteBody.EmployeeID)
	assert.Equal(t, "segredo1", deleteBody.TargetPassword)
}

func TestCatalogResource_ValidatesRequests(t *testing.T) {
	c := newTestClient(t, http.NewServeMux(), nil, nil)
	_, err := c.Brands.Create(context.Background(), model.BrandRequest{})
	assert.Error(t, err)
}
