package restmux

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMountsHandlersAndDocs(t *testing.T) {
	a := fixtureApi()
	res := a.namespaces[0].resources[1].resource
	res.methods["get"].Handler = func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": mux.Vars(r)["id"]})
	}

	router := mux.NewRouter()
	a.Register(router)
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/widgets/7")
	require.Nil(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.Nil(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "7", body["id"])

	// the int converter pattern keeps non-numeric ids out
	resp, err = http.Get(srv.URL + "/api/widgets/seven")
	require.Nil(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSwaggerEndpoint(t *testing.T) {
	router := mux.NewRouter()
	fixtureApi().Register(router)
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/swagger.json")
	require.Nil(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var doc openapi2.T
	require.Nil(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "2.0", doc.Swagger)
	assert.Contains(t, doc.Paths, "/widgets")
	assert.Contains(t, doc.Paths, "/widgets/{id}")
	assert.Contains(t, doc.Definitions, "Widget")

	v3, err := openapi2conv.ToV3(&doc)
	require.Nil(t, err)
	assert.NotNil(t, v3.Paths.Find("/widgets"))
}

func TestSwaggerEndpointSurfacesAssemblyErrors(t *testing.T) {
	a := fixtureApi()
	ns := a.Namespace("broken", "")
	ns.Route(NewResource("Broken"), "").Get(&Method{Doc: &Doc{Model: "Ghost"}})

	router := mux.NewRouter()
	a.Register(router)
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/swagger.json")
	require.Nil(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
