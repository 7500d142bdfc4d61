package vehicle

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/glovebox/glovebox/backend/go-services/pkg/middleware/middlewaretest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleRoutes(t *testing.T) {
	g, api := middlewaretest.NewRouter(time.Now())
	RegisterRoutes(api, NewService(NewMemoryRepository()))

	w := middlewaretest.Do(g, http.MethodPost, "/api/vehicles", "u1", `{"type":"lorry","name":"Tata","plate":"LB-9","odo":1000,"nextService":900}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created["id"].(string)
	assert.Equal(t, float64(-100), created["kmToService"])

	w = middlewaretest.Do(g, http.MethodGet, "/api/vehicles/active", "u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), id)

	w = middlewaretest.Do(g, http.MethodPut, "/api/vehicles/"+id, "u1", `{"nextService":6000}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"kmToService":5000`)

	w = middlewaretest.Do(g, http.MethodGet, "/api/vehicles/"+id, "u2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = middlewaretest.Do(g, http.MethodPost, "/api/vehicles", "u1", `{"name":"NoPlate","odo":1,"nextService":2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = middlewaretest.Do(g, http.MethodGet, "/api/vehicles", "u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = middlewaretest.Do(g, http.MethodGet, "/api/vehicles/active", "u2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
