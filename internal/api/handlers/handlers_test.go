package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/linskybing/accel-platform/internal/api/handlers"
	"github.com/linskybing/accel-platform/internal/api/routes"
	"github.com/linskybing/accel-platform/internal/application"
	"github.com/linskybing/accel-platform/internal/domain/arq"
	"github.com/linskybing/accel-platform/internal/domain/deviceprofile"
	"github.com/linskybing/accel-platform/internal/domain/quota"
	"github.com/linskybing/accel-platform/internal/repository"
	"github.com/linskybing/accel-platform/internal/repository/mock"
	"github.com/linskybing/accel-platform/pkg/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// ---- Setup ----
type pinger struct{ err error }

func (p pinger) Ping(ctx context.Context) error { return p.err }

type fixture struct {
	router   *gin.Engine
	store    *mock.MockStore
	profiles *mock.MockDeviceProfileRepo
	arqs     *mock.MockARQRepo
	quotas   *mock.MockQuotaRepo
}

func setup(t *testing.T, db handlers.Pinger) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &fixture{
		store:    mock.NewMockStore(ctrl),
		profiles: mock.NewMockDeviceProfileRepo(ctrl),
		arqs:     mock.NewMockARQRepo(ctrl),
		quotas:   mock.NewMockQuotaRepo(ctrl),
	}
	f.store.EXPECT().DeviceProfiles().Return(f.profiles).AnyTimes()
	f.store.EXPECT().ARQs().Return(f.arqs).AnyTimes()
	f.store.EXPECT().Quotas().Return(f.quotas).AnyTimes()
	f.store.EXPECT().Transaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(repository.Store) error) error { return fn(f.store) },
	).AnyTimes()

	gin.SetMode(gin.TestMode)
	f.router = gin.New()
	svcs := application.New(f.store, nil, application.LedgerConfig{})
	routes.RegisterRoutes(f.router, handlers.New(svcs, db))
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var out response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.Error
}

// ---- Health ----
func TestHealthz(t *testing.T) {
	f := setup(t, pinger{})
	w := f.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	f = setup(t, pinger{err: errors.New("connection refused")})
	w = f.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, decodeError(t, w), "connection refused")
}

// ---- Device profiles ----
func TestDeviceProfileHandlers(t *testing.T) {
	t.Run("Create - bad body", func(t *testing.T) {
		f := setup(t, nil)
		w := f.do(t, http.MethodPost, "/v1/device_profiles", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Create - invalid document", func(t *testing.T) {
		f := setup(t, nil)
		w := f.do(t, http.MethodPost, "/v1/device_profiles", map[string]any{
			"name":     "gpu-profile",
			"document": []int{1},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Create - duplicate", func(t *testing.T) {
		f := setup(t, nil)
		f.profiles.EXPECT().Create(gomock.Any(), gomock.Any()).Return(repository.ErrDuplicate)
		w := f.do(t, http.MethodPost, "/v1/device_profiles", map[string]any{
			"name":     "gpu-profile",
			"document": map[string]any{"resources:GPU": 1},
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("List", func(t *testing.T) {
		f := setup(t, nil)
		f.profiles.EXPECT().List(gomock.Any()).Return([]deviceprofile.DeviceProfile{
			{UUID: uuid.NewString(), Name: "gpu-profile", Document: datatypes.JSON(`{}`)},
		}, nil)
		w := f.do(t, http.MethodGet, "/v1/device_profiles", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var out []deviceprofile.DeviceProfile
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Len(t, out, 1)
		assert.Equal(t, "gpu-profile", out[0].Name)
	})

	t.Run("Get - malformed uuid", func(t *testing.T) {
		f := setup(t, nil)
		w := f.do(t, http.MethodGet, "/v1/device_profiles/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Delete - still referenced", func(t *testing.T) {
		f := setup(t, nil)
		f.profiles.EXPECT().GetByName(gomock.Any(), "gpu-profile").Return(&deviceprofile.DeviceProfile{ID: 1, Name: "gpu-profile"}, nil)
		f.profiles.EXPECT().Delete(gomock.Any(), uint(1)).Return(repository.ErrReferenced)
		w := f.do(t, http.MethodDelete, "/v1/device_profiles/gpu-profile", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Update - unknown", func(t *testing.T) {
		f := setup(t, nil)
		f.profiles.EXPECT().GetByName(gomock.Any(), "missing").Return(nil, repository.ErrNotFound)
		w := f.do(t, http.MethodPatch, "/v1/device_profiles/missing", map[string]any{"name": "x"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// ---- Accelerator requests ----
func TestARQHandlers(t *testing.T) {
	t.Run("Create - missing fields", func(t *testing.T) {
		f := setup(t, nil)
		w := f.do(t, http.MethodPost, "/v1/accelerator_requests", map[string]any{"project_id": "p1"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Create - unknown profile", func(t *testing.T) {
		f := setup(t, nil)
		f.profiles.EXPECT().GetByName(gomock.Any(), "missing").Return(nil, repository.ErrNotFound)
		w := f.do(t, http.MethodPost, "/v1/accelerator_requests", arq.CreateARQDTO{
			ProjectID:         "p1",
			DeviceProfileName: "missing",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Get - unknown", func(t *testing.T) {
		f := setup(t, nil)
		id := uuid.NewString()
		f.arqs.EXPECT().GetByUUID(gomock.Any(), id).Return(nil, repository.ErrNotFound)
		w := f.do(t, http.MethodGet, "/v1/accelerator_requests/"+id, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, decodeError(t, w), id)
	})

	t.Run("Get - malformed uuid", func(t *testing.T) {
		f := setup(t, nil)
		w := f.do(t, http.MethodGet, "/v1/accelerator_requests/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("List - resolved", func(t *testing.T) {
		f := setup(t, nil)
		f.arqs.EXPECT().List(gomock.Any(), arq.ListFilter{State: arq.StateFilterResolved}).Return([]arq.ARQ{
			{UUID: uuid.NewString(), State: arq.StateBound},
		}, nil)
		w := f.do(t, http.MethodGet, "/v1/accelerator_requests?state=resolved", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var out []arq.ARQ
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Len(t, out, 1)
		assert.Equal(t, arq.StateBound, out[0].State)
	})

	t.Run("List - unsupported state filter", func(t *testing.T) {
		f := setup(t, nil)
		w := f.do(t, http.MethodGet, "/v1/accelerator_requests?state=Bound", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("List - empty is an array", func(t *testing.T) {
		f := setup(t, nil)
		f.arqs.EXPECT().List(gomock.Any(), arq.ListFilter{Instance: "vm-9"}).Return(nil, nil)
		w := f.do(t, http.MethodGet, "/v1/accelerator_requests?instance=vm-9", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("Delete many - none given", func(t *testing.T) {
		f := setup(t, nil)
		w := f.do(t, http.MethodDelete, "/v1/accelerator_requests", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Delete - unknown", func(t *testing.T) {
		f := setup(t, nil)
		id := uuid.NewString()
		f.arqs.EXPECT().GetByUUID(gomock.Any(), id).Return(nil, repository.ErrNotFound)
		w := f.do(t, http.MethodDelete, "/v1/accelerator_requests?arqs="+id, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// ---- Bindings ----
func TestBindingHandlers(t *testing.T) {
	binding := func(id string) arq.BindingDTO {
		return arq.BindingDTO{ARQUUID: id, HostName: "compute-1", DeviceRPUUID: "rp-123", InstanceUUID: "vm-9"}
	}

	t.Run("Bind - requires exactly one binding", func(t *testing.T) {
		f := setup(t, nil)
		w := f.do(t, http.MethodPost, "/v1/arq_bindings", arq.BindingsDTO{
			Bindings: []arq.BindingDTO{binding(uuid.NewString()), binding(uuid.NewString())},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = f.do(t, http.MethodPost, "/v1/arq_bindings", arq.BindingsDTO{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Bind - missing host", func(t *testing.T) {
		f := setup(t, nil)
		b := binding(uuid.NewString())
		b.HostName = ""
		w := f.do(t, http.MethodPost, "/v1/arq_bindings", arq.BindingsDTO{Bindings: []arq.BindingDTO{b}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Bind - success", func(t *testing.T) {
		f := setup(t, nil)
		id := uuid.NewString()
		f.arqs.EXPECT().GetByUUIDForUpdate(gomock.Any(), id).Return(&arq.ARQ{UUID: id, State: arq.StateInitial}, nil)
		f.arqs.EXPECT().UpdateBinding(gomock.Any(), gomock.Any()).Return(nil)

		w := f.do(t, http.MethodPost, "/v1/arq_bindings", arq.BindingsDTO{Bindings: []arq.BindingDTO{binding(id)}})
		require.Equal(t, http.StatusOK, w.Code)

		var out arq.ARQ
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Equal(t, arq.StateBound, out.State)
		assert.Equal(t, "compute-1", out.HostName)
		assert.Equal(t, "rp-123", out.DeviceRPUUID)
		assert.Equal(t, "vm-9", out.InstanceUUID)
	})

	t.Run("Bind - row locked", func(t *testing.T) {
		f := setup(t, nil)
		id := uuid.NewString()
		f.arqs.EXPECT().GetByUUIDForUpdate(gomock.Any(), id).Return(nil, repository.ErrLocked)
		w := f.do(t, http.MethodPost, "/v1/arq_bindings", arq.BindingsDTO{Bindings: []arq.BindingDTO{binding(id)}})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Unbind - none given", func(t *testing.T) {
		f := setup(t, nil)
		w := f.do(t, http.MethodDelete, "/v1/arq_bindings", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unbind - from Initial", func(t *testing.T) {
		f := setup(t, nil)
		id := uuid.NewString()
		f.arqs.EXPECT().GetByUUIDForUpdate(gomock.Any(), id).Return(&arq.ARQ{UUID: id, State: arq.StateInitial}, nil)
		w := f.do(t, http.MethodDelete, "/v1/arq_bindings?arqs="+id, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

// ---- Quotas ----
func TestQuotaHandler(t *testing.T) {
	f := setup(t, nil)
	f.quotas.EXPECT().ListUsages(gomock.Any(), "p1").Return([]quota.Usage{
		{ProjectID: "p1", Resource: "gpu", InUse: 2},
	}, nil)

	w := f.do(t, http.MethodGet, "/v1/quotas/p1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out []quota.Usage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].InUse)
}
