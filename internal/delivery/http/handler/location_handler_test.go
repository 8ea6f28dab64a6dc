package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func TestLocationHandler(t *testing.T) {
	h := NewLocationHandler()

	t.Run("divisions", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/divisions", nil)
		rec := httptest.NewRecorder()

		h.Divisions(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var envelope struct {
			Data struct {
				Divisions []string `json:"divisions"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.Len(t, envelope.Data.Divisions, 8)
	})

	t.Run("districts of a known division", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/districts/Dhaka", nil)
		req = mux.SetURLVars(req, map[string]string{"division": "Dhaka"})
		rec := httptest.NewRecorder()

		h.Districts(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown division is a 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/districts/Atlantis", nil)
		req = mux.SetURLVars(req, map[string]string{"division": "Atlantis"})
		rec := httptest.NewRecorder()

		h.Districts(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("upazilas of a known district", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/upazilas/Dhaka/Dhaka", nil)
		req = mux.SetURLVars(req, map[string]string{"division": "Dhaka", "district": "Dhaka"})
		rec := httptest.NewRecorder()

		h.Upazilas(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("user types enumerate the three roles", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user-types", nil)
		rec := httptest.NewRecorder()

		h.UserTypes(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var envelope struct {
			Data struct {
				UserTypes []string `json:"user_types"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.Equal(t, []string{"admin", "doctor", "patient"}, envelope.Data.UserTypes)
	})

	t.Run("district outside the division is a 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/upazilas/Sylhet/Gazipur", nil)
		req = mux.SetURLVars(req, map[string]string{"division": "Sylhet", "district": "Gazipur"})
		rec := httptest.NewRecorder()

		h.Upazilas(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
