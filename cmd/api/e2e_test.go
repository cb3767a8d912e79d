//go:build e2e

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

type userResponse struct {
	ObjectID string  `json:"_id"`
	ID       float64 `json:"id"`
	Nombre   string  `json:"nombre"`
}

type recipeResponse struct {
	ID           string `json:"_id"`
	Title        string `json:"title"`
	Ingredientes []struct {
		Nombre string `json:"nombre"`
	} `json:"ingredientes"`
}

// TestE2ESmoke runs the user, recipe and ingredient lifecycle against a
// running server, ending with the cascading user delete.
func TestE2ESmoke(t *testing.T) {
	baseURL := envOrDefault("RECETARIO_BASE_URL", "http://localhost:3000")
	userID := time.Now().UnixNano() % 1_000_000_000

	var created struct {
		Usuario userResponse `json:"usuario"`
	}
	status := doJSON(t, http.MethodPost, baseURL+"/api/usuarios", map[string]any{
		"id": userID, "nombre": "e2e", "email": "e2e@example.com", "edad": 33,
	}, &created)
	if status != http.StatusCreated || created.Usuario.ObjectID == "" {
		t.Fatalf("user create: status %d, body %+v", status, created)
	}

	var byObjectID userResponse
	if status := doJSON(t, http.MethodGet, baseURL+"/api/usuarios/"+created.Usuario.ObjectID, nil, &byObjectID); status != http.StatusOK {
		t.Fatalf("user get by _id: status %d", status)
	}
	if int64(byObjectID.ID) != userID {
		t.Fatalf("user get by _id returned id %v", byObjectID.ID)
	}

	var recipe struct {
		Receta recipeResponse `json:"receta"`
	}
	status = doJSON(t, http.MethodPost, baseURL+"/api/recetas", map[string]any{
		"title": "Tortilla e2e", "description": "De patatas", "userId": userID,
	}, &recipe)
	if status != http.StatusCreated || recipe.Receta.ID == "" {
		t.Fatalf("recipe create: status %d", status)
	}

	status = doJSON(t, http.MethodPost, baseURL+"/api/ingredientes", map[string]any{
		"recetaId": recipe.Receta.ID, "nombre": "huevo-e2e",
	}, nil)
	if status != http.StatusCreated {
		t.Fatalf("ingredient add: status %d", status)
	}

	var detail recipeResponse
	doJSON(t, http.MethodGet, baseURL+"/api/recetas/"+recipe.Receta.ID, nil, &detail)
	if len(detail.Ingredientes) != 1 || detail.Ingredientes[0].Nombre != "huevo-e2e" {
		t.Fatalf("recipe detail ingredients: %+v", detail.Ingredientes)
	}

	var found []recipeResponse
	doJSON(t, http.MethodGet, baseURL+"/api/ingredientes/buscar?ingrediente=HUEVO-E2E", nil, &found)
	if len(found) != 1 || found[0].ID != recipe.Receta.ID {
		t.Fatalf("search by ingredient: %+v", found)
	}

	if status := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/usuarios/%d", baseURL, userID), nil, nil); status != http.StatusOK {
		t.Fatalf("user delete: status %d", status)
	}

	if status := doJSON(t, http.MethodGet, baseURL+"/api/recetas/"+recipe.Receta.ID, nil, nil); status != http.StatusNotFound {
		t.Fatalf("recipe survived cascade: status %d", status)
	}

	var orphans []any
	doJSON(t, http.MethodGet, baseURL+"/api/ingredientes/receta/"+recipe.Receta.ID, nil, &orphans)
	if len(orphans) != 0 {
		t.Fatalf("ingredients survived cascade: %d", len(orphans))
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()

	var buf io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		buf = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && resp.ContentLength != 0 {
			t.Fatalf("decode response: %v", err)
		}
	}

	return resp.StatusCode
}
