package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"sudoku-engine/pkg/config"
)

const easyPuzzle = "530070000600195000098000060800060003400803001700020006060000280000419005000080079"

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, &config.Config{Port: "0"})
	return r
}

func postPuzzle(router *gin.Engine, path, puzzle string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(PuzzleRequest{Puzzle: puzzle})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestHealthHandler(t *testing.T) {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestSolveHandler(t *testing.T) {
	router := setupRouter()
	w := postPuzzle(router, "/api/solve", easyPuzzle)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["solved"] != true {
		t.Errorf("Expected solved=true, got %v", response["solved"])
	}
	if response["solution"] == nil {
		t.Error("Expected a solution string in response")
	}
}

func TestSolveHandlerRejectsMalformedPuzzle(t *testing.T) {
	router := setupRouter()
	w := postPuzzle(router, "/api/solve", "not-a-puzzle")

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestHintHandler(t *testing.T) {
	router := setupRouter()
	w := postPuzzle(router, "/api/hint", easyPuzzle)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["hint"] == nil {
		t.Error("Expected a hint for a solvable puzzle")
	}
}

func TestDifficultyHandler(t *testing.T) {
	router := setupRouter()
	w := postPuzzle(router, "/api/difficulty", easyPuzzle)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["difficulty"] == nil {
		t.Error("Expected a difficulty rating in response")
	}
}

func TestUniqueSolutionHandler(t *testing.T) {
	router := setupRouter()
	w := postPuzzle(router, "/api/unique-solution", easyPuzzle)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["unique"] != true {
		t.Errorf("Expected unique=true, got %v", response["unique"])
	}
}

func TestCountSolutionsHandler(t *testing.T) {
	router := setupRouter()
	w := postPuzzle(router, "/api/count-solutions", easyPuzzle)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["count"] != float64(1) {
		t.Errorf("Expected count=1, got %v", response["count"])
	}
}

func TestValidatePuzzleStringRejectsTooFewGivens(t *testing.T) {
	sparse := "500000000000000000000000000000000000000000000000000000000000000000000000000000000"
	if err := validatePuzzleString(sparse); err == nil {
		t.Error("Expected an error for a puzzle with too few givens")
	}
}

func TestValidatePuzzleStringRejectsBadLength(t *testing.T) {
	if err := validatePuzzleString("123"); err == nil {
		t.Error("Expected an error for a puzzle with the wrong length")
	}
}
