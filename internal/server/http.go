package server

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/karupanerura/infix-rpn/internal/rpn"
)

const basePath = "/v1/conversions"

type conversion struct {
	Name       string    `json:"name"`
	CreateTime time.Time `json:"createTime"`
	*rpn.Conversion
}

type conversionRequest struct {
	Expression *string `json:"expression"`
}

type httpHandler struct {
	converter   *rpn.Converter
	idBase      uint64
	conversions sync.Map
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == basePath {
		switch r.Method {
		case http.MethodGet:
			h.listConversions(w, r)
			return

		case http.MethodPost:
			h.createConversion(w, r)
			return

		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
	}

	id := strings.TrimPrefix(r.URL.Path, basePath+"/")
	if id == r.URL.Path || id == "" || strings.ContainsRune(id, '/') {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getConversion(w, r, id)
		return

	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
}

func (h *httpHandler) createConversion(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req conversionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("failed to decode request body: %v", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if req.Expression == nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	id := fmt.Sprintf("%012x", atomic.AddUint64(&h.idBase, 1))
	c := &conversion{
		Name:       basePath + "/" + id,
		CreateTime: time.Now().UTC(),
		Conversion: h.converter.Convert(*req.Expression),
	}
	h.conversions.Store(id, c)
	if err := resJSON(w, http.StatusOK, c); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func (h *httpHandler) listConversions(w http.ResponseWriter, r *http.Request) {
	results := []*conversion{}
	h.conversions.Range(func(key, value any) bool {
		results = append(results, value.(*conversion))
		return true
	})
	sort.Slice(results, func(i, j int) bool {
		if results[i].CreateTime.Equal(results[j].CreateTime) {
			return results[i].Name < results[j].Name
		}
		return results[i].CreateTime.Before(results[j].CreateTime)
	})

	if err := resJSON(w, http.StatusOK, map[string][]*conversion{"conversions": results}); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func (h *httpHandler) getConversion(w http.ResponseWriter, r *http.Request, id string) {
	ret, ok := h.conversions.Load(id)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	if err := resJSON(w, http.StatusOK, ret.(*conversion)); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func NewHTTPHandler(converter *rpn.Converter) http.Handler {
	return &httpHandler{converter: converter}
}

func resJSON(w http.ResponseWriter, status int, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)+1))
	w.WriteHeader(status)

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}
