package resource

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/mindwell/backend/internal/model/resource"
	"github.com/zhouzirui/mindwell/backend/pkg/utils"
)

// Handler 资源库的HTTP处理器
type Handler struct {
	resources resource.Store
}

// New 创建资源库处理器
func New(resources resource.Store) *Handler {
	return &Handler{resources: resources}
}

// RegisterRoutes 注册资源库相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/resources", h.handleSearch)
	r.Get("/resources/categories", h.handleCategories)
	r.Get("/resources/{resourceID}", h.handleGet)
}

// handleSearch 按关键词、分类和语言筛选资源
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items := h.resources.Search(resource.Filter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Language: q.Get("language"),
	})
	utils.RespondJSON(w, http.StatusOK, items)
}

// handleCategories 返回可选的分类和语言
func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string][]string{
		"categories": resource.Categories,
		"languages":  resource.Languages,
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	item, ok := h.resources.FindByID(chi.URLParam(r, "resourceID"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}
