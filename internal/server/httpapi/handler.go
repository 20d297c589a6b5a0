package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
)

type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, userName, plaintext string) (string, error)
}

type TodoService interface {
	List(ctx context.Context) ([]models.Todo, error)
	Get(ctx context.Context, todoID int64) (*models.Todo, error)
	Create(ctx context.Context, in services.TodoInput) (*models.Todo, error)
	Update(ctx context.Context, todoID int64, in services.TodoInput) error
	Delete(ctx context.Context, todoID int64) error
}

// Pinger reports store health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	users    UserService
	todos    TodoService
	resolver *auth.Resolver
	metrics  *metrics.Metrics
	store    Pinger
	logger   logging.Logger
}

func NewHandler(l logging.Logger, us UserService, ts TodoService, r *auth.Resolver, m *metrics.Metrics, store Pinger) *Handler {
	return &Handler{
		users:    us,
		todos:    ts,
		resolver: r,
		metrics:  m,
		store:    store,
		logger:   l.With("module", "http_handler"),
	}
}

// Routes returns the full route table wrapped in the access log middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /create/user", h.handleCreateUser)
	mux.HandleFunc("POST /token", h.handleToken)

	mux.HandleFunc("GET /todos/user", h.authenticated(h.handleListTodos))
	mux.HandleFunc("GET /todo/{todo_id}", h.authenticated(h.handleGetTodo))
	mux.HandleFunc("POST /{$}", h.authenticated(h.handleCreateTodo))
	mux.HandleFunc("PUT /{todo_id}", h.authenticated(h.handleUpdateTodo))
	mux.HandleFunc("DELETE /{todo_id}", h.authenticated(h.handleDeleteTodo))

	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.Handle("GET /metrics", h.metrics.Handler())

	return h.withAccessLog(mux)
}

type createUserRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Password  *string `json:"password"`
}

func (req createUserRequest) missing() string {
	switch {
	case req.Username == nil:
		return "username"
	case req.FirstName == nil:
		return "first_name"
	case req.LastName == nil:
		return "last_name"
	case req.Password == nil:
		return "password"
	}
	return ""
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if field := req.missing(); field != "" {
		writeDetail(w, http.StatusUnprocessableEntity, "field required: "+field)
		return
	}

	user, err := h.users.Register(r.Context(), services.RegisterInput{
		Username:  *req.Username,
		Email:     req.Email,
		FirstName: *req.FirstName,
		LastName:  *req.LastName,
		Password:  *req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			h.metrics.Registration(metrics.OutcomeRejected)
		default:
			h.metrics.Registration(metrics.OutcomeError)
		}
		h.writeError(w, r, err)
		return
	}

	h.metrics.Registration(metrics.OutcomeSuccess)
	h.logger.Info(r.Context(), "Registered", "username", user.UserName, "user_id", user.ID)
	writeJSON(w, http.StatusOK, user)
}

// handleToken is the password grant: form fields username and password.
func (h *Handler) handleToken(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid form body")
		return
	}
	for _, field := range []string{"username", "password"} {
		if !r.PostForm.Has(field) {
			writeDetail(w, http.StatusUnprocessableEntity, "field required: "+field)
			return
		}
	}
	userName := r.PostForm.Get("username")

	token, err := h.users.Login(r.Context(), userName, r.PostForm.Get("password"))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			h.metrics.LoginAttempt(metrics.OutcomeRejected)
			h.logger.Info(r.Context(), "Login rejected", "username", userName)
		} else {
			h.metrics.LoginAttempt(metrics.OutcomeError)
		}
		h.writeError(w, r, err)
		return
	}

	h.metrics.LoginAttempt(metrics.OutcomeSuccess)
	h.logger.Info(r.Context(), "Logged in", "username", userName)
	writeJSON(w, http.StatusOK, tokenResponse{StatusCode: http.StatusOK, Detail: "User validated", Token: token})
}

type todoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *int    `json:"priority"`
	Complete    bool    `json:"complete"`
}

// decodeTodo writes the 422 itself and reports false on any problem.
func decodeTodo(w http.ResponseWriter, r *http.Request) (services.TodoInput, bool) {
	var req todoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return services.TodoInput{}, false
	}
	if req.Title == nil {
		writeDetail(w, http.StatusUnprocessableEntity, "field required: title")
		return services.TodoInput{}, false
	}
	if req.Priority == nil {
		writeDetail(w, http.StatusUnprocessableEntity, "field required: priority")
		return services.TodoInput{}, false
	}
	return services.TodoInput{
		Title:       *req.Title,
		Description: req.Description,
		Priority:    *req.Priority,
		Complete:    req.Complete,
	}, true
}

func todoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("todo_id"), 10, 64)
	if err != nil || id <= 0 {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid todo id")
		return 0, false
	}
	return id, true
}

func (h *Handler) handleListTodos(w http.ResponseWriter, r *http.Request) {
	list, err := h.todos.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleGetTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}
	todo, err := h.todos.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (h *Handler) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeTodo(w, r)
	if !ok {
		return
	}
	if _, err := h.todos.Create(r.Context(), in); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, statusResponse{StatusCode: http.StatusCreated, Detail: "Successful."})
}

func (h *Handler) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}
	in, ok := decodeTodo(w, r)
	if !ok {
		return
	}
	if err := h.todos.Update(r.Context(), id, in); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{StatusCode: http.StatusOK, Detail: "Successful."})
}

func (h *Handler) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}
	if err := h.todos.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeDetail(w, http.StatusAccepted, fmt.Sprintf("Item %d successful deleted.", id))
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		if err := h.store.PingContext(r.Context()); err != nil {
			h.logger.Warn(r.Context(), "health check failed", "error", err.Error())
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
