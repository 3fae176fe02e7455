package misc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/krank/internal/auth"
	"github.com/2beens/krank/internal/middleware"
	"github.com/2beens/krank/internal/telemetry/metrics"
	"github.com/2beens/krank/internal/telemetry/tracing"
	"github.com/2beens/krank/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type sessionService interface {
	Login(ctx context.Context, userID string, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
}

type usersRepo interface {
	GetByUsername(ctx context.Context, username string) (*auth.User, error)
}

type LoginResponse struct {
	Token string `json:"token"`
}

type Handler struct {
	versionInfo    string
	sessionService sessionService
	usersRepo      usersRepo
}

func NewHandler(
	versionInfo string,
	sessionService sessionService,
	usersRepo usersRepo,
) *Handler {
	return &Handler{
		versionInfo:    versionInfo,
		sessionService: sessionService,
		usersRepo:      usersRepo,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	loginAllowedPerMin int,
) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")

	loginSubrouter := mainRouter.PathPrefix("/a").Subrouter()
	loginSubrouter.
		HandleFunc("/login", handler.handleLogin).
		Methods("POST", "OPTIONS").Name("login")
	loginSubrouter.
		HandleFunc("/logout", handler.handleLogout).
		Methods("GET", "POST", "OPTIONS").Name("logout")

	// rate limit the /login and /logout endpoints to prevent abuse
	loginSubrouter.Use(middleware.RateLimit(rateLimiter, "login", loginAllowedPerMin, metricsManager))
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var creds auth.Credentials
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			log.Tracef("login, unmarshal json params: %s", err)
			http.Error(w, "login failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Tracef("login failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusBadRequest)
			return
		}
		creds = auth.Credentials{
			Username: r.Form.Get("username"),
			Password: r.Form.Get("password"),
		}
	}

	if creds.Username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}
	if creds.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	user, err := auth.Authenticate(ctx, handler.usersRepo, creds)
	if err != nil {
		if errors.Is(err, auth.ErrWrongCredentials) {
			log.Tracef("failed login attempt for user: %s", creds.Username)
			span.SetStatus(codes.Error, "wrong-credentials")
			http.Error(w, "error, wrong credentials", http.StatusBadRequest)
			return
		}
		log.Errorf("login failed, get user %s: %s", creds.Username, err)
		span.RecordError(err)
		http.Error(w, "login error", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.String("user.id", user.ID))

	token, err := handler.sessionService.Login(ctx, user.ID, time.Now())
	if err != nil {
		log.Errorf("login failed, generate token error: %s", err)
		span.RecordError(err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(LoginResponse{Token: token})
	if err != nil {
		log.Errorf("marshal login response: %s", err)
		http.Error(w, "login error", http.StatusInternalServerError)
		return
	}

	log.Tracef("new login success for user %s", user.ID)
	span.SetStatus(codes.Ok, "logged-in")
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	authToken := middleware.RequestToken(r)
	if authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.sessionService.Logout(ctx, authToken)
	if err != nil {
		log.Errorf("[failed logout] => %s: %s", r.URL.Path, err)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	if !loggedOut {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	log.Trace("logout success")
	pkg.WriteTextResponseOK(w, "logged-out")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}
