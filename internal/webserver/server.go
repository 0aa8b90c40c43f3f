package webserver

import (
	"fmt"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/talkincode/medshop/internal/app"
)

const sessionCookie = "medshop_session"

// WebServer is the storefront web front. It renders view state as JSON
// for the browser UI; every decision of consequence is re-checked by
// the remote backend.
type WebServer struct {
	root     *echo.Echo
	appCtx   app.AppContext
	registry *Registry
}

var server *WebServer

// Init builds the echo server, binds the per-browser client registry
// and schedules the idle-session sweep.
func Init(appCtx app.AppContext) *WebServer {
	cfg := appCtx.Config()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(cfg.Web.Secret))))

	server = &WebServer{
		root:     e,
		appCtx:   appCtx,
		registry: NewRegistry(appCtx),
	}
	e.Use(server.resolveClient)

	idle := time.Duration(cfg.Web.SessionIdle) * time.Second
	if idle <= 0 {
		idle = time.Hour
	}
	if _, err := appCtx.Scheduler().AddFunc("@every 10m", func() {
		server.registry.Sweep(idle)
	}); err != nil {
		zap.L().Error("session sweep job registration failed", zap.Error(err))
	}

	return server
}

// Listen starts serving; it blocks until shutdown.
func Listen() error {
	cfg := server.appCtx.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.S().Infof("storefront listening on %s", addr)
	return server.root.Start(addr)
}

// resolveClient binds the request to its per-browser UI client, minting
// a session id on first contact.
func (s *WebServer) resolveClient(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := session.Get(sessionCookie, c)
		if err != nil {
			// a corrupt cookie gets a fresh session rather than a dead end
			zap.L().Warn("session cookie decode failed", zap.Error(err))
		}
		sid, _ := sess.Values["sid"].(string)
		if sid == "" {
			sid = s.appCtx.NextID()
			sess.Values["sid"] = sid
			sess.Options = &sessions.Options{Path: "/", HttpOnly: true, MaxAge: 86400 * 7}
			if err := sess.Save(c.Request(), c.Response()); err != nil {
				zap.L().Warn("session cookie save failed", zap.Error(err))
			}
		}
		c.Set(clientContextKey, s.registry.Get(sid))
		return next(c)
	}
}

// Route registration in three tiers: public, authenticated, admin-only.

func PubGET(path string, h echo.HandlerFunc) {
	server.root.GET(path, h)
}

func PubPOST(path string, h echo.HandlerFunc) {
	server.root.POST(path, h)
}

func ApiGET(path string, h echo.HandlerFunc) {
	server.root.GET(path, h, Guard(false))
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.root.POST(path, h, Guard(false))
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.root.PUT(path, h, Guard(false))
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.root.DELETE(path, h, Guard(false))
}

func AdminGET(path string, h echo.HandlerFunc) {
	server.root.GET(path, h, Guard(true))
}

func AdminPOST(path string, h echo.HandlerFunc) {
	server.root.POST(path, h, Guard(true))
}

func AdminPUT(path string, h echo.HandlerFunc) {
	server.root.PUT(path, h, Guard(true))
}

func AdminDELETE(path string, h echo.HandlerFunc) {
	server.root.DELETE(path, h, Guard(true))
}
