package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/njprem/Glamoure_APP_BackEnd/internal/metrics"
	"github.com/njprem/Glamoure_APP_BackEnd/internal/util"
)

type RouterOptions struct {
	AllowOrigins []string
	// BodyLimit uses echo's size syntax, e.g. "1M".
	BodyLimit string
}

// NewRouter builds the echo instance with the shared middleware stack plus
// /health and /metrics. Feature routes are mounted by the Register* functions.
func NewRouter(opts RouterOptions) *echo.Echo {
	if opts.BodyLimit == "" {
		opts.BodyLimit = "1M"
	}
	if len(opts.AllowOrigins) == 0 {
		opts.AllowOrigins = []string{"*"}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = handleHTTPError

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(metrics.Middleware())
	e.Use(middleware.RequestID())
	registerLogging(e)
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(opts.BodyLimit))
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "no-referrer",
	}))
	e.Use(middleware.CORSWithConfig(corsConfig(opts.AllowOrigins)))

	started := time.Now()
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"ok":             true,
			"uptime_seconds": int64(time.Since(started).Seconds()),
		})
	})
	e.GET("/metrics", metrics.Handler())
	return e
}

func corsConfig(origins []string) middleware.CORSConfig {
	wildcard := false
	for _, origin := range origins {
		if origin == "*" {
			wildcard = true
			break
		}
	}
	return middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderAuthorization,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderOrigin,
			echo.HeaderXRequestedWith,
		},
		ExposeHeaders:    []string{echo.HeaderXRequestID},
		AllowCredentials: !wildcard,
	}
}

// handleHTTPError renders framework errors (unknown route, wrong method,
// oversized body) in the same envelope the handlers use.
func handleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, code, message := http.StatusInternalServerError, codeInternal, "internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		switch he.Code {
		case http.StatusNotFound:
			code, message = "NOT_FOUND", "route not found"
		case http.StatusMethodNotAllowed:
			code, message = "METHOD_NOT_ALLOWED", "method not allowed"
		case http.StatusRequestEntityTooLarge:
			code, message = "BODY_TOO_LARGE", "request body too large"
		case http.StatusUnauthorized:
			code, message = codeUnauthenticated, "authentication required"
		default:
			message = http.StatusText(he.Code)
			code = strings.ToUpper(strings.ReplaceAll(message, " ", "_"))
		}
	} else {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, util.ErrorCode(code, message))
	}
	if err != nil {
		c.Logger().Error(err)
	}
}
