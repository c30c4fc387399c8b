package v1

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"go-candidate-admin/config"
	"go-candidate-admin/internal/delivery/http/middleware"
	"go-candidate-admin/internal/delivery/http/web"
	"go-candidate-admin/internal/domain"
	"go-candidate-admin/internal/notify"
	"go-candidate-admin/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	CandidateUC domain.CandidateUsecase
	HealthUC    usecase.HealthUsecase
	Flash       notify.FlashStore
	// Redis backs the submit rate limit; nil uses the shared client or memory
	Redis     *goredis.Client
	Templates *template.Template
	Config    *config.Config
}

func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	cfg := deps.Config
	tmpl := deps.Templates
	if tmpl == nil {
		var err error
		if tmpl, err = web.Templates(); err != nil {
			return nil, err
		}
	}
	flash := deps.Flash
	if flash == nil {
		flash = notify.NewMemoryFlashStore(notify.FlashTTL)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	// Global Middlewares
	r.Use(middleware.CORS(cfg.AllowedOrigins)) // before routing so preflights are answered
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())
	r.Use(middleware.SecurityHeadersMiddleware(cfg.CookieSecure))

	r.StaticFS("/static", web.Static())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// JSON endpoints
	v1 := r.Group("/v1")
	v1.Use(middleware.ErrorHandler())
	NewFieldHandler(v1, deps.CandidateUC, deps.HealthUC)
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Pages
	limit := middleware.SubmitRateLimitConfig(cfg.RateLimitSubmitThreshold, time.Duration(cfg.RateLimitWindowSeconds)*time.Second)
	limit.Client = deps.Redis
	limit.Reject = rejectPage

	pages := r.Group("")
	pages.Use(bodyLimit(cfg.MaxResumeBytes+1<<20, r.MaxMultipartMemory, usecase.ResumeTooLargeMessage(cfg.MaxResumeBytes)))
	pages.Use(middleware.CSRFMiddleware(cfg.CookieSecure))
	NewPageHandler(pages, middleware.RateLimitMiddleware(limit), PageDeps{
		CandidateUC:    deps.CandidateUC,
		Flash:          flash,
		Toaster:        notify.NewToaster(cfg.NotificationDuration),
		APIBaseURL:     cfg.APIBaseURL,
		MaxResumeBytes: cfg.MaxResumeBytes,
		SecureCookies:  cfg.CookieSecure,
	})

	return r, nil
}

// bodyLimit caps request bodies and parses multipart forms up front, so an
// oversized upload is answered with tooLarge before any middleware reads
// the form.
func bodyLimit(n, maxMemory int64, tooLarge string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}
		if c.Request.ContentLength > n {
			rejectPage(c, http.StatusRequestEntityTooLarge, tooLarge)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		if c.ContentType() == "multipart/form-data" {
			var maxErr *http.MaxBytesError
			if err := c.Request.ParseMultipartForm(maxMemory); errors.As(err, &maxErr) {
				rejectPage(c, http.StatusRequestEntityTooLarge, tooLarge)
				return
			}
		}
		c.Next()
	}
}

// rejectPage answers a page request with the error page.
func rejectPage(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", web.ErrorPage{
		Page:  web.Page{Title: "Error", CSRF: middleware.CSRFToken(c)},
		Error: message,
	})
	c.Abort()
}
