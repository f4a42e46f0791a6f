package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/placehirex/placement-backend/internal/middleware"
	"github.com/placehirex/placement-backend/internal/tokens"
)

type Deps struct {
	Auth    *AuthHTTP
	Student *StudentHTTP
	Admin   *AdminHTTP
	Guard   *mw.AccessGuard
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")

	api.POST("/auth/register", d.Auth.Register)
	api.POST("/auth/login", d.Auth.Login)

	students := api.Group("/students", d.Guard.RequireAuth, d.Guard.RequireRole(tokens.RoleStudent))
	students.POST("/profile", d.Student.UpsertProfile)
	students.GET("/profile", d.Student.GetProfile)
	students.POST("/predict", d.Student.Predict)
	students.GET("/history", d.Student.History)

	admin := api.Group("/admin", d.Guard.RequireAuth, d.Guard.RequireRole(tokens.RoleAdmin))
	admin.GET("/analytics", d.Admin.Analytics)
	admin.GET("/models", d.Admin.ListModels)
	admin.POST("/models/select", d.Admin.SelectModel)
	admin.POST("/models/add", d.Admin.AddModel)
	admin.POST("/models/upload-dataset", d.Admin.UploadDataset)
	admin.GET("/students/search", d.Admin.SearchStudents)
}
