package handlers

import (
	"jobboard/internal/middleware"
	"jobboard/internal/models"

	"github.com/labstack/echo/v4"
)

// Handlers groups every resource handler mounted under /api.
type Handlers struct {
	Auth         *AuthHandlers
	Tenants      *TenantHandlers
	Users        *UserHandlers
	Companies    *CompanyHandlers
	Jobs         *JobHandlers
	Applications *ApplicationHandlers
}

// RegisterRoutes mounts the API on api. Tenant resolution always runs before
// authentication on routes that use both.
func RegisterRoutes(api *echo.Group, h *Handlers, tenant echo.MiddlewareFunc, auth *middleware.AuthMiddleware) {
	authn := auth.Authenticate()

	student := auth.RequireRoles(models.RoleStudent)
	company := auth.RequireRoles(models.RoleCompany)
	admins := auth.RequireRoles(models.RoleTenantAdmin, models.RoleGlobalAdmin)
	global := auth.RequireRoles(models.RoleGlobalAdmin)

	// Auth
	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Auth.Register, tenant)
	authGroup.POST("/login", h.Auth.Login, tenant)
	authGroup.POST("/refresh", h.Auth.Refresh)
	authGroup.POST("/logout", h.Auth.Logout)
	authGroup.GET("/me", h.Auth.Me, tenant, authn)

	// Tenants are managed across tenants, so no host resolution here
	tenants := api.Group("/tenants", authn)
	tenants.POST("", h.Tenants.CreateTenant, global)
	tenants.GET("", h.Tenants.ListTenants, global)
	tenants.GET("/:id", h.Tenants.GetTenant, admins)
	tenants.PUT("/:id", h.Tenants.UpdateTenant, global)
	tenants.DELETE("/:id", h.Tenants.DeleteTenant, global)

	// Users
	users := api.Group("/users", tenant, authn)
	users.GET("/profile", h.Users.GetProfile)
	users.PUT("/profile", h.Users.UpdateProfile, student)
	users.PUT("/profile/resume", h.Users.UploadResume, student)
	users.GET("/profile/resume", h.Users.GetResume, student)
	users.GET("", h.Users.ListUsers, admins)
	users.GET("/:id", h.Users.GetUser)
	users.PUT("/:id", h.Users.UpdateUser, admins)

	// Companies
	companies := api.Group("/companies", tenant, authn)
	companies.POST("", h.Companies.CreateCompany, company)
	companies.GET("/me", h.Companies.GetMyCompany, company)
	companies.GET("", h.Companies.ListCompanies)
	companies.GET("/:id", h.Companies.GetCompany)
	companies.PUT("", h.Companies.UpdateCompany, company)
	companies.DELETE("", h.Companies.DeleteCompany, company)

	// Jobs: reads are public within a tenant
	jobs := api.Group("/jobs", tenant)
	jobs.GET("", h.Jobs.ListJobs)
	jobs.GET("/:id", h.Jobs.GetJob)
	jobs.GET("/company/:companyId", h.Jobs.ListCompanyJobs)
	jobs.POST("", h.Jobs.CreateJob, authn, company)
	jobs.PUT("/:id", h.Jobs.UpdateJob, authn, company)
	jobs.DELETE("/:id", h.Jobs.DeleteJob, authn, company)

	// Applications
	applications := api.Group("/applications", tenant, authn)
	applications.POST("", h.Applications.Apply, student)
	applications.GET("/me", h.Applications.ListMine, student)
	applications.GET("/job/:jobId", h.Applications.ListForJob, company)
	applications.GET("/company/me", h.Applications.ListForCompany, company)
	applications.PATCH("/:id/status", h.Applications.UpdateStatus, company)
	applications.DELETE("/:id", h.Applications.Withdraw, student)
}
