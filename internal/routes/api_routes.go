package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/CtIaMbaCK/betterus-server/internal/api"
	"github.com/CtIaMbaCK/betterus-server/internal/metrics"
	"github.com/CtIaMbaCK/betterus-server/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers. This keeps API
// route registration separate from the main router setup.
func RegisterAPIRoutes(r chi.Router, metricsReg *metrics.MetricsRegistry, handlers *api.Handlers, deps *api.Dependencies) {

	authMW := middleware.AuthMiddleware(deps.Services.Tokens, deps.Services.Session)

	// Public auth routes; rate limited since anonymous traffic lands here.
	r.Group(func(public chi.Router) {
		public.Use(middleware.MetricsMiddleware(metricsReg))
		public.Use(middleware.RateLimitMiddleware)
		public.Post("/api/v1/auth/register", handlers.Register())
		public.Post("/api/v1/auth/login", handlers.Login())
	})

	// API v1 routes: everything below requires identity.
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.MetricsMiddleware(metricsReg))
		v1.Use(authMW)

		v1.Post("/auth/complete-profile", handlers.CompleteProfile())
		v1.Post("/auth/logout", handlers.Logout())
		v1.Get("/auth/me", handlers.Me())

		// Campaign browsing is open to every signed-in role.
		v1.Get("/campaigns", handlers.ListCampaigns())
		v1.Get("/campaigns/{id}", handlers.GetCampaign())
		v1.Post("/campaigns/{id}/register", handlers.RegisterForCampaign())
		v1.Delete("/campaigns/{id}/register", handlers.CancelCampaignRegistration())

		// Help requests: role-scoped inside the handlers.
		v1.Post("/help-requests", handlers.CreateHelpRequest())
		v1.Get("/help-requests", handlers.ListHelpRequests())
		v1.Get("/help-requests/{id}", handlers.GetHelpRequest())
		v1.Post("/help-requests/{id}/complete", handlers.CompleteHelpRequest())
		v1.Post("/help-requests/{id}/cancel", handlers.CancelHelpRequest())

		// Chat REST surface.
		v1.Get("/chat/conversations", handlers.ListConversations())
		v1.Get("/chat/conversations/{id}/messages", handlers.GetMessages())
		v1.Post("/chat/conversations/{id}/read", handlers.MarkConversationRead())
		v1.Get("/chat/users", handlers.SearchChatUsers())

		v1.Post("/uploads", handlers.UploadFile())

		// Organization area.
		v1.Route("/org", func(org chi.Router) {
			org.Use(middleware.IsOrganizationMiddleware())

			org.Get("/campaigns", handlers.ListOwnCampaigns())
			org.Post("/campaigns", handlers.CreateCampaign())
			org.Patch("/campaigns/{id}", handlers.UpdateCampaign())
			org.Delete("/campaigns/{id}", handlers.DeleteCampaign())
			org.Get("/campaigns/{id}/registrations", handlers.ListCampaignRegistrations())
			org.Post("/campaigns/{id}/attendance/{volunteerId}", handlers.MarkAttendance())

			org.Get("/members", handlers.ListOrgMembers())
			org.Post("/members", handlers.CreateMemberAccount())

			// Feedback on the org's own volunteers; the service rejects
			// volunteers attached elsewhere.
			org.Post("/volunteers/{id}/comments", handlers.AddVolunteerComment())
			org.Get("/volunteers/{id}/comments", handlers.ListVolunteerComments())
			org.Delete("/comments/{id}", handlers.DeleteVolunteerComment())
			org.Post("/volunteers/{id}/certificates", handlers.IssueCertificate())
			org.Get("/volunteers/{id}/certificates", handlers.ListCertificates())
			org.Delete("/certificates/{id}", handlers.DeleteCertificate())
		})

		// Admin area.
		v1.Route("/admin", func(admin chi.Router) {
			admin.Use(middleware.IsAdminMiddleware())

			admin.Get("/volunteers", handlers.ListVolunteers())
			admin.Get("/volunteers/{id}", handlers.GetVolunteer())
			admin.Patch("/volunteers/{id}", handlers.UpdateVolunteer())
			admin.Get("/beneficiaries", handlers.ListBeneficiaries())
			admin.Get("/beneficiaries/{id}", handlers.GetBeneficiary())
			admin.Patch("/beneficiaries/{id}", handlers.UpdateBeneficiary())
			admin.Get("/organizations", handlers.ListOrganizations())
			admin.Get("/organizations/{id}", handlers.GetOrganization())
			admin.Patch("/organizations/{id}", handlers.UpdateOrganization())
			admin.Patch("/users/{id}/status", handlers.UpdateUserStatus())
			admin.Post("/users", handlers.CreateMemberAccount())

			admin.Patch("/help-requests/{id}/status", handlers.ModerateHelpRequest())
			admin.Post("/help-requests/{id}/assign", handlers.AssignVolunteer())

			admin.Post("/volunteers/{id}/comments", handlers.AddVolunteerComment())
			admin.Get("/volunteers/{id}/comments", handlers.ListVolunteerComments())
			admin.Delete("/comments/{id}", handlers.DeleteVolunteerComment())
			admin.Post("/volunteers/{id}/certificates", handlers.IssueCertificate())
			admin.Get("/volunteers/{id}/certificates", handlers.ListCertificates())
			admin.Delete("/certificates/{id}", handlers.DeleteCertificate())

			admin.Get("/statistics", handlers.StatisticsOverview())
			admin.Get("/statistics/report", handlers.StatisticsReport())
		})
	})

	// Websocket chat gateway. Mounted outside the metrics group because the
	// status-recording wrapper does not support hijacking the connection.
	r.Group(func(ws chi.Router) {
		ws.Use(authMW)
		ws.Get("/ws/chat", deps.Services.Hub.ServeWS)
	})
}
