package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"doctor-appointment-platform/internal/delivery/http/handler"
	"doctor-appointment-platform/internal/delivery/http/middleware"
	"doctor-appointment-platform/internal/domain/entity"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	userHandler        *handler.UserHandler
	appointmentHandler *handler.AppointmentHandler
	reportHandler      *handler.ReportHandler
	locationHandler    *handler.LocationHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	appointmentHandler *handler.AppointmentHandler,
	reportHandler *handler.ReportHandler,
	locationHandler *handler.LocationHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		userHandler:        userHandler,
		appointmentHandler: appointmentHandler,
		reportHandler:      reportHandler,
		locationHandler:    locationHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public routes
	api.HandleFunc("/user-register", r.authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/doctors/search", r.userHandler.SearchDoctors).Methods(http.MethodGet)

	// Location lookups (public)
	api.HandleFunc("/divisions", r.locationHandler.Divisions).Methods(http.MethodGet)
	api.HandleFunc("/districts/{division}", r.locationHandler.Districts).Methods(http.MethodGet)
	api.HandleFunc("/upazilas/{division}/{district}", r.locationHandler.Upazilas).Methods(http.MethodGet)
	api.HandleFunc("/user-types", r.locationHandler.UserTypes).Methods(http.MethodGet)

	// Authenticated routes (any role)
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.HandleFunc("/get-user/{id}", r.userHandler.GetUser).Methods(http.MethodGet)
	protected.HandleFunc("/update-user/{id}", r.userHandler.UpdateUser).Methods(http.MethodPut)

	// Patient routes
	patient := api.NewRoute().Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/book_appointment", r.appointmentHandler.Book).Methods(http.MethodPost)
	patient.HandleFunc("/get_appointment_list_by_user", r.appointmentHandler.ListByUser).Methods(http.MethodGet)

	// Doctor routes
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/appointments", r.appointmentHandler.DoctorAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/update_appointment_status/{id}", r.appointmentHandler.DoctorUpdateStatus).Methods(http.MethodPut)

	// Admin routes
	admin := api.NewRoute().Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/get_appointment_list", r.appointmentHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/get-doctor-list", r.userHandler.DoctorList).Methods(http.MethodGet)
	admin.HandleFunc("/update_appointment/{id}", r.appointmentHandler.AdminUpdate).Methods(http.MethodPut)
	admin.HandleFunc("/admin/update-doctor/{id}", r.userHandler.AdminUpdateDoctor).Methods(http.MethodPut)
	admin.HandleFunc("/generate-monthly", r.reportHandler.GenerateMonthly).Methods(http.MethodPost)

	// Report reads (admin and doctors)
	reports := api.NewRoute().Subrouter()
	reports.Use(r.authMiddleware.Authenticate)
	reports.Use(middleware.RequireRole(entity.UserTypeAdmin, entity.UserTypeDoctor))
	reports.HandleFunc("/monthly", r.reportHandler.Monthly).Methods(http.MethodGet)
	reports.HandleFunc("/monthly-summary", r.reportHandler.MonthlySummary).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
