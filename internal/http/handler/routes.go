package handler

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/akashgouda-01/dept-changes/internal/http/middleware"
	"github.com/akashgouda-01/dept-changes/internal/service"
)

type uploadItem struct {
	DriveLink      string    `json:"drive_link"`
	RegisterNumber string    `json:"register_number"`
	Section        string    `json:"section"`
	StudentName    string    `json:"student_name"`
	UploadedBy     string    `json:"uploaded_by"`
	UploadedAt     time.Time `json:"uploaded_at"`
}

type uploadRequest struct {
	Certificates []uploadItem `json:"certificates"`
}

type reviewRequest struct {
	CertificateID string `json:"certificate_id"`
	Status        string `json:"status"`
	IsLegit       bool   `json:"is_legit"`
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: decode, delegate to the service, translate errors.
func RegisterRoutes(app *fiber.App, db *sql.DB, allowedDomain string,
	certSvc service.CertificateService, dashSvc service.DashboardService, hodSvc service.HodService) {

	// Health endpoint: checks DB connectivity only
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	})

	// Simple liveness probe
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	auth := middleware.Auth(allowedDomain)

	certs := app.Group("/certificates", auth)

	// Batch upload (1-10 entries); each accepted entry enters the ML pipeline.
	certs.Post("/upload", middleware.RequireRole("faculty"), func(c *fiber.Ctx) error {
		var req uploadRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid request payload")
		}

		entries := make([]service.UploadEntry, 0, len(req.Certificates))
		for _, item := range req.Certificates {
			entries = append(entries, service.UploadEntry{
				DriveLink:      item.DriveLink,
				RegisterNumber: item.RegisterNumber,
				Section:        item.Section,
				StudentName:    item.StudentName,
				UploadedBy:     item.UploadedBy,
				UploadedAt:     item.UploadedAt,
			})
		}

		ids, err := certSvc.SubmitBatch(c.UserContext(), entries)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"data": ids})
	})

	// Faculty review queue, newest-first, default limit 50.
	certs.Get("/pending-review", middleware.RequireRole("faculty"), func(c *fiber.Ctx) error {
		limit := 50
		if v := c.Query("limit"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed <= 0 {
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "limit must be a positive integer")
			}
			limit = parsed
		}

		items, err := certSvc.PendingReview(c.UserContext(), limit)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": items})
	})

	// Terminal faculty decision.
	certs.Post("/review", middleware.RequireRole("faculty", "hod"), func(c *fiber.Ctx) error {
		var req reviewRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid request payload")
		}
		if req.CertificateID == "" {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "certificate_id is required")
		}
		if req.Status != "" && req.Status != "LEGIT" && req.Status != "NOT_LEGIT" {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "status must be LEGIT or NOT_LEGIT")
		}
		if req.Status == "LEGIT" && !req.IsLegit || req.Status == "NOT_LEGIT" && req.IsLegit {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "status and is_legit disagree")
		}

		if err := certSvc.SubmitReview(c.UserContext(), req.CertificateID, req.IsLegit); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "review recorded"})
	})

	// Operator-triggered re-check for certificates stuck in SUBMITTED.
	certs.Post("/:id/verify", middleware.RequireRole("faculty", "hod"), func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid id format")
		}
		if err := certSvc.Verify(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "verification applied"})
	})

	// Exclude a terminal certificate from active queues.
	certs.Post("/:id/archive", middleware.RequireRole("hod"), func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid id format")
		}
		if err := certSvc.Archive(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "certificate archived"})
	})

	dash := app.Group("/dashboard", auth, middleware.RequireRole("faculty", "hod"))

	dash.Get("/overview", func(c *fiber.Ctx) error {
		ov, err := dashSvc.GetOverview(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "data": ov})
	})

	dash.Get("/sections", func(c *fiber.Ctx) error {
		sections, err := dashSvc.GetSectionStats(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "data": sections})
	})

	hod := app.Group("/hod", auth, middleware.RequireRole("hod"))

	hod.Get("/faculty/students", func(c *fiber.Ctx) error {
		facultyID := c.Query("faculty_id")
		if facultyID == "" {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "faculty_id is required")
		}
		statsRows, err := hodSvc.GetStudentStats(c.UserContext(), facultyID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": statsRows})
	})

	hod.Get("/student/certificates", func(c *fiber.Ctx) error {
		regNo := c.Query("reg_no")
		if regNo == "" {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "reg_no is required")
		}
		items, err := hodSvc.ListStudentCertificates(c.UserContext(), regNo)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": items})
	})

	hod.Get("/export/certificates/section", func(c *fiber.Ctx) error {
		section := c.Query("section")
		if section == "" {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "section is required")
		}
		filename, content, err := hodSvc.ExportSection(c.UserContext(), section)
		if err != nil {
			return writeServiceError(c, err)
		}
		return sendWorkbook(c, filename, content)
	})

	hod.Get("/export/certificates/student", func(c *fiber.Ctx) error {
		regNo := c.Query("reg_no")
		if regNo == "" {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "reg_no is required")
		}
		filename, content, err := hodSvc.ExportStudent(c.UserContext(), regNo)
		if err != nil {
			return writeServiceError(c, err)
		}
		return sendWorkbook(c, filename, content)
	})
}

// sendWorkbook streams an XLSX export with a filename hint.
func sendWorkbook(c *fiber.Ctx, filename string, content []byte) error {
	c.Set(fiber.HeaderContentType, service.XLSXContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(content)
}
