package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"sciflow/auth"
	"sciflow/calendar"
	"sciflow/config"
	"sciflow/models"
	"sciflow/providers/devevents"
	"sciflow/providers/semanticscholar"
	"sciflow/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var externalCandidatesGauge prometheus.Gauge

func init() {
	externalCandidatesGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "external_feed_candidates",
			Help: "Number of conference candidates seen in the last external feed probe.",
		},
	)
	prometheus.MustRegister(externalCandidatesGauge)
}

// requestLoggerMiddleware loggt jeden Request mit einer eigenen Request-ID.
func requestLoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		start := time.Now()

		c.Next()

		log.Info("Request abgeschlossen",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	// Setup Database Connection
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	logging.Info("Successfully connected to conference database.")

	// Auto-Migration
	logging.Info("Running database auto-migration...")
	if err := db.AutoMigrate(
		&models.User{},
		&models.Conference{},
		&models.Event{},
		&models.Paper{},
		&models.Rating{},
		&models.Interest{},
		&models.Comment{},
		&models.Notification{},
	); err != nil {
		logging.Fatal("Auto-migration failed", zap.Error(err))
	}

	// Seeding
	seedDefaultConferences(db, logging)

	// Setup Providers
	feedFetcher := devevents.NewFetcher(cfg, logging)
	metadataClient := semanticscholar.NewClient(cfg, logging)

	// Setup Services
	notifier := services.NewNotifier(db, logging)
	conferenceService := services.NewConferenceService(cfg, db, logging, feedFetcher)
	engagementService := services.NewEngagementService(db, logging, conferenceService)
	paperService := services.NewPaperService(db, logging, metadataClient, notifier)
	calendarClient := calendar.NewClient(cfg, logging)

	// Setup Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLoggerMiddleware(logging))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Routes
	setupAuthRoutes(router, db, cfg, logging)
	setupUserRoutes(router, db, cfg, conferenceService, logging)
	setupConferenceRoutes(router, db, cfg, conferenceService, notifier, calendarClient, logging)
	setupEventRoutes(router, db, cfg, conferenceService, logging)
	setupPaperRoutes(router, db, cfg, paperService, logging)
	setupRatingRoutes(router, db, cfg, engagementService, logging)
	setupInterestRoutes(router, db, cfg, engagementService, logging)
	setupCommentRoutes(router, db, cfg, engagementService, logging)
	setupNotificationRoutes(router, db, cfg, logging)

	// Setup Cron: periodische Feed-Probe für das Candidate-Gauge
	cronScheduler := cron.New()
	cronScheduler.AddFunc(cfg.CronSchedule, func() {
		candidates := feedFetcher.Fetch(context.Background())
		externalCandidatesGauge.Set(float64(len(candidates)))
		logging.Info("Scheduled feed probe completed", zap.Int("candidates", len(candidates)))
	})
	cronScheduler.Start()

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

func setupAuthRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {
	rg := router.Group("/auth")

	rg.POST("/signup", func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required,min=6"`
			FullName string `json:"full_name"`
			Role     string `json:"role"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		role := models.RoleUser
		if req.Role == string(models.RoleOrganizer) {
			role = models.RoleOrganizer
		}

		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			log.Error("Password hashing failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		user := models.User{
			Email:          strings.ToLower(strings.TrimSpace(req.Email)),
			HashedPassword: hashed,
			FullName:       req.FullName,
			Role:           role,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusCreated, user)
	})

	rg.POST("/login", func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		var user models.User
		err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
		if err != nil || !auth.VerifyPassword(req.Password, user.HashedPassword) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect email or password"})
			return
		}

		token, err := auth.GenerateToken(cfg, user.ID)
		if err != nil {
			log.Error("Token generation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
	})
}

func setupUserRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, conferences *services.ConferenceService, log *zap.Logger) {
	rg := router.Group("/users", auth.Middleware(cfg, db, true))

	rg.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, auth.CurrentUser(c))
	})

	rg.GET("/me/conferences", func(c *gin.Context) {
		user := auth.CurrentUser(c)
		if user.Role != models.RoleOrganizer {
			c.JSON(http.StatusForbidden, gin.H{"error": "only organizers can perform this action"})
			return
		}

		var owned []models.Conference
		err := db.
			Preload("Events").
			Preload("Papers").
			Preload("Organizer").
			Where("organizer_id = ?", user.ID).
			Find(&owned).Error
		if err != nil {
			log.Error("Database query for my conferences failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}

		views := make([]*services.ConferenceView, 0, len(owned))
		for i := range owned {
			view, err := conferences.BuildView(&owned[i], &user.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
				return
			}
			views = append(views, view)
		}
		c.JSON(http.StatusOK, views)
	})
}

func setupConferenceRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, conferences *services.ConferenceService, notifier *services.Notifier, calendarClient *calendar.Client, log *zap.Logger) {
	rg := router.Group("/conferences")
	optionalAuth := auth.Middleware(cfg, db, false)
	requireAuth := auth.Middleware(cfg, db, true)

	// Merged Listing: owned + Feed-Kandidaten, dedupliziert nach URL
	rg.GET("", optionalAuth, func(c *gin.Context) {
		filter := services.ListFilter{Publisher: c.Query("publisher")}
		if raw := c.Query("min_rating"); raw != "" {
			minRating, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_rating"})
				return
			}
			filter.MinRating = &minRating
		}

		views, err := conferences.ListMerged(c.Request.Context(), viewerID(c), filter)
		if err != nil {
			log.Error("Conference listing failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, views)
	})

	// Detail: auf External-ID-Miss läuft der Materialisierungs-Pfad
	rg.GET("/:id", optionalAuth, func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		view, err := conferences.Get(c.Request.Context(), id, viewerID(c))
		if err != nil {
			if errors.Is(err, services.ErrConferenceNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "conference not found"})
				return
			}
			log.Error("Conference detail failed", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, view)
	})

	rg.POST("", requireAuth, func(c *gin.Context) {
		user := auth.CurrentUser(c)
		if user.Role != models.RoleOrganizer {
			c.JSON(http.StatusForbidden, gin.H{"error": "only organizers can perform this action"})
			return
		}

		var req struct {
			Name          string   `json:"name" binding:"required"`
			Acronym       string   `json:"acronym"`
			Publisher     string   `json:"publisher"`
			Description   string   `json:"description"`
			Location      string   `json:"location"`
			StartDate     string   `json:"start_date"`
			EndDate       string   `json:"end_date"`
			Topics        string   `json:"topics"`
			Speakers      string   `json:"speakers"`
			Website       string   `json:"website"`
			ColocatedWith []string `json:"colocated_with"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		startDate, err := parseDate(req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
			return
		}
		endDate, err := parseDate(req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, expected YYYY-MM-DD"})
			return
		}

		conf := models.Conference{
			Name:        req.Name,
			Acronym:     req.Acronym,
			Publisher:   req.Publisher,
			Description: req.Description,
			Location:    req.Location,
			StartDate:   startDate,
			EndDate:     endDate,
			Topics:      req.Topics,
			Speakers:    req.Speakers,
			OrganizerID: &user.ID,
		}
		if req.Website != "" {
			conf.Website = &req.Website
		}
		conf.SetColocatedList(req.ColocatedWith)

		// Create und Fan-out atomar: scheitert ein Notification-Insert,
		// wird auch die Konferenz nicht angelegt.
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&conf).Error; err != nil {
				return err
			}
			message := fmt.Sprintf("%s was added by %s", conf.Name, user.FullName)
			return notifier.NotifyAll(tx, user.ID, "New conference", message, &conf.ID)
		})
		if err != nil {
			log.Error("Conference creation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create conference"})
			return
		}

		view, err := conferences.Get(c.Request.Context(), conf.ID, &user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusCreated, view)
	})

	rg.PUT("/:id", requireAuth, func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		conf, ok := loadOwnedConference(c, db, id, log)
		if !ok {
			return
		}

		var req struct {
			Name          *string   `json:"name"`
			Acronym       *string   `json:"acronym"`
			Publisher     *string   `json:"publisher"`
			Description   *string   `json:"description"`
			Location      *string   `json:"location"`
			StartDate     *string   `json:"start_date"`
			EndDate       *string   `json:"end_date"`
			Topics        *string   `json:"topics"`
			Speakers      *string   `json:"speakers"`
			Website       *string   `json:"website"`
			ColocatedWith *[]string `json:"colocated_with"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		// Nur die mitgesendeten Felder aktualisieren
		updates := map[string]interface{}{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Acronym != nil {
			updates["acronym"] = *req.Acronym
		}
		if req.Publisher != nil {
			updates["publisher"] = *req.Publisher
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Location != nil {
			updates["location"] = *req.Location
		}
		if req.Topics != nil {
			updates["topics"] = *req.Topics
		}
		if req.Speakers != nil {
			updates["speakers"] = *req.Speakers
		}
		if req.Website != nil {
			updates["website"] = *req.Website
		}
		if req.ColocatedWith != nil {
			updates["colocated_with"] = strings.Join(*req.ColocatedWith, ";")
		}
		if req.StartDate != nil {
			date, err := parseDate(*req.StartDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
				return
			}
			updates["start_date"] = date
		}
		if req.EndDate != nil {
			date, err := parseDate(*req.EndDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, expected YYYY-MM-DD"})
				return
			}
			updates["end_date"] = date
		}
		if len(updates) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no updatable fields provided"})
			return
		}

		if err := db.Model(conf).Updates(updates).Error; err != nil {
			log.Error("Conference update failed", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update conference"})
			return
		}

		view, err := conferences.Get(c.Request.Context(), id, viewerID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, view)
	})

	rg.DELETE("/:id", requireAuth, func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		conf, ok := loadOwnedConference(c, db, id, log)
		if !ok {
			return
		}

		// Ratings/Interests/Papers/Comments hängen per FK-Cascade dran.
		if err := db.Delete(conf).Error; err != nil {
			log.Error("Conference deletion failed", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete conference"})
			return
		}
		c.Status(http.StatusNoContent)
	})

	// Kalender-Export: fire-and-forget; externe Kandidaten werden vorher
	// materialisiert, damit der Export an einer persistierten Zeile hängt.
	rg.POST("/:id/calendar", requireAuth, func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		conf, err := conferences.Ensure(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrConferenceNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "conference not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}

		description := conf.Description
		if conf.Website != nil {
			description += "\nWebsite: " + *conf.Website
		}
		calendarClient.AddEvent(c.Request.Context(), conf.Name, description, conf.Location, conf.StartDate, conf.EndDate)
		c.JSON(http.StatusAccepted, gin.H{"message": "calendar export triggered"})
	})
}

func setupEventRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, conferences *services.ConferenceService, log *zap.Logger) {
	rg := router.Group("/conferences/:id/events")

	rg.POST("", auth.Middleware(cfg, db, true), func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		conf, err := conferences.Ensure(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrConferenceNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "conference not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}

		var req struct {
			Title         string `json:"title" binding:"required"`
			Type          string `json:"type" binding:"required"`
			Date          string `json:"date"`
			Time          string `json:"time"`
			Speakers      string `json:"speakers"`
			Description   string `json:"description"`
			ParentEventID *uint  `json:"parent_event_id"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		date, err := parseDate(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}

		event := models.Event{
			ConferenceID:  conf.ID,
			ParentEventID: req.ParentEventID,
			Title:         req.Title,
			Type:          req.Type,
			Date:          date,
			Time:          req.Time,
			Speakers:      req.Speakers,
			Description:   req.Description,
		}
		if err := db.Create(&event).Error; err != nil {
			log.Error("Event creation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create event"})
			return
		}
		c.JSON(http.StatusCreated, event)
	})

	rg.GET("", func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var events []models.Event
		if err := db.Where("conference_id = ?", id).Find(&events).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, events)
	})
}

func setupPaperRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, papers *services.PaperService, log *zap.Logger) {
	rg := router.Group("/conferences/:id/papers")

	// Batch-Import über den Metadaten-Provider
	rg.POST("/import", auth.Middleware(cfg, db, true), func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var req struct {
			EventID     *uint    `json:"event_id"`
			Identifiers []string `json:"identifiers" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body, 'identifiers' is required"})
			return
		}

		user := auth.CurrentUser(c)
		created, err := papers.ImportPapers(c.Request.Context(), id, req.EventID, req.Identifiers, user.ID)
		if err != nil {
			if errors.Is(err, services.ErrConferenceNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "conference not found"})
				return
			}
			log.Error("Paper import failed", zap.Uint("conference_id", id), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "metadata provider unavailable"})
			return
		}
		c.JSON(http.StatusOK, created)
	})

	rg.GET("", func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		query := db.Where("conference_id = ?", id)
		if c.Query("open_access_only") == "true" {
			query = query.Where("open_access_pdf_url <> ''")
		}
		if raw := c.Query("min_citations"); raw != "" {
			minCitations, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_citations"})
				return
			}
			query = query.Where("citation_count >= ?", minCitations)
		}

		var result []models.Paper
		if err := query.Find(&result).Error; err != nil {
			log.Error("Database query for papers failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, result)
	})

	router.GET("/papers/:id", func(c *gin.Context) {
		id := c.Param("id")
		var paper models.Paper
		if err := db.First(&paper, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "paper not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, paper)
	})
}

func setupRatingRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, engagement *services.EngagementService, log *zap.Logger) {
	rg := router.Group("/conferences/:id/ratings", auth.Middleware(cfg, db, true))

	rg.POST("", func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var req struct {
			Rating      *float64 `json:"rating" binding:"required"`
			Credibility *float64 `json:"credibility"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body, 'rating' is required"})
			return
		}

		user := auth.CurrentUser(c)
		rating, err := engagement.SubmitRating(c.Request.Context(), user.ID, id, *req.Rating, req.Credibility)
		if err != nil {
			if errors.Is(err, services.ErrConferenceNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "conference not found"})
				return
			}
			log.Error("Rating submission failed", zap.Uint("conference_id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save rating"})
			return
		}
		c.JSON(http.StatusCreated, rating)
	})
}

func setupInterestRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, engagement *services.EngagementService, log *zap.Logger) {
	rg := router.Group("/interests", auth.Middleware(cfg, db, true))

	rg.POST("/conferences/:id/interest", func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		user := auth.CurrentUser(c)
		err := engagement.MarkInterest(c.Request.Context(), user.ID, id)
		switch {
		case err == nil:
			c.JSON(http.StatusCreated, gin.H{"message": "marked as interested"})
		case errors.Is(err, services.ErrAlreadyInterested):
			c.JSON(http.StatusBadRequest, gin.H{"error": "already marked as interested"})
		case errors.Is(err, services.ErrConferenceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "conference not found"})
		default:
			log.Error("Interest marking failed", zap.Uint("conference_id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
	})

	rg.DELETE("/conferences/:id/interest", func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		user := auth.CurrentUser(c)
		err := engagement.RemoveInterest(c.Request.Context(), user.ID, id)
		switch {
		case err == nil:
			c.Status(http.StatusNoContent)
		case errors.Is(err, services.ErrInterestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "interest not found"})
		default:
			log.Error("Interest removal failed", zap.Uint("conference_id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
	})

	rg.GET("/my-interests", func(c *gin.Context) {
		user := auth.CurrentUser(c)
		views, err := engagement.ListInterests(c.Request.Context(), user.ID)
		if err != nil {
			log.Error("Interest listing failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, views)
	})
}

func setupCommentRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, engagement *services.EngagementService, log *zap.Logger) {
	rg := router.Group("/conferences/:id/comments")

	rg.POST("", auth.Middleware(cfg, db, true), func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var req struct {
			Content string `json:"content" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body, 'content' is required"})
			return
		}

		user := auth.CurrentUser(c)
		comment, err := engagement.AddComment(c.Request.Context(), user.ID, id, req.Content)
		if err != nil {
			if errors.Is(err, services.ErrConferenceNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "conference not found"})
				return
			}
			log.Error("Comment creation failed", zap.Uint("conference_id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create comment"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"id":            comment.ID,
			"user_id":       comment.UserID,
			"user_name":     user.FullName,
			"conference_id": comment.ConferenceID,
			"content":       comment.Content,
			"created_at":    comment.CreatedAt,
		})
	})

	rg.GET("", func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var comments []models.Comment
		err := db.Preload("User").
			Where("conference_id = ?", id).
			Order("created_at desc").
			Find(&comments).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}

		out := make([]gin.H, 0, len(comments))
		for _, comment := range comments {
			out = append(out, gin.H{
				"id":            comment.ID,
				"user_id":       comment.UserID,
				"user_name":     comment.User.FullName,
				"conference_id": comment.ConferenceID,
				"content":       comment.Content,
				"created_at":    comment.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, out)
	})
}

func setupNotificationRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {
	rg := router.Group("/notifications", auth.Middleware(cfg, db, true))

	rg.GET("", func(c *gin.Context) {
		user := auth.CurrentUser(c)
		var notifications []models.Notification
		err := db.Where("user_id = ?", user.ID).
			Order("created_at desc").
			Limit(20).
			Find(&notifications).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, notifications)
	})

	rg.POST("/:id/read", func(c *gin.Context) {
		user := auth.CurrentUser(c)
		err := db.Model(&models.Notification{}).
			Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
			Update("is_read", true).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "marked as read"})
	})

	rg.POST("/read-all", func(c *gin.Context) {
		user := auth.CurrentUser(c)
		err := db.Model(&models.Notification{}).
			Where("user_id = ?", user.ID).
			Update("is_read", true).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "all marked as read"})
	})
}

// viewerID gibt die ID des eingeloggten Betrachters zurück, nil bei
// anonymen Requests.
func viewerID(c *gin.Context) *uint {
	if user := auth.CurrentUser(c); user != nil {
		return &user.ID
	}
	return nil
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// parseDate parst "YYYY-MM-DD"; leer ergibt nil.
func parseDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// loadOwnedConference lädt eine Konferenz und prüft, ob der eingeloggte
// Benutzer ihr Organizer ist. Externe (materialisierte) Konferenzen haben
// keinen Organizer und sind damit für niemanden editierbar.
func loadOwnedConference(c *gin.Context, db *gorm.DB, id uint, log *zap.Logger) (*models.Conference, bool) {
	var conf models.Conference
	if err := db.First(&conf, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "conference not found"})
			return nil, false
		}
		log.Error("DB error loading conference", zap.Uint("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return nil, false
	}

	user := auth.CurrentUser(c)
	if conf.OrganizerID == nil || *conf.OrganizerID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the organizer of this conference"})
		return nil, false
	}
	return &conf, true
}

func seedDefaultConferences(db *gorm.DB, logger *zap.Logger) {
	var count int64
	db.Model(&models.Conference{}).Count(&count)
	if count > 0 {
		return
	}

	aaaiStart := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)
	aaaiEnd := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)
	daisStart := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	daisEnd := time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)
	aaaiSite := "https://aaai.org/aaai-conference/"
	daisSite := "https://www.databricks.com/dataaisummit"

	conferences := []models.Conference{
		{
			Name:          "AAAI Conference on Artificial Intelligence 2026",
			Acronym:       "AAAI 2026",
			Publisher:     "AAAI",
			Location:      "Vancouver, Canada",
			StartDate:     &aaaiStart,
			EndDate:       &aaaiEnd,
			Website:       &aaaiSite,
			Topics:        "Artificial Intelligence, Machine Learning, Robotics",
			Description:   "The AAAI Conference on Artificial Intelligence promotes research in AI and scientific exchange among AI researchers, practitioners, scientists, and engineers in affiliated disciplines.",
			ColocatedWith: "IAAI Innovative Applications of AI",
		},
		{
			Name:          "Data + AI Summit 2026",
			Acronym:       "DAIS 2026",
			Location:      "San Francisco, USA",
			StartDate:     &daisStart,
			EndDate:       &daisEnd,
			Website:       &daisSite,
			Topics:        "Big Data, Lakehouse, Apache Spark, MLflow",
			Description:   "The premier event for the data and AI community, organized by Databricks.",
			ColocatedWith: "Lakehouse Dev Day;Partner Summit",
		},
	}
	if err := db.Create(&conferences).Error; err != nil {
		logger.Warn("Failed to seed default conferences", zap.Error(err))
	} else {
		logger.Info("Default conferences seeded.")
	}
}
