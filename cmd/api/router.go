package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"staybnb/internal/events"
	"staybnb/internal/middleware"
	"staybnb/internal/modules/auth"
	"staybnb/internal/modules/booking"
	"staybnb/internal/modules/listing"
	"staybnb/internal/modules/notification"
	"staybnb/internal/modules/review"
	jwtsvc "staybnb/internal/pkg/jwt"
	"staybnb/internal/repository"
)

func newRouter(db *gorm.DB, j *jwtsvc.Service, hub *notification.Hub, publisher events.Publisher, corsOrigins []string) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	authHandler := auth.NewHandler(auth.NewService(userRepo, j, j.TTL()))
	listingHandler := listing.NewHandler(listing.NewService(listingRepo, reviewRepo))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, listingRepo, reviewRepo, publisher))
	reviewHandler := review.NewHandler(review.NewService(reviewRepo, bookingRepo, listingRepo, publisher))
	notificationHandler := notification.NewHandler(hub, corsOrigins)

	r := gin.New()
	r.Use(gin.Logger(), middleware.RequestID(), middleware.ErrorLogger(), middleware.CORS(corsOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		listingHandler.RegisterPublicRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			listingHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			reviewHandler.RegisterProtectedRoutes(protected)
			notificationHandler.RegisterRoutes(protected)

			staff := protected.Group("")
			staff.Use(middleware.StaffOnly())
			reviewHandler.RegisterStaffRoutes(staff)
		}
	}

	return r
}
