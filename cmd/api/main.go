package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"studyhub/internal/config"
	"studyhub/internal/database"
	"studyhub/internal/middleware"
	"studyhub/internal/modules/auth"
	"studyhub/internal/modules/course"
	"studyhub/internal/modules/material"
	"studyhub/internal/modules/paper"
	"studyhub/internal/modules/post"
	"studyhub/internal/modules/student"
	"studyhub/internal/modules/studyplan"
	"studyhub/internal/modules/userinfo"
	jwtsvc "studyhub/internal/pkg/jwt"
	"studyhub/internal/quota"
	"studyhub/internal/repository"
	"studyhub/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(cfg.StorageRoot, 0o755); err != nil {
		log.Fatal(err)
	}
	stager, err := storage.NewStager(cfg.TmpDir)
	if err != nil {
		log.Fatal(err)
	}

	groupRepo := repository.NewGroupRepository(db)
	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	postRepo := repository.NewPostRepository(db)
	planRepo := repository.NewStudyPlanRepository(db)
	paperRepo := repository.NewPaperRecordRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	quotaSvc := quota.NewService(groupRepo, courseRepo, userRepo)

	authHandler := auth.NewHandler(auth.NewService(userRepo, j))
	courseHandler := course.NewHandler(course.NewService(courseRepo, groupRepo, quotaSvc))
	materialHandler := material.NewHandler(material.NewService(courseRepo, quotaSvc))
	postHandler := post.NewHandler(post.NewService(postRepo, groupRepo, quotaSvc))
	studentHandler := student.NewHandler(student.NewService(userRepo, groupRepo, quotaSvc))
	userHandler := userinfo.NewHandler(userinfo.NewService(userRepo, groupRepo, quotaSvc))
	planHandler := studyplan.NewHandler(studyplan.NewService(planRepo))
	paperHandler := paper.NewHandler(paper.NewService(paperRepo))

	stageAttachments := middleware.StageUploads(stager, "attachments", 5)
	stageDocument := middleware.StageUploads(stager, "document", 1)
	stageImages := middleware.StageUploads(stager, "images", 5)
	stageImage := middleware.StageUploads(stager, "image", 1)

	r := gin.Default()
	r.Use(middleware.CORS(), middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		courseHandler.RegisterPublicRoutes(v1)
		postHandler.RegisterPublicRoutes(v1)
		userHandler.RegisterPublicRoutes(v1)

		// authenticated
		authed := v1.Group("/", middleware.JWTAuth(j))
		{
			courseHandler.RegisterRoutes(authed, stageAttachments)
			materialHandler.RegisterRoutes(authed, stageDocument)
			postHandler.RegisterRoutes(authed, stageImages)
			studentHandler.RegisterRoutes(authed)
			userHandler.RegisterRoutes(authed, stageImage)
			planHandler.RegisterRoutes(authed)
			paperHandler.RegisterRoutes(authed)
		}
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
