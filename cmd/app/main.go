package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/session"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/wichananm65/cv-generator-backend/internal/config"
	"github.com/wichananm65/cv-generator-backend/internal/cv"
	"github.com/wichananm65/cv-generator-backend/internal/user"
	"github.com/wichananm65/cv-generator-backend/internal/web"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	if err := bootstrapSchema(db); err != nil {
		log.Fatalf("schema bootstrap failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		Views: web.Engine(),
	})
	setupCORS(app)

	userService := user.NewService(user.NewPostgresRepository(db))
	cvService := cv.NewService(cv.NewPostgresRepository(db))

	// web surface: session-based, server-rendered
	store := session.New(session.Config{
		Expiration:     24 * time.Hour,
		KeyLookup:      "cookie:cv_session",
		CookieHTTPOnly: true,
	})
	web.NewHandler(store, userService, cvService).RegisterRoutes(app)

	// JSON surface: JWT-based, structured payloads
	userHandler := user.NewHandler(userService)
	userHandler.RegisterPublicRoutes(app)

	app.Use("/api/v1", jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	cv.NewHandler(cvService).RegisterProtectedRoutes(app)

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

func bootstrapSchema(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		created_at TEXT
	)`); err != nil {
		return err
	}

	// experiences and education are JSON-encoded TEXT columns, replaced
	// wholesale on every save
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS cvs (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id),
		title TEXT,
		full_name TEXT,
		professional_title TEXT,
		email TEXT,
		phone TEXT,
		location TEXT,
		professional_summary TEXT,
		skills TEXT,
		experiences TEXT,
		education TEXT,
		created_at TEXT,
		updated_at TEXT
	)`); err != nil {
		return err
	}

	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_cvs_user_id ON cvs(user_id)`); err != nil {
		return err
	}

	return nil
}
