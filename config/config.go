package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"

	ProviderCloudinary = "cloudinary"
	ProviderS3         = "s3"
	ProviderNoop       = "noop"
)

type Config struct {
	Environment string
	LogLevel    string
	ServerPort  string `validate:"required,numeric"`
	BaseURL     string `validate:"required,url"`

	DBDriver         string        `validate:"oneof=mongo postgres"`
	MongoURI         string        `validate:"required_if=DBDriver mongo"`
	MongoDatabase    string        `validate:"required_if=DBDriver mongo"`
	DBHost           string        `validate:"required_if=DBDriver postgres"`
	DBPort           string        `validate:"required_if=DBDriver postgres"`
	DBUser           string        `validate:"required_if=DBDriver postgres"`
	DBPassword       string
	DBName           string        `validate:"required_if=DBDriver postgres"`
	DBConnectTimeout time.Duration `validate:"gt=0"`

	ImageProvider       string `validate:"oneof=cloudinary s3 noop"`
	ImageFolder         string `validate:"required"`
	MaxUploadSize       string `validate:"required"`
	CloudinaryURL       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	S3Bucket            string `validate:"required_if=ImageProvider s3"`
	S3Region            string `validate:"required_if=ImageProvider s3"`
	S3AccessKeyID       string
	S3SecretAccessKey   string
	S3PublicBaseURL     string `validate:"omitempty,url"`

	RabbitURL          string
	FeaturedEventsFile string
}

// Load reads the environment (and .env outside production) and validates the result.
func Load() (*Config, error) {
	env := getEnv("GO_ENV", "development")
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	timeout, err := time.ParseDuration(getEnv("DB_CONNECT_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("DB_CONNECT_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Environment: env,
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		BaseURL:     getEnv("BASE_URL", getEnv("NEXT_PUBLIC_BASE_URL", "http://localhost:8080")),

		DBDriver:         strings.ToLower(getEnv("DB_DRIVER", DriverMongo)),
		MongoURI:         os.Getenv("MONGODB_URI"),
		MongoDatabase:    getEnv("MONGODB_DATABASE", "devevent"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "postgres"),
		DBPassword:       getEnv("DB_PASSWORD", "postgres"),
		DBName:           getEnv("DB_NAME", "devevent"),
		DBConnectTimeout: timeout,

		ImageProvider:       strings.ToLower(getEnv("IMAGE_PROVIDER", ProviderCloudinary)),
		ImageFolder:         getEnv("IMAGE_FOLDER", "DevEvent"),
		MaxUploadSize:       getEnv("MAX_UPLOAD_SIZE", "10M"),
		CloudinaryURL:       os.Getenv("CLOUDINARY_URL"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		S3Bucket:            os.Getenv("S3_BUCKET"),
		S3Region:            getEnv("S3_REGION", os.Getenv("AWS_REGION")),
		S3AccessKeyID:       os.Getenv("AWS_ACCESS_KEY_ID"),
		S3SecretAccessKey:   os.Getenv("AWS_SECRET_ACCESS_KEY"),
		S3PublicBaseURL:     os.Getenv("S3_PUBLIC_BASE_URL"),

		RabbitURL:          os.Getenv("RABBITMQ_URL"),
		FeaturedEventsFile: os.Getenv("FEATURED_EVENTS_FILE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct rules plus the Cloudinary credential combinations.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.ImageProvider == ProviderCloudinary && c.CloudinaryURL == "" {
		if c.CloudinaryCloudName == "" || c.CloudinaryAPIKey == "" || c.CloudinaryAPISecret == "" {
			return fmt.Errorf("invalid configuration: CLOUDINARY_URL or CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required")
		}
	}
	return nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
