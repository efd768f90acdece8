package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             int
	CORSOrigins      string
	DBPath           string
	LogDirectory     string
	LogLevel         string
	DefaultSessionID string

	CameraDevice   int
	FrameWidth     int
	FrameHeight    int
	CaptureTimeout time.Duration
	FrameInterval  time.Duration // rate cap for the processing loop
	StreamInterval time.Duration // frame cadence of the MJPEG feed

	HaarCascadePath      string
	SpecializedModelPath string
	GeneralModelPath     string

	HistoryCapacity int           // stability filter ring buffer size
	DwellTime       time.Duration // minimum time between reported emotion changes
	MinConfidence   float64       // minimum raw confidence to accept a change

	BufferLimit   int           // persisted events buffered before a forced flush
	FlushInterval time.Duration

	SimulatedPresenceRatio float64 // chance of simulated presence in demo mode
}

func Load() *Config {
	// Missing .env is fine - fall back to the process environment.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		Port:             getEnvAsInt("PORT", 8000),
		CORSOrigins:      getEnv("CORS_ORIGINS", "*"),
		DBPath:           getEnv("DB_PATH", filepath.Join("data", "employee_monitoring.db")),
		LogDirectory:     getEnv("LOG_DIR", filepath.Join(".", "logs")),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DefaultSessionID: getEnv("DEFAULT_SESSION_ID", "EMP001"),

		CameraDevice:   getEnvAsInt("CAMERA_DEVICE", 0),
		FrameWidth:     getEnvAsInt("FRAME_WIDTH", 640),
		FrameHeight:    getEnvAsInt("FRAME_HEIGHT", 480),
		CaptureTimeout: getEnvAsDuration("CAPTURE_TIMEOUT", 2*time.Second),
		FrameInterval:  getEnvAsDuration("FRAME_INTERVAL", 500*time.Millisecond),
		StreamInterval: getEnvAsDuration("STREAM_INTERVAL", 100*time.Millisecond),

		HaarCascadePath:      getEnv("HAAR_CASCADE_PATH", filepath.Join("models", "haarcascade_frontalface_default.xml")),
		SpecializedModelPath: getEnv("SPECIALIZED_MODEL_PATH", filepath.Join("models", "emotion-ferplus-8.onnx")),
		GeneralModelPath:     getEnv("GENERAL_MODEL_PATH", filepath.Join("models", "fer2013_mini_xception.onnx")),

		HistoryCapacity: getEnvAsInt("HISTORY_CAPACITY", 5),
		DwellTime:       getEnvAsDuration("DWELL_TIME", 2*time.Second),
		MinConfidence:   getEnvAsFloat("MIN_CONFIDENCE", 60),

		BufferLimit:   getEnvAsInt("BUFFER_LIMIT", 50),
		FlushInterval: getEnvAsDuration("FLUSH_INTERVAL", 30*time.Second),

		SimulatedPresenceRatio: getEnvAsFloat("SIMULATED_PRESENCE_RATIO", 0.7),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
