package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jengzang/metro-live-backend-go/internal/crowd"
	"github.com/joho/godotenv"
)

// Config 应用配置
type Config struct {
	Port             string
	DBPath           string
	DataDir          string // 站点与线路 JSON 数据目录
	JWTSecret        string
	AllowedOrigins   []string // 空表示允许所有来源
	SeedOnStart      bool
	DatasetCacheTTL  time.Duration
	ReportRateLimit  int
	ReportRateWindow time.Duration
	MapProfile       crowd.Profile
	DetailProfile    crowd.Profile
}

// Load 加载配置
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv 从给定的查找函数构建配置
func FromEnv(getenv func(string) string) *Config {
	port := getenv("PORT")
	if port == "" {
		port = ":8080"
	}
	if !strings.Contains(port, ":") {
		port = ":" + port
	}

	dbPath := getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/metro.db"
	}

	dataDir := getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	jwtSecret := getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	cfg := &Config{
		Port:             port,
		DBPath:           dbPath,
		DataDir:          dataDir,
		JWTSecret:        jwtSecret,
		AllowedOrigins:   splitList(getenv("ALLOWED_ORIGINS")),
		SeedOnStart:      boolOr(getenv, "SEED_ON_START", true),
		DatasetCacheTTL:  durationOr(getenv, "DATASET_CACHE_TTL", 5*time.Minute),
		ReportRateLimit:  intOr(getenv, "REPORT_RATE_LIMIT", 30),
		ReportRateWindow: durationOr(getenv, "REPORT_RATE_WINDOW", time.Minute),
		MapProfile:       profileFromEnv(getenv, "CROWD_MAP_", crowd.MapProfile()),
		DetailProfile:    profileFromEnv(getenv, "CROWD_DETAIL_", crowd.DetailProfile()),
	}
	return cfg
}

// profileFromEnv 用 <prefix>WINDOW 等变量覆盖默认聚合参数
func profileFromEnv(getenv func(string) string, prefix string, p crowd.Profile) crowd.Profile {
	p.Window = durationOr(getenv, prefix+"WINDOW", p.Window)
	p.RecentWindow = durationOr(getenv, prefix+"RECENT_WINDOW", p.RecentWindow)
	p.RecentBoost = floatOr(getenv, prefix+"RECENT_BOOST", p.RecentBoost)
	p.DecayMinutes = floatOr(getenv, prefix+"DECAY_MINUTES", p.DecayMinutes)
	p.Limit = intOr(getenv, prefix+"LIMIT", p.Limit)
	p.OverrideThreshold = floatOr(getenv, prefix+"OVERRIDE_THRESHOLD", p.OverrideThreshold)
	return p
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func durationOr(getenv func(string) string, key string, def time.Duration) time.Duration {
	raw := getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		log.Printf("Invalid %s=%q, using %v", key, raw, def)
		return def
	}
	return d
}

func intOr(getenv func(string) string, key string, def int) int {
	raw := getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.Printf("Invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return n
}

func floatOr(getenv func(string) string, key string, def float64) float64 {
	raw := getenv(key)
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 {
		log.Printf("Invalid %s=%q, using %v", key, raw, def)
		return def
	}
	return f
}

func boolOr(getenv func(string) string, key string, def bool) bool {
	raw := getenv(key)
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Invalid %s=%q, using %v", key, raw, def)
		return def
	}
	return b
}
