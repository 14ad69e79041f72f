package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	JWT      JWTConfig
	Store    StoreConfig
	DB       DBConfig
	Mongo    MongoConfig
	Firebase FirebaseConfig
	Auth     AuthConfig
	Session  SessionConfig
	Redis    RedisConfig
	Events   EventsConfig
	Notify   NotifyConfig
	Comedor  ComedorConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	Timezone string // zona horaria de las ventanas de confirmación, ej. America/Mexico_City
	Locale   string // idioma por defecto de los mensajes al usuario (es, en)
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// StoreConfig elige el backend documental: memory, postgres, mongo o firestore.
type StoreConfig struct {
	Driver string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// MongoConfig configuración de MongoDB.
type MongoConfig struct {
	URI      string
	Database string
}

// FirebaseConfig credenciales del proyecto Firebase (Firestore, Auth y FCM).
type FirebaseConfig struct {
	CredentialsFile string
	ProjectID       string
	APIKey          string // Web API key, necesaria para el login con email/password vía Identity Toolkit
}

// Enabled indica si hay algún dato para inicializar la app de Firebase.
func (c FirebaseConfig) Enabled() bool {
	return c.CredentialsFile != "" || c.ProjectID != ""
}

// AuthConfig elige el proveedor de identidad: local (bcrypt + documentos) o firebase.
type AuthConfig struct {
	Provider string
}

// SessionConfig configuración de las sesiones del servidor.
type SessionConfig struct {
	Driver     string // memory | redis
	TTLMinutes int
}

// RedisConfig configuración de Redis.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr devuelve host:port de Redis.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// EventsConfig publicación de eventos de confirmaciones y menús.
type EventsConfig struct {
	Provider  string // none | redis | google
	Channel   string // canal Redis
	ProjectID string // Google Pub/Sub
	TopicID   string
}

// NotifyConfig avisos push a coordinadores (FCM).
type NotifyConfig struct {
	Provider string // none | firebase
	Topic    string
}

// ComedorConfig valores por defecto del negocio; se usan para sembrar el documento de ajustes.
type ComedorConfig struct {
	MealCost              string // decimal en texto, ej. "50.00"
	WorkingDays           int
	WindowStart           string // HH:MM
	WindowEnd             string // HH:MM
	WindowStartOffsetDays int
	WindowEndOffsetDays   int
	ArchiveIntervalMin    int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORE_DRIVER, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "comedor-avika"),
			Timezone: getString(v, "APP_TIMEZONE", "America/Mexico_City"),
			Locale:   getString(v, "APP_LOCALE", "es"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "comedor-avika"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getString(v, "STORE_DRIVER", "memory")),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "comedor"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Mongo: MongoConfig{
			URI:      getString(v, "MONGODB_URI", "mongodb://localhost:27017"),
			Database: getString(v, "MONGODB_DATABASE", "comedor"),
		},
		Firebase: FirebaseConfig{
			CredentialsFile: getString(v, "FIREBASE_CREDENTIALS_FILE", ""),
			ProjectID:       getString(v, "FIREBASE_PROJECT_ID", ""),
			APIKey:          getString(v, "FIREBASE_API_KEY", ""),
		},
		Auth: AuthConfig{
			Provider: strings.ToLower(getString(v, "AUTH_PROVIDER", "local")),
		},
		Session: SessionConfig{
			Driver:     strings.ToLower(getString(v, "SESSION_DRIVER", "memory")),
			TTLMinutes: getInt(v, "SESSION_TTL_MINUTES", 480),
		},
		Redis: RedisConfig{
			Host:     getString(v, "REDIS_HOST", "localhost"),
			Port:     getInt(v, "REDIS_PORT", 6379),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Events: EventsConfig{
			Provider:  strings.ToLower(getString(v, "EVENTS_PROVIDER", "none")),
			Channel:   getString(v, "EVENTS_CHANNEL", "comedor:eventos"),
			ProjectID: getString(v, "PUBSUB_PROJECT_ID", ""),
			TopicID:   getString(v, "PUBSUB_TOPIC_ID", ""),
		},
		Notify: NotifyConfig{
			Provider: strings.ToLower(getString(v, "NOTIFY_PROVIDER", "none")),
			Topic:    getString(v, "NOTIFY_TOPIC", "coordinadores"),
		},
		Comedor: ComedorConfig{
			MealCost:              getString(v, "COMEDOR_MEAL_COST", "50.00"),
			WorkingDays:           getInt(v, "COMEDOR_WORKING_DAYS", 5),
			WindowStart:           getString(v, "COMEDOR_WINDOW_START", "16:10"),
			WindowEnd:             getString(v, "COMEDOR_WINDOW_END", "10:00"),
			WindowStartOffsetDays: getInt(v, "COMEDOR_WINDOW_START_OFFSET_DAYS", 4),
			WindowEndOffsetDays:   getInt(v, "COMEDOR_WINDOW_END_OFFSET_DAYS", 2),
			ArchiveIntervalMin:    getInt(v, "ARCHIVE_INTERVAL_MINUTES", 60),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case "memory", "postgres", "mongo", "firestore":
	default:
		return fmt.Errorf("config: STORE_DRIVER desconocido %q", c.Store.Driver)
	}
	switch c.Auth.Provider {
	case "local", "firebase":
	default:
		return fmt.Errorf("config: AUTH_PROVIDER desconocido %q", c.Auth.Provider)
	}
	if c.Comedor.WorkingDays != 5 && c.Comedor.WorkingDays != 7 {
		return fmt.Errorf("config: COMEDOR_WORKING_DAYS debe ser 5 o 7, se recibió %d", c.Comedor.WorkingDays)
	}
	if c.JWT.Secret == "" && c.App.Env == "production" {
		return fmt.Errorf("config: JWT_SECRET es obligatorio en producción")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
