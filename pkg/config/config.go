package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del servidor (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	Store    StoreConfig
	Static   StaticConfig
	Role     RoleConfig
	Builtins BuiltinsConfig
	Login    LoginConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// Drivers de persistencia soportados.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// StoreConfig selecciona el almacenamiento del inventario y de los usuarios.
type StoreConfig struct {
	Driver     string // memory, sqlite, postgres
	SQLitePath string
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

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
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

// StaticConfig servidor de archivos estáticos del frontend.
type StaticConfig struct {
	Root  string // directorio raíz (vacío = deshabilitado)
	Entry string // página de entrada servida como fallback
}

// Políticas de resolución de rol para identidades remotas.
const (
	RolePolicyExact     = "exact"
	RolePolicyHeuristic = "heuristic"
)

// RoleConfig política de resolución de roles.
type RoleConfig struct {
	Policy         string
	AdminAllowList []string
	AdminKeywords  []string
}

// BuiltinsConfig contraseñas de los usuarios predefinidos.
type BuiltinsConfig struct {
	AdminPassword string
	StaffPassword string
}

// LoginConfig limitación de intentos en POST /api/token (por IP).
type LoginConfig struct {
	RatePerSecond float64
	Burst         int
}

// Load lee la configuración del servidor desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORE_DRIVER, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := newViper()

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "controle-estoque"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "controle_estoque"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "controle-estoque"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8000),
		},
		Store: StoreConfig{
			Driver:     strings.ToLower(getString(v, "STORE_DRIVER", StoreSQLite)),
			SQLitePath: getString(v, "SQLITE_PATH", "estoque.db"),
		},
		Static: StaticConfig{
			Root:  getString(v, "STATIC_ROOT", ""),
			Entry: getString(v, "STATIC_ENTRY", "index.html"),
		},
		Role:     loadRole(v),
		Builtins: loadBuiltins(v),
		Login: LoginConfig{
			RatePerSecond: getFloat(v, "LOGIN_RATE_PER_SECOND", 0.5),
			Burst:         getInt(v, "LOGIN_BURST", 5),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio")
	}
	switch cfg.Store.Driver {
	case StoreMemory, StoreSQLite, StorePostgres:
	default:
		return nil, fmt.Errorf("config: STORE_DRIVER %q no soportado", cfg.Store.Driver)
	}
	return cfg, nil
}

// Backends del cliente.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// ClientConfig configuración del cliente de línea de comandos.
type ClientConfig struct {
	Env        string
	Backend    string // local (listas persistidas en SQLite) o remote (API REST)
	APIURL     string
	Tab        string // identificador de la "pestaña": una sesión por tab
	SessionDir string
	Timeout    time.Duration
	SQLitePath string
	JWT        JWTConfig
	Role       RoleConfig
	Builtins   BuiltinsConfig
}

// LoadClient lee la configuración del cliente. Prefijo ESTOQUE_ para lo propio del cliente.
func LoadClient() (*ClientConfig, error) {
	v := newViper()

	cfg := &ClientConfig{
		Env:        getString(v, "APP_ENV", "development"),
		Backend:    strings.ToLower(getString(v, "ESTOQUE_BACKEND", BackendLocal)),
		APIURL:     strings.TrimRight(getString(v, "ESTOQUE_API_URL", "http://localhost:8000"), "/"),
		Tab:        getString(v, "ESTOQUE_TAB", "default"),
		SessionDir: getString(v, "ESTOQUE_SESSION_DIR", ""),
		Timeout:    time.Duration(getInt(v, "ESTOQUE_TIMEOUT_SECONDS", 5)) * time.Second,
		SQLitePath: getString(v, "SQLITE_PATH", "estoque.db"),
		JWT: JWTConfig{
			// El backend local firma sus propios tokens; un secreto fijo basta porque nunca salen del equipo.
			Secret:     getString(v, "JWT_SECRET", "estoque-local"),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "controle-estoque-local"),
		},
		Role:     loadRole(v),
		Builtins: loadBuiltins(v),
	}

	switch cfg.Backend {
	case BackendLocal, BackendRemote:
	default:
		return nil, fmt.Errorf("config: ESTOQUE_BACKEND %q no soportado", cfg.Backend)
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func loadRole(v *viper.Viper) RoleConfig {
	return RoleConfig{
		Policy:         strings.ToLower(getString(v, "ROLE_POLICY", RolePolicyExact)),
		AdminAllowList: getStrings(v, "ROLE_ADMIN_ALLOW_LIST", []string{"admin"}),
		AdminKeywords: getStrings(v, "ROLE_ADMIN_KEYWORDS",
			[]string{"admin", "adm", "gerente", "supervisor", "diretor", "chefe", "master", "root"}),
	}
}

func loadBuiltins(v *viper.Viper) BuiltinsConfig {
	return BuiltinsConfig{
		AdminPassword: getString(v, "BUILTIN_ADMIN_PASSWORD", "admin"),
		StaffPassword: getString(v, "BUILTIN_STAFF_PASSWORD", "func"),
	}
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

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(v.GetString(key), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}

// getStrings lee una lista separada por comas.
func getStrings(v *viper.Viper, key string, def []string) []string {
	if !v.IsSet(key) {
		return def
	}
	var out []string
	for _, s := range strings.Split(v.GetString(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
