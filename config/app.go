package config

type App struct {
	Port        string `env:"APP_PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	ServerURL   string `env:"SERVER_URL" default:"http://localhost:8080"`
	UploadDir   string `env:"UPLOAD_DIR" default:"uploads"`
	CORSOrigin  string `env:"CORS_ORIGIN"`
	Env         string `env:"APP_ENV" default:"dev"`
}
