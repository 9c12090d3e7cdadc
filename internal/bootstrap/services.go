package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/target/membergate/config"
	bcryptadapter "github.com/target/membergate/internal/adapters/bcrypt"
	redisadapter "github.com/target/membergate/internal/adapters/redis"
	"github.com/target/membergate/internal/data"
	"github.com/target/membergate/internal/service"
)

// ServiceDeps groups the shared infrastructure handles the services build on.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// ServiceContainer holds the constructed application services.
type ServiceContainer struct {
	Auth  *service.AuthService
	Users *service.UserService
}

// NewServices wires repositories, adapters, and services. Collaborators are
// injected here once at startup; nothing holds them as package globals.
func NewServices(deps *ServiceDeps) ServiceContainer {
	userRepo := data.NewUserRepo(deps.DB)
	sessionStore := redisadapter.NewSessionStore(deps.RedisClient)
	hasher := bcryptadapter.NewHasher(deps.Config.Auth.BcryptCost)

	auth := service.NewAuthService(service.AuthServiceOptions{
		Stores: service.AuthStores{
			Users:    userRepo,
			Sessions: sessionStore,
		},
		Hasher:     hasher,
		SessionTTL: deps.Config.Auth.SessionTTL,
	})

	users := service.NewUserService(service.UserServiceOptions{
		Users:  userRepo,
		Logger: deps.Logger,
	})

	return ServiceContainer{Auth: auth, Users: users}
}
