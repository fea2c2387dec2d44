package tests

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	authadapter "taskmanager/internal/adapter/auth"
	dbadapter "taskmanager/internal/adapter/db"
	httpadapter "taskmanager/internal/adapter/http"
	"taskmanager/internal/adapter/http/handlers"
	"taskmanager/internal/adapter/http/middleware"
	appservice "taskmanager/internal/app/service"
	"taskmanager/internal/config"
	"taskmanager/pkg/translator"
)

const (
	testJWTSecret = "integration-secret"
	testJWTIssuer = "taskmanager-test"
)

var initTranslator sync.Once

// IntegrationSuiteBase wires the full router over a real SQL store. It runs on
// a private in-memory sqlite database unless TEST_DB_DRIVER=mysql.
type IntegrationSuiteBase struct {
	suite.Suite

	adminDB    *sqlx.DB
	DB         *sqlx.DB
	testDBName string
	router     *gin.Engine
	clock      *stepClock
}

func (s *IntegrationSuiteBase) SetupSuite() {
	gin.SetMode(gin.TestMode)
	initTranslator.Do(func() {
		translator.InitTranslator(translator.Config{})
	})

	if envOrDefault("TEST_DB_DRIVER", config.DriverSQLite) != config.DriverMySQL {
		return
	}

	host := envOrDefault("MYSQL_HOST", "127.0.0.1")
	port := envOrDefault("MYSQL_PORT", "3306")
	rootUser := envOrDefault("MYSQL_ROOT_USER", "root")
	rootPassword := envOrDefault("MYSQL_ROOT_PASSWORD", "root")
	database := envOrDefault("MYSQL_TEST_DATABASE", envOrDefault("MYSQL_DATABASE", "taskmanager")+"_test")
	params := envOrDefault("MYSQL_PARAMS", "parseTime=true&clientFoundRows=true")

	adminDB, err := sqlx.Connect("mysql", mysqlDSN(rootUser, rootPassword, host, port, "", params))
	if err != nil {
		s.T().Skipf("skipping mysql suite: could not connect to mysql: %v", err)
	}
	s.adminDB = adminDB

	_, err = s.adminDB.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", database))
	s.Require().NoError(err)

	db, err := sqlx.Connect("mysql", mysqlDSN(rootUser, rootPassword, host, port, database, params))
	s.Require().NoError(err)
	s.DB = db
	s.testDBName = database
}

func (s *IntegrationSuiteBase) TearDownSuite() {
	if s.DB != nil {
		s.Require().NoError(s.DB.Close())
	}
	if s.adminDB == nil {
		return
	}

	// Drop test database to keep local environment clean after integration runs.
	if s.testDBName != "" && strings.HasSuffix(s.testDBName, "_test") {
		_, err := s.adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", s.testDBName))
		s.Require().NoError(err)
	}
	s.Require().NoError(s.adminDB.Close())
}

func (s *IntegrationSuiteBase) SetupTest() {
	s.ResetDatabase()

	s.clock = &stepClock{next: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), step: time.Second}

	hasher := authadapter.NewPasswordHasher(bcrypt.MinCost)
	tokens := authadapter.NewJWTManager(authadapter.JWTConfig{
		SecretKey: testJWTSecret,
		Issuer:    testJWTIssuer,
		ExpiresIn: time.Hour,
	})

	authService, err := appservice.NewAuthService(dbadapter.NewUserRepository(s.DB), hasher, tokens)
	s.Require().NoError(err)
	taskService := appservice.NewTaskService(dbadapter.NewTaskRepository(s.DB), appservice.WithTaskClock(s.clock.Now))

	router := gin.New()
	httpadapter.RegisterRoutes(router, httpadapter.RouterConfig{
		AuthService:   authService,
		HealthHandler: handlers.NewHealthHandler(handlers.HealthInfo{AppName: "taskmanager", Driver: s.DB.DriverName()}, s.DB),
		TaskHandler:   handlers.NewTaskHandler(taskService),
		AuthHandler:   handlers.NewAuthHandler(authService),
		AuthLimiter:   middleware.NewIPRateLimiter(100, 100),
	})
	s.router = router
}

// ResetDatabase gives each test an empty schema.
func (s *IntegrationSuiteBase) ResetDatabase() {
	ctx := context.Background()

	if s.adminDB == nil {
		if s.DB != nil {
			s.Require().NoError(s.DB.Close())
		}
		db, err := dbadapter.OpenSQLite(":memory:")
		s.Require().NoError(err)
		s.DB = db
	} else {
		for _, table := range []string{"tasks", "users"} {
			_, err := s.DB.ExecContext(ctx, "DROP TABLE IF EXISTS "+table)
			s.Require().NoError(err)
		}
	}

	s.Require().NoError(dbadapter.Migrate(ctx, s.DB))
}

// stepClock returns a strictly increasing time on every call so that
// creation order is observable in listings.
type stepClock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(c.step)
	return now
}

func mysqlDSN(user, password, host, port, database, params string) string {
	if database == "" {
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/?%s", user, password, host, port, params)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, password, host, port, database, params)
}

func envOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
