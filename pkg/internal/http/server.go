package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/graphql-go/graphql"
	jsoniter "github.com/json-iterator/go"
	"github.com/pressroomhq/pressroom/pkg/internal/gql"
	"github.com/pressroomhq/pressroom/pkg/internal/models"
	"github.com/pressroomhq/pressroom/pkg/internal/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type App struct {
	app *fiber.App
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

func NewServer(schema graphql.Schema, users *services.UserService) *App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "PressroomHQ.Pressroom",
		AppName:               "PressroomHQ.Pressroom",
		ProxyHeader:           fiber.HeaderXForwardedFor,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:             10 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowCredentials: true,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowOriginsFunc: func(origin string) bool { return true },
		AllowHeaders: "Authorization, Content-Type",
	}))

	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Debug().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("took", time.Since(start)).
			Msg("Request handled")
		return err
	})

	app.Use(authMiddleware(users))

	app.Get("/.well-known/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	app.Post("/api/graphql", func(c *fiber.Ctx) error {
		var request graphqlRequest
		if err := c.BodyParser(&request); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ctx := context.Background()
		if user, ok := c.Locals("user").(*models.User); ok {
			ctx = gql.WithIdentity(ctx, user)
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  request.Query,
			OperationName:  request.OperationName,
			VariableValues: request.Variables,
			Context:        ctx,
		})

		return c.JSON(result)
	})

	return &App{app}
}

func (v *App) Listen() {
	if err := v.app.Listen(viper.GetString("bind")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting HTTP server.")
	}
}
