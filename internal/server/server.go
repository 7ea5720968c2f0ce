// Package server wires the GraphQL handler, health check and metrics into a
// gin engine.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pantryhq/pantry/internal/config"
	"github.com/pantryhq/pantry/internal/graph"
	"github.com/pantryhq/pantry/internal/store"
	"github.com/pantryhq/pantry/internal/web"
)

const healthTimeout = 2 * time.Second

// GraphQLHandler builds the gqlgen server for s.
func GraphQLHandler(s *store.Store, log *slog.Logger) *handler.Server {
	es := graph.NewExecutableSchema(graph.Config{
		Resolvers: &graph.Resolver{Store: s, Logger: log},
	})

	srv := handler.NewDefaultServer(es)
	srv.SetErrorPresenter(graph.ErrorPresenter)
	srv.SetRecoverFunc(graph.Recover)
	srv.Use(graph.Metrics{})
	return srv
}

// New returns the HTTP engine serving:
//   - POST /graphql: GraphQL endpoint
//   - GET  /graphql: GraphQL Playground
//   - GET  /healthz: database ping plus record counts
//   - GET  /metrics: Prometheus metrics
//   - GET  /: landing page
func New(s *store.Store, cfg config.ServerConfig, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(log), Metrics())

	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	gql := GraphQLHandler(s, log)
	r.POST("/graphql", gin.WrapH(gql))
	r.GET("/graphql", func(c *gin.Context) {
		// Plain GET queries go to the API; a browser gets the playground.
		if c.Query("query") != "" {
			gql.ServeHTTP(c.Writer, c.Request)
			return
		}
		playground.Handler("Pantry GraphQL", "/graphql").ServeHTTP(c.Writer, c.Request)
	})

	r.GET("/healthz", Health(s))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.NoRoute(gin.WrapH(web.Handler()))

	return r
}

// Health reports whether the database answers, together with record counts.
func Health(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := s.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}

		categories, err := s.Categories.Count(ctx)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		ingredients, err := s.Ingredients.Count(ctx)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"categories":  categories,
			"ingredients": ingredients,
		})
	}
}
