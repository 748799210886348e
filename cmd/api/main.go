package main

import (
	"context"
	"net/http"

	"geocoder-api/internal/config"
	"geocoder-api/internal/handler"
	"geocoder-api/internal/repository"
	"geocoder-api/internal/service"
	"geocoder-api/internal/style"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	streetStyles, err := loadStreetStyles(config.StreetStylesFile)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load street styles")
	}

	// Database connection
	conn, err := pgxpool.New(context.Background(), config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	// Initialize layers
	repo := repository.NewRepository(conn)
	tables := style.Default()

	addressService := service.NewAddressService(repo, tables, service.AddressConfig{
		DefaultState:    config.DefaultState,
		MaxResults:      config.MaxResults,
		NormalizeStyles: streetStyles.Normalize,
		FormatStyles:    streetStyles.Format,
	})
	intersectionService := service.NewIntersectionService(repo, addressService, tables, service.IntersectionConfig{
		DefaultState: config.DefaultState,
		MaxResults:   config.MaxResults,
	})
	searchService := service.NewSearchService(addressService, intersectionService, tables)

	geocodeHandler := handler.NewGeocodeHandler(addressService)
	searchHandler := handler.NewSearchHandler(searchService)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/geocode", geocodeHandler.Geocode)
	r.GET("/search", searchHandler.Search)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.Run(config.ServerAddress)
}

func loadStreetStyles(path string) (config.StreetStyles, error) {
	return config.LoadStreetStyles(path)
}
