package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/formtracer/form-backend/pkg/apihelpers"
	"github.com/formtracer/form-backend/pkg/db"
	"github.com/formtracer/form-backend/pkg/draftstore"
	"github.com/formtracer/form-backend/services/form-api/apihandlers"

	formDB "github.com/formtracer/form-backend/pkg/db/form"
)

var conf FormApiConfig

func main() {
	formDBService, err := formDB.NewFormDBService(db.DBConfigFromYamlObj(conf.DBConfigs.FormDB, conf.AllowedInstanceIDs))
	if err != nil {
		slog.Error("Error connecting to Form DB", slog.String("error", err.Error()))
		return
	}

	draftStore, err := draftstore.NewDraftStore(conf.DraftStoreConfig)
	if err != nil {
		slog.Error("Error connecting to draft store", slog.String("error", err.Error()))
		return
	}

	// Start webserver
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length", "Api-Key"},
		ExposeHeaders:    []string{"Authorization", "Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)
	v1Root := router.Group("/v1")

	v1APIHandlers := apihandlers.NewHTTPHandler(
		formDBService,
		draftStore,
		conf.AllowedInstanceIDs,
		conf.ManagementAPIKeys,
	)
	v1APIHandlers.AddFormManagementAPI(v1Root)
	v1APIHandlers.AddFormFillingAPI(v1Root)

	if conf.GinConfig.DebugMode {
		apihelpers.WriteRoutesToFile(router, "form-api-routes.txt")
	}

	// Start the server
	slog.Info("Starting Form API on port " + conf.GinConfig.Port)
	if !conf.GinConfig.MTLS.Use {
		err := router.Run(":" + conf.GinConfig.Port)
		if err != nil {
			slog.Error("Exited Form API", slog.String("error", err.Error()))
			return
		}
	} else {
		// Create tls config for mutual TLS
		tlsConfig, err := apihelpers.LoadTLSConfig(conf.GinConfig.MTLS.CertificatePaths)
		if err != nil {
			slog.Error("Error loading TLS config.", slog.String("error", err.Error()))
			return
		}

		server := &http.Server{
			Addr:      ":" + conf.GinConfig.Port,
			Handler:   router,
			TLSConfig: tlsConfig,
		}

		err = server.ListenAndServeTLS(conf.GinConfig.MTLS.CertificatePaths.ServerCertPath, conf.GinConfig.MTLS.CertificatePaths.ServerKeyPath)
		if err != nil {
			slog.Error("Exited Form API", slog.String("error", err.Error()))
			return
		}
	}
}
