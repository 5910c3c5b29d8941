package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	"github.com/formtracer/form-backend/pkg/apihelpers"
	"github.com/formtracer/form-backend/pkg/db"
	"github.com/formtracer/form-backend/pkg/draftstore"
	"github.com/formtracer/form-backend/pkg/utils"
	"github.com/formtracer/form-backend/services/form-api/apihandlers"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_FORM_DB_USERNAME     = "FORM_DB_USERNAME"
	ENV_FORM_DB_PASSWORD     = "FORM_DB_PASSWORD"
	ENV_DRAFT_STORE_USERNAME = "DRAFT_STORE_USERNAME"
	ENV_DRAFT_STORE_PASSWORD = "DRAFT_STORE_PASSWORD"
	ENV_MANAGEMENT_API_KEYS  = "MANAGEMENT_API_KEYS"
)

type FormApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`

		// Mutual TLS configs
		MTLS struct {
			Use              bool                        `json:"use" yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `json:"certificate_paths" yaml:"certificate_paths"`
		} `json:"mtls" yaml:"mtls"`
	} `json:"gin_config" yaml:"gin_config"`

	AllowedInstanceIDs []string `json:"allowed_instance_ids" yaml:"allowed_instance_ids"`

	// DB configs
	DBConfigs struct {
		FormDB db.DBConfigYaml `json:"form_db" yaml:"form_db"`
	} `json:"db_configs" yaml:"db_configs"`

	DraftStoreConfig draftstore.DraftStoreConfig `json:"draft_store" yaml:"draft_store"`

	ManagementAPIKeys []string `json:"management_api_keys" yaml:"management_api_keys"`
}

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(conf.Logging)

	// Override secrets from environment variables
	secretsOverride()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	apihandlers.RegisterBindingValidators()
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_FORM_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.FormDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_FORM_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.FormDB.Password = dbPassword
	}

	if draftStoreUsername := os.Getenv(ENV_DRAFT_STORE_USERNAME); draftStoreUsername != "" {
		conf.DraftStoreConfig.Username = draftStoreUsername
	}

	if draftStorePassword := os.Getenv(ENV_DRAFT_STORE_PASSWORD); draftStorePassword != "" {
		conf.DraftStoreConfig.Password = draftStorePassword
	}

	if apiKeys := os.Getenv(ENV_MANAGEMENT_API_KEYS); apiKeys != "" {
		conf.ManagementAPIKeys = utils.SplitAndTrim(apiKeys, ",")
	}
}
