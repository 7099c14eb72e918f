package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyIOTDBType              string = "IOT_DB_TYPE"
	EnvKeyIOTDbPath              string = "IOT_DB_PATH"
	EnvKeyIOTDbDSN               string = "IOT_DB_DSN"
	EnvKeyIOTDbConnectAttempts   string = "IOT_DB_CONNECT_ATTEMPTS"
	EnvKeyIOTDbConnectInterval   string = "IOT_DB_CONNECT_INTERVAL"
	EnvKeyIOTDbConnMaxLifetime   string = "IOT_DB_CONN_MAX_LIFETIME"
	EnvKeyIOTHttpHostPort        string = "IOT_HTTP_HOST_PORT"
	EnvKeyIOTGrpcHostPort        string = "IOT_GRPC_HOST_PORT"
	EnvKeyIOTDefaultRate         string = "IOT_DEFAULT_RATE"
	EnvKeyIOTDefaultBurst        string = "IOT_DEFAULT_BURST"
	EnvKeyIOTOnlineTimeout       string = "IOT_ONLINE_TIMEOUT"
	EnvKeyIOTAtRiskTimeout       string = "IOT_AT_RISK_TIMEOUT"
	EnvKeyIOTBatteryThreshold    string = "IOT_BATTERY_THRESHOLD"
	EnvKeyIOTLogDir              string = "IOT_LOG_DIR"
	EnvKeyIOTRecentActivityRange string = "IOT_RECENT_ACTIVITY_RANGE"

	DBTypeFile     string = "file"
	DBTypeMemory   string = "memory"
	DBTypePostgres string = "postgres"

	LoggerNameIOTCore          string = "iot_core"
	LoggerNameRestfulServer    string = "restful_server"
	LoggerNameGrpcServer       string = "grpc_server"
	LoggerNameDB               string = "db"
	LoggerFieldIOTCategory     string = "category"
	LoggerCategoryIOTHeartbeat string = "heartbeat"
	LoggerCategoryIOTDevice    string = "device"
	LoggerCategoryIOTHealth    string = "health"
	LoggerCategoryIOTMetrics   string = "metrics"
)
