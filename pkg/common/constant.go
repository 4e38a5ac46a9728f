package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyGuardianDbPath string = "GUARDIAN_DB_PATH"

	DbTypeFile     string = "file"
	DbTypeMemory   string = "memory"
	DbTypePostgres string = "postgres"

	BusTypeMQTT   string = "mqtt"
	BusTypePubSub string = "pubsub"
	BusTypeNone   string = "none"

	PushProviderFCM string = "fcm"
	PushProviderLog string = "log"

	StatusStoreDb    string = "db"
	StatusStoreRedis string = "redis"

	LoggerNameGuardianCore  string = "guardian_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameGatewayServer string = "gateway_server"
	LoggerNameBusAdapter    string = "bus_adapter"
	LoggerNamePush          string = "push"

	LoggerFieldCategory     string = "category"
	LoggerCategoryCheckIn   string = "checkin"
	LoggerCategoryResolver  string = "resolver"
	LoggerCategoryNotifier  string = "notifier"
	LoggerCategoryInbox     string = "inbox"
	LoggerCategoryIngest    string = "ingest"
	LoggerCategoryDevice    string = "device"
	LoggerCategoryDirectory string = "directory"
	LoggerCategoryStatus    string = "status"
)
