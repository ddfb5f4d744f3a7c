package cmd

type Config struct {
	HTTPPort                string
	OrderStore              string
	DBHost                  string
	DBPort                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	DBSslMode               string
	KafkaHost               string
	KafkaStatusChangedTopic string
	VendorTimezone          string
	BulkConcurrency         string
	BulkItemTimeout         string
}
