package cmd

type Config struct {
	HTTPPort        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSslMode       string
	S3Bucket        string
	S3Prefix        string
	TokenSecret     string
	DownloadURLTTL  string
	CommerceBaseURL string
	CommerceAPIKey  string
}
