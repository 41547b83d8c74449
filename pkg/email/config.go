package email

// Config holds the e-mail sender settings. Postmark tokens may be empty in
// development, where DevSender writes messages to DevDir instead.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"noreply@penpal.ai"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"support@penpal.ai"`
	DevDir               string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}

// PostmarkConfigured reports whether both Postmark tokens are set.
func (c Config) PostmarkConfigured() bool {
	return c.PostmarkServerToken != "" && c.PostmarkAccountToken != ""
}
