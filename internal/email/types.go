package email

// Email is a single outbound message.
type Email struct {
	From    string
	To      []string
	Subject string
	Body    string
	IsHTML  bool
}

type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
}
