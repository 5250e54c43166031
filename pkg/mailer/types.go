package mailer

import "fmt"

// Email is a fully prepared message handed to a Sender.
type Email struct {
	To      []string
	From    string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
	Tags    map[string]string
}

// Address formats a display name and email as "Name <email>".
func Address(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}
