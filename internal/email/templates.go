package email

import "fmt"

// Lifecycle notification bodies. Plain text, Italian-facing product.

func InvitationEmail(to, city, description string) *Email {
	return &Email{
		To:      []string{to},
		Subject: "Nuova richiesta di intervento",
		Body: fmt.Sprintf(
			"Hai ricevuto una nuova richiesta di intervento a %s:\n\n%s\n\nAccedi per accettare o rifiutare.",
			city, description,
		),
	}
}

func HiredEmail(to, clientName, description string) *Email {
	return &Email{
		To:      []string{to},
		Subject: "Sei stato scelto per un lavoro",
		Body: fmt.Sprintf(
			"%s ti ha scelto per il lavoro:\n\n%s\n\nContatta il cliente per organizzare l'intervento.",
			clientName, description,
		),
	}
}

func NotSelectedEmail(to, description string) *Email {
	return &Email{
		To:      []string{to},
		Subject: "Richiesta assegnata ad un altro professionista",
		Body: fmt.Sprintf(
			"La richiesta:\n\n%s\n\nè stata assegnata ad un altro professionista.",
			description,
		),
	}
}
