package router

import (
	"fmt"
	"strings"

	"reelgate/internal/store"
)

const (
	msgWelcome      = "Welcome! Send a film code and I will reply with the film."
	msgAdminWelcome = "Operator commands:\n" +
		"/add_film - add a film to the catalog\n" +
		"/add_sponsor - add a sponsor channel\n" +
		"/remove_sponsor - remove a sponsor channel\n" +
		"/get_sponsors - list sponsor channels"
	msgHelp           = "Send a film code (a number) to get a film."
	msgFilmMiss       = "There is no film with code %d."
	msgSponsorWarning = "Careful: changing the sponsor list resets every user's verified status."
	msgOracleDown     = "Could not verify your subscriptions right now. Please try again in a minute."
	msgFault          = "Something went wrong. Please try again later."
	msgRecheckPassed  = "Subscriptions confirmed ✅"
	msgRecheckFailed  = "You are not subscribed to all sponsor channels yet."
	msgNoSponsors     = "The sponsor list is empty."
)

func formatFilm(entry store.CatalogEntry) string {
	return fmt.Sprintf("🎬 *%s* (%d)\nDirected by %s\n\n%s",
		entry.Title, entry.Year, entry.Director, entry.Description)
}

func formatSponsorList(channels []string) string {
	if len(channels) == 0 {
		return msgNoSponsors
	}
	var b strings.Builder
	b.WriteString("Sponsor channels:\n")
	for _, channel := range channels {
		b.WriteString(channel)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatDenied(channels []string) string {
	var b strings.Builder
	b.WriteString("To get films, subscribe to our sponsor channels first:\n")
	for _, channel := range channels {
		b.WriteString(channel)
		b.WriteByte('\n')
	}
	b.WriteString("\nThen press the button below.")
	return b.String()
}
