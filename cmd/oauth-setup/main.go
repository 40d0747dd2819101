// Command oauth-setup walks through the one-time Google consent flow and
// stores the resulting refresh token where the booking API expects it.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/oauth2"

	"adhhak/config"
	"adhhak/models"
	"adhhak/services/calendar"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		log.Fatal("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
	}

	conf := calendar.NewOAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)

	// prompt=consent forces Google to re-issue a refresh token even for
	// an account that already authorized this client.
	authURL := conf.AuthCodeURL("state-token",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)

	fmt.Println("Configuration OAuth pour Google Calendar API")
	fmt.Println()
	fmt.Println("1. Ouvrez ce lien dans votre navigateur:")
	fmt.Println()
	fmt.Println(authURL)
	fmt.Println()
	fmt.Println("2. Autorisez l'application à accéder à votre calendrier")
	fmt.Println("3. Copiez le code d'autorisation affiché")
	fmt.Println()
	fmt.Print("Collez le code d'autorisation ici: ")

	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("could not read authorization code: %v", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		log.Fatal("empty authorization code")
	}

	tok, err := conf.Exchange(context.Background(), code)
	if err != nil {
		log.Fatalf("authorization code exchange failed: %v", err)
	}
	if tok.RefreshToken == "" {
		log.Fatal("Google returned no refresh token; revoke the app's access and run setup again")
	}

	cred := &models.Credential{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Scope:        calendar.CalendarScope,
	}
	if !tok.Expiry.IsZero() {
		cred.SetExpiry(tok.Expiry)
	}

	store := calendar.NewFileTokenStore(cfg.TokenFile)
	if err := store.Save(cred); err != nil {
		log.Fatalf("could not store credential: %v", err)
	}

	fmt.Println()
	fmt.Println("Configuration réussie!")
	fmt.Printf("Le token a été sauvegardé dans %s\n", cfg.TokenFile)
	fmt.Println()
	fmt.Println("Ajoutez ceci à votre fichier .env:")
	fmt.Printf("GOOGLE_REFRESH_TOKEN=%s\n", tok.RefreshToken)
}
