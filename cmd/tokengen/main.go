// tokengen mints development access tokens signed with the configured
// secret. The production identity provider issues real tokens; this tool
// exists for local testing and integration scripts.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/taskverse/taskverse/internal/auth"
)

func main() {
	userID := flag.String("user-id", "", "subject user ID (required)")
	email := flag.String("email", "", "user email (required)")
	secret := flag.String("secret", os.Getenv("TASKVERSE_AUTH_SECRET"), "signing secret (defaults to TASKVERSE_AUTH_SECRET)")
	ttl := flag.Duration("ttl", 720*time.Hour, "token lifetime")
	flag.Parse()

	if *userID == "" || *email == "" || *secret == "" {
		flag.Usage()
		os.Exit(2)
	}

	token, err := auth.NewVerifier(*secret).Mint(auth.Identity{UserID: *userID, Email: *email}, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to mint token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
