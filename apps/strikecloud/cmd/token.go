package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quatton/portfolio/pkg/papi/config"
	"github.com/quatton/portfolio/pkg/papi/utils"
	"github.com/quatton/portfolio/pkg/pauth"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development session token",
	Long: `Signs a session token with AUTH_SECRET so the API can be called without the
portfolio site's login flow, e.g.

  curl -H "Authorization: Bearer $(strikecloud token --email me@example.com)" localhost:3000/strike`,
	Run: mintToken,
}

var (
	tokenEmail   string
	tokenName    string
	tokenPicture string
	tokenTTL     time.Duration
)

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Email claim (required)")
	tokenCmd.Flags().StringVar(&tokenName, "name", "", "Display name claim")
	tokenCmd.Flags().StringVar(&tokenPicture, "picture", "", "Avatar URL claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (default SESSION_TTL)")
	_ = tokenCmd.MarkFlagRequired("email")
}

func mintToken(cmd *cobra.Command, args []string) {
	if utils.IsProd() {
		logger.Fatal("refusing to mint tokens in production")
	}

	cfg, err := config.ValidateEnv(logger)
	if err != nil {
		logger.Fatalf("%v", err)
	}

	ttl := tokenTTL
	if ttl <= 0 {
		ttl = cfg.SessionTTL
	}

	token, err := pauth.NewVerifier(cfg.AuthSecret).Issue(tokenEmail, tokenName, tokenPicture, ttl)
	if err != nil {
		logger.Fatalf("failed to issue token: %v", err)
	}
	fmt.Println(token)
}
