// AngelaMos | 2026
// keys.go

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prombirzha/marketplace/internal/auth"
	"github.com/prombirzha/marketplace/internal/config"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Generate an ES256 key pair for local token signing",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := boot()
		if err != nil {
			return err
		}
		if cfg.JWT.PrivateKeyPath == "" {
			return errors.New("jwt.private_key_path is not set")
		}

		if err := auth.GenerateKeyPair(cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath); err != nil {
			return err
		}

		logger.Info("key pair written",
			"private", cfg.JWT.PrivateKeyPath,
			"public", cfg.JWT.PublicKeyPath,
		)
		return nil
	},
}

var tokenClaims auth.ProfileClaims

// tokenCmd mints an access token with the local private key, standing in
// for the identity provider during development.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a development access token",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		manager, err := auth.NewJWTManager(cfg.JWT)
		if err != nil {
			return err
		}

		token, err := manager.CreateAccessToken(tokenClaims)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
		return err
	},
}

func init() {
	flags := tokenCmd.Flags()
	flags.StringVar(&tokenClaims.Subject, "sub", "", "subject (user id)")
	flags.StringVar(&tokenClaims.Email, "email", "", "email claim")
	flags.StringVar(&tokenClaims.FirstName, "first-name", "", "given_name claim")
	flags.StringVar(&tokenClaims.LastName, "last-name", "", "family_name claim")
	flags.StringVar(&tokenClaims.Picture, "picture", "", "picture claim")
	_ = tokenCmd.MarkFlagRequired("sub") //nolint:errcheck // flag is defined above
}
