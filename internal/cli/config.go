package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Validate the configuration and print it with secrets masked",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			masked := *cfg
			masked.Cookie.Secret = mask(masked.Cookie.Secret)
			masked.S3.SecretKey = mask(masked.S3.SecretKey)
			masked.Mail.ResendAPIKey = mask(masked.Mail.ResendAPIKey)
			masked.Redis.URL = mask(masked.Redis.URL)

			data, err := yaml.Marshal(masked)
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}
