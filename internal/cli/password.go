// AngelaMos | 2026
// password.go

package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amontalvo1020/rentalspro/internal/core"
)

type hashOutput struct {
	Hash string `json:"password_hash"`
	Salt string `json:"password_salt"`
}

func newHashPasswordCmd() *cobra.Command {
	var (
		iterations int
		saltSize   int
	)

	cmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Hash a password for direct insertion into the users table",
		Long:  "Prints the password_hash and password_salt columns as JSON. Reads the password from stdin when no argument is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := passwordArg(cmd, args)
			if err != nil {
				return err
			}

			hash, salt, err := core.HashPassword(password, iterations, saltSize)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(hashOutput{Hash: hash, Salt: salt})
		},
	}

	cmd.Flags().IntVar(&iterations, "iterations", core.DefaultIterations, "PBKDF2 iteration count")
	cmd.Flags().IntVar(&saltSize, "salt-size", core.DefaultSaltSize, "random salt length in bytes")

	return cmd
}

func newVerifyPasswordCmd() *cobra.Command {
	var (
		hash string
		salt string
	)

	cmd := &cobra.Command{
		Use:   "verify-password [password]",
		Short: "Check a password against a stored hash and salt",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := passwordArg(cmd, args)
			if err != nil {
				return err
			}

			ok, err := core.Verify(hash, salt, password)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("password does not match")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "match")
			return nil
		},
	}

	cmd.Flags().StringVar(&hash, "hash", "", "stored password_hash")
	cmd.Flags().StringVar(&salt, "salt", "", "stored password_salt")
	_ = cmd.MarkFlagRequired("hash") //nolint:errcheck // flag exists
	_ = cmd.MarkFlagRequired("salt") //nolint:errcheck // flag exists

	return cmd
}

func passwordArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password is required")
	}
	return password, nil
}
