package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emprendevoz/emprende-api/internal/domain/certificate"
)

var errInvalidCertificate = errors.New("certificate is not valid")

var certCmd = &cobra.Command{
	Use:   "cert",
	Short: "Certificate tools",
}

var certVerifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Check a downloaded certificate against its embedded hash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		presented, err := certificate.ParseDownload(b)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		rec, _ := presented.Record()
		if !presented.Valid() {
			fmt.Fprintf(out, "invalid: %s (%s)\n", rec.ModuleID, presented.Hash)
			return errInvalidCertificate
		}
		fmt.Fprintf(out, "valid: %s %s issued %s to %s\n",
			rec.ModuleID, rec.ModuleTitle, rec.IssuedAt, rec.UserID)
		return nil
	},
}

func init() {
	certCmd.AddCommand(certVerifyCmd)
}
