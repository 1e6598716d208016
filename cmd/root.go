// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "employee-migrator",
	Short: "Migrate legacy user records into the employees database",
	Long: `employee-migrator is a one-shot administrative tool that copies user
records from the legacy database into the employees table of the target
database. Records whose email already exists in the target are skipped, so
the tool is safe to re-run.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
