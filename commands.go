package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"teamprompt/internal/analytics"
	"teamprompt/internal/models"
	"teamprompt/internal/pack"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	exportIDs    []string
	exportName   string
	exportFormat string
	exportOut    string
	statsTop     int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export prompts as a pack file",
	Long: `Export prompts into a portable pack. Ids that do not exist are skipped.
Without --id every prompt in the library is exported.`,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a pack file (JSON or YAML, - for stdin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a prompt file against the enforced standards",
	Long: `Check a prompt, given as a JSON or YAML object with the prompt fields,
against every enforced standard. Exits non-zero when violations are found.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print library analytics",
	RunE:  runStats,
}

func init() {
	exportCmd.Flags().StringSliceVar(&exportIDs, "id", nil, "Prompt ids to export (repeatable)")
	exportCmd.Flags().StringVar(&exportName, "name", "prompt-pack", "Pack name")
	exportCmd.Flags().StringVar(&exportFormat, "format", string(pack.EncodingJSON), "Output format: json or yaml")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout)")
	statsCmd.Flags().IntVar(&statsTop, "top", analytics.DefaultTopN, "How many prompts to rank")
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func runExport(cmd *cobra.Command, args []string) error {
	enc := pack.Encoding(strings.ToLower(exportFormat))
	if enc != pack.EncodingJSON && enc != pack.EncodingYAML {
		return fmt.Errorf("unsupported format %q (want json or yaml)", exportFormat)
	}

	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	ids := exportIDs
	if len(ids) == 0 {
		all, err := a.Library.Repo.Prompts.List(ctx)
		if err != nil {
			return err
		}
		for _, p := range all {
			ids = append(ids, p.ID)
		}
	}

	env, err := a.Library.ExportPack(ctx, ids, exportName)
	if err != nil {
		return err
	}
	data, err := pack.Encode(env, enc)
	if err != nil {
		return err
	}

	if exportOut == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(exportOut, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d prompts to %s\n", env.Count, exportOut)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.Library.ImportPack(ctx, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d prompts from %q\n", result.Imported, result.Name)
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	// YAML is a superset of JSON; route both through the json tags.
	var fields map[string]interface{}
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("parse prompt: %w", err)
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	var candidate models.Prompt
	if err := json.Unmarshal(raw, &candidate); err != nil {
		return fmt.Errorf("parse prompt: %w", err)
	}

	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.Library.ValidatePrompt(ctx, candidate)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if report.Valid {
		fmt.Fprintln(out, "OK: no violations")
		return nil
	}
	for _, line := range report.Messages() {
		fmt.Fprintln(out, line)
	}
	return fmt.Errorf("%d violations", len(report.Violations))
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.Library.Summary(ctx, statsTop)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
